package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/oarkflow/log"

	"plc/interpreter-go/pkg/driver"
)

const cliToolVersion = "plc 0.1.0-dev"

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// options holds the flags shared by every subcommand.
type options struct {
	json    bool
	verbose bool
	path    string
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	c := &cli{stdin: stdin, stdout: stdout, stderr: stderr}
	if len(args) == 0 {
		c.printUsage(stderr)
		return exitUsage
	}

	switch args[0] {
	case "--help", "-h", "help":
		c.printUsage(stdout)
		return exitOK
	case "--version", "-V", "version":
		fmt.Fprintln(stdout, cliToolVersion)
		return exitOK
	case "run":
		return c.runCommand(args[1:])
	case "check":
		return c.checkCommand(args[1:])
	case "gen":
		return c.genCommand(args[1:])
	case "ast":
		return c.astCommand(args[1:])
	case "repl":
		return c.replCommand(args[1:])
	default:
		if strings.HasPrefix(args[0], "-") && args[0] != driver.StdinPath {
			fmt.Fprintf(stderr, "unknown flag: %s\n", args[0])
			c.printUsage(stderr)
			return exitUsage
		}
		return c.runCommand(args)
	}
}

func (c *cli) printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  plc run [--json] [--verbose] [file.plc|-]")
	fmt.Fprintln(w, "  plc <file.plc>")
	fmt.Fprintln(w, "  plc check [--json] [--verbose] [file.plc|-]")
	fmt.Fprintln(w, "  plc gen [--verbose] [file.plc|-]")
	fmt.Fprintln(w, "  plc ast [file.plc|-]")
	fmt.Fprintln(w, "  plc repl [--verbose]")
	fmt.Fprintln(w, "  plc --version")
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "Without a file, the entry named in the nearest %s is used.\n", driver.ManifestFileName)
}

// parseFlags reads the shared flags and at most one positional path. ok is
// false when the caller should exit with code.
func (c *cli) parseFlags(name string, args []string) (opts options, code int, ok bool) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	fs.BoolVar(&opts.json, "json", false, "print the result as JSON")
	fs.BoolVar(&opts.verbose, "verbose", false, "log pipeline stages to stderr")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, exitOK, false
		}
		return opts, exitUsage, false
	}
	switch fs.NArg() {
	case 0:
	case 1:
		opts.path = fs.Arg(0)
	default:
		fmt.Fprintf(c.stderr, "unexpected arguments: %s\n", strings.Join(fs.Args()[1:], " "))
		return opts, exitUsage, false
	}
	return opts, exitOK, true
}

// load resolves and reads the program named by opts and builds a pipeline
// configured from the nearest manifest.
func (c *cli) load(command string, opts options) (*driver.SourceFile, *driver.Pipeline, bool) {
	dir := "."
	if opts.path != "" && opts.path != driver.StdinPath {
		dir = filepath.Dir(opts.path)
	}
	entry, manifest, err := driver.ResolveEntry(opts.path, dir)
	if err != nil {
		fmt.Fprintf(c.stderr, "%s: %v\n", command, err)
		return nil, nil, false
	}
	pipeline := &driver.Pipeline{Stdout: c.stdout}
	pipeline.Configure(manifest)
	configureLogging(pipeline, manifest, opts.verbose)

	file, err := driver.ReadSource(entry, c.stdin)
	if err != nil {
		fmt.Fprintf(c.stderr, "%s: %v\n", command, err)
		return nil, nil, false
	}
	if pipeline.Logger != nil && pipeline.Verbose {
		pipeline.Logger.Info().Str("command", command).Str("path", file.Path).Int("bytes", len(file.Text)).Msg("loaded program")
	}
	return file, pipeline, true
}

// configureLogging applies the manifest log level; --verbose raises it to
// info.
func configureLogging(p *driver.Pipeline, manifest *driver.Manifest, verbose bool) {
	level := driver.LogLevelOff
	if manifest != nil {
		level = manifest.LogLevel
	}
	if verbose {
		level = driver.LogLevelInfo
	}
	switch level {
	case driver.LogLevelError:
		p.Logger = &log.DefaultLogger
	case driver.LogLevelInfo:
		p.Logger = &log.DefaultLogger
		p.Verbose = true
	}
}

func (c *cli) reportFailure(file *driver.SourceFile, err error) {
	fmt.Fprintf(c.stderr, "%s: %s\n", file.Path, driver.DescribeError(err, file.Text))
}
