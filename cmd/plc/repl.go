package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"plc/interpreter-go/pkg/driver"
	"plc/interpreter-go/pkg/parser"
	"plc/interpreter-go/pkg/runtime"
)

const (
	promptMain  = "plc> "
	promptCont  = "...> "
	historyFile = ".plc_history"
)

// lineReader is the part of *liner.State the loop needs.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

func (c *cli) replCommand(args []string) int {
	opts, code, ok := c.parseFlags("repl", args)
	if !ok {
		return code
	}
	if opts.path != "" {
		fmt.Fprintf(c.stderr, "repl: unexpected argument %s\n", opts.path)
		return exitUsage
	}

	pipeline := &driver.Pipeline{Stdout: c.stdout}
	var manifest *driver.Manifest
	if path, err := driver.FindManifest("."); err == nil {
		if manifest, err = driver.LoadManifest(path); err != nil {
			fmt.Fprintf(c.stderr, "repl: %v\n", err)
			return exitFailure
		}
		pipeline.Configure(manifest)
	}
	configureLogging(pipeline, manifest, opts.verbose)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	fmt.Fprintf(c.stdout, "%s (type :env to list bindings, :quit to exit)\n", cliToolVersion)
	return c.repl(ln, pipeline.NewSession())
}

func (c *cli) repl(ln lineReader, session *driver.Session) int {
	for {
		input, ok := readEntry(ln)
		if !ok {
			fmt.Fprintln(c.stdout)
			return exitOK
		}
		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit", ":q":
				return exitOK
			case ":env":
				for _, v := range session.Bindings() {
					fmt.Fprintf(c.stdout, "%s = %s\n", v.Name, runtime.Format(v.Value))
				}
			default:
				fmt.Fprintln(c.stdout, "unknown command. Type :quit to exit.")
			}
			continue
		}

		ln.AppendHistory(strings.ReplaceAll(input, "\n", " "))
		res := session.Eval(input)
		if !res.OK() {
			fmt.Fprintln(c.stderr, driver.DescribeError(res.Err, input))
			continue
		}
		if res.Value != nil && res.Value.Kind() != runtime.KindNil {
			fmt.Fprintln(c.stdout, runtime.Format(res.Value))
		}
	}
}

// readEntry keeps prompting while the buffered input parses as incomplete.
// ok is false at end of input. An aborted prompt drops the buffer.
func readEntry(ln lineReader) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if _, perr := parser.ParseEntries(src); perr != nil && parser.IsIncomplete(perr) {
			continue
		}
		return src, true
	}
}
