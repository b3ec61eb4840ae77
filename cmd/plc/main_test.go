package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"plc/interpreter-go/pkg/driver"
)

const helloSource = `VAR greeting: String = "Hello";
FUN main(): Integer DO
    print(greeting + ", World!");
    RETURN 3;
END
`

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(strings.TrimSpace(contents)+"\n"), 0o644); err != nil {
		t.Fatalf("write file %s: %v", path, err)
	}
}

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunUsesMainResultAsExitCode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hello.plc")
	writeFile(t, path, helloSource)

	for _, args := range [][]string{{"run", path}, {path}} {
		code, stdout, stderr := runCLI(t, "", args...)
		if code != 3 {
			t.Fatalf("%v: exit code %d, want 3 (stderr %q)", args, code, stderr)
		}
		if stdout != "Hello, World!\n" {
			t.Fatalf("%v: unexpected stdout %q", args, stdout)
		}
	}
}

func TestRunJSONResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hello.plc")
	writeFile(t, path, helloSource)

	code, stdout, _ := runCLI(t, "", "run", "--json", path)
	if code != 3 {
		t.Fatalf("exit code %d, want 3", code)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 2 || lines[0] != "Hello, World!" {
		t.Fatalf("unexpected stdout %q", stdout)
	}
	for _, want := range []string{`"ok":true`, `"stage":"run"`, `"value":3`} {
		if !strings.Contains(lines[1], want) {
			t.Fatalf("JSON result %s missing %s", lines[1], want)
		}
	}
}

func TestRunReadsStdin(t *testing.T) {
	code, stdout, stderr := runCLI(t, `FUN main(): Integer DO print(2 ^ 10); RETURN 0; END`, "run", "-")
	if code != 0 {
		t.Fatalf("exit code %d (stderr %q)", code, stderr)
	}
	if stdout != "1024\n" {
		t.Fatalf("unexpected stdout %q", stdout)
	}
}

func TestRunReportsRuntimeFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fault.plc")
	writeFile(t, path, `
LIST xs: Integer = [1, 2];
FUN main(): Integer DO
    RETURN xs[5];
END`)
	code, _, stderr := runCLI(t, "", "run", path)
	if code != exitFailure {
		t.Fatalf("exit code %d, want %d", code, exitFailure)
	}
	if !strings.Contains(stderr, "runtime: 3:12: index 5 out of range for 'xs' of length 2") {
		t.Fatalf("unexpected stderr %q", stderr)
	}
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.plc")
	writeFile(t, good, helloSource)
	bad := filepath.Join(dir, "bad.plc")
	writeFile(t, bad, "FUN main(): Integer DO\n  LET x: Boolean = 1;\n  RETURN 0;\nEND")

	code, stdout, _ := runCLI(t, "", "check", good)
	if code != 0 || stdout != "typecheck: ok\n" {
		t.Fatalf("check good: code %d stdout %q", code, stdout)
	}

	code, stdout, stderr := runCLI(t, "", "check", bad)
	if code != exitFailure || stdout != "" {
		t.Fatalf("check bad: code %d stdout %q", code, stdout)
	}
	want := bad + ": typechecker: 2:20: expected Boolean, received Integer\n" +
		"   1 | FUN main(): Integer DO\n" +
		"   2 |   LET x: Boolean = 1;\n" +
		"     |                    ^\n" +
		"   3 |   RETURN 0;\n"
	if stderr != want {
		t.Fatalf("unexpected stderr:\n%s\nwant:\n%s", stderr, want)
	}

	code, stdout, _ = runCLI(t, "", "check", "--json", bad)
	if code != exitFailure || !strings.Contains(stdout, `"ok":false`) || !strings.Contains(stdout, `"stage":"check"`) {
		t.Fatalf("check --json: code %d stdout %q", code, stdout)
	}
}

func TestGenCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hello.plc")
	writeFile(t, path, helloSource)
	code, stdout, stderr := runCLI(t, "", "gen", path)
	if code != 0 {
		t.Fatalf("exit code %d (stderr %q)", code, stderr)
	}
	for _, want := range []string{
		`String greeting = "Hello";`,
		`System.out.println(greeting + ", World!");`,
		"return 3;",
	} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("generated code missing %q:\n%s", want, stdout)
		}
	}
}

func TestAstCommand(t *testing.T) {
	code, stdout, stderr := runCLI(t, "VAL answer: Integer = 42;\nFUN main(): Integer DO RETURN answer; END", "ast", "-")
	if code != 0 {
		t.Fatalf("exit code %d (stderr %q)", code, stderr)
	}
	for _, want := range []string{`"globals"`, `"name": "answer"`, `"functions"`, `"name": "main"`} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("ast output missing %s:\n%s", want, stdout)
		}
	}
}

func TestRunFallsBackToManifestEntry(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "src"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(dir, driver.ManifestFileName), `
name: demo
entry: src/main.plc
decimal_scale: 2
`)
	writeFile(t, filepath.Join(dir, "src", "main.plc"), `
FUN main(): Integer DO
    print(2.0 / 3.0);
    RETURN 0;
END`)
	t.Chdir(dir)

	code, stdout, stderr := runCLI(t, "", "run")
	if code != 0 {
		t.Fatalf("exit code %d (stderr %q)", code, stderr)
	}
	if stdout != "0.67\n" {
		t.Fatalf("unexpected stdout %q", stdout)
	}
}

func TestUsageErrors(t *testing.T) {
	if code, _, stderr := runCLI(t, ""); code != exitUsage || !strings.Contains(stderr, "Usage:") {
		t.Fatalf("no args: code %d stderr %q", code, stderr)
	}
	if code, _, _ := runCLI(t, "", "--bogus"); code != exitUsage {
		t.Fatalf("unknown flag: code %d", code)
	}
	if code, _, _ := runCLI(t, "", "run", "a.plc", "b.plc"); code != exitUsage {
		t.Fatalf("extra args: code %d", code)
	}
	if code, stdout, _ := runCLI(t, "", "--version"); code != 0 || stdout != cliToolVersion+"\n" {
		t.Fatalf("version: code %d stdout %q", code, stdout)
	}
	if code, stdout, _ := runCLI(t, "", "--help"); code != 0 || !strings.Contains(stdout, "plc repl") {
		t.Fatalf("help: code %d stdout %q", code, stdout)
	}
	missing := filepath.Join(t.TempDir(), "missing.plc")
	if code, _, stderr := runCLI(t, "", "run", missing); code != exitFailure || !strings.Contains(stderr, "loader: read") {
		t.Fatalf("missing file: code %d stderr %q", code, stderr)
	}
}

type scriptedReader struct {
	lines   []string
	prompts []string
	history []string
}

func (r *scriptedReader) Prompt(prompt string) (string, error) {
	r.prompts = append(r.prompts, prompt)
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func (r *scriptedReader) AppendHistory(item string) {
	r.history = append(r.history, item)
}

func TestReplLoop(t *testing.T) {
	reader := &scriptedReader{lines: []string{
		"VAR x: Integer = 41;",
		"FUN inc(n: Integer): Integer DO",
		"    RETURN n + 1;",
		"END",
		"inc(x);",
		`print("hi");`,
		"LET y: Boolean = 1;",
		"",
		":nope",
		":env",
	}}
	var stdout, stderr bytes.Buffer
	c := &cli{stdout: &stdout, stderr: &stderr}
	session := (&driver.Pipeline{Stdout: &stdout}).NewSession()

	if code := c.repl(reader, session); code != exitOK {
		t.Fatalf("repl exit code %d", code)
	}
	if got, want := stdout.String(), "42\nhi\nunknown command. Type :quit to exit.\nx = 41\n\n"; got != want {
		t.Fatalf("unexpected stdout %q, want %q", got, want)
	}
	if !strings.Contains(stderr.String(), "expected Boolean, received Integer") {
		t.Fatalf("unexpected stderr %q", stderr.String())
	}
	wantPrompts := []string{promptMain, promptMain, promptCont, promptCont, promptMain, promptMain, promptMain, promptMain, promptMain, promptMain, promptMain}
	if strings.Join(reader.prompts, "|") != strings.Join(wantPrompts, "|") {
		t.Fatalf("unexpected prompts %q", reader.prompts)
	}
	if len(reader.history) != 5 || reader.history[1] != "FUN inc(n: Integer): Integer DO     RETURN n + 1; END" {
		t.Fatalf("unexpected history %q", reader.history)
	}
}

func TestReplQuit(t *testing.T) {
	reader := &scriptedReader{lines: []string{":quit", "print(1);"}}
	var stdout bytes.Buffer
	c := &cli{stdout: &stdout, stderr: io.Discard}
	if code := c.repl(reader, (&driver.Pipeline{Stdout: &stdout}).NewSession()); code != exitOK {
		t.Fatalf("repl exit code %d", code)
	}
	if stdout.Len() != 0 || len(reader.lines) != 1 {
		t.Fatalf(":quit should stop reading, stdout %q", stdout.String())
	}
}
