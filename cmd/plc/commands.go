package main

import (
	"fmt"

	"github.com/oarkflow/json"

	"plc/interpreter-go/pkg/driver"
	"plc/interpreter-go/pkg/interpreter"
	"plc/interpreter-go/pkg/runtime"
)

type resultJSON struct {
	OK    bool   `json:"ok"`
	Stage string `json:"stage"`
	Value any    `json:"value"`
	Error string `json:"error,omitempty"`
}

func (c *cli) runCommand(args []string) int {
	opts, code, ok := c.parseFlags("run", args)
	if !ok {
		return code
	}
	file, pipeline, ok := c.load("run", opts)
	if !ok {
		return exitFailure
	}
	res := pipeline.Run(file.Text)
	if opts.json {
		if err := c.writeJSON(res); err != nil {
			fmt.Fprintf(c.stderr, "run: encode result: %v\n", err)
			return exitFailure
		}
	}
	if !res.OK() {
		if !opts.json {
			c.reportFailure(file, res.Err)
		}
		return exitFailure
	}
	if exit, ok := interpreter.ExitCodeFromValue(res.Value); ok {
		return exit
	}
	return exitOK
}

func (c *cli) checkCommand(args []string) int {
	opts, code, ok := c.parseFlags("check", args)
	if !ok {
		return code
	}
	file, pipeline, ok := c.load("check", opts)
	if !ok {
		return exitFailure
	}
	res := pipeline.Check(file.Text)
	if opts.json {
		if err := c.writeJSON(res); err != nil {
			fmt.Fprintf(c.stderr, "check: encode result: %v\n", err)
			return exitFailure
		}
	} else if res.OK() {
		fmt.Fprintln(c.stdout, "typecheck: ok")
	} else {
		c.reportFailure(file, res.Err)
	}
	if !res.OK() {
		return exitFailure
	}
	return exitOK
}

func (c *cli) genCommand(args []string) int {
	opts, code, ok := c.parseFlags("gen", args)
	if !ok {
		return code
	}
	file, pipeline, ok := c.load("gen", opts)
	if !ok {
		return exitFailure
	}
	if res := pipeline.Generate(c.stdout, file.Text); !res.OK() {
		c.reportFailure(file, res.Err)
		return exitFailure
	}
	return exitOK
}

// astCommand prints the parsed tree before any checking.
func (c *cli) astCommand(args []string) int {
	opts, code, ok := c.parseFlags("ast", args)
	if !ok {
		return code
	}
	file, pipeline, ok := c.load("ast", opts)
	if !ok {
		return exitFailure
	}
	res := pipeline.Parse(file.Text)
	if !res.OK() {
		c.reportFailure(file, res.Err)
		return exitFailure
	}
	out, err := json.MarshalIndent(res.Program, "", "  ")
	if err != nil {
		fmt.Fprintf(c.stderr, "ast: encode tree: %v\n", err)
		return exitFailure
	}
	fmt.Fprintln(c.stdout, string(out))
	return exitOK
}

func (c *cli) writeJSON(res driver.Result) error {
	payload := resultJSON{OK: res.OK(), Stage: string(res.Stage)}
	if res.Value != nil {
		payload.Value = runtime.ToNative(res.Value)
	}
	if res.Err != nil {
		payload.Error = res.Err.Error()
	}
	out, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.stdout, string(out))
	return err
}
