package driver

import (
	"io"
	"time"

	"github.com/oarkflow/log"

	"plc/interpreter-go/pkg/ast"
	"plc/interpreter-go/pkg/generator"
	"plc/interpreter-go/pkg/interpreter"
	"plc/interpreter-go/pkg/parser"
	"plc/interpreter-go/pkg/runtime"
	"plc/interpreter-go/pkg/typechecker"
)

// Stage names the pipeline step a Result stopped at.
type Stage string

const (
	StageParse    Stage = "parse"
	StageCheck    Stage = "check"
	StageRun      Stage = "run"
	StageGenerate Stage = "generate"
)

// Result is the structured outcome of a pipeline call. Stage is the last step
// attempted; Err is set when that step failed.
type Result struct {
	Stage   Stage
	Program *ast.Source
	Value   runtime.Value
	Err     error
}

// OK reports whether every attempted stage succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Pipeline drives source text through parsing, checking, and then either
// evaluation or Java generation. The zero value writes print output to
// os.Stdout and uses the interpreter defaults; zero Scale and MaxDepth keep
// the defaults too.
type Pipeline struct {
	Stdout   io.Writer
	Logger   *log.Logger
	Verbose  bool
	Scale    int32
	MaxDepth int
}

// Configure copies the manifest's evaluation settings into p.
func (p *Pipeline) Configure(m *Manifest) {
	if m == nil {
		return
	}
	p.Scale = m.DecimalScale
	p.MaxDepth = m.MaxCallDepth
}

// Parse turns source text into a tree.
func (p *Pipeline) Parse(source string) Result {
	start := time.Now()
	program, err := parser.ParseSource(source)
	return p.finish(Result{Stage: StageParse, Program: program, Err: err}, start)
}

// Check parses and type checks source.
func (p *Pipeline) Check(source string) Result {
	res := p.Parse(source)
	if !res.OK() {
		return res
	}
	start := time.Now()
	res.Stage = StageCheck
	res.Err = p.newChecker().Check(res.Program)
	return p.finish(res, start)
}

// Run parses, checks, and executes source. Value holds main's result.
func (p *Pipeline) Run(source string) Result {
	res := p.Check(source)
	if !res.OK() {
		return res
	}
	start := time.Now()
	res.Stage = StageRun
	res.Value, res.Err = p.newInterpreter().Execute(res.Program)
	return p.finish(res, start)
}

// Generate parses, checks, and writes the Java translation of source to w.
// Nothing is written unless every stage succeeds.
func (p *Pipeline) Generate(w io.Writer, source string) Result {
	res := p.Check(source)
	if !res.OK() {
		return res
	}
	start := time.Now()
	res.Stage = StageGenerate
	res.Err = generator.Generate(w, res.Program)
	return p.finish(res, start)
}

func (p *Pipeline) newChecker() *typechecker.Checker {
	return typechecker.New()
}

func (p *Pipeline) newInterpreter() *interpreter.Interpreter {
	opts := []interpreter.Option{interpreter.WithLogger(p.Logger)}
	if p.Stdout != nil {
		opts = append(opts, interpreter.WithStdout(p.Stdout))
	}
	if p.Scale > 0 {
		opts = append(opts, interpreter.WithDecimalScale(p.Scale))
	}
	if p.MaxDepth > 0 {
		opts = append(opts, interpreter.WithMaxCallDepth(p.MaxDepth))
	}
	return interpreter.New(opts...)
}

func (p *Pipeline) finish(res Result, start time.Time) Result {
	if p.Logger == nil {
		return res
	}
	elapsed := time.Since(start)
	if res.Err != nil {
		p.Logger.Error().Str("stage", string(res.Stage)).Dur("duration", elapsed).Err(res.Err).Msg("stage failed")
		return res
	}
	if p.Verbose {
		p.Logger.Info().Str("stage", string(res.Stage)).Dur("duration", elapsed).Msg("stage complete")
	}
	return res
}
