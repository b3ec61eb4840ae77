package interpreter

import (
	"fmt"

	"plc/interpreter-go/pkg/runtime"
)

func (i *Interpreter) initBuiltins() {
	// The root is fresh, so a clash here is a programming error.
	if _, err := i.global.DeclareFunctionArity("print", "System.out.println", 1, nil, nil, i.print); err != nil {
		panic(err)
	}
}

func (i *Interpreter) print(args []runtime.Value) (runtime.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("print expects 1 argument, got %d", len(args))
	}
	if _, err := fmt.Fprintln(i.stdout, runtime.Format(args[0])); err != nil {
		return nil, fmt.Errorf("print: %w", err)
	}
	return runtime.Nil, nil
}
