package interpreter

import "plc/interpreter-go/pkg/runtime"

// completion is the outcome of executing a statement. A returning completion
// unwinds every enclosing block until the invocation frame consumes it.
type completion struct {
	returning bool
	value     runtime.Value
}

var normal = completion{}

func returning(value runtime.Value) completion {
	return completion{returning: true, value: value}
}
