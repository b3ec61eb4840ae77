package interpreter

import "plc/interpreter-go/pkg/runtime"

// ExitCodeFromValue maps a program result to a process exit code. Only
// Integer results in 0..255 qualify.
func ExitCodeFromValue(v runtime.Value) (int, bool) {
	integer, ok := v.(runtime.IntegerValue)
	if !ok || integer.Val == nil || !integer.Val.IsInt64() {
		return 0, false
	}
	code := integer.Val.Int64()
	if code < 0 || code > 255 {
		return 0, false
	}
	return int(code), true
}
