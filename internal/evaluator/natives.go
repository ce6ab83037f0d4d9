package evaluator

import (
	"fmt"
	"time"

	"lux/internal/object"
)

// registerNatives installs the native function library into the global
// environment before any user code runs.
func registerNatives(env *object.Environment) {
	env.Define("clock", &object.Native{
		Name:    "clock",
		NumArgs: 0,
		Fn: func(args ...object.Object) object.Object {
			// milliseconds since the Unix epoch
			return &object.Number{Value: float64(time.Now().UnixMilli())}
		},
	})

	env.Define("sleep", &object.Native{
		Name:    "sleep",
		NumArgs: 1,
		Fn: func(args ...object.Object) object.Object {
			ms, ok := args[0].(*object.Number)
			if !ok {
				return nativeError("sleep expects a number of milliseconds, got %s", object.TypeName(args[0]))
			}
			time.Sleep(time.Duration(ms.Value * float64(time.Millisecond)))
			return object.NIL
		},
	})

	registerDBNatives(env)
}

// nativeError builds a runtime error with no position. applyFunction
// stamps the call site on it before the error propagates.
func nativeError(format string, a ...interface{}) *object.Error {
	return &object.Error{Message: fmt.Sprintf(format, a...)}
}
