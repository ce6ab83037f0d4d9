// Package runner drives the scan, parse, resolve, evaluate pipeline
// against a persistent interpreter.
package runner

import (
	"fmt"
	"io"
	"log/slog"

	"lux/internal/evaluator"
	"lux/internal/lexer"
	"lux/internal/object"
	"lux/internal/parser"
	"lux/internal/resolver"
	"lux/internal/token"
)

// Run executes source against interp. Diagnostics from the parser and
// resolver are written to errw with source line numbers and abort the run
// before any code executes; runtime errors come back as the *object.Error
// result. ok reports whether the source compiled cleanly.
func Run(source string, interp *evaluator.Interpreter, errw io.Writer) (object.Object, bool) {
	lines := token.NewLineOffsets(source)

	tokens := lexer.Scan(source)
	slog.Debug("scanned source", "tokens", len(tokens))

	p := parser.New(tokens)
	program := p.ParseProgram()

	diagnostics := p.Diagnostics()
	if len(diagnostics) == 0 {
		r := resolver.New(interp.Locals())
		diagnostics = r.Run(program)
	}

	if len(diagnostics) > 0 {
		for _, d := range diagnostics {
			fmt.Fprintf(errw, "Error: %s at %d\n", d.Message, lines.Line(d.Span.Start))
		}
		return nil, false
	}

	result := interp.Eval(program)
	if err, ok := result.(*object.Error); ok {
		fmt.Fprintf(errw, "runtime error: %s at %d\n", err.Message, lines.Line(err.Pos))
	}
	return result, true
}
