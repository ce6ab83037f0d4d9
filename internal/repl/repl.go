package repl

import (
	"bufio"
	"fmt"
	"io"

	"lux/internal/evaluator"
	"lux/internal/object"
	"lux/internal/runner"
)

const PROMPT = ">> "

// Start reads lines from in and evaluates each one against a single
// interpreter, so definitions and globals persist across lines. The value
// of the last expression is echoed back unless it is nil.
func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	interp := evaluator.New()
	interp.Out = out

	for {
		fmt.Fprint(out, PROMPT)
		scanned := scanner.Scan()
		if !scanned {
			return
		}

		line := scanner.Text()
		result, ok := runner.Run(line, interp, out)
		if !ok {
			continue
		}

		if result != nil && result != object.NIL {
			if _, isErr := result.(*object.Error); !isErr {
				io.WriteString(out, result.Inspect())
				io.WriteString(out, "\n")
			}
		}
	}
}
