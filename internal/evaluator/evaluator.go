package evaluator

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"lux/internal/ast"
	"lux/internal/object"
)

// Interpreter evaluates a resolved program. Runtime errors and return
// values travel through Eval as ordinary objects; callers check for
// *object.Error, and applyFunction unwraps *object.ReturnValue at the
// call boundary.
type Interpreter struct {
	globals *object.Environment
	env     *object.Environment
	locals  map[ast.Expression]int

	// Out receives print output. Defaults to os.Stdout.
	Out io.Writer
}

func New() *Interpreter {
	globals := object.NewEnvironment()
	i := &Interpreter{
		globals: globals,
		env:     globals,
		locals:  make(map[ast.Expression]int),
		Out:     os.Stdout,
	}
	registerNatives(globals)
	return i
}

// Locals exposes the resolution table so the resolver can write depths
// into it. Entries accumulate across REPL lines.
func (i *Interpreter) Locals() map[ast.Expression]int {
	return i.locals
}

func (i *Interpreter) Eval(node ast.Node) object.Object {
	switch node := node.(type) {

	// Statements
	case *ast.Program:
		return i.evalProgram(node)

	case *ast.VarStatement:
		val := i.Eval(node.Value)
		if isError(val) {
			return val
		}
		i.env.Define(node.Name.Value, val)
		return object.NIL

	case *ast.FunctionStatement:
		fn := &object.Function{
			Name:       node.Name.Value,
			Parameters: node.Parameters,
			Body:       node.Body,
			Env:        i.env,
		}
		i.env.Define(node.Name.Value, fn)
		return object.NIL

	case *ast.ReturnStatement:
		val := i.Eval(node.ReturnValue)
		if isError(val) {
			return val
		}
		return &object.ReturnValue{Value: val}

	case *ast.PrintStatement:
		val := i.Eval(node.Value)
		if isError(val) {
			return val
		}
		fmt.Fprintln(i.Out, val.Inspect())
		return object.NIL

	case *ast.ExpressionStatement:
		return i.Eval(node.Expression)

	case *ast.BlockStatement:
		return i.evalBlockStatement(node)

	case *ast.IfStatement:
		return i.evalIfStatement(node)

	case *ast.WhileStatement:
		return i.evalWhileStatement(node)

	// Expressions
	case *ast.NumberLiteral:
		return &object.Number{Value: node.Value}

	case *ast.StringLiteral:
		return &object.String{Value: node.Value}

	case *ast.Boolean:
		return nativeBoolToBooleanObject(node.Value)

	case *ast.Nil:
		return object.NIL

	case *ast.Identifier:
		return i.lookupVariable(node)

	case *ast.Grouping:
		return i.Eval(node.Expression)

	case *ast.PrefixExpression:
		right := i.Eval(node.Right)
		if isError(right) {
			return right
		}
		return i.evalPrefixExpression(node, right)

	case *ast.InfixExpression:
		left := i.Eval(node.Left)
		if isError(left) {
			return left
		}
		right := i.Eval(node.Right)
		if isError(right) {
			return right
		}
		return i.evalInfixExpression(node, left, right)

	case *ast.LogicalExpression:
		return i.evalLogicalExpression(node)

	case *ast.AssignExpression:
		return i.evalAssignExpression(node)

	case *ast.CallExpression:
		return i.evalCallExpression(node)
	}

	return object.NIL
}

func (i *Interpreter) evalProgram(program *ast.Program) object.Object {
	var result object.Object = object.NIL

	for _, statement := range program.Statements {
		result = i.Eval(statement)

		switch result := result.(type) {
		case *object.ReturnValue:
			return result.Value
		case *object.Error:
			return result
		}
	}

	return result
}

func (i *Interpreter) evalBlockStatement(block *ast.BlockStatement) object.Object {
	var result object.Object = object.NIL

	prev := i.env
	i.env = object.NewEnclosedEnvironment(prev)
	defer func() { i.env = prev }()

	for _, statement := range block.Statements {
		result = i.Eval(statement)

		if result != nil {
			rt := result.Type()
			if rt == object.RETURN_VALUE_OBJ || rt == object.ERROR_OBJ {
				return result
			}
		}
	}

	return result
}

func (i *Interpreter) evalIfStatement(stmt *ast.IfStatement) object.Object {
	condition := i.Eval(stmt.Condition)
	if isError(condition) {
		return condition
	}

	if isTruthy(condition) {
		return i.Eval(stmt.ThenBranch)
	} else if stmt.ElseBranch != nil {
		return i.Eval(stmt.ElseBranch)
	}
	return object.NIL
}

func (i *Interpreter) evalWhileStatement(stmt *ast.WhileStatement) object.Object {
	for {
		condition := i.Eval(stmt.Condition)
		if isError(condition) {
			return condition
		}
		if !isTruthy(condition) {
			return object.NIL
		}

		result := i.Eval(stmt.Body)
		if result != nil {
			rt := result.Type()
			if rt == object.RETURN_VALUE_OBJ || rt == object.ERROR_OBJ {
				return result
			}
		}
	}
}

// lookupVariable reads through the resolved depth when the reference was
// resolved to a local, and falls back to the global environment otherwise.
func (i *Interpreter) lookupVariable(node *ast.Identifier) object.Object {
	if depth, ok := i.locals[node]; ok {
		if val, ok := i.env.GetAt(node.Value, depth); ok {
			return val
		}
	} else if val, ok := i.globals.Get(node.Value); ok {
		return val
	}
	return newError(node.Token.Start, "undefined variable %q", node.Value)
}

func (i *Interpreter) evalPrefixExpression(node *ast.PrefixExpression, right object.Object) object.Object {
	switch node.Operator {
	case "!":
		return nativeBoolToBooleanObject(!isTruthy(right))
	case "-":
		num, ok := right.(*object.Number)
		if !ok {
			return newError(node.Token.Start, "operand must be a number, got %s", object.TypeName(right))
		}
		return &object.Number{Value: -num.Value}
	default:
		return newError(node.Token.Start, "unknown operator: %s%s", node.Operator, object.TypeName(right))
	}
}

func (i *Interpreter) evalInfixExpression(node *ast.InfixExpression, left, right object.Object) object.Object {
	op := node.Operator
	pos := node.Token.Start

	switch op {
	case "==":
		return nativeBoolToBooleanObject(object.Equals(left, right))
	case "!=":
		return nativeBoolToBooleanObject(!object.Equals(left, right))
	}

	if op == "+" {
		if l, ok := left.(*object.String); ok {
			if r, ok := right.(*object.String); ok {
				return &object.String{Value: l.Value + r.Value}
			}
		}
		if l, ok := left.(*object.Number); ok {
			if r, ok := right.(*object.Number); ok {
				return &object.Number{Value: l.Value + r.Value}
			}
		}
		return newError(pos, "operands must be two numbers or two strings, got %s and %s",
			object.TypeName(left), object.TypeName(right))
	}

	l, lok := left.(*object.Number)
	r, rok := right.(*object.Number)
	if !lok || !rok {
		return newError(pos, "operands must be numbers, got %s and %s",
			object.TypeName(left), object.TypeName(right))
	}

	switch op {
	case "-":
		return &object.Number{Value: l.Value - r.Value}
	case "*":
		return &object.Number{Value: l.Value * r.Value}
	case "/":
		if r.Value == 0 {
			return newError(pos, "division by zero")
		}
		return &object.Number{Value: l.Value / r.Value}
	case "<":
		return nativeBoolToBooleanObject(l.Value < r.Value)
	case "<=":
		return nativeBoolToBooleanObject(l.Value <= r.Value)
	case ">":
		return nativeBoolToBooleanObject(l.Value > r.Value)
	case ">=":
		return nativeBoolToBooleanObject(l.Value >= r.Value)
	default:
		return newError(pos, "unknown operator: %s", op)
	}
}

// evalLogicalExpression short-circuits and yields the deciding operand
// itself, not a coerced boolean.
func (i *Interpreter) evalLogicalExpression(node *ast.LogicalExpression) object.Object {
	left := i.Eval(node.Left)
	if isError(left) {
		return left
	}

	if node.Operator == "or" {
		if isTruthy(left) {
			return left
		}
	} else {
		if !isTruthy(left) {
			return left
		}
	}

	return i.Eval(node.Right)
}

func (i *Interpreter) evalAssignExpression(node *ast.AssignExpression) object.Object {
	val := i.Eval(node.Value)
	if isError(val) {
		return val
	}

	if depth, ok := i.locals[node]; ok {
		if i.env.AssignAt(node.Name.Value, val, depth) {
			return val
		}
	} else if i.globals.Assign(node.Name.Value, val) {
		return val
	}
	return newError(node.Name.Token.Start, "undefined variable %q", node.Name.Value)
}

func (i *Interpreter) evalCallExpression(node *ast.CallExpression) object.Object {
	callee := i.Eval(node.Callee)
	if isError(callee) {
		return callee
	}

	args := make([]object.Object, 0, len(node.Arguments))
	for _, argument := range node.Arguments {
		arg := i.Eval(argument)
		if isError(arg) {
			return arg
		}
		args = append(args, arg)
	}

	return i.applyFunction(callee, args, node.Token.Start)
}

func (i *Interpreter) applyFunction(callee object.Object, args []object.Object, pos int) object.Object {
	fn, ok := callee.(object.Callable)
	if !ok {
		return newError(pos, "can only call functions, got %s", object.TypeName(callee))
	}
	if len(args) != fn.Arity() {
		return newError(pos, "expected %d arguments but got %d", fn.Arity(), len(args))
	}

	switch fn := fn.(type) {
	case *object.Function:
		slog.Debug("calling function", slog.String("name", fn.Name), slog.Int("args", len(args)))
		prev := i.env
		i.env = extendFunctionEnv(fn, args)
		result := i.Eval(fn.Body)
		i.env = prev

		if returnValue, ok := result.(*object.ReturnValue); ok {
			return returnValue.Value
		}
		if isError(result) {
			return result
		}
		// functions without an explicit return yield nil
		return object.NIL

	case *object.Native:
		result := fn.Fn(args...)
		if err, ok := result.(*object.Error); ok && err.Pos == 0 {
			err.Pos = pos
		}
		return result

	default:
		return newError(pos, "can only call functions, got %s", object.TypeName(callee))
	}
}

// extendFunctionEnv grows the function's defining environment, not the
// caller's, so closures see the variables captured at declaration.
func extendFunctionEnv(fn *object.Function, args []object.Object) *object.Environment {
	env := object.NewEnclosedEnvironment(fn.Env)

	for paramIdx, param := range fn.Parameters {
		env.Define(param.Value, args[paramIdx])
	}

	return env
}

// isTruthy treats only nil and false as falsy. Zero and the empty string
// are truthy.
func isTruthy(obj object.Object) bool {
	switch obj {
	case object.NIL:
		return false
	case object.FALSE:
		return false
	default:
		return true
	}
}

func nativeBoolToBooleanObject(input bool) *object.Boolean {
	if input {
		return object.TRUE
	}
	return object.FALSE
}

func newError(pos int, format string, a ...interface{}) *object.Error {
	return &object.Error{Message: fmt.Sprintf(format, a...), Pos: pos}
}

func isError(obj object.Object) bool {
	if obj != nil {
		return obj.Type() == object.ERROR_OBJ
	}
	return false
}
