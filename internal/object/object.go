package object

import (
	"bytes"
	"fmt"
	"lux/internal/ast"
	"strconv"
	"strings"
)

const (
	NIL_OBJ     = "NIL"
	BOOLEAN_OBJ = "BOOLEAN"
	NUMBER_OBJ  = "NUMBER"
	STRING_OBJ  = "STRING"

	FUNCTION_OBJ = "FUNCTION"
	NATIVE_OBJ   = "NATIVE"

	RETURN_VALUE_OBJ = "RETURN_VALUE"
	ERROR_OBJ        = "ERROR"
)

var (
	NIL   = &Nil{}
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
)

type ObjectType string

type Object interface {
	Type() ObjectType
	Inspect() string
}

// Callable is the capability shared by user functions and natives. The
// evaluator checks arity before dispatching; Arity is exact, there are no
// variadics or defaults.
type Callable interface {
	Object
	Arity() int
}

type Nil struct{}

func (n *Nil) Type() ObjectType { return NIL_OBJ }
func (n *Nil) Inspect() string  { return "nil" }

type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string  { return fmt.Sprintf("%t", b.Value) }

type Number struct {
	Value float64
}

func (n *Number) Type() ObjectType { return NUMBER_OBJ }

// Inspect prints integral numbers without a fractional part: 2, not 2.0.
func (n *Number) Inspect() string {
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}

type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return s.Value }

type Function struct {
	Name       string
	Parameters []*ast.Identifier
	Body       *ast.BlockStatement
	Env        *Environment // the frame current at the declaration site
}

func (f *Function) Type() ObjectType { return FUNCTION_OBJ }
func (f *Function) Arity() int       { return len(f.Parameters) }
func (f *Function) Inspect() string {
	var out bytes.Buffer

	params := []string{}
	for _, p := range f.Parameters {
		params = append(params, p.String())
	}

	out.WriteString("<fun ")
	out.WriteString(f.Name)
	out.WriteString("(")
	out.WriteString(strings.Join(params, ", "))
	out.WriteString(")>")

	return out.String()
}

type NativeFn func(args ...Object) Object

// Native is a function provided by the host. Used by the standard library.
type Native struct {
	Name    string
	NumArgs int
	Fn      NativeFn
}

func (n *Native) Type() ObjectType { return NATIVE_OBJ }
func (n *Native) Arity() int       { return n.NumArgs }
func (n *Native) Inspect() string  { return "<fun (native) " + n.Name + ">" }

// ReturnValue carries a `return` up to the nearest call boundary. It is an
// internal signal, distinct from Error so that tests and the evaluator can
// tell "the function is returning" from "something went wrong".
type ReturnValue struct {
	Value Object
}

func (rv *ReturnValue) Type() ObjectType { return RETURN_VALUE_OBJ }
func (rv *ReturnValue) Inspect() string  { return rv.Value.Inspect() }

// Error is a runtime error. Pos is the byte offset of the token that
// raised it, so the runner can report a source line alongside the message.
type Error struct {
	Message string
	Pos     int
}

func (e *Error) Type() ObjectType { return ERROR_OBJ }
func (e *Error) Inspect() string  { return "runtime error: " + e.Message }

// TypeName is the user-facing name of a value's type, as it appears in
// runtime error messages.
func TypeName(obj Object) string {
	switch obj.Type() {
	case NIL_OBJ:
		return "nil"
	case BOOLEAN_OBJ:
		return "boolean"
	case NUMBER_OBJ:
		return "number"
	case STRING_OBJ:
		return "string"
	case FUNCTION_OBJ, NATIVE_OBJ:
		return "callable"
	default:
		return strings.ToLower(string(obj.Type()))
	}
}

// Equals implements the language's `==`. Scalars compare structurally,
// with no coercion across types; callables compare by identity.
func Equals(a, b Object) bool {
	switch a := a.(type) {
	case *Nil:
		_, ok := b.(*Nil)
		return ok
	case *Boolean:
		other, ok := b.(*Boolean)
		return ok && a.Value == other.Value
	case *Number:
		other, ok := b.(*Number)
		return ok && a.Value == other.Value
	case *String:
		other, ok := b.(*String)
		return ok && a.Value == other.Value
	default:
		return a == b
	}
}
