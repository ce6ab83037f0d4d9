package resolver

import (
	"fmt"
	"lux/internal/ast"
	"lux/internal/token"
)

// Resolver walks the program once before evaluation and records, for every
// identifier reference that names a local, how many environments out its
// binding lives. Depths are keyed by the referencing node itself, so two
// references to the same name resolve independently. Globals get no entry;
// the evaluator falls back to the global environment for them.
type Resolver struct {
	locals      map[ast.Expression]int
	scopes      []map[string]bool
	diagnostics []token.Diagnostic
}

// New returns a resolver writing depths into locals. Passing the
// interpreter's own table lets REPL inputs accumulate resolutions across
// lines.
func New(locals map[ast.Expression]int) *Resolver {
	return &Resolver{
		locals:      locals,
		scopes:      []map[string]bool{},
		diagnostics: []token.Diagnostic{},
	}
}

func (r *Resolver) Run(program *ast.Program) []token.Diagnostic {
	r.resolveStatements(program.Statements)
	return r.diagnostics
}

func (r *Resolver) resolveStatements(stmts []ast.Statement) {
	for _, stmt := range stmts {
		r.resolveStatement(stmt)
	}
}

func (r *Resolver) resolveStatement(stmt ast.Statement) {
	switch stmt := stmt.(type) {
	case *ast.BlockStatement:
		r.beginScope()
		r.resolveStatements(stmt.Statements)
		r.endScope()
	case *ast.VarStatement:
		r.declare(stmt.Name.Value)
		r.resolveExpression(stmt.Value)
		r.define(stmt.Name.Value)
	case *ast.FunctionStatement:
		// the name is defined before the body resolves, so the body may
		// call the function recursively
		r.declare(stmt.Name.Value)
		r.define(stmt.Name.Value)
		r.beginScope()
		for _, param := range stmt.Parameters {
			r.declare(param.Value)
			r.define(param.Value)
		}
		r.resolveStatement(stmt.Body)
		r.endScope()
	case *ast.ExpressionStatement:
		r.resolveExpression(stmt.Expression)
	case *ast.PrintStatement:
		r.resolveExpression(stmt.Value)
	case *ast.ReturnStatement:
		r.resolveExpression(stmt.ReturnValue)
	case *ast.IfStatement:
		r.resolveExpression(stmt.Condition)
		r.resolveStatement(stmt.ThenBranch)
		if stmt.ElseBranch != nil {
			r.resolveStatement(stmt.ElseBranch)
		}
	case *ast.WhileStatement:
		r.resolveExpression(stmt.Condition)
		r.resolveStatement(stmt.Body)
	}
}

func (r *Resolver) resolveExpression(expr ast.Expression) {
	switch expr := expr.(type) {
	case *ast.Identifier:
		if len(r.scopes) > 0 {
			if defined, declared := r.scopes[len(r.scopes)-1][expr.Value]; declared && !defined {
				r.diagnostics = append(r.diagnostics, token.Diagnostic{
					Message: fmt.Sprintf("can't read local variable %q in its own initializer", expr.Value),
					Span:    expr.Token.Span(),
				})
			}
		}
		r.resolveLocal(expr, expr.Value)
	case *ast.AssignExpression:
		r.resolveExpression(expr.Value)
		r.resolveLocal(expr, expr.Name.Value)
	case *ast.CallExpression:
		r.resolveExpression(expr.Callee)
		for _, arg := range expr.Arguments {
			r.resolveExpression(arg)
		}
	case *ast.Grouping:
		r.resolveExpression(expr.Expression)
	case *ast.PrefixExpression:
		r.resolveExpression(expr.Right)
	case *ast.InfixExpression:
		r.resolveExpression(expr.Left)
		r.resolveExpression(expr.Right)
	case *ast.LogicalExpression:
		r.resolveExpression(expr.Left)
		r.resolveExpression(expr.Right)
	}
}

// resolveLocal records the hop count from the innermost scope to the one
// declaring name. Unfound names are assumed global and left unrecorded.
func (r *Resolver) resolveLocal(expr ast.Expression, name string) {
	for depth := 0; depth < len(r.scopes); depth++ {
		scope := r.scopes[len(r.scopes)-1-depth]
		if _, ok := scope[name]; ok {
			r.locals[expr] = depth
			return
		}
	}
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, map[string]bool{})
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

// declare marks name as existing but not yet initialized in the current
// scope. Globals are not tracked.
func (r *Resolver) declare(name string) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name] = false
}

func (r *Resolver) define(name string) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name] = true
}
