// Package activation parses and safely evaluates the boolean/comparison
// activation-expression language used by composed markers' activation
// clauses and promotion rules' guards. It is built on
// github.com/alecthomas/participle/v2 rather than a goyacc-generated
// parser, since participle needs no code-generation step: a struct-tag
// grammar is built once at package init and reused for every Parse
// call, the same "build once, parse many" shape a compiled pattern set
// uses for regexes.
//
// The grammar is deliberately tiny and closed: literals, names,
// chainable comparisons, and/or/not, and parens (see grammar.go). There
// is no function-call, arithmetic, or attribute syntax, so there is no
// arbitrary-evaluation surface to escape.
package activation

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/sansecio/markerscan/ast"
)

var exprLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Float", Pattern: `\d+\.\d+`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "Op", Pattern: `==|!=|<=|>=|<|>`},
	{Name: "Punct", Pattern: `[()]`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var exprParser = participle.MustBuild[orExpr](
	participle.Lexer(exprLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// Parse parses an activation/guard expression into an AST. An empty or
// all-whitespace expression parses to a literal true, per §4.5. A parse
// failure returns a non-nil error; callers evaluating activation or
// promotion guards should treat that as "always false" and log an
// ActivationEvalWarning rather than propagate the error.
func Parse(expr string) (ast.Expr, error) {
	trimmed := strings.TrimSpace(expr)
	if trimmed == "" {
		return ast.BoolLit{Value: true}, nil
	}

	tree, err := exprParser.ParseString("", normalize(trimmed))
	if err != nil {
		return nil, fmt.Errorf("activation: parse %q: %w", expr, err)
	}
	return convertOr(tree), nil
}

// normalize rewrites the && and || aliases to their "and"/"or" spellings
// before the grammar ever sees them, per §4.5.
func normalize(s string) string {
	s = strings.ReplaceAll(s, "&&", " and ")
	s = strings.ReplaceAll(s, "||", " or ")
	return s
}

func convertOr(o *orExpr) ast.Expr {
	expr := convertAnd(o.Left)
	for _, r := range o.Rest {
		expr = ast.BinaryExpr{Op: "or", Left: expr, Right: convertAnd(r)}
	}
	return expr
}

func convertAnd(a *andExpr) ast.Expr {
	expr := convertUnary(a.Left)
	for _, r := range a.Rest {
		expr = ast.BinaryExpr{Op: "and", Left: expr, Right: convertUnary(r)}
	}
	return expr
}

func convertUnary(u *unaryExpr) ast.Expr {
	inner := convertCompare(u.Compare)
	if u.Not {
		return ast.NotExpr{Inner: inner}
	}
	return inner
}

func convertCompare(c *compareExpr) ast.Expr {
	left := convertOperand(c.Left)
	if len(c.Ops) == 0 {
		return left
	}
	operands := make([]ast.Expr, 0, len(c.Ops)+1)
	ops := make([]string, 0, len(c.Ops))
	operands = append(operands, left)
	for _, o := range c.Ops {
		operands = append(operands, convertOperand(o.Operand))
		ops = append(ops, o.Op)
	}
	return ast.CompareChain{Operands: operands, Ops: ops}
}

func convertOperand(o *operand) ast.Expr {
	switch {
	case o.Paren != nil:
		return ast.ParenExpr{Inner: convertOr(o.Paren)}
	case o.Float != nil:
		return ast.FloatLit{Value: *o.Float}
	case o.Int != nil:
		return ast.IntLit{Value: *o.Int}
	case o.Bool != nil:
		return ast.BoolLit{Value: *o.Bool == "true"}
	case o.Ident != nil:
		return ast.Ident{Name: *o.Ident}
	default:
		return ast.BoolLit{Value: false}
	}
}
