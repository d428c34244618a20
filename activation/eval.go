package activation

import "github.com/sansecio/markerscan/ast"

// Env binds names to numeric values for Eval. Unknown names resolve to 0
// rather than erroring, treating an unbound reference as "not present".
type Env map[string]float64

// Eval evaluates expr against env. Any node kind Eval does not
// recognize — which should never happen for a tree produced by Parse,
// but guards against a future unexhaustive grammar change — makes the
// whole expression evaluate to false, per §4.5.
func Eval(expr ast.Expr, env Env) bool {
	return evalBool(expr, env)
}

func evalBool(e ast.Expr, env Env) bool {
	switch n := e.(type) {
	case ast.BoolLit:
		return n.Value
	case ast.IntLit:
		return n.Value != 0
	case ast.FloatLit:
		return n.Value != 0
	case ast.Ident:
		return env[n.Name] != 0
	case ast.NotExpr:
		return !evalBool(n.Inner, env)
	case ast.ParenExpr:
		return evalBool(n.Inner, env)
	case ast.BinaryExpr:
		switch n.Op {
		case "and":
			return evalBool(n.Left, env) && evalBool(n.Right, env)
		case "or":
			return evalBool(n.Left, env) || evalBool(n.Right, env)
		default:
			return false
		}
	case ast.CompareChain:
		return evalChain(n, env)
	default:
		return false
	}
}

func evalNumeric(e ast.Expr, env Env) float64 {
	switch n := e.(type) {
	case ast.IntLit:
		return float64(n.Value)
	case ast.FloatLit:
		return n.Value
	case ast.BoolLit:
		if n.Value {
			return 1
		}
		return 0
	case ast.Ident:
		return env[n.Name]
	case ast.ParenExpr:
		return evalNumeric(n.Inner, env)
	default:
		return 0
	}
}

// evalChain evaluates a chained comparison left-associatively: "a < b <=
// c" short-circuits to false as soon as one link fails, matching §4.5's
// "a<b and b<=c" semantics without re-evaluating shared operands.
func evalChain(c ast.CompareChain, env Env) bool {
	for i, op := range c.Ops {
		l := evalNumeric(c.Operands[i], env)
		r := evalNumeric(c.Operands[i+1], env)
		if !compare(op, l, r) {
			return false
		}
	}
	return true
}

func compare(op string, l, r float64) bool {
	switch op {
	case "==":
		return l == r
	case "!=":
		return l != r
	case "<":
		return l < r
	case "<=":
		return l <= r
	case ">":
		return l > r
	case ">=":
		return l >= r
	default:
		return false
	}
}
