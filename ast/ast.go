// Package ast defines the Abstract Syntax Tree for the activation
// expression mini-language evaluated by package activation. It uses a
// tagged-union shape: every node kind is its own type, and a switch
// over concrete types is exhaustive by convention rather than by an
// open interface method set.
package ast

// Expr is a node in an activation expression.
type Expr interface {
	exprNode()
}

// Ident is a bare name reference, e.g. a child marker id or
// total_children. Unknown names evaluate to 0 (see package activation).
type Ident struct {
	Name string
}

func (Ident) exprNode() {}

// IntLit is an integer literal.
type IntLit struct {
	Value int64
}

func (IntLit) exprNode() {}

// FloatLit is a floating point literal.
type FloatLit struct {
	Value float64
}

func (FloatLit) exprNode() {}

// BoolLit is a boolean literal.
type BoolLit struct {
	Value bool
}

func (BoolLit) exprNode() {}

// NotExpr negates its operand.
type NotExpr struct {
	Inner Expr
}

func (NotExpr) exprNode() {}

// BinaryExpr is "and" or "or" applied to two boolean operands.
type BinaryExpr struct {
	Op    string // "and" | "or"
	Left  Expr
	Right Expr
}

func (BinaryExpr) exprNode() {}

// ParenExpr is a parenthesized sub-expression.
type ParenExpr struct {
	Inner Expr
}

func (ParenExpr) exprNode() {}

// CompareChain represents a chain of comparisons such as "a < b <= c",
// which means "a < b and b <= c". Operands has len(Ops)+1 entries.
type CompareChain struct {
	Operands []Expr
	Ops      []string // ==, !=, <, <=, >, >=
}

func (CompareChain) exprNode() {}
