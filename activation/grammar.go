package activation

// Grammar structs for the participle parser: a struct-tag grammar
// describing a small activation-expression language — literals, names,
// chainable comparisons, and and/or/not/parens.

// orExpr is the top of the grammar: a chain of andExpr joined by "or".
type orExpr struct {
	Left *andExpr   `parser:"@@"`
	Rest []*andExpr `parser:"( 'or' @@ )*"`
}

// andExpr is a chain of unaryExpr joined by "and".
type andExpr struct {
	Left *unaryExpr   `parser:"@@"`
	Rest []*unaryExpr `parser:"( 'and' @@ )*"`
}

// unaryExpr is an optionally negated comparison.
type unaryExpr struct {
	Not     bool         `parser:"( @'not' )?"`
	Compare *compareExpr `parser:"@@"`
}

// compareExpr is an operand optionally followed by a chain of
// "op operand" pairs, e.g. "a < b <= c".
type compareExpr struct {
	Left *operand     `parser:"@@"`
	Ops  []*opOperand `parser:"@@*"`
}

type opOperand struct {
	Op      string   `parser:"@Op"`
	Operand *operand `parser:"@@"`
}

// operand is a literal, a name, or a parenthesized sub-expression.
type operand struct {
	Paren *orExpr  `parser:"  '(' @@ ')'"`
	Float *float64 `parser:"| @Float"`
	Int   *int64   `parser:"| @Int"`
	Bool  *string  `parser:"| @( 'true' | 'false' )"`
	Ident *string  `parser:"| @Ident"`
}
