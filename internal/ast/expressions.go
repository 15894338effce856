package ast

import (
	"bytes"
	"strings"

	"github.com/cnexans/culebra/internal/lexer"
)

// Identifier is a reference to a bound name.
type Identifier struct {
	Token lexer.Token
	Value string
}

func (i *Identifier) expressionNode()        {}
func (i *Identifier) TokenLiteral() string   { return i.Token.Literal }
func (i *Identifier) Pos() lexer.Position    { return i.Token.Pos }
func (i *Identifier) String() string         { return i.Value }

// IntegerLiteral is a 64-bit signed integer literal.
type IntegerLiteral struct {
	Token lexer.Token
	Value int64
}

func (il *IntegerLiteral) expressionNode()      {}
func (il *IntegerLiteral) TokenLiteral() string { return il.Token.Literal }
func (il *IntegerLiteral) Pos() lexer.Position  { return il.Token.Pos }
func (il *IntegerLiteral) String() string       { return il.Token.Literal }

// FloatLiteral is a 64-bit binary floating point literal.
type FloatLiteral struct {
	Token lexer.Token
	Value float64
}

func (fl *FloatLiteral) expressionNode()      {}
func (fl *FloatLiteral) TokenLiteral() string { return fl.Token.Literal }
func (fl *FloatLiteral) Pos() lexer.Position  { return fl.Token.Pos }
func (fl *FloatLiteral) String() string       { return fl.Token.Literal }

// StringLiteral is a double- or triple-quoted string literal. Value holds
// the already-unescaped contents.
type StringLiteral struct {
	Token lexer.Token
	Value string
}

func (sl *StringLiteral) expressionNode()      {}
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Literal }
func (sl *StringLiteral) Pos() lexer.Position  { return sl.Token.Pos }
func (sl *StringLiteral) String() string       { return "\"" + sl.Value + "\"" }

// BooleanLiteral is the `true`/`false` literal.
type BooleanLiteral struct {
	Token lexer.Token
	Value bool
}

func (bl *BooleanLiteral) expressionNode()      {}
func (bl *BooleanLiteral) TokenLiteral() string { return bl.Token.Literal }
func (bl *BooleanLiteral) Pos() lexer.Position  { return bl.Token.Pos }
func (bl *BooleanLiteral) String() string       { return bl.Token.Literal }

// UnaryExpression is a prefix operator applied to a single operand: `-x`,
// `not x`.
type UnaryExpression struct {
	Token    lexer.Token
	Operator string
	Operand  Expression
}

func (ue *UnaryExpression) expressionNode()      {}
func (ue *UnaryExpression) TokenLiteral() string { return ue.Token.Literal }
func (ue *UnaryExpression) Pos() lexer.Position  { return ue.Token.Pos }
func (ue *UnaryExpression) String() string {
	return "(" + ue.Operator + " " + ue.Operand.String() + ")"
}

// BinaryExpression is an arithmetic, comparison, or logical infix operator
// applied to two operands.
type BinaryExpression struct {
	Token    lexer.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (be *BinaryExpression) expressionNode()      {}
func (be *BinaryExpression) TokenLiteral() string { return be.Token.Literal }
func (be *BinaryExpression) Pos() lexer.Position  { return be.Token.Pos }
func (be *BinaryExpression) String() string {
	return "(" + be.Left.String() + " " + be.Operator + " " + be.Right.String() + ")"
}

// GroupingExpression is a parenthesized single expression, kept as a
// distinct node only so source-faithful re-printing is possible; evaluation
// and emission both unwrap it transparently.
type GroupingExpression struct {
	Token lexer.Token
	Inner Expression
}

func (ge *GroupingExpression) expressionNode()      {}
func (ge *GroupingExpression) TokenLiteral() string { return ge.Token.Literal }
func (ge *GroupingExpression) Pos() lexer.Position  { return ge.Token.Pos }
func (ge *GroupingExpression) String() string       { return "(" + ge.Inner.String() + ")" }

// ArrayLiteral is `[e1, e2, ...]`.
type ArrayLiteral struct {
	Token    lexer.Token
	Elements []Expression
}

func (al *ArrayLiteral) expressionNode()      {}
func (al *ArrayLiteral) TokenLiteral() string { return al.Token.Literal }
func (al *ArrayLiteral) Pos() lexer.Position  { return al.Token.Pos }
func (al *ArrayLiteral) String() string {
	parts := make([]string, len(al.Elements))
	for i, e := range al.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// MapPair is one `key: value` entry of a MapLiteral.
type MapPair struct {
	Key   Expression
	Value Expression
}

// MapLiteral is `{k1: v1, k2: v2, ...}`.
type MapLiteral struct {
	Token lexer.Token
	Pairs []MapPair
}

func (ml *MapLiteral) expressionNode()      {}
func (ml *MapLiteral) TokenLiteral() string { return ml.Token.Literal }
func (ml *MapLiteral) Pos() lexer.Position  { return ml.Token.Pos }
func (ml *MapLiteral) String() string {
	parts := make([]string, len(ml.Pairs))
	for i, p := range ml.Pairs {
		parts[i] = p.Key.String() + ": " + p.Value.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// SetLiteral is `{e1, e2, ...}`.
type SetLiteral struct {
	Token    lexer.Token
	Elements []Expression
}

func (sl *SetLiteral) expressionNode()      {}
func (sl *SetLiteral) TokenLiteral() string { return sl.Token.Literal }
func (sl *SetLiteral) Pos() lexer.Position  { return sl.Token.Pos }
func (sl *SetLiteral) String() string {
	parts := make([]string, len(sl.Elements))
	for i, e := range sl.Elements {
		parts[i] = e.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// TupleLiteral is `(e1, e2, ...)` with at least two elements.
type TupleLiteral struct {
	Token    lexer.Token
	Elements []Expression
}

func (tl *TupleLiteral) expressionNode()      {}
func (tl *TupleLiteral) TokenLiteral() string { return tl.Token.Literal }
func (tl *TupleLiteral) Pos() lexer.Position  { return tl.Token.Pos }
func (tl *TupleLiteral) String() string {
	parts := make([]string, len(tl.Elements))
	for i, e := range tl.Elements {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// IndexExpression is `e[i]`.
type IndexExpression struct {
	Token lexer.Token
	Left  Expression
	Index Expression
}

func (ie *IndexExpression) expressionNode()      {}
func (ie *IndexExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *IndexExpression) Pos() lexer.Position  { return ie.Token.Pos }
func (ie *IndexExpression) String() string {
	return ie.Left.String() + "[" + ie.Index.String() + "]"
}

// DotExpression is `e.name`: a method reference, only meaningful as the
// callee of a CallExpression.
type DotExpression struct {
	Token  lexer.Token
	Object Expression
	Name   string
}

func (de *DotExpression) expressionNode()      {}
func (de *DotExpression) TokenLiteral() string { return de.Token.Literal }
func (de *DotExpression) Pos() lexer.Position  { return de.Token.Pos }
func (de *DotExpression) String() string       { return de.Object.String() + "." + de.Name }

// CallExpression is `callee(args...)`.
type CallExpression struct {
	Token    lexer.Token
	Callee   Expression
	Args     []Expression
}

func (ce *CallExpression) expressionNode()      {}
func (ce *CallExpression) TokenLiteral() string { return ce.Token.Literal }
func (ce *CallExpression) Pos() lexer.Position  { return ce.Token.Pos }
func (ce *CallExpression) String() string {
	var out bytes.Buffer
	parts := make([]string, len(ce.Args))
	for i, a := range ce.Args {
		parts[i] = a.String()
	}
	out.WriteString(ce.Callee.String())
	out.WriteString("(")
	out.WriteString(strings.Join(parts, ", "))
	out.WriteString(")")
	return out.String()
}
