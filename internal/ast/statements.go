package ast

import (
	"bytes"
	"strings"

	"github.com/cnexans/culebra/internal/lexer"
)

// ExpressionStatement wraps an expression evaluated for its side effects.
type ExpressionStatement struct {
	Token      lexer.Token
	Expression Expression
}

func (es *ExpressionStatement) statementNode()      {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Token.Literal }
func (es *ExpressionStatement) Pos() lexer.Position  { return es.Token.Pos }
func (es *ExpressionStatement) String() string {
	if es.Expression != nil {
		return es.Expression.String()
	}
	return ""
}

// AssignmentStatement is `target = value`, where target is an identifier
// or an index expression (`e[i]`).
type AssignmentStatement struct {
	Token  lexer.Token
	Target Expression
	Value  Expression
}

func (as *AssignmentStatement) statementNode()      {}
func (as *AssignmentStatement) TokenLiteral() string { return as.Token.Literal }
func (as *AssignmentStatement) Pos() lexer.Position  { return as.Token.Pos }
func (as *AssignmentStatement) String() string {
	return as.Target.String() + " = " + as.Value.String()
}

// BlockStatement is an ordered sequence of statements produced by an
// INDENT ... DEDENT pair.
type BlockStatement struct {
	Token      lexer.Token
	Statements []Statement
}

func (bs *BlockStatement) statementNode()      {}
func (bs *BlockStatement) TokenLiteral() string { return bs.Token.Literal }
func (bs *BlockStatement) Pos() lexer.Position  { return bs.Token.Pos }
func (bs *BlockStatement) String() string {
	var out bytes.Buffer
	for _, s := range bs.Statements {
		out.WriteString("    ")
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

// IfStatement is an if / elif* / else chain. Conditions[0]/Blocks[0] is the
// `if` branch; subsequent pairs are `elif` branches; Else is the optional
// trailing `else` block.
type IfStatement struct {
	Token      lexer.Token
	Conditions []Expression
	Blocks     []*BlockStatement
	Else       *BlockStatement
}

func (is *IfStatement) statementNode()      {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Literal }
func (is *IfStatement) Pos() lexer.Position  { return is.Token.Pos }
func (is *IfStatement) String() string {
	var out bytes.Buffer
	for i, cond := range is.Conditions {
		if i == 0 {
			out.WriteString("if " + cond.String() + ":\n")
		} else {
			out.WriteString("elif " + cond.String() + ":\n")
		}
		out.WriteString(is.Blocks[i].String())
	}
	if is.Else != nil {
		out.WriteString("else:\n")
		out.WriteString(is.Else.String())
	}
	return out.String()
}

// WhileStatement is `while cond: body`.
type WhileStatement struct {
	Token     lexer.Token
	Condition Expression
	Body      *BlockStatement
}

func (ws *WhileStatement) statementNode()      {}
func (ws *WhileStatement) TokenLiteral() string { return ws.Token.Literal }
func (ws *WhileStatement) Pos() lexer.Position  { return ws.Token.Pos }
func (ws *WhileStatement) String() string {
	return "while " + ws.Condition.String() + ":\n" + ws.Body.String()
}

// ForStatement is the C-style triple-clause loop `for init; cond; step: body`.
type ForStatement struct {
	Token     lexer.Token
	Init      Statement
	Condition Expression
	Step      Statement
	Body      *BlockStatement
}

func (fs *ForStatement) statementNode()      {}
func (fs *ForStatement) TokenLiteral() string { return fs.Token.Literal }
func (fs *ForStatement) Pos() lexer.Position  { return fs.Token.Pos }
func (fs *ForStatement) String() string {
	var out bytes.Buffer
	out.WriteString("for ")
	if fs.Init != nil {
		out.WriteString(fs.Init.String())
	}
	out.WriteString("; " + fs.Condition.String() + "; ")
	if fs.Step != nil {
		out.WriteString(fs.Step.String())
	}
	out.WriteString(":\n")
	out.WriteString(fs.Body.String())
	return out.String()
}

// FunctionDef declares a named function with positional parameters.
type FunctionDef struct {
	Token  lexer.Token
	Name   string
	Params []string
	Body   *BlockStatement
}

func (fd *FunctionDef) statementNode()      {}
func (fd *FunctionDef) TokenLiteral() string { return fd.Token.Literal }
func (fd *FunctionDef) Pos() lexer.Position  { return fd.Token.Pos }
func (fd *FunctionDef) String() string {
	return "def " + fd.Name + "(" + strings.Join(fd.Params, ", ") + "):\n" + fd.Body.String()
}

// ReturnStatement is `return` or `return expr`.
type ReturnStatement struct {
	Token lexer.Token
	Value Expression
}

func (rs *ReturnStatement) statementNode()      {}
func (rs *ReturnStatement) TokenLiteral() string { return rs.Token.Literal }
func (rs *ReturnStatement) Pos() lexer.Position  { return rs.Token.Pos }
func (rs *ReturnStatement) String() string {
	if rs.Value != nil {
		return "return " + rs.Value.String()
	}
	return "return"
}
