// Package parser implements Culebra's recursive-descent, precedence-climbing
// parser, turning a lexer.Token stream into an *ast.Program. Errors
// accumulate as *cerrors.CulebraError diagnostics rather than failing fast,
// with panic-mode synchronization to the next statement boundary after a
// syntax error.
package parser

import (
	"github.com/cnexans/culebra/internal/ast"
	"github.com/cnexans/culebra/internal/cerrors"
	"github.com/cnexans/culebra/internal/lexer"
)

// Parser consumes a materialized token slice and produces an *ast.Program.
type Parser struct {
	tokens []lexer.Token
	pos    int
	errors []*cerrors.CulebraError
	source string
	file   string
}

// New creates a Parser over the given source, running the lexer internally.
// Lexical errors are surfaced alongside parser errors via Errors().
func New(source string, file string) *Parser {
	l := lexer.New(source)
	toks, lexErrs := l.Tokenize()
	p := &Parser{tokens: toks, source: source, file: file}
	for _, le := range lexErrs {
		kind := cerrors.SyntaxError
		if le.Indentation {
			kind = cerrors.IndentationError
		}
		p.errors = append(p.errors, &cerrors.CulebraError{
			Kind:    kind,
			Message: le.Message,
			Pos:     cerrors.Position{Line: le.Pos.Line, Column: le.Pos.Column},
			Source:  source,
			File:    file,
		})
	}
	return p
}

// Errors returns all lexical and parse errors accumulated so far.
func (p *Parser) Errors() []*cerrors.CulebraError {
	return p.errors
}

func (p *Parser) cur() lexer.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekAt(n int) lexer.Token {
	idx := p.pos + n
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) advance() lexer.Token {
	tok := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) curIs(tt lexer.TokenType) bool {
	return p.cur().Type == tt
}

func (p *Parser) expect(tt lexer.TokenType) (lexer.Token, bool) {
	if p.curIs(tt) {
		return p.advance(), true
	}
	p.errorAt(p.cur(), "expected %s, got %s", tt, p.cur().Type)
	return p.cur(), false
}

func (p *Parser) errorAt(tok lexer.Token, format string, args ...interface{}) {
	p.errors = append(p.errors, cerrors.New(cerrors.SyntaxError,
		cerrors.Position{Line: tok.Pos.Line, Column: tok.Pos.Column}, format, args...))
	p.errors[len(p.errors)-1].Source = p.source
	p.errors[len(p.errors)-1].File = p.file
}

// skipNewlines consumes any run of blank NEWLINE tokens, used between
// top-level statements and at the top of blocks.
func (p *Parser) skipNewlines() {
	for p.curIs(lexer.NEWLINE) {
		p.advance()
	}
}

// synchronize implements panic-mode error recovery: after a syntax error it
// discards tokens up to the next NEWLINE/DEDENT/EOF so later statements can
// still be parsed and reported.
func (p *Parser) synchronize() {
	for !p.curIs(lexer.NEWLINE) && !p.curIs(lexer.DEDENT) && !p.curIs(lexer.EOF) {
		p.advance()
	}
	if p.curIs(lexer.NEWLINE) {
		p.advance()
	}
}

// ParseProgram parses the full token stream into an *ast.Program. Parsing
// never aborts early; all statements are attempted and every syntax error
// is recorded via Errors(). A caller that wants fail-fast behavior can
// still stop at the first accumulated error itself.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}
	p.skipNewlines()
	for !p.curIs(lexer.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.skipNewlines()
	}
	return program
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur().Type {
	case lexer.IF:
		return p.parseIfStatement()
	case lexer.WHILE:
		return p.parseWhileStatement()
	case lexer.FOR:
		return p.parseForStatement()
	case lexer.DEF:
		return p.parseFunctionDef()
	case lexer.RETURN:
		return p.parseReturnStatement()
	default:
		return p.parseSimpleStatementLine()
	}
}

// parseSimpleStatementLine parses an assignment or expression statement and
// consumes its terminating NEWLINE (tolerating EOF/DEDENT when the source's
// final line has no trailing newline).
func (p *Parser) parseSimpleStatementLine() ast.Statement {
	stmt := p.parseSimpleStatement()
	if stmt == nil {
		p.synchronize()
		return nil
	}
	if p.curIs(lexer.NEWLINE) {
		p.advance()
	} else if !p.curIs(lexer.EOF) && !p.curIs(lexer.DEDENT) {
		p.errorAt(p.cur(), "expected end of statement, got %s", p.cur().Type)
		p.synchronize()
	}
	return stmt
}

// parseSimpleStatement parses an assignment or expression statement without
// consuming a trailing terminator; used both at statement level and inside
// a for-loop's init/step clauses.
func (p *Parser) parseSimpleStatement() ast.Statement {
	startTok := p.cur()
	expr := p.parseExpression()
	if expr == nil {
		return nil
	}

	if p.curIs(lexer.ASSIGN) {
		if !isValidLValue(expr) {
			p.errorAt(startTok, "invalid assignment target")
			return nil
		}
		p.advance()
		value := p.parseExpression()
		if value == nil {
			return nil
		}
		return &ast.AssignmentStatement{Token: startTok, Target: expr, Value: value}
	}

	return &ast.ExpressionStatement{Token: startTok, Expression: expr}
}

func isValidLValue(expr ast.Expression) bool {
	switch expr.(type) {
	case *ast.Identifier, *ast.IndexExpression:
		return true
	default:
		return false
	}
}

// parseBlock parses `: NEWLINE INDENT stmts... DEDENT`.
func (p *Parser) parseBlock() *ast.BlockStatement {
	colonTok, ok := p.expect(lexer.COLON)
	if !ok {
		return &ast.BlockStatement{Token: colonTok}
	}
	if !p.curIs(lexer.NEWLINE) {
		p.errorAt(p.cur(), "expected newline after ':'")
		return &ast.BlockStatement{Token: colonTok}
	}
	p.advance()
	if !p.curIs(lexer.INDENT) {
		p.errorAt(p.cur(), "expected indented block")
		return &ast.BlockStatement{Token: colonTok}
	}
	p.advance()

	block := &ast.BlockStatement{Token: colonTok}
	p.skipNewlines()
	for !p.curIs(lexer.DEDENT) && !p.curIs(lexer.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.skipNewlines()
	}
	p.expect(lexer.DEDENT)
	return block
}
