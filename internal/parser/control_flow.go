package parser

import (
	"github.com/cnexans/culebra/internal/ast"
	"github.com/cnexans/culebra/internal/lexer"
)

// parseIfStatement parses `if COND: BLOCK (elif COND: BLOCK)* (else: BLOCK)?`.
func (p *Parser) parseIfStatement() ast.Statement {
	tok := p.advance() // 'if'
	cond := p.parseExpression()
	block := p.parseBlock()

	stmt := &ast.IfStatement{Token: tok}
	stmt.Conditions = append(stmt.Conditions, cond)
	stmt.Blocks = append(stmt.Blocks, block)

	for p.curIs(lexer.ELIF) {
		p.advance()
		elifCond := p.parseExpression()
		elifBlock := p.parseBlock()
		stmt.Conditions = append(stmt.Conditions, elifCond)
		stmt.Blocks = append(stmt.Blocks, elifBlock)
	}

	if p.curIs(lexer.ELSE) {
		p.advance()
		stmt.Else = p.parseBlock()
	}

	return stmt
}

// parseWhileStatement parses `while COND: BLOCK`.
func (p *Parser) parseWhileStatement() ast.Statement {
	tok := p.advance() // 'while'
	cond := p.parseExpression()
	body := p.parseBlock()
	return &ast.WhileStatement{Token: tok, Condition: cond, Body: body}
}

// parseForStatement parses the C-style triple-clause loop
// `for INIT; COND; STEP: BLOCK`.
func (p *Parser) parseForStatement() ast.Statement {
	tok := p.advance() // 'for'

	var init ast.Statement
	if !p.curIs(lexer.SEMICOLON) {
		init = p.parseSimpleStatement()
	}
	p.expect(lexer.SEMICOLON)

	cond := p.parseExpression()
	p.expect(lexer.SEMICOLON)

	var step ast.Statement
	if !p.curIs(lexer.COLON) {
		step = p.parseSimpleStatement()
	}

	body := p.parseBlock()

	return &ast.ForStatement{Token: tok, Init: init, Condition: cond, Step: step, Body: body}
}

// parseFunctionDef parses `def name(p1, p2, ...): BLOCK`.
func (p *Parser) parseFunctionDef() ast.Statement {
	tok := p.advance() // 'def'

	nameTok, ok := p.expect(lexer.IDENT)
	if !ok {
		return nil
	}

	if _, ok := p.expect(lexer.LPAREN); !ok {
		return nil
	}

	var params []string
	if !p.curIs(lexer.RPAREN) {
		for {
			paramTok, ok := p.expect(lexer.IDENT)
			if !ok {
				break
			}
			params = append(params, paramTok.Literal)
			if p.curIs(lexer.COMMA) {
				p.advance()
				continue
			}
			break
		}
	}
	p.expect(lexer.RPAREN)

	body := p.parseBlock()

	return &ast.FunctionDef{Token: tok, Name: nameTok.Literal, Params: params, Body: body}
}

// parseReturnStatement parses `return` or `return expr`.
func (p *Parser) parseReturnStatement() ast.Statement {
	tok := p.advance() // 'return'

	stmt := &ast.ReturnStatement{Token: tok}
	if !p.curIs(lexer.NEWLINE) && !p.curIs(lexer.EOF) && !p.curIs(lexer.DEDENT) {
		stmt.Value = p.parseExpression()
	}
	if p.curIs(lexer.NEWLINE) {
		p.advance()
	}
	return stmt
}
