package parser

import (
	"strconv"

	"github.com/cnexans/culebra/internal/ast"
	"github.com/cnexans/culebra/internal/lexer"
)

// parseExpression is the entry point for expression parsing, starting at
// the lowest precedence level (`or`).
func (p *Parser) parseExpression() ast.Expression {
	return p.parseOr()
}

func (p *Parser) parseOr() ast.Expression {
	left := p.parseAnd()
	for p.curIs(lexer.OR) {
		tok := p.advance()
		right := p.parseAnd()
		left = &ast.BinaryExpression{Token: tok, Left: left, Operator: "or", Right: right}
	}
	return left
}

func (p *Parser) parseAnd() ast.Expression {
	left := p.parseNotLevel()
	for p.curIs(lexer.AND) {
		tok := p.advance()
		right := p.parseNotLevel()
		left = &ast.BinaryExpression{Token: tok, Left: left, Operator: "and", Right: right}
	}
	return left
}

// parseNotLevel handles the unary `not` operator, which binds looser than
// comparison but tighter than `and`/`or`.
func (p *Parser) parseNotLevel() ast.Expression {
	if p.curIs(lexer.NOT) {
		tok := p.advance()
		operand := p.parseNotLevel()
		return &ast.UnaryExpression{Token: tok, Operator: "not", Operand: operand}
	}
	return p.parseComparison()
}

var comparisonOps = map[lexer.TokenType]string{
	lexer.EQ:     "==",
	lexer.NOT_EQ: "!=",
	lexer.LT:     "<",
	lexer.LT_EQ:  "<=",
	lexer.GT:     ">",
	lexer.GT_EQ:  ">=",
}

// parseComparison parses a single, non-associative comparison; a second
// comparison operator chained directly after (e.g. `a < b < c`) is a
// syntax error rather than implicitly parsed left-to-right.
func (p *Parser) parseComparison() ast.Expression {
	left := p.parseAdditive()
	op, ok := comparisonOps[p.cur().Type]
	if !ok {
		return left
	}
	tok := p.advance()
	right := p.parseAdditive()
	result := ast.Expression(&ast.BinaryExpression{Token: tok, Left: left, Operator: op, Right: right})

	if _, chained := comparisonOps[p.cur().Type]; chained {
		p.errorAt(p.cur(), "chained comparisons are not supported")
	}

	return result
}

func (p *Parser) parseAdditive() ast.Expression {
	left := p.parseMultiplicative()
	for p.curIs(lexer.PLUS) || p.curIs(lexer.MINUS) {
		tok := p.advance()
		right := p.parseMultiplicative()
		left = &ast.BinaryExpression{Token: tok, Left: left, Operator: tok.Literal, Right: right}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expression {
	left := p.parseUnaryMinus()
	for p.curIs(lexer.ASTERISK) || p.curIs(lexer.SLASH) {
		tok := p.advance()
		right := p.parseUnaryMinus()
		left = &ast.BinaryExpression{Token: tok, Left: left, Operator: tok.Literal, Right: right}
	}
	return left
}

func (p *Parser) parseUnaryMinus() ast.Expression {
	if p.curIs(lexer.MINUS) {
		tok := p.advance()
		operand := p.parseUnaryMinus()
		return &ast.UnaryExpression{Token: tok, Operator: "-", Operand: operand}
	}
	return p.parsePostfix()
}

// parsePostfix applies call/index/dot suffixes left-associatively to a
// primary expression.
func (p *Parser) parsePostfix() ast.Expression {
	expr := p.parsePrimary()
	if expr == nil {
		return nil
	}

	for {
		switch p.cur().Type {
		case lexer.LPAREN:
			expr = p.parseCall(expr)
		case lexer.LBRACK:
			tok := p.advance()
			idx := p.parseExpression()
			p.expect(lexer.RBRACK)
			expr = &ast.IndexExpression{Token: tok, Left: expr, Index: idx}
		case lexer.DOT:
			tok := p.advance()
			nameTok, ok := p.expect(lexer.IDENT)
			if !ok {
				return expr
			}
			expr = &ast.DotExpression{Token: tok, Object: expr, Name: nameTok.Literal}
		default:
			return expr
		}
	}
}

func (p *Parser) parseCall(callee ast.Expression) ast.Expression {
	tok := p.advance() // '('
	var args []ast.Expression
	if !p.curIs(lexer.RPAREN) {
		for {
			arg := p.parseExpression()
			if arg != nil {
				args = append(args, arg)
			}
			if p.curIs(lexer.COMMA) {
				p.advance()
				continue
			}
			break
		}
	}
	p.expect(lexer.RPAREN)
	return &ast.CallExpression{Token: tok, Callee: callee, Args: args}
}

func (p *Parser) parsePrimary() ast.Expression {
	tok := p.cur()
	switch tok.Type {
	case lexer.INT:
		p.advance()
		v, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			p.errorAt(tok, "invalid integer literal %q", tok.Literal)
			return nil
		}
		return &ast.IntegerLiteral{Token: tok, Value: v}
	case lexer.FLOAT:
		p.advance()
		v, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			p.errorAt(tok, "invalid float literal %q", tok.Literal)
			return nil
		}
		return &ast.FloatLiteral{Token: tok, Value: v}
	case lexer.STRING:
		p.advance()
		return &ast.StringLiteral{Token: tok, Value: tok.Literal}
	case lexer.TRUE:
		p.advance()
		return &ast.BooleanLiteral{Token: tok, Value: true}
	case lexer.FALSE:
		p.advance()
		return &ast.BooleanLiteral{Token: tok, Value: false}
	case lexer.IDENT:
		p.advance()
		return &ast.Identifier{Token: tok, Value: tok.Literal}
	case lexer.LPAREN:
		return p.parseGroupOrTuple()
	case lexer.LBRACK:
		return p.parseArrayLiteral()
	case lexer.LBRACE:
		return p.parseMapOrSetLiteral()
	default:
		p.errorAt(tok, "unexpected token %s", tok.Type)
		p.advance()
		return nil
	}
}

// parseGroupOrTuple disambiguates grouping from a tuple literal:
// `(e)` is a grouping; `(e1, e2, ...)` (>= 2 elements) is a Tuple.
func (p *Parser) parseGroupOrTuple() ast.Expression {
	tok := p.advance() // '('
	first := p.parseExpression()

	if p.curIs(lexer.COMMA) {
		elements := []ast.Expression{first}
		for p.curIs(lexer.COMMA) {
			p.advance()
			if p.curIs(lexer.RPAREN) {
				break
			}
			elements = append(elements, p.parseExpression())
		}
		p.expect(lexer.RPAREN)
		if len(elements) < 2 {
			p.errorAt(tok, "tuples require at least 2 elements")
		}
		return &ast.TupleLiteral{Token: tok, Elements: elements}
	}

	p.expect(lexer.RPAREN)
	return &ast.GroupingExpression{Token: tok, Inner: first}
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	tok := p.advance() // '['
	var elements []ast.Expression
	if !p.curIs(lexer.RBRACK) {
		for {
			elements = append(elements, p.parseExpression())
			if p.curIs(lexer.COMMA) {
				p.advance()
				if p.curIs(lexer.RBRACK) {
					break
				}
				continue
			}
			break
		}
	}
	p.expect(lexer.RBRACK)
	return &ast.ArrayLiteral{Token: tok, Elements: elements}
}

// parseMapOrSetLiteral disambiguates map from set literals: after the
// first expression, a following `:` means Map, otherwise Set. Empty `{}`
// is rejected syntactically.
func (p *Parser) parseMapOrSetLiteral() ast.Expression {
	tok := p.advance() // '{'

	if p.curIs(lexer.RBRACE) {
		p.errorAt(tok, "empty {} is not allowed; use Map() or Set()")
		p.advance()
		return &ast.SetLiteral{Token: tok}
	}

	first := p.parseExpression()

	if p.curIs(lexer.COLON) {
		p.advance()
		firstVal := p.parseExpression()
		m := &ast.MapLiteral{Token: tok}
		m.Pairs = append(m.Pairs, ast.MapPair{Key: first, Value: firstVal})
		for p.curIs(lexer.COMMA) {
			p.advance()
			if p.curIs(lexer.RBRACE) {
				break
			}
			k := p.parseExpression()
			p.expect(lexer.COLON)
			v := p.parseExpression()
			m.Pairs = append(m.Pairs, ast.MapPair{Key: k, Value: v})
		}
		p.expect(lexer.RBRACE)
		return m
	}

	s := &ast.SetLiteral{Token: tok, Elements: []ast.Expression{first}}
	for p.curIs(lexer.COMMA) {
		p.advance()
		if p.curIs(lexer.RBRACE) {
			break
		}
		s.Elements = append(s.Elements, p.parseExpression())
	}
	p.expect(lexer.RBRACE)
	return s
}
