package parser

// Expression parsing using precedence climbing.
//
// Grammar:
//
//	expr           → or_expr
//	or_expr        → and_expr (OR and_expr)*
//	and_expr       → comparison (AND comparison)*
//	comparison     → additive (comp_op additive | [NOT] IN "(" expr_list ")")*
//	comp_op        → "=" | "!=" | "<>" | "<" | "<=" | ">" | ">=" | LIKE
//	additive       → multiplicative (("+" | "-") multiplicative)*
//	multiplicative → unary (("*" | "/" | "%") unary)*
//	unary          → (NOT | "-") unary | primary

import (
	"github.com/pipeforge-labs/pipeforge/pkg/core"
	"github.com/pipeforge-labs/pipeforge/pkg/token"
)

// Operator precedence levels, lowest binds loosest.
const (
	PrecedenceNone       = 0
	PrecedenceOr         = 1
	PrecedenceAnd        = 2
	PrecedenceComparison = 3
	PrecedenceAddition   = 4
	PrecedenceMultiply   = 5
	PrecedenceUnary      = 6
)

// parseExpression parses an expression at the lowest precedence.
func (p *Parser) parseExpression() core.Expr {
	return p.parseExpressionWithPrecedence(PrecedenceOr)
}

// parseExpressionWithPrecedence parses an expression with a minimum
// precedence, climbing while infix operators bind at least as tightly.
func (p *Parser) parseExpressionWithPrecedence(minPrecedence int) core.Expr {
	left := p.parsePrefixExpr()

	for {
		prec := p.getInfixPrecedence()
		if prec < minPrecedence || prec == PrecedenceNone {
			break
		}
		left = p.parseInfixExpr(left, prec)
	}

	return left
}

// parsePrefixExpr parses unary operators and primary expressions.
func (p *Parser) parsePrefixExpr() core.Expr {
	switch p.token.Type {
	case TOKEN_NOT:
		p.nextToken()
		return &core.UnaryExpr{
			Op:   token.NOT,
			Expr: p.parseExpressionWithPrecedence(PrecedenceUnary),
		}
	case TOKEN_MINUS:
		p.nextToken()
		return &core.UnaryExpr{
			Op:   token.MINUS,
			Expr: p.parseExpressionWithPrecedence(PrecedenceUnary),
		}
	default:
		return p.parsePrimary()
	}
}

// getInfixPrecedence returns the precedence of the current token as an
// infix operator, or PrecedenceNone when it is not one. NOT is an infix
// operator only as the head of NOT IN, which takes two tokens of
// lookahead to recognize.
func (p *Parser) getInfixPrecedence() int {
	switch p.token.Type {
	case TOKEN_OR:
		return PrecedenceOr
	case TOKEN_AND:
		return PrecedenceAnd
	case TOKEN_EQ, TOKEN_NE, TOKEN_LT, TOKEN_LE, TOKEN_GT, TOKEN_GE, TOKEN_LIKE, TOKEN_IN:
		return PrecedenceComparison
	case TOKEN_NOT:
		if p.checkPeek(TOKEN_IN) {
			return PrecedenceComparison
		}
		return PrecedenceNone
	case TOKEN_PLUS, TOKEN_MINUS:
		return PrecedenceAddition
	case TOKEN_STAR, TOKEN_SLASH, TOKEN_PERCENT:
		return PrecedenceMultiply
	default:
		return PrecedenceNone
	}
}

// parseInfixExpr parses an infix expression with the given left operand.
func (p *Parser) parseInfixExpr(left core.Expr, prec int) core.Expr {
	switch p.token.Type {
	case TOKEN_NOT:
		// NOT IN: getInfixPrecedence has already confirmed the IN
		p.nextToken() // consume NOT
		p.nextToken() // consume IN
		return p.parseInExpr(left, true)
	case TOKEN_IN:
		p.nextToken() // consume IN
		return p.parseInExpr(left, false)
	}

	op := p.token.Type
	p.nextToken()
	right := p.parseExpressionWithPrecedence(prec + 1)
	return &core.BinaryExpr{Left: left, Op: op, Right: right}
}

// parseInExpr parses the parenthesized value list of [NOT] IN.
func (p *Parser) parseInExpr(left core.Expr, not bool) core.Expr {
	in := &core.InExpr{Expr: left, Not: not}
	if !p.expect(TOKEN_LPAREN) {
		return in
	}
	in.Values = p.parseExpressionList()
	p.expect(TOKEN_RPAREN)
	return in
}

// parseExpressionList parses a comma-separated list of expressions.
func (p *Parser) parseExpressionList() []core.Expr {
	var exprs []core.Expr
	for {
		expr := p.parseExpression()
		if expr != nil {
			exprs = append(exprs, expr)
		}
		if !p.match(TOKEN_COMMA) {
			break
		}
	}
	return exprs
}
