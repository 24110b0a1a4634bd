package parser

// Primary expression parsing.
//
// Grammar:
//
//	primary    → NUMBER | STRING | NULL | "*" | "(" expr ")" | ident_expr
//	ident_expr → identifier ["(" func_args ")"] | identifier "." (identifier | "*")
//	func_args  → [DISTINCT] ("*" | expr_list)

import (
	"fmt"
	"strings"

	"github.com/pipeforge-labs/pipeforge/pkg/core"
)

// parsePrimary parses a primary expression.
func (p *Parser) parsePrimary() core.Expr {
	switch p.token.Type {
	case TOKEN_NUMBER:
		lit := &core.Literal{Kind: core.LiteralNumber, Value: p.token.Literal}
		p.nextToken()
		return lit

	case TOKEN_STRING:
		lit := &core.Literal{Kind: core.LiteralString, Value: p.token.Literal}
		p.nextToken()
		return lit

	case TOKEN_NULL:
		p.nextToken()
		return &core.Literal{Kind: core.LiteralNull, Value: "NULL"}

	case TOKEN_STAR:
		p.nextToken()
		return &core.StarExpr{}

	case TOKEN_LPAREN:
		// Grouping only; parentheses leave no trace in the AST
		p.nextToken()
		expr := p.parseExpression()
		p.expect(TOKEN_RPAREN)
		return expr

	case TOKEN_IDENT:
		return p.parseIdentifierExpr()

	default:
		p.addError(fmt.Sprintf("unexpected token in expression: %s", p.token.Type))
		return nil
	}
}

// parseIdentifierExpr parses an expression starting with an identifier:
// a column reference, a qualified column reference, or a function call.
func (p *Parser) parseIdentifierExpr() core.Expr {
	name := p.token.Literal
	p.nextToken()

	if p.check(TOKEN_LPAREN) {
		return p.parseFuncCall(name)
	}
	if p.check(TOKEN_DOT) {
		return p.parseQualifiedColumnRef(name)
	}
	return &core.ColumnRef{Name: name}
}

// parseQualifiedColumnRef parses table.column or table.* after the
// qualifier has been consumed.
func (p *Parser) parseQualifiedColumnRef(qualifier string) core.Expr {
	p.nextToken() // consume '.'

	if p.check(TOKEN_STAR) {
		p.nextToken()
		return &core.StarExpr{Table: qualifier}
	}
	if !p.check(TOKEN_IDENT) {
		p.addError(fmt.Sprintf(ErrUnexpectedToken, p.token.Type, TOKEN_IDENT))
		return &core.ColumnRef{Table: qualifier}
	}

	name := p.token.Literal
	p.nextToken()
	return &core.ColumnRef{Table: qualifier, Name: name}
}

// parseFuncCall parses a function call. The function name has been
// consumed; the current token is the opening parenthesis.
func (p *Parser) parseFuncCall(name string) core.Expr {
	fn := &core.FuncCall{Name: strings.ToUpper(name)}
	p.nextToken() // consume '('

	if p.match(TOKEN_RPAREN) {
		return fn
	}

	if p.match(TOKEN_DISTINCT) {
		fn.Distinct = true
	}

	if p.check(TOKEN_STAR) {
		// COUNT(*) and friends
		fn.Star = true
		p.nextToken()
	} else {
		fn.Args = p.parseExpressionList()
	}

	p.expect(TOKEN_RPAREN)
	return fn
}
