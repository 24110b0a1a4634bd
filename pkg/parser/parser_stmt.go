package parser

// SELECT statement parsing.
//
// Grammar:
//
//	select_stmt → SELECT select_list [FROM table_ref join*]
//	              [WHERE expr] [GROUP BY expr_list] [HAVING expr]
//	              [ORDER BY order_list] [LIMIT expr] [OFFSET expr]
//	select_list → select_item ("," select_item)*
//	select_item → expr [[AS] identifier]
//	order_list  → order_item ("," order_item)*
//	order_item  → expr [ASC | DESC]

import "github.com/pipeforge-labs/pipeforge/pkg/core"

// parseSelectStatement parses a full SELECT statement.
func (p *Parser) parseSelectStatement() *core.SelectStmt {
	stmt := &core.SelectStmt{}
	p.expect(TOKEN_SELECT)

	stmt.Columns = p.parseSelectList()

	if p.match(TOKEN_FROM) {
		stmt.From = p.parseTableRef()
		stmt.Joins = p.parseJoins()
	}

	if p.match(TOKEN_WHERE) {
		stmt.Where = p.parseExpression()
	}

	if p.check(TOKEN_GROUP) {
		stmt.GroupBy = p.parseGroupBy()
	}

	if p.match(TOKEN_HAVING) {
		stmt.Having = p.parseExpression()
	}

	if p.check(TOKEN_ORDER) {
		stmt.OrderBy = p.parseOrderByList()
	}

	if p.match(TOKEN_LIMIT) {
		stmt.Limit = p.parseExpression()
	}

	if p.match(TOKEN_OFFSET) {
		stmt.Offset = p.parseExpression()
	}

	return stmt
}

// parseSelectList parses the projection list.
func (p *Parser) parseSelectList() []core.Expr {
	var cols []core.Expr
	for {
		expr := p.parseSelectItem()
		if expr != nil {
			cols = append(cols, expr)
		}
		if !p.match(TOKEN_COMMA) {
			break
		}
	}
	return cols
}

// parseSelectItem parses one projection expression with an optional alias.
// A bare identifier counts as an alias only when the token after it closes
// the item, so a malformed item fails at the stray identifier instead of
// absorbing it.
func (p *Parser) parseSelectItem() core.Expr {
	expr := p.parseExpression()

	if p.match(TOKEN_AS) {
		if !p.check(TOKEN_IDENT) {
			p.addError("expected alias after AS")
			return expr
		}
		setAlias(expr, p.token.Literal)
		p.nextToken()
		return expr
	}

	if p.check(TOKEN_IDENT) && isSelectItemBoundary(p.peek.Type) {
		setAlias(expr, p.token.Literal)
		p.nextToken()
	}

	return expr
}

// setAlias records an alias on expressions that carry one. Aliases on
// other expression kinds are accepted by the grammar but not retained.
func setAlias(expr core.Expr, alias string) {
	if col, ok := expr.(*core.ColumnRef); ok {
		col.Alias = alias
	}
}

// isSelectItemBoundary reports whether t can legally follow a select list
// alias.
func isSelectItemBoundary(t TokenType) bool {
	switch t {
	case TOKEN_EOF, TOKEN_COMMA, TOKEN_FROM, TOKEN_WHERE, TOKEN_GROUP,
		TOKEN_HAVING, TOKEN_ORDER, TOKEN_LIMIT, TOKEN_SEMICOLON:
		return true
	}
	return false
}

// parseGroupBy parses GROUP BY expr_list.
func (p *Parser) parseGroupBy() *core.GroupBySpec {
	p.expect(TOKEN_GROUP)
	p.expect(TOKEN_BY)
	return &core.GroupBySpec{Exprs: p.parseExpressionList()}
}

// parseOrderByList parses ORDER BY order_item list.
func (p *Parser) parseOrderByList() []core.OrderByItem {
	p.expect(TOKEN_ORDER)
	p.expect(TOKEN_BY)

	var items []core.OrderByItem
	for {
		item := core.OrderByItem{Expr: p.parseExpression()}
		if p.match(TOKEN_DESC) {
			item.Desc = true
		} else {
			p.match(TOKEN_ASC)
		}
		items = append(items, item)
		if !p.match(TOKEN_COMMA) {
			break
		}
	}
	return items
}
