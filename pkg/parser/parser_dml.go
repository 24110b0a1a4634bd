package parser

// DML statement parsing: INSERT, UPDATE, DELETE.
//
// Grammar:
//
//	insert_stmt → INSERT INTO table_ref ["(" column_list ")"]
//	              VALUES value_group ("," value_group)*
//	value_group → "(" expr_list ")"
//	update_stmt → UPDATE table_ref SET assignment ("," assignment)* [WHERE expr]
//	assignment  → identifier "=" expr
//	delete_stmt → DELETE FROM table_ref [WHERE expr]

import "github.com/pipeforge-labs/pipeforge/pkg/core"

// parseInsertStatement parses an INSERT statement. Column list and value
// group arity is not checked here; the descriptor layer decides what to do
// with uneven rows.
func (p *Parser) parseInsertStatement() *core.InsertStmt {
	stmt := &core.InsertStmt{}
	p.expect(TOKEN_INSERT)
	p.expect(TOKEN_INTO)

	stmt.Table = p.parseTableRef()

	if p.match(TOKEN_LPAREN) {
		stmt.Columns = p.parseColumnNameList()
		p.expect(TOKEN_RPAREN)
	}

	p.expect(TOKEN_VALUES)
	for {
		if !p.expect(TOKEN_LPAREN) {
			break
		}
		row := p.parseExpressionList()
		if !p.expect(TOKEN_RPAREN) {
			break
		}
		stmt.Values = append(stmt.Values, row)
		if !p.match(TOKEN_COMMA) {
			break
		}
	}

	return stmt
}

// parseUpdateStatement parses an UPDATE statement.
func (p *Parser) parseUpdateStatement() *core.UpdateStmt {
	stmt := &core.UpdateStmt{}
	p.expect(TOKEN_UPDATE)

	stmt.Table = p.parseTableRef()
	p.expect(TOKEN_SET)

	for {
		if !p.check(TOKEN_IDENT) {
			p.addError("expected column name in SET clause")
			break
		}
		asn := core.Assignment{Column: p.token.Literal}
		p.nextToken()
		if !p.expect(TOKEN_EQ) {
			break
		}
		asn.Value = p.parseExpression()
		stmt.Assignments = append(stmt.Assignments, asn)
		if !p.match(TOKEN_COMMA) {
			break
		}
	}

	if p.match(TOKEN_WHERE) {
		stmt.Where = p.parseExpression()
	}

	return stmt
}

// parseDeleteStatement parses a DELETE statement.
func (p *Parser) parseDeleteStatement() *core.DeleteStmt {
	stmt := &core.DeleteStmt{}
	p.expect(TOKEN_DELETE)
	p.expect(TOKEN_FROM)

	stmt.Table = p.parseTableRef()

	if p.match(TOKEN_WHERE) {
		stmt.Where = p.parseExpression()
	}

	return stmt
}

// parseColumnNameList parses a comma-separated list of bare column names.
func (p *Parser) parseColumnNameList() []string {
	var cols []string
	for {
		if !p.check(TOKEN_IDENT) {
			p.addError("expected column name")
			break
		}
		cols = append(cols, p.token.Literal)
		p.nextToken()
		if !p.match(TOKEN_COMMA) {
			break
		}
	}
	return cols
}
