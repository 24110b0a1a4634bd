package parser

// FROM clause parsing: table references and joins.
//
// Grammar:
//
//	table_ref  → identifier ["." identifier] [[AS] identifier]
//	join       → join_kind table_ref [ON expr]
//	join_kind  → JOIN | INNER JOIN | LEFT [OUTER] JOIN
//	           | RIGHT [OUTER] JOIN | OUTER JOIN

import (
	"fmt"

	"github.com/pipeforge-labs/pipeforge/pkg/core"
)

// parseTableRef parses a possibly schema-qualified, possibly aliased
// table name.
func (p *Parser) parseTableRef() *core.TableRef {
	table := &core.TableRef{}

	if !p.check(TOKEN_IDENT) {
		p.addError(fmt.Sprintf(ErrUnexpectedToken, p.token.Type, TOKEN_IDENT))
		return table
	}

	parts := []string{p.token.Literal}
	p.nextToken()
	for p.match(TOKEN_DOT) {
		if !p.check(TOKEN_IDENT) {
			p.addError(fmt.Sprintf(ErrUnexpectedToken, p.token.Type, TOKEN_IDENT))
			break
		}
		parts = append(parts, p.token.Literal)
		p.nextToken()
	}

	switch len(parts) {
	case 1:
		table.Name = parts[0]
	case 2:
		table.Schema = parts[0]
		table.Name = parts[1]
	default:
		p.addError(fmt.Sprintf("too many qualifiers in table name %q", parts[0]))
	}

	// Alias: explicit AS, or a bare identifier. Clause and join keywords
	// tokenize as their own kinds, so they are never mistaken for one.
	if p.match(TOKEN_AS) {
		if !p.check(TOKEN_IDENT) {
			p.addError("expected alias after AS")
			return table
		}
		table.Alias = p.token.Literal
		p.nextToken()
	} else if p.check(TOKEN_IDENT) {
		table.Alias = p.token.Literal
		p.nextToken()
	}

	return table
}

// parseJoins parses zero or more join clauses.
func (p *Parser) parseJoins() []*core.Join {
	var joins []*core.Join
	for {
		join := p.parseJoin()
		if join == nil {
			break
		}
		joins = append(joins, join)
	}
	return joins
}

// parseJoin parses a single join clause, or returns nil when the current
// token does not start one.
func (p *Parser) parseJoin() *core.Join {
	join := &core.Join{}

	switch p.token.Type {
	case TOKEN_JOIN:
		join.Type = core.JoinInner
		p.nextToken()
	case TOKEN_INNER:
		join.Type = core.JoinInner
		p.nextToken()
		if !p.expect(TOKEN_JOIN) {
			return nil
		}
	case TOKEN_LEFT:
		join.Type = core.JoinLeft
		p.nextToken()
		p.match(TOKEN_OUTER)
		if !p.expect(TOKEN_JOIN) {
			return nil
		}
	case TOKEN_RIGHT:
		join.Type = core.JoinRight
		p.nextToken()
		p.match(TOKEN_OUTER)
		if !p.expect(TOKEN_JOIN) {
			return nil
		}
	case TOKEN_OUTER:
		join.Type = core.JoinOuter
		p.nextToken()
		if !p.expect(TOKEN_JOIN) {
			return nil
		}
	default:
		return nil
	}

	join.Table = p.parseTableRef()

	if p.match(TOKEN_ON) {
		join.Condition = p.parseExpression()
	}

	return join
}
