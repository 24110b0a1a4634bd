// Package parser provides the SQL front end: a tokenizer and a recursive
// descent parser producing pkg/core AST nodes.
//
// # Usage
//
//	stmts, err := parser.Parse("SELECT a, b FROM t")
//	if err != nil {
//	    // handle error
//	}
//
// Tokenizing and parsing are separate stages. Tokenize returns the full
// token sequence (terminated by a single EOF token), and NewParser consumes
// such a sequence:
//
//	tokens, err := parser.Tokenize(sql)
//	p := parser.NewParser(tokens)
//	stmts, err := p.ParseStatements()
//
// # Grammar Overview
//
// The parser implements a recursive descent parser for a restricted subset
// of SQL:
//
//	statement   → select_stmt | insert_stmt | update_stmt | delete_stmt
//	select_stmt → SELECT select_list [FROM table_ref join*]
//	              [WHERE expr] [GROUP BY expr_list] [HAVING expr]
//	              [ORDER BY order_list] [LIMIT expr] [OFFSET expr]
//
// Statements are separated by semicolons. See each file for detailed
// grammar rules for that section.
package parser

import (
	"fmt"

	"github.com/pipeforge-labs/pipeforge/pkg/core"
)

// Parser parses a token sequence into an AST.
type Parser struct {
	tokens []Token
	cursor int

	token  Token // current token
	peek   Token // lookahead token
	peek2  Token // second lookahead token
	errors []error
}

// NewParser creates a new parser over the given token sequence. The
// sequence must end with an EOF token, as produced by Tokenize.
func NewParser(tokens []Token) *Parser {
	p := &Parser{tokens: tokens}
	// Read three tokens to initialize current, peek, and peek2
	p.nextToken()
	p.nextToken()
	p.nextToken()
	return p
}

// Parse tokenizes and parses the input, returning one AST node per
// semicolon-separated statement.
func Parse(sql string) ([]core.Statement, error) {
	tokens, err := Tokenize(sql)
	if err != nil {
		return nil, err
	}
	return NewParser(tokens).ParseStatements()
}

// ParseOne parses input that must contain exactly one statement.
func ParseOne(sql string) (core.Statement, error) {
	stmts, err := Parse(sql)
	if err != nil {
		return nil, err
	}
	if len(stmts) != 1 {
		return nil, fmt.Errorf("expected exactly one statement, got %d", len(stmts))
	}
	return stmts[0], nil
}

// ParseStatements parses the token sequence to completion. Every token up
// to EOF must belong to a statement; leftover input is an error, never
// silently dropped.
func (p *Parser) ParseStatements() ([]core.Statement, error) {
	var stmts []core.Statement
	for !p.check(TOKEN_EOF) {
		if p.match(TOKEN_SEMICOLON) {
			continue
		}
		stmt := p.parseStatement()
		if len(p.errors) > 0 {
			return nil, p.errors[0]
		}
		stmts = append(stmts, stmt)
		if !p.check(TOKEN_EOF) && !p.expect(TOKEN_SEMICOLON) {
			return nil, p.errors[0]
		}
	}
	if len(p.errors) > 0 {
		return nil, p.errors[0]
	}
	return stmts, nil
}

// parseStatement dispatches on the statement's first keyword.
func (p *Parser) parseStatement() core.Statement {
	switch p.token.Type {
	case TOKEN_SELECT:
		return p.parseSelectStatement()
	case TOKEN_INSERT:
		return p.parseInsertStatement()
	case TOKEN_UPDATE:
		return p.parseUpdateStatement()
	case TOKEN_DELETE:
		return p.parseDeleteStatement()
	default:
		p.addError(fmt.Sprintf(ErrUnexpectedStatementStart, p.token.Type))
		return nil
	}
}

// ---------- Token Helpers ----------

// nextToken advances to the next token. The trailing EOF token is sticky:
// the window never advances past it.
func (p *Parser) nextToken() {
	p.token = p.peek
	p.peek = p.peek2
	switch {
	case p.cursor < len(p.tokens):
		p.peek2 = p.tokens[p.cursor]
		p.cursor++
	case len(p.tokens) > 0:
		p.peek2 = p.tokens[len(p.tokens)-1]
	default:
		p.peek2 = Token{Type: TOKEN_EOF}
	}
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t TokenType) bool {
	return p.token.Type == t
}

// checkPeek returns true if the peek token is of the given type.
func (p *Parser) checkPeek(t TokenType) bool {
	return p.peek.Type == t
}

// checkPeek2 returns true if the peek2 token is of the given type.
func (p *Parser) checkPeek2(t TokenType) bool { //nolint:unused // Reserved for future use
	return p.peek2.Type == t
}

// match consumes the current token if it matches and returns true.
func (p *Parser) match(t TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	return false
}

// expect consumes the current token if it matches, otherwise adds an error.
func (p *Parser) expect(t TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	p.addError(fmt.Sprintf(ErrUnexpectedToken, p.token.Type, t))
	return false
}

// addError adds a parse error.
func (p *Parser) addError(msg string) {
	p.errors = append(p.errors, &ParseError{
		Pos:     p.token.Pos,
		Message: msg,
	})
}
