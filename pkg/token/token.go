// Package token defines the lexical token set for the restricted SQL
// dialect accepted by the pipeline compiler.
package token

import (
	"fmt"
	"sort"
)

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Literals
	IDENT  // identifier
	NUMBER // 123, 45.67
	STRING // 'hello'

	// Operators and punctuation
	PLUS      // +
	MINUS     // -
	STAR      // *
	SLASH     // /
	PERCENT   // %
	EQ        // =
	NE        // != or <>
	LT        // <
	GT        // >
	LE        // <=
	GE        // >=
	DOT       // .
	COMMA     // ,
	SEMICOLON // ;
	LPAREN    // (
	RPAREN    // )

	// Keywords (alphabetical)
	AND
	AS
	ASC
	BY
	DELETE
	DESC
	DISTINCT
	FROM
	GROUP
	HAVING
	IN
	INNER
	INSERT
	INTO
	JOIN
	LEFT
	LIKE
	LIMIT
	NOT
	NULL
	OFFSET
	ON
	OR
	ORDER
	OUTER
	RIGHT
	SELECT
	SET
	UPDATE
	VALUES
	WHERE
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

// tokenNames maps token types to their string representations.
var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",

	IDENT:  "IDENT",
	NUMBER: "NUMBER",
	STRING: "STRING",

	PLUS:      "+",
	MINUS:     "-",
	STAR:      "*",
	SLASH:     "/",
	PERCENT:   "%",
	EQ:        "=",
	NE:        "!=",
	LT:        "<",
	GT:        ">",
	LE:        "<=",
	GE:        ">=",
	DOT:       ".",
	COMMA:     ",",
	SEMICOLON: ";",
	LPAREN:    "(",
	RPAREN:    ")",

	AND:      "AND",
	AS:       "AS",
	ASC:      "ASC",
	BY:       "BY",
	DELETE:   "DELETE",
	DESC:     "DESC",
	DISTINCT: "DISTINCT",
	FROM:     "FROM",
	GROUP:    "GROUP",
	HAVING:   "HAVING",
	IN:       "IN",
	INNER:    "INNER",
	INSERT:   "INSERT",
	INTO:     "INTO",
	JOIN:     "JOIN",
	LEFT:     "LEFT",
	LIKE:     "LIKE",
	LIMIT:    "LIMIT",
	NOT:      "NOT",
	NULL:     "NULL",
	OFFSET:   "OFFSET",
	ON:       "ON",
	OR:       "OR",
	ORDER:    "ORDER",
	OUTER:    "OUTER",
	RIGHT:    "RIGHT",
	SELECT:   "SELECT",
	SET:      "SET",
	UPDATE:   "UPDATE",
	VALUES:   "VALUES",
	WHERE:    "WHERE",
}

// keywords maps lowercase keyword strings to their token types.
var keywords = map[string]TokenType{
	"and":      AND,
	"as":       AS,
	"asc":      ASC,
	"by":       BY,
	"delete":   DELETE,
	"desc":     DESC,
	"distinct": DISTINCT,
	"from":     FROM,
	"group":    GROUP,
	"having":   HAVING,
	"in":       IN,
	"inner":    INNER,
	"insert":   INSERT,
	"into":     INTO,
	"join":     JOIN,
	"left":     LEFT,
	"like":     LIKE,
	"limit":    LIMIT,
	"not":      NOT,
	"null":     NULL,
	"offset":   OFFSET,
	"on":       ON,
	"or":       OR,
	"order":    ORDER,
	"outer":    OUTER,
	"right":    RIGHT,
	"select":   SELECT,
	"set":      SET,
	"update":   UPDATE,
	"values":   VALUES,
	"where":    WHERE,
}

// LookupIdent returns the token type for the given identifier.
// If the identifier is a keyword (matched case-insensitively by the
// lexer, which lowercases before calling), the keyword token type is
// returned. Otherwise, IDENT is returned.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword returns true if the token type is a keyword.
func IsKeyword(t TokenType) bool {
	return t >= AND && t <= WHERE
}

// Keywords returns the dialect's keywords in sorted order, lowercase.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for kw := range keywords {
		out = append(out, kw)
	}
	sort.Strings(out)
	return out
}

// IsOperator returns true if the token type is an operator or punctuation.
func IsOperator(t TokenType) bool {
	return t >= PLUS && t <= RPAREN
}

// Token represents a lexical token with position information.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}
