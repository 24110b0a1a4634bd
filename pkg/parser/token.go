// This file provides token type aliases so parser code can refer to
// token kinds without qualifying every use.
package parser

import "github.com/pipeforge-labs/pipeforge/pkg/token"

// TokenType is an alias for token.TokenType.
type TokenType = token.TokenType

// Token is an alias for token.Token.
type Token = token.Token

// Position is an alias for token.Position.
type Position = token.Position

// LookupIdent is re-exported from token package.
var LookupIdent = token.LookupIdent

//nolint:revive // TOKEN_* names are intentionally ALL_CAPS for SQL token conventions
const (
	// Special tokens
	TOKEN_EOF     = token.EOF
	TOKEN_ILLEGAL = token.ILLEGAL

	// Literals
	TOKEN_IDENT  = token.IDENT
	TOKEN_NUMBER = token.NUMBER
	TOKEN_STRING = token.STRING

	// Operators and punctuation
	TOKEN_PLUS      = token.PLUS
	TOKEN_MINUS     = token.MINUS
	TOKEN_STAR      = token.STAR
	TOKEN_SLASH     = token.SLASH
	TOKEN_PERCENT   = token.PERCENT
	TOKEN_EQ        = token.EQ
	TOKEN_NE        = token.NE
	TOKEN_LT        = token.LT
	TOKEN_GT        = token.GT
	TOKEN_LE        = token.LE
	TOKEN_GE        = token.GE
	TOKEN_DOT       = token.DOT
	TOKEN_COMMA     = token.COMMA
	TOKEN_SEMICOLON = token.SEMICOLON
	TOKEN_LPAREN    = token.LPAREN
	TOKEN_RPAREN    = token.RPAREN

	// Keywords (alphabetical)
	TOKEN_AND      = token.AND
	TOKEN_AS       = token.AS
	TOKEN_ASC      = token.ASC
	TOKEN_BY       = token.BY
	TOKEN_DELETE   = token.DELETE
	TOKEN_DESC     = token.DESC
	TOKEN_DISTINCT = token.DISTINCT
	TOKEN_FROM     = token.FROM
	TOKEN_GROUP    = token.GROUP
	TOKEN_HAVING   = token.HAVING
	TOKEN_IN       = token.IN
	TOKEN_INNER    = token.INNER
	TOKEN_INSERT   = token.INSERT
	TOKEN_INTO     = token.INTO
	TOKEN_JOIN     = token.JOIN
	TOKEN_LEFT     = token.LEFT
	TOKEN_LIKE     = token.LIKE
	TOKEN_LIMIT    = token.LIMIT
	TOKEN_NOT      = token.NOT
	TOKEN_NULL     = token.NULL
	TOKEN_OFFSET   = token.OFFSET
	TOKEN_ON       = token.ON
	TOKEN_OR       = token.OR
	TOKEN_ORDER    = token.ORDER
	TOKEN_OUTER    = token.OUTER
	TOKEN_RIGHT    = token.RIGHT
	TOKEN_SELECT   = token.SELECT
	TOKEN_SET      = token.SET
	TOKEN_UPDATE   = token.UPDATE
	TOKEN_VALUES   = token.VALUES
	TOKEN_WHERE    = token.WHERE
)
