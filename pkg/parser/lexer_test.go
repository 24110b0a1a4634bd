package parser_test

import (
	"testing"

	"github.com/pipeforge-labs/pipeforge/pkg/parser"
	"github.com/pipeforge-labs/pipeforge/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------- Token Stream Tests ----------

func TestTokenizeBasicQuery(t *testing.T) {
	tokens, err := parser.Tokenize("SELECT id, name FROM users WHERE age >= 21;")
	require.NoError(t, err)

	want := []token.TokenType{
		token.SELECT, token.IDENT, token.COMMA, token.IDENT,
		token.FROM, token.IDENT,
		token.WHERE, token.IDENT, token.GE, token.NUMBER,
		token.SEMICOLON, token.EOF,
	}
	require.Len(t, tokens, len(want))
	for i, tt := range want {
		assert.Equal(t, tt, tokens[i].Type, "token %d", i)
	}
}

func TestTokenizeEndsWithSingleEOF(t *testing.T) {
	inputs := []string{
		"",
		"   \t\n  ",
		"SELECT 1",
		"a b c",
	}
	for _, input := range inputs {
		tokens, err := parser.Tokenize(input)
		require.NoError(t, err)
		require.NotEmpty(t, tokens)

		var eofs int
		for _, tok := range tokens {
			if tok.Type == token.EOF {
				eofs++
			}
		}
		assert.Equal(t, 1, eofs, "input %q", input)
		assert.Equal(t, token.EOF, tokens[len(tokens)-1].Type, "input %q", input)
	}
}

func TestTokenizeKeywordsCaseInsensitive(t *testing.T) {
	tokens, err := parser.Tokenize("select Select SELECT sElEcT")
	require.NoError(t, err)
	require.Len(t, tokens, 5)

	for _, tok := range tokens[:4] {
		assert.Equal(t, token.SELECT, tok.Type)
	}
	// Original spelling is preserved in the literal
	assert.Equal(t, "select", tokens[0].Literal)
	assert.Equal(t, "sElEcT", tokens[3].Literal)
}

func TestTokenizeIdentifierVsKeyword(t *testing.T) {
	tokens, err := parser.Tokenize("from from_date selected")
	require.NoError(t, err)
	require.Len(t, tokens, 4)

	assert.Equal(t, token.FROM, tokens[0].Type)
	assert.Equal(t, token.IDENT, tokens[1].Type)
	assert.Equal(t, "from_date", tokens[1].Literal)
	assert.Equal(t, token.IDENT, tokens[2].Type)
}

// ---------- Operator Tests ----------

func TestTokenizeOperators(t *testing.T) {
	tests := []struct {
		input string
		want  token.TokenType
	}{
		{"=", token.EQ},
		{"!=", token.NE},
		{"<>", token.NE},
		{"<", token.LT},
		{"<=", token.LE},
		{">", token.GT},
		{">=", token.GE},
		{"+", token.PLUS},
		{"-", token.MINUS},
		{"*", token.STAR},
		{"/", token.SLASH},
		{"%", token.PERCENT},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, err := parser.Tokenize(tt.input)
			require.NoError(t, err)
			require.Len(t, tokens, 2)
			assert.Equal(t, tt.want, tokens[0].Type)
			assert.Equal(t, tt.input, tokens[0].Literal)
		})
	}
}

func TestTokenizeGreedyTwoCharOperators(t *testing.T) {
	tokens, err := parser.Tokenize("a<=b")
	require.NoError(t, err)
	require.Len(t, tokens, 4)
	assert.Equal(t, token.LE, tokens[1].Type)
}

func TestTokenizeUnknownOperator(t *testing.T) {
	_, err := parser.Tokenize("a ! b")
	require.Error(t, err)

	var lexErr *parser.LexError
	require.ErrorAs(t, err, &lexErr)
	assert.Contains(t, err.Error(), "unknown operator")
}

func TestTokenizeUnexpectedCharacter(t *testing.T) {
	_, err := parser.Tokenize("SELECT @col")
	require.Error(t, err)

	var lexErr *parser.LexError
	require.ErrorAs(t, err, &lexErr)
	assert.Contains(t, err.Error(), "unexpected character")
}

// ---------- Literal Tests ----------

func TestTokenizeStringLiterals(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "'hello'", "hello"},
		{"empty", "''", ""},
		{"escaped quote", `'it\'s'`, "it's"},
		{"escaped backslash", `'a\\b'`, `a\b`},
		{"spaces", "'hello world'", "hello world"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := parser.Tokenize(tt.input)
			require.NoError(t, err)
			require.Len(t, tokens, 2)
			assert.Equal(t, token.STRING, tokens[0].Type)
			assert.Equal(t, tt.want, tokens[0].Literal)
		})
	}
}

func TestTokenizeUnterminatedString(t *testing.T) {
	for _, input := range []string{"'open", `'trailing escape\`} {
		_, err := parser.Tokenize(input)
		require.Error(t, err, "input %q", input)
		assert.Contains(t, err.Error(), "unterminated string literal")
	}
}

func TestTokenizeQuotedIdentifier(t *testing.T) {
	tokens, err := parser.Tokenize(`SELECT "order count" FROM t`)
	require.NoError(t, err)
	require.Len(t, tokens, 5)
	assert.Equal(t, token.IDENT, tokens[1].Type)
	assert.Equal(t, "order count", tokens[1].Literal)
}

func TestTokenizeUnterminatedQuotedIdentifier(t *testing.T) {
	_, err := parser.Tokenize(`SELECT "broken`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unterminated quoted identifier")
}

func TestTokenizeNumbers(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"integer", "42", []string{"42"}},
		{"decimal", "3.14", []string{"3.14"}},
		{"second dot ends the run", "1.2.3", []string{"1.2", ".", "3"}},
		{"trailing dot not consumed", "7.", []string{"7", "."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := parser.Tokenize(tt.input)
			require.NoError(t, err)
			require.Len(t, tokens, len(tt.want)+1) // +1 for EOF
			for i, lit := range tt.want {
				assert.Equal(t, lit, tokens[i].Literal)
			}
		})
	}
}

// ---------- Position Tests ----------

func TestTokenizePositions(t *testing.T) {
	tokens, err := parser.Tokenize("SELECT a\nFROM t")
	require.NoError(t, err)
	require.Len(t, tokens, 5)

	assert.Equal(t, 1, tokens[0].Pos.Line)
	assert.Equal(t, 1, tokens[0].Pos.Column)
	assert.Equal(t, 1, tokens[1].Pos.Line)
	assert.Equal(t, 8, tokens[1].Pos.Column)
	assert.Equal(t, 2, tokens[2].Pos.Line) // FROM starts line 2
	assert.Equal(t, 1, tokens[2].Pos.Column)
}

func TestLexErrorPosition(t *testing.T) {
	_, err := parser.Tokenize("a = @")
	require.Error(t, err)

	var lexErr *parser.LexError
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, 1, lexErr.Pos.Line)
	assert.Equal(t, 5, lexErr.Pos.Column)
}
