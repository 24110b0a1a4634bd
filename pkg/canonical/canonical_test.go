package canonical_test

import (
	"encoding/json"
	"testing"

	"github.com/pipeforge-labs/pipeforge/pkg/canonical"
	"github.com/pipeforge-labs/pipeforge/pkg/core"
	"github.com/pipeforge-labs/pipeforge/pkg/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustCanonical parses a single statement and returns its canonical map.
func mustCanonical(t *testing.T, sql string) map[string]any {
	t.Helper()
	stmt, err := parser.ParseOne(sql)
	require.NoError(t, err)
	return canonical.FromStatement(stmt)
}

// ---------- Statement Shape Tests ----------

func TestSelectCanonicalShape(t *testing.T) {
	m := mustCanonical(t, "SELECT id, name FROM users")

	assert.Equal(t, canonical.TypeSelect, m["type"])

	columns, ok := m["columns"].([]any)
	require.True(t, ok)
	require.Len(t, columns, 2)

	first, ok := columns[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, canonical.TypeColumn, first["type"])
	assert.Equal(t, "id", first["name"])

	from, ok := m["from"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "users", from["table"])
	assert.NotContains(t, from, "schema")
}

func TestSelectSchemaQualified(t *testing.T) {
	m := mustCanonical(t, "SELECT * FROM events.tracking_events")

	from := m["from"].(map[string]any)
	assert.Equal(t, "events", from["schema"])
	assert.Equal(t, "tracking_events", from["table"])
}

func TestSelectOmitsAbsentClauses(t *testing.T) {
	m := mustCanonical(t, "SELECT a FROM t")

	for _, key := range []string{"where", "joins", "group_by", "having", "order_by", "limit", "offset"} {
		assert.NotContains(t, m, key)
	}
}

func TestSelectFullClauses(t *testing.T) {
	m := mustCanonical(t, `
		SELECT region, count(*) FROM sales s
		JOIN refs r ON s.ref = r.id
		WHERE amount > 100
		GROUP BY region
		HAVING count(*) > 5
		ORDER BY region DESC
		LIMIT 10 OFFSET 2`)

	assert.Contains(t, m, "where")
	assert.Contains(t, m, "group_by")
	assert.Contains(t, m, "having")
	assert.Contains(t, m, "limit")
	assert.Contains(t, m, "offset")

	joins := m["joins"].([]any)
	require.Len(t, joins, 1)
	join := joins[0].(map[string]any)
	assert.Equal(t, canonical.TypeJoin, join["type"])
	assert.Equal(t, "INNER", join["kind"])

	orderBy := m["order_by"].([]any)
	require.Len(t, orderBy, 1)
	assert.Equal(t, "DESC", orderBy[0].(map[string]any)["direction"])
}

func TestInsertCanonicalShape(t *testing.T) {
	m := mustCanonical(t, "INSERT INTO t (a, b) VALUES (1, 'x'), (2, 'y')")

	assert.Equal(t, canonical.TypeInsert, m["type"])
	assert.Equal(t, []any{"a", "b"}, m["columns"])

	values := m["values"].([]any)
	require.Len(t, values, 2)
	row := values[0].([]any)
	require.Len(t, row, 2)
}

func TestUpdateCanonicalShape(t *testing.T) {
	m := mustCanonical(t, "UPDATE users SET email = 'x', age = 30 WHERE id = 1")

	assert.Equal(t, canonical.TypeUpdate, m["type"])
	assignments := m["assignments"].([]any)
	require.Len(t, assignments, 2)

	first := assignments[0].(map[string]any)
	assert.Equal(t, canonical.TypeAssignment, first["type"])
	assert.Equal(t, "email", first["column"])
	require.NotNil(t, m["where"])
}

func TestDeleteCanonicalShape(t *testing.T) {
	m := mustCanonical(t, "DELETE FROM sessions WHERE expired = 1")

	assert.Equal(t, canonical.TypeDelete, m["type"])
	assert.Equal(t, "sessions", m["table"].(map[string]any)["table"])
	require.NotNil(t, m["where"])
}

// ---------- Wildcard Tests ----------

func TestWildcardBecomesAllMarker(t *testing.T) {
	m := mustCanonical(t, "SELECT * FROM events")

	columns := m["columns"].([]any)
	require.Len(t, columns, 1)
	assert.Equal(t, map[string]any{"type": canonical.TypeAll}, columns[0])
}

func TestQualifiedWildcardBecomesAllMarker(t *testing.T) {
	m := mustCanonical(t, "SELECT u.* FROM users u")

	columns := m["columns"].([]any)
	require.Len(t, columns, 1)
	assert.Equal(t, canonical.TypeAll, canonical.Tag(columns[0]))
}

func TestCountStarArgumentIsAllMarker(t *testing.T) {
	m := mustCanonical(t, "SELECT count(*) FROM t")

	fn := m["columns"].([]any)[0].(map[string]any)
	assert.Equal(t, canonical.TypeFunctionCall, fn["type"])
	args := fn["arguments"].([]any)
	require.Len(t, args, 1)
	assert.Equal(t, canonical.TypeAll, canonical.Tag(args[0]))
}

func TestEmptySelectListCanonicalizesToWildcard(t *testing.T) {
	// Hand-built AST with no columns still yields the wildcard marker
	m := canonical.FromStatement(&core.SelectStmt{
		From: &core.TableRef{Name: "t"},
	})

	columns := m["columns"].([]any)
	require.Len(t, columns, 1)
	assert.Equal(t, canonical.TypeAll, canonical.Tag(columns[0]))
}

// ---------- Literal Tests ----------

func TestNumericLiteralCoercion(t *testing.T) {
	tests := []struct {
		name    string
		sql     string
		want    int64
		wantRaw string
	}{
		{"integer", "SELECT * FROM t WHERE age = 25", 25, ""},
		{"fraction truncated", "SELECT * FROM t WHERE age = 25.5", 25, "25.5"},
		{"fraction truncated not rounded", "SELECT * FROM t WHERE age = 25.9", 25, "25.9"},
		{"whole decimal", "SELECT * FROM t WHERE age = 25.0", 25, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mustCanonical(t, tt.sql)
			where := m["where"].(map[string]any)
			lit := where["right"].(map[string]any)

			assert.Equal(t, canonical.TypeLiteral, lit["type"])
			assert.Equal(t, "number", lit["kind"])
			assert.Equal(t, tt.want, lit["value"])

			if tt.wantRaw == "" {
				assert.NotContains(t, lit, "raw")
			} else {
				assert.Equal(t, tt.wantRaw, lit["raw"])
			}
		})
	}
}

func TestStringAndNullLiterals(t *testing.T) {
	m := mustCanonical(t, "SELECT * FROM t WHERE a = 'x' AND b = NULL")

	and := m["where"].(map[string]any)
	str := and["left"].(map[string]any)["right"].(map[string]any)
	assert.Equal(t, "string", str["kind"])
	assert.Equal(t, "x", str["value"])

	null := and["right"].(map[string]any)["right"].(map[string]any)
	assert.Equal(t, "null", null["kind"])
	assert.Nil(t, null["value"])
}

// ---------- Expression Tests ----------

func TestInExpressionCanonical(t *testing.T) {
	m := mustCanonical(t, "SELECT * FROM events WHERE event_type NOT IN ('ping', 'exit')")

	where := m["where"].(map[string]any)
	assert.Equal(t, canonical.TypeInExpression, where["type"])
	assert.Equal(t, true, where["negated"])

	values := where["values"].([]any)
	require.Len(t, values, 2)
	assert.Equal(t, "ping", values[0].(map[string]any)["value"])
}

func TestBinaryOpOperatorSpelling(t *testing.T) {
	// <> and != both canonicalize to the != spelling
	for _, sql := range []string{
		"SELECT * FROM t WHERE a != 1",
		"SELECT * FROM t WHERE a <> 1",
	} {
		m := mustCanonical(t, sql)
		where := m["where"].(map[string]any)
		assert.Equal(t, canonical.TypeBinaryOp, where["type"])
		assert.Equal(t, "!=", where["operator"], "input %q", sql)
	}
}

func TestUnaryOpCanonical(t *testing.T) {
	m := mustCanonical(t, "SELECT * FROM t WHERE x = -5")

	where := m["where"].(map[string]any)
	neg := where["right"].(map[string]any)
	assert.Equal(t, canonical.TypeUnaryOp, neg["type"])
	assert.Equal(t, "-", neg["operator"])
}

// ---------- Normalize Tests ----------

func TestNormalizeIsIdempotent(t *testing.T) {
	stmt, err := parser.ParseOne("SELECT id FROM users WHERE age > 21")
	require.NoError(t, err)

	once := canonical.Normalize(stmt)
	twice := canonical.Normalize(once)
	assert.Equal(t, once, twice)

	// An already-canonical map passes through as the same value
	m, ok := once.(map[string]any)
	require.True(t, ok)
	again, ok := canonical.Normalize(m).(map[string]any)
	require.True(t, ok)
	assert.Equal(t, m, again)
}

func TestNormalizeJSONRoundTrip(t *testing.T) {
	m := mustCanonical(t, "SELECT id FROM users WHERE age > 21")

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var reloaded map[string]any
	require.NoError(t, json.Unmarshal(data, &reloaded))

	normalized, ok := canonical.Normalize(reloaded).(map[string]any)
	require.True(t, ok)
	assert.Equal(t, canonical.TypeSelect, normalized["type"])
}

func TestNormalizeUnknownInput(t *testing.T) {
	out, ok := canonical.Normalize(42).(map[string]any)
	require.True(t, ok)
	assert.Equal(t, canonical.TypeUnknown, out["type"])

	assert.Nil(t, canonical.Normalize(nil))
}

func TestFromStatementNeverFails(t *testing.T) {
	// Nil statements serialize to the unknown marker rather than panicking
	m := canonical.FromStatement(nil)
	assert.Equal(t, canonical.TypeUnknown, m["type"])

	e := canonical.FromExpr(nil)
	assert.Equal(t, canonical.TypeUnknown, e["type"])
}
