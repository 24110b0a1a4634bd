package source_test

import (
	"testing"

	"github.com/pipeforge-labs/pipeforge/pkg/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyCategories(t *testing.T) {
	tests := []struct {
		sourceType   string
		wantCategory source.Category
		wantStrategy string
	}{
		{"cassandra", source.CategoryDatabase, source.StrategyComposite},
		{"postgres", source.CategoryDatabase, source.StrategyComposite},
		{"postgresql", source.CategoryDatabase, source.StrategyComposite},
		{"mysql", source.CategoryDatabase, source.StrategyComposite},
		{"mongodb", source.CategoryDatabase, source.StrategyComposite},
		{"csv", source.CategoryFile, source.StrategyRowNumber},
		{"druid", source.CategoryAPI, source.StrategyComposite},
		{"elasticsearch", source.CategoryAPI, source.StrategyComposite},
	}

	for _, tt := range tests {
		t.Run(tt.sourceType, func(t *testing.T) {
			c := source.Classify(tt.sourceType, "events", "")
			assert.Equal(t, tt.wantCategory, c.Category)
			assert.Equal(t, tt.wantStrategy, c.Watermark.Strategy)
		})
	}
}

func TestClassifyUnknownTypeDefaultsToDatabase(t *testing.T) {
	c := source.Classify("voltdb", "events", "")

	assert.Equal(t, source.CategoryDatabase, c.Category)
	assert.Equal(t, source.StrategyComposite, c.Watermark.Strategy)
	assert.Equal(t, "localhost", c.Connection.Defaults["host"])
	assert.Equal(t, "8080", c.Connection.Defaults["port"])
	assert.Equal(t, "generic", c.Connection.TemplateKind)
}

func TestClassifyCaseInsensitive(t *testing.T) {
	c := source.Classify("Cassandra", "events", "")
	assert.Equal(t, source.CategoryDatabase, c.Category)
	assert.Equal(t, "cassandra", c.Type)
}

func TestDatabaseDefaults(t *testing.T) {
	tests := []struct {
		sourceType string
		wantHost   string
		wantPort   string
	}{
		{"cassandra", "127.0.0.1", "9042"},
		{"postgres", "localhost", "5432"},
		{"postgresql", "localhost", "5432"},
		{"mysql", "localhost", "3306"},
		{"mongodb", "localhost", "27017"},
	}

	for _, tt := range tests {
		t.Run(tt.sourceType, func(t *testing.T) {
			c := source.Classify(tt.sourceType, "t", "")
			assert.Equal(t, tt.wantHost, c.Connection.Defaults["host"])
			assert.Equal(t, tt.wantPort, c.Connection.Defaults["port"])
		})
	}
}

func TestDatabaseEnvVarNames(t *testing.T) {
	c := source.Classify("postgres", "users", "public")

	assert.Equal(t, "POSTGRES_HOST", c.Connection.EnvVars["host"])
	assert.Equal(t, "POSTGRES_PORT", c.Connection.EnvVars["port"])
	assert.Equal(t, "POSTGRES_USERNAME", c.Connection.EnvVars["username"])
	assert.Equal(t, "POSTGRES_PASSWORD", c.Connection.EnvVars["password"])
	assert.Equal(t, "POSTGRES_DATABASE", c.Connection.EnvVars["database"])
	assert.NotContains(t, c.Connection.EnvVars, "keyspace")
}

func TestCassandraUsesKeyspace(t *testing.T) {
	c := source.Classify("cassandra", "events", "tracking")

	assert.Equal(t, "CASSANDRA_KEYSPACE", c.Connection.EnvVars["keyspace"])
	assert.NotContains(t, c.Connection.EnvVars, "database")
	assert.Equal(t, "tracking", c.Schema)
}

func TestFileConnectionScopedToTable(t *testing.T) {
	c := source.Classify("csv", "users", "")

	assert.Equal(t, "CSV_USERS_PATH", c.Connection.EnvVars["file_path"])
	assert.Equal(t, "CSV_USERS_DELIMITER", c.Connection.EnvVars["delimiter"])
	assert.Equal(t, "./data/users.csv", c.Connection.Defaults["file_path"])
	assert.Equal(t, ",", c.Connection.Defaults["delimiter"])

	require.Len(t, c.ReservedColumns, 1)
	assert.Equal(t, source.RowNumberColumn, c.ReservedColumns[0])
}

func TestAPIDefaults(t *testing.T) {
	tests := []struct {
		sourceType string
		wantURL    string
	}{
		{"druid", "http://localhost:8888"},
		{"elasticsearch", "http://localhost:9200"},
	}

	for _, tt := range tests {
		t.Run(tt.sourceType, func(t *testing.T) {
			c := source.Classify(tt.sourceType, "t", "")
			assert.Equal(t, tt.wantURL, c.Connection.Defaults["base_url"])
			assert.Equal(t, tt.sourceType, c.Connection.TemplateKind)
		})
	}
}

func TestWatermarkShape(t *testing.T) {
	db := source.Classify("cassandra", "t", "")
	assert.True(t, db.Watermark.UsesComposite)
	assert.True(t, db.Watermark.TimestampBased)

	file := source.Classify("csv", "t", "")
	assert.False(t, file.Watermark.UsesComposite)
	assert.False(t, file.Watermark.TimestampBased)
}

func TestPostgresAliasSharesTemplates(t *testing.T) {
	a := source.Classify("postgres", "t", "")
	b := source.Classify("postgresql", "t", "")
	assert.Equal(t, a.Connection.TemplateKind, b.Connection.TemplateKind)
}

func TestKnownTypes(t *testing.T) {
	types := source.KnownTypes()
	assert.Contains(t, types, "csv")
	assert.Contains(t, types, "cassandra")
	assert.True(t, source.IsKnownType("CSV"))
	assert.False(t, source.IsKnownType("voltdb"))
}

func TestDefaultURL(t *testing.T) {
	assert.Equal(t, "http://localhost:8888", source.DefaultURL("druid"))
	assert.Equal(t, "http://localhost:9200", source.DefaultURL("elasticsearch"))
	assert.Equal(t, "http://localhost:8080", source.DefaultURL("voltdb"))
}

func TestIsKnownSink(t *testing.T) {
	assert.True(t, source.IsKnownSink("druid"))
	assert.True(t, source.IsKnownSink("Elasticsearch"))
	assert.False(t, source.IsKnownSink("voltdb"))
}
