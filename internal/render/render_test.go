package render_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipeforge-labs/pipeforge/internal/render"
	"github.com/pipeforge-labs/pipeforge/pkg/descriptor"
	"github.com/pipeforge-labs/pipeforge/pkg/parser"
)

// buildDescriptor compiles SQL through the real chain so templates see a
// production-shaped descriptor.
func buildDescriptor(t *testing.T, sql string, cfg descriptor.Config) *descriptor.Descriptor {
	t.Helper()
	stmt, err := parser.ParseOne(sql)
	require.NoError(t, err)
	desc, err := descriptor.Build(stmt, cfg)
	require.NoError(t, err)
	return desc
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err, "expected file %s", path)
	return string(data)
}

// ---------- Set Discovery Tests ----------

func TestSets(t *testing.T) {
	sets, err := render.Sets()
	require.NoError(t, err)
	assert.Contains(t, sets, "python-worker")
}

func TestHasSet(t *testing.T) {
	assert.True(t, render.HasSet("python-worker"))
	assert.False(t, render.HasSet("fortran-worker"))
}

func TestSetFiles(t *testing.T) {
	files, err := render.SetFiles("python-worker")
	require.NoError(t, err)

	assert.Contains(t, files, "pipeline.yaml")
	assert.Contains(t, files, "connection.env")
	assert.Contains(t, files, "descriptor.json")
	assert.Contains(t, files, "README.md")
	assert.Contains(t, files, ".gitignore")
}

// ---------- Render Tests ----------

func TestRenderWritesProject(t *testing.T) {
	desc := buildDescriptor(t,
		`SELECT user_id, event_type, created_at FROM events WHERE event_type IN ("click", "view");`,
		descriptor.Config{})
	outDir := filepath.Join(t.TempDir(), "events")

	err := render.Render(desc, render.Options{
		OutDir:   outDir,
		Pipeline: "events",
	})
	require.NoError(t, err)

	pipelineYAML := readFile(t, filepath.Join(outDir, "pipeline.yaml"))
	assert.Contains(t, pipelineYAML, "pipeline: events")
	assert.Contains(t, pipelineYAML, "type: cassandra")
	assert.Contains(t, pipelineYAML, "type: druid")
	assert.Contains(t, pipelineYAML, `- "user_id"`)
	assert.Contains(t, pipelineYAML, `- "event_type"`)
	assert.Contains(t, pipelineYAML, "timestamp_column: created_at")
	assert.Contains(t, pipelineYAML, "batch_size: 1000")
	assert.Contains(t, pipelineYAML, `"kind":"membership"`)

	env := readFile(t, filepath.Join(outDir, "connection.env"))
	assert.Contains(t, env, "CASSANDRA_HOST=127.0.0.1")
	assert.Contains(t, env, "CASSANDRA_PORT=9042")
	assert.Contains(t, env, "CASSANDRA_KEYSPACE=")

	readme := readFile(t, filepath.Join(outDir, "README.md"))
	assert.Contains(t, readme, "# events")
	assert.Contains(t, readme, "cassandra")

	// gitignore is renamed, template sources are not copied
	_, err = os.Stat(filepath.Join(outDir, ".gitignore"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(outDir, "pipeline.yaml.tmpl"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(outDir, "gitignore"))
	assert.True(t, os.IsNotExist(err))
}

func TestRenderDescriptorJSONRoundTrips(t *testing.T) {
	desc := buildDescriptor(t,
		"SELECT id, name FROM users WHERE created_at > 100;",
		descriptor.Config{SourceType: "postgres"})
	outDir := t.TempDir()

	require.NoError(t, render.Render(desc, render.Options{
		OutDir:   outDir,
		Pipeline: "users",
	}))

	data, err := os.ReadFile(filepath.Join(outDir, "descriptor.json"))
	require.NoError(t, err)

	var got descriptor.Descriptor
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, []string{"id", "name"}, got.Columns)
	assert.Equal(t, "postgres", got.Source.Type)
	assert.Equal(t, "created_at", got.TimestampColumn)
}

func TestRenderWildcardColumnQuoted(t *testing.T) {
	desc := buildDescriptor(t, "SELECT * FROM events;", descriptor.Config{})
	outDir := t.TempDir()

	require.NoError(t, render.Render(desc, render.Options{
		OutDir:   outDir,
		Pipeline: "all_events",
	}))

	pipelineYAML := readFile(t, filepath.Join(outDir, "pipeline.yaml"))
	assert.Contains(t, pipelineYAML, `- "*"`, "wildcard must be quoted to stay valid YAML")
}

func TestRenderOverwritesExisting(t *testing.T) {
	desc := buildDescriptor(t, "SELECT id FROM events;", descriptor.Config{})
	outDir := t.TempDir()
	opts := render.Options{OutDir: outDir, Pipeline: "events"}

	require.NoError(t, render.Render(desc, opts))

	stale := filepath.Join(outDir, "pipeline.yaml")
	require.NoError(t, os.WriteFile(stale, []byte("stale"), 0600))

	require.NoError(t, render.Render(desc, opts))
	assert.NotEqual(t, "stale", readFile(t, stale), "regenerating must refresh output files")
}

func TestRenderUnknownSet(t *testing.T) {
	desc := buildDescriptor(t, "SELECT id FROM events;", descriptor.Config{})

	err := render.Render(desc, render.Options{
		Set:      "no-such-set",
		OutDir:   t.TempDir(),
		Pipeline: "events",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown template set")
}

func TestRenderNilDescriptor(t *testing.T) {
	err := render.Render(nil, render.Options{OutDir: t.TempDir()})
	require.Error(t, err)
}
