package commands

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipeforge-labs/pipeforge/pkg/descriptor"
)

func TestCompileInlineSQL(t *testing.T) {
	out, err := execCommand(t, NewCompileCommand(),
		"--sql", "SELECT id, name FROM users WHERE created_at > '2026-01-01';")
	require.NoError(t, err)

	var desc descriptor.Descriptor
	require.NoError(t, json.Unmarshal([]byte(out), &desc), "output should be a JSON descriptor: %s", out)

	assert.Equal(t, "users", desc.Source.Table)
	assert.Equal(t, []string{"id", "name"}, desc.Columns)
	assert.Equal(t, descriptor.DefaultSourceType, desc.Source.Type)
	assert.Equal(t, descriptor.DefaultSinkType, desc.Sink.Type)
	assert.Equal(t, "created_at", desc.TimestampColumn)
}

func TestCompileFromFile(t *testing.T) {
	inTempDir(t)
	writeTestFile(t, "events.sql", "SELECT id, event_type FROM events;")

	out, err := execCommand(t, NewCompileCommand(), "events.sql")
	require.NoError(t, err)

	var desc descriptor.Descriptor
	require.NoError(t, json.Unmarshal([]byte(out), &desc))
	assert.Equal(t, "events", desc.Source.Table)
}

func TestCompileFromStdin(t *testing.T) {
	cmd := NewCompileCommand()
	cmd.SetIn(strings.NewReader("SELECT total FROM orders;"))

	out, err := execCommand(t, cmd)
	require.NoError(t, err)

	var desc descriptor.Descriptor
	require.NoError(t, json.Unmarshal([]byte(out), &desc))
	assert.Equal(t, "orders", desc.Source.Table)
	assert.Equal(t, []string{"total"}, desc.Columns)
}

func TestCompileYAMLFormat(t *testing.T) {
	out, err := execCommand(t, NewCompileCommand(),
		"--sql", "SELECT id FROM users;", "--format", "yaml")
	require.NoError(t, err)

	assert.Contains(t, out, "table: users")
	assert.Contains(t, out, "columns:")
}

func TestCompileCanonical(t *testing.T) {
	out, err := execCommand(t, NewCompileCommand(),
		"--sql", "SELECT id FROM users;", "--canonical")
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	assert.Equal(t, "select", m["type"])
}

func TestCompileUnknownFormat(t *testing.T) {
	_, err := execCommand(t, NewCompileCommand(),
		"--sql", "SELECT id FROM users;", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestCompileParseError(t *testing.T) {
	_, err := execCommand(t, NewCompileCommand(), "--sql", "SELECT FROM users;")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse error")
}

func TestCompileMissingFile(t *testing.T) {
	inTempDir(t)
	_, err := execCommand(t, NewCompileCommand(), "nope.sql")
	require.Error(t, err)
}

func TestCompileEmptyStdin(t *testing.T) {
	cmd := NewCompileCommand()
	cmd.SetIn(strings.NewReader("   \n"))

	_, err := execCommand(t, cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no SQL input")
}
