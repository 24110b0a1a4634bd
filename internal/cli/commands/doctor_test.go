package commands

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipeforge-labs/pipeforge/internal/cli/config"
)

func TestHealthScore(t *testing.T) {
	tests := []struct {
		name   string
		checks []HealthCheck
		want   int
	}{
		{
			name: "no checks returns 100",
			want: 100,
		},
		{
			name: "all passing returns 100",
			checks: []HealthCheck{
				{Status: "pass"},
				{Status: "pass"},
			},
			want: 100,
		},
		{
			name: "warnings cost ten each",
			checks: []HealthCheck{
				{Status: "pass"},
				{Status: "warn"},
				{Status: "warn"},
			},
			want: 80,
		},
		{
			name: "errors cost twenty five each",
			checks: []HealthCheck{
				{Status: "error"},
				{Status: "warn"},
			},
			want: 65,
		},
		{
			name: "score clamps at zero",
			checks: []HealthCheck{
				{Status: "error"}, {Status: "error"}, {Status: "error"},
				{Status: "error"}, {Status: "error"},
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, healthScore(tt.checks))
		})
	}
}

func TestCheckProjectName(t *testing.T) {
	check := checkProjectName(&config.Config{ProjectName: "tracker"})
	assert.Equal(t, "pass", check.Status)

	check = checkProjectName(&config.Config{})
	assert.Equal(t, "warn", check.Status)
}

func TestCheckSourceType(t *testing.T) {
	tests := []struct {
		name       string
		sourceType string
		wantStatus string
	}{
		{"empty falls back to default", "", "pass"},
		{"known type passes", "postgres", "pass"},
		{"alias passes", "postgresql", "pass"},
		{"unknown type warns", "voltdb", "warn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Compile.SourceType = tt.sourceType
			assert.Equal(t, tt.wantStatus, checkSourceType(cfg).Status)
		})
	}
}

func TestCheckSinkType(t *testing.T) {
	cfg := &config.Config{}
	cfg.Compile.SinkType = "druid"
	assert.Equal(t, "pass", checkSinkType(cfg).Status)

	cfg.Compile.SinkType = "carrier-pigeon"
	assert.Equal(t, "warn", checkSinkType(cfg).Status)
}

func TestCheckTemplateSet(t *testing.T) {
	cfg := &config.Config{}
	assert.Equal(t, "pass", checkTemplateSet(cfg).Status, "empty set uses the default")

	cfg.Generate.TemplateSet = "python-worker"
	assert.Equal(t, "pass", checkTemplateSet(cfg).Status)

	cfg.Generate.TemplateSet = "no-such-set"
	check := checkTemplateSet(cfg)
	assert.Equal(t, "error", check.Status)
	assert.Contains(t, check.Details[0], "unknown template set")
}

func TestCheckPipelines(t *testing.T) {
	config.ResetConfig()
	inTempDir(t)
	writeTestFile(t, "pipelines/good.sql", "SELECT id, name FROM users;")
	writeTestFile(t, "pipelines/bad.sql", "SELECT FROM users;")
	writeTestFile(t, "pipelines/reserved.sql", "SELECT id, row_number, \"select\" FROM users;")

	cfg := getConfig()
	cfg.Pipelines = []config.PipelineSpec{
		{Name: "good", File: "pipelines/good.sql"},
		{Name: "bad", File: "pipelines/bad.sql"},
		{Name: "reserved", File: "pipelines/reserved.sql"},
	}
	cc := &CommandContext{Cfg: cfg}

	checks := checkPipelines(cc)
	require.Len(t, checks, 2)

	compileCheck, reservedCheck := checks[0], checks[1]
	assert.Equal(t, "error", compileCheck.Status)
	require.Len(t, compileCheck.Details, 1)
	assert.Contains(t, compileCheck.Details[0], "bad")

	assert.Equal(t, "warn", reservedCheck.Status)
	require.Len(t, reservedCheck.Details, 1)
	assert.Contains(t, reservedCheck.Details[0], `"select"`)
}

func TestCheckPipelinesNoneConfigured(t *testing.T) {
	cc := &CommandContext{Cfg: &config.Config{}}

	checks := checkPipelines(cc)
	require.Len(t, checks, 2)
	assert.Equal(t, "warn", checks[0].Status)
	assert.Contains(t, checks[0].Details[0], "no pipelines configured")
}

func TestDoctorJSON(t *testing.T) {
	tmpDir := inTempDir(t)
	t.Setenv("PIPEFORGE_STATE_PATH", filepath.Join(tmpDir, "state.db"))
	t.Setenv("PIPEFORGE_OUTPUT", "json")

	out, err := execCommand(t, NewDoctorCommand())
	require.NoError(t, err)

	var report DoctorOutput
	require.NoError(t, json.Unmarshal([]byte(out), &report), "output: %s", out)

	assert.NotEmpty(t, report.Checks)
	assert.GreaterOrEqual(t, report.Score, 0)
	assert.LessOrEqual(t, report.Score, 100)

	var names []string
	for _, check := range report.Checks {
		names = append(names, check.Name)
	}
	assert.Contains(t, names, "config file")
	assert.Contains(t, names, "pipelines compile")
	assert.Contains(t, names, "state store")
	assert.Contains(t, names, "template set")
}
