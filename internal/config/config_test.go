package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathdrill/internal/comms"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), *cfg)
	assert.Equal(t, "results.txt", cfg.ResultsFile)
	assert.Equal(t, 5, cfg.TotalTasks)
	assert.Equal(t, comms.Reenter, cfg.Policy())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
total_tasks: 10
results_file: scores.txt
failure_policy: ignore
prompt: "> "
level: 2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.TotalTasks)
	assert.Equal(t, "scores.txt", cfg.ResultsFile)
	assert.Equal(t, comms.Ignore, cfg.Policy())
	assert.Equal(t, "> ", cfg.Prompt)
	assert.Equal(t, 2, cfg.Level)
	assert.Empty(t, cfg.HistoryDB)
}

func TestParse_PartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("total_tasks: 3\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.TotalTasks)
	assert.Equal(t, "results.txt", cfg.ResultsFile)
	assert.Equal(t, "reenter", cfg.FailurePolicy)
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), *cfg)
}

func TestParse_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown field", "colour: blue\n"},
		{"negative tasks", "total_tasks: -1\n"},
		{"fractional tasks", "total_tasks: 2.5\n"},
		{"bad policy", "failure_policy: retry\n"},
		{"empty results file", "results_file: \"\"\n"},
		{"wrong type", "prompt: [1, 2]\n"},
		{"not a mapping", "- a\n- b\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("total_tasks: [\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, Validate(&cfg))

	cfg.TotalTasks = -2
	err := Validate(&cfg)
	var verr ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "total_tasks", verr.Field)

	cfg = DefaultConfig()
	cfg.FailurePolicy = "maybe"
	err = Validate(&cfg)
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "failure_policy", verr.Field)
}

func TestDefaultPath_EnvOverride(t *testing.T) {
	t.Setenv("MATHDRILL_CONFIG", "/tmp/custom.yaml")
	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.yaml", p)

	t.Setenv("MATHDRILL_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	p, err = DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/xdg", "mathdrill", "config.yaml"), p)
}
