package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gradecli.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.InDelta(t, 1.0, cfg.Weights.Sum(), 1e-12)
	assert.Equal(t, []string{"A", "B", "C", "D", "F"}, cfg.GradeScale.Letters())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfigFile(t, `
weights:
  quizzes: 0.25
  midterm: 0.25
  final: 0.4
  attendance: 0.1
thresholds:
  at_risk: 65
paths:
  input: rosters/fall.csv
  output_dir: rosters/out
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.4, cfg.Weights.Final)
	assert.Equal(t, 65.0, cfg.Thresholds.AtRisk)
	assert.Equal(t, "rosters/fall.csv", cfg.Paths.Input)
	// Unspecified sections keep their defaults.
	assert.Equal(t, Default().GradeScale, cfg.GradeScale)
	assert.Equal(t, Default().Server.Port, cfg.Server.Port)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, "paths:\n  input: from-file.csv\n")
	t.Setenv("GRADECLI_PATHS_INPUT", "from-env.csv")
	t.Setenv("GRADECLI_THRESHOLDS_AT_RISK", "55")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env.csv", cfg.Paths.Input)
	assert.Equal(t, 55.0, cfg.Thresholds.AtRisk)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := writeConfigFile(t, "weights: [not, a, map]\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid default",
			mutate: func(c *Config) {},
		},
		{
			name:    "weights not summing to one",
			mutate:  func(c *Config) { c.Weights.Attendance = 0.2 },
			wantErr: "weights must sum to 1.0",
		},
		{
			name:    "empty grade scale",
			mutate:  func(c *Config) { c.GradeScale = nil },
			wantErr: "grade_scale must have at least one band",
		},
		{
			name: "non-descending grade scale",
			mutate: func(c *Config) {
				c.GradeScale = GradeScale{{Letter: "A", Min: 90}, {Letter: "B", Min: 95}}
			},
			wantErr: "strictly descending",
		},
		{
			name:    "threshold above 100",
			mutate:  func(c *Config) { c.Thresholds.AtRisk = 180 },
			wantErr: "AtRisk",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGradeScaleLetter(t *testing.T) {
	scale := Default().GradeScale

	tests := []struct {
		grade float64
		want  string
	}{
		{grade: 95, want: "A"},
		{grade: 90, want: "A"},
		{grade: 89.99, want: "B"},
		{grade: 70, want: "C"},
		{grade: 60, want: "D"},
		{grade: 0, want: "F"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, scale.Letter(tt.grade), "grade %.2f", tt.grade)
	}

	assert.Equal(t, "", GradeScale{}.Letter(50))
}
