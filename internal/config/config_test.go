package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lithammer/dedent"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smdiagram/options"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(dedent.Dedent(content)), 0o600))

	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	formats, err := cfg.FormatSet()
	require.NoError(t, err)
	assert.Equal(t, options.FormatAll, formats)
	assert.Equal(t, zerolog.InfoLevel, cfg.Level())
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "smdiagram.toml", `
		definitions = "defs"
		output = "out"
		formats = ["flow", "rules"]
		jobs = 2
		rankdir = "TB"
		log_level = "debug"
		core_fallback = false
	`)

	cfg, err := Load(path, "")
	require.NoError(t, err)

	assert.Equal(t, "defs", cfg.Definitions)
	assert.Equal(t, "out", cfg.Output)
	assert.Equal(t, 2, cfg.Jobs)
	assert.Equal(t, 256, cfg.CacheSize, "unset keys keep their default")
	assert.False(t, cfg.CoreFallback)
	assert.Equal(t, zerolog.DebugLevel, cfg.Level())

	rc, err := cfg.RenderConfig()
	require.NoError(t, err)
	assert.Equal(t, options.FormatFlow|options.FormatRules, rc.Formats)
	assert.Equal(t, "TB", rc.RankDir)
}

func TestLoad_FileErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", `output = `, "failed to parse TOML"},
		{"unknown key", `outptu = "x"`, "unknown keys outptu"},
		{"empty output", `output = " "`, "output must not be empty"},
		{"bad rankdir", `rankdir = "UP"`, "Config.RankDir (oneof)"},
		{"bad format", `formats = ["svg"]`, "Config.Formats[0] (oneof)"},
		{"no formats", `formats = []`, "Config.Formats (min)"},
		{"too many jobs", `jobs = 1000`, "Config.Jobs (lte)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, "c.toml", tt.content)

			_, err := Load(path, "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	_, err := Load(filepath.Join(dir, "missing.toml"), "")
	require.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "smdiagram.toml", `
		output = "from-file"
		jobs = 2
	`)

	t.Setenv(EnvPrefix+"OUTPUT", "from-env")
	t.Setenv(EnvPrefix+"JOBS", "8")
	t.Setenv(EnvPrefix+"FORMATS", "overview, flow")
	t.Setenv(EnvPrefix+"CORE_FALLBACK", "false")
	t.Setenv(EnvPrefix+"RANKDIR", "bt")
	t.Setenv(EnvPrefix+"LOG_LEVEL", "")

	cfg, err := Load(path, "")
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Output)
	assert.Equal(t, 8, cfg.Jobs)
	assert.Equal(t, []string{"overview", "flow"}, cfg.Formats)
	assert.False(t, cfg.CoreFallback)
	assert.Equal(t, "BT", cfg.RankDir)
	assert.Equal(t, "info", cfg.LogLevel, "empty variables are ignored")
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := writeFile(t, dir, ".env", `
		SMDIAGRAM_CACHE_SIZE=16
		SMDIAGRAM_DEFINITIONS=fhir/defs
	`)

	// Unset first so godotenv sets them and t.Setenv restores them afterwards.
	t.Setenv(EnvPrefix+"CACHE_SIZE", "")
	t.Setenv(EnvPrefix+"DEFINITIONS", "")
	require.NoError(t, os.Unsetenv(EnvPrefix+"CACHE_SIZE"))
	require.NoError(t, os.Unsetenv(EnvPrefix+"DEFINITIONS"))

	cfg, err := Load("", envFile)
	require.NoError(t, err)

	assert.Equal(t, 16, cfg.CacheSize)
	assert.Equal(t, "fhir/defs", cfg.Definitions)

	_, err = Load("", filepath.Join(dir, "missing.env"))
	require.NoError(t, err, "a missing env file is not an error")
}

func TestLoad_BadEnvValues(t *testing.T) {
	t.Setenv(EnvPrefix+"JOBS", "many")

	_, err := Load("", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SMDIAGRAM_JOBS")

	t.Setenv(EnvPrefix+"JOBS", "")
	t.Setenv(EnvPrefix+"CORE_FALLBACK", "maybe")

	_, err = Load("", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SMDIAGRAM_CORE_FALLBACK")
}

func TestLevel_Fallback(t *testing.T) {
	cfg := Config{LogLevel: "loud"}
	assert.Equal(t, zerolog.InfoLevel, cfg.Level())
}
