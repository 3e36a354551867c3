package shaft

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 7, cfg.Width)
	assert.Equal(t, 2, cfg.SpawnColumn)
	assert.Equal(t, 4, cfg.SpawnRowOffset)
	assert.Equal(t, []Shape{ShapeFlat, ShapeCross, ShapeEl, ShapeTall, ShapeSquare}, cfg.PieceCycle)
	assert.True(t, cfg.Prune)
	assert.Equal(t, int64(2_000_000), cfg.MaxSimulated)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"too wide", func(c *Config) { c.Width = MaxWidth + 1 }},
		{"negative spawn column", func(c *Config) { c.SpawnColumn = -1 }},
		{"spawn inside stack", func(c *Config) { c.SpawnRowOffset = 0 }},
		{"negative max simulated", func(c *Config) { c.MaxSimulated = -1 }},
		{"no pieces", func(c *Config) { c.PieceCycle = nil }},
		{"unknown shape", func(c *Config) { c.PieceCycle = []Shape{ShapeFlat, Shape(9)} }},
		{"flat does not fit", func(c *Config) { c.Width = 5 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.modify(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	cfg := DefaultConfig()
	cfg.Width = 5
	cfg.PieceCycle = []Shape{ShapeCross, ShapeTall}
	assert.NoError(t, cfg.Validate())
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pyroclast.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
width: 9
spawn_column: 3
piece_cycle: [tall, square, Cross]
prune: false
max_simulated: 5000
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Width)
	assert.Equal(t, 3, cfg.SpawnColumn)
	assert.Equal(t, 4, cfg.SpawnRowOffset, "unset fields keep their defaults")
	assert.Equal(t, []Shape{ShapeTall, ShapeSquare, ShapeCross}, cfg.PieceCycle)
	assert.False(t, cfg.Prune)
	assert.Equal(t, int64(5000), cfg.MaxSimulated)
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "piece_cycle: [flat, zigzag]\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = LoadConfig(writeConfig(t, "width: [1, 2]\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = LoadConfig(writeConfig(t, "width: 3\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadConfigEnv(t *testing.T) {
	path := writeConfig(t, "width: 9\n")
	t.Setenv("PYROCLAST_WIDTH", "8")
	t.Setenv("PYROCLAST_SPAWN_ROW_OFFSET", "5")
	t.Setenv("PYROCLAST_PIECES", "square, tall")
	t.Setenv("PYROCLAST_PRUNE", "false")
	t.Setenv("PYROCLAST_MAX_SIMULATED", "0")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Width)
	assert.Equal(t, 5, cfg.SpawnRowOffset)
	assert.Equal(t, []Shape{ShapeSquare, ShapeTall}, cfg.PieceCycle)
	assert.False(t, cfg.Prune)
	assert.Zero(t, cfg.MaxSimulated)

	t.Setenv("PYROCLAST_SPAWN_COLUMN", "two")
	_, err = LoadConfig(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestShapeYAML(t *testing.T) {
	out, err := yaml.Marshal(struct {
		Pieces []Shape `yaml:"pieces"`
	}{Shapes()})
	require.NoError(t, err)
	assert.Equal(t, "pieces:\n    - flat\n    - cross\n    - el\n    - tall\n    - square\n", string(out))
}
