package shaft

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// MaxWidth is the widest shaft supported. Rows are stored as column bitmasks.
const MaxWidth = 16

// Config holds the fixed parameters of a simulation.
type Config struct {
	// Width is the number of columns in the shaft.
	Width int `yaml:"width"`

	// SpawnColumn is the column of a new piece's left edge.
	SpawnColumn int `yaml:"spawn_column"`

	// SpawnRowOffset is how far above the stack top a new piece's bottom row
	// appears.
	SpawnRowOffset int `yaml:"spawn_row_offset"`

	// PieceCycle is the order in which shapes are dropped, repeated forever.
	PieceCycle []Shape `yaml:"piece_cycle"`

	// Prune enables discarding rows that lie below a completely filled row.
	Prune bool `yaml:"prune"`

	// MaxSimulated caps the pieces an Extrapolator drops while looking for a
	// cycle. Zero means no cap.
	MaxSimulated int64 `yaml:"max_simulated"`

	// Logger receives debug records about cycles and pruning. Nil discards them.
	Logger *slog.Logger `yaml:"-"`
}

// DefaultConfig returns the standard seven-wide shaft configuration.
func DefaultConfig() Config {
	return Config{
		Width:          7,
		SpawnColumn:    2,
		SpawnRowOffset: 4,
		PieceCycle:     Shapes(),
		Prune:          true,
		MaxSimulated:   2_000_000,
	}
}

// Validate checks that every piece in the cycle can spawn inside the shaft.
func (c Config) Validate() error {
	if c.Width < 1 || c.Width > MaxWidth {
		return fmt.Errorf("%w: width %d out of range [1, %d]", ErrInvalidConfig, c.Width, MaxWidth)
	}
	if c.SpawnColumn < 0 {
		return fmt.Errorf("%w: negative spawn column %d", ErrInvalidConfig, c.SpawnColumn)
	}
	if c.SpawnRowOffset < 1 {
		return fmt.Errorf("%w: spawn row offset %d must be at least 1", ErrInvalidConfig, c.SpawnRowOffset)
	}
	if c.MaxSimulated < 0 {
		return fmt.Errorf("%w: negative max simulated %d", ErrInvalidConfig, c.MaxSimulated)
	}
	if len(c.PieceCycle) == 0 {
		return fmt.Errorf("%w: empty piece cycle", ErrInvalidConfig)
	}
	for i, s := range c.PieceCycle {
		if !s.Valid() {
			return fmt.Errorf("%w: piece %d has unknown shape %d", ErrInvalidConfig, i, s)
		}
		if c.SpawnColumn+s.Width() > c.Width {
			return fmt.Errorf("%w: %s does not fit at spawn column %d in width %d",
				ErrInvalidConfig, s, c.SpawnColumn, c.Width)
		}
	}
	return nil
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

// LoadConfig builds a Config from the defaults, then the YAML file at path
// (if path is non-empty and the file exists), then PYROCLAST_* environment
// variables. The result is validated.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if err := loadConfigFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
	}

	if err := loadConfigFromEnv(&cfg); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	return nil
}

func loadConfigFromEnv(cfg *Config) error {
	ints := []struct {
		name string
		dst  *int
	}{
		{"PYROCLAST_WIDTH", &cfg.Width},
		{"PYROCLAST_SPAWN_COLUMN", &cfg.SpawnColumn},
		{"PYROCLAST_SPAWN_ROW_OFFSET", &cfg.SpawnRowOffset},
	}
	for _, v := range ints {
		s := os.Getenv(v.name)
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, v.name, s, err)
		}
		*v.dst = n
	}

	if s := os.Getenv("PYROCLAST_MAX_SIMULATED"); s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: PYROCLAST_MAX_SIMULATED=%q: %v", ErrInvalidConfig, s, err)
		}
		cfg.MaxSimulated = n
	}

	if s := os.Getenv("PYROCLAST_PIECES"); s != "" {
		var cycle []Shape
		for _, name := range strings.Split(s, ",") {
			shape, err := ParseShape(strings.TrimSpace(name))
			if err != nil {
				return fmt.Errorf("PYROCLAST_PIECES: %w", err)
			}
			cycle = append(cycle, shape)
		}
		cfg.PieceCycle = cycle
	}

	if s := os.Getenv("PYROCLAST_PRUNE"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return fmt.Errorf("%w: PYROCLAST_PRUNE=%q: %v", ErrInvalidConfig, s, err)
		}
		cfg.Prune = b
	}
	return nil
}

// UnmarshalYAML decodes a shape from its name.
func (s *Shape) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}
	shape, err := ParseShape(name)
	if err != nil {
		return err
	}
	*s = shape
	return nil
}

// MarshalYAML encodes a shape as its lowercase name.
func (s Shape) MarshalYAML() (any, error) {
	return strings.ToLower(s.String()), nil
}
