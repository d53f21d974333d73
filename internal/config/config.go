// Package config loads smdiagram settings from smdiagram.toml, a dotenv file
// and SMDIAGRAM_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"smdiagram/internal/render"
	"smdiagram/options"
)

// DefaultFile is the configuration file looked up in the working directory.
const DefaultFile = "smdiagram.toml"

// DefaultEnvFile is the dotenv file loaded when present.
const DefaultEnvFile = ".env"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SMDIAGRAM_"

// Config holds the settings of the command line tool.
type Config struct {
	// Definitions is a directory of StructureDefinition documents.
	Definitions string `toml:"definitions"`
	// Output is the directory diagrams are written to.
	Output string `toml:"output" validate:"required"`
	// Formats lists the diagrams to render.
	Formats []string `toml:"formats" validate:"min=1,dive,oneof=flow overview rules all"`
	// Jobs is the number of documents rendered concurrently.
	Jobs int `toml:"jobs" validate:"gte=1,lte=64"`
	// CacheSize is the number of definitions kept by the resolver cache.
	CacheSize int `toml:"cache_size" validate:"gte=1"`
	// CoreFallback synthesizes base FHIR types missing from Definitions.
	CoreFallback bool `toml:"core_fallback"`
	// RankDir is the Graphviz rank direction of flow diagrams.
	RankDir string `toml:"rankdir" validate:"oneof=LR RL TB BT"`
	// LogLevel is a zerolog level name.
	LogLevel string `toml:"log_level" validate:"oneof=trace debug info warn error disabled"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Output:       "diagrams",
		Formats:      []string{"all"},
		Jobs:         4,
		CacheSize:    256,
		CoreFallback: true,
		RankDir:      render.DefaultRankDir,
		LogLevel:     "info",
	}
}

// Load layers the configuration: defaults, then the TOML file at path, then
// envFile, then SMDIAGRAM_* variables. An empty path loads DefaultFile when it
// exists. Variables already set in the environment win over envFile.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}

	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: failed to load env file: %w", envFile, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}

		return fmt.Errorf("%s: unknown keys %s", path, strings.Join(keys, ", "))
	}

	if meta.IsDefined("output") && strings.TrimSpace(cfg.Output) == "" {
		return fmt.Errorf("%s: output must not be empty", path)
	}

	return nil
}

// applyEnv overrides fields from SMDIAGRAM_* variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		v = strings.TrimSpace(v)

		return v, ok && v != ""
	}

	if v, ok := get("DEFINITIONS"); ok {
		c.Definitions = v
	}

	if v, ok := get("OUTPUT"); ok {
		c.Output = v
	}

	if v, ok := get("FORMATS"); ok {
		c.Formats = strings.Split(v, ",")
		for i := range c.Formats {
			c.Formats[i] = strings.TrimSpace(c.Formats[i])
		}
	}

	if v, ok := get("RANKDIR"); ok {
		c.RankDir = strings.ToUpper(v)
	}

	if v, ok := get("LOG_LEVEL"); ok {
		c.LogLevel = strings.ToLower(v)
	}

	for name, dst := range map[string]*int{"JOBS": &c.Jobs, "CACHE_SIZE": &c.CacheSize} {
		v, ok := get(name)
		if !ok {
			continue
		}

		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}

		*dst = n
	}

	if v, ok := get("CORE_FALLBACK"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sCORE_FALLBACK: %w", EnvPrefix, err)
		}

		c.CoreFallback = b
	}

	return nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	err := validator.New(validator.WithRequiredStructEnabled()).Struct(c)
	if err == nil {
		return nil
	}

	var valErr validator.ValidationErrors
	if errors.As(err, &valErr) {
		lists := make([]string, 0, len(valErr))
		for _, fe := range valErr {
			lists = append(lists, fe.Namespace()+" ("+fe.Tag()+")")
		}

		return fmt.Errorf("invalid configuration: %s", strings.Join(lists, ", "))
	}

	return fmt.Errorf("invalid configuration: %w", err)
}

// FormatSet returns the selected diagram formats.
func (c *Config) FormatSet() (options.FormatEnum, error) {
	return options.ParseFormats(c.Formats...)
}

// Level returns the zerolog level, defaulting to info.
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}

	return level
}

// RenderConfig builds the renderer configuration.
func (c *Config) RenderConfig() (render.Config, error) {
	formats, err := c.FormatSet()
	if err != nil {
		return render.Config{}, err
	}

	rc := render.DefaultConfig()
	rc.Formats = formats
	rc.RankDir = c.RankDir

	return rc, nil
}
