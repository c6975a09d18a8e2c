package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"claro/pkg/interpreter"
	"claro/pkg/speech"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the home directory
const FileName = ".claro.yaml"

// Theme selects the colour palette
type Theme string

const (
	ThemeNormal Theme = "normal"
	ThemeHigh   Theme = "high"
)

// UnmarshalYAML accepts the palette names and their aliases, case-insensitively
func (t *Theme) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.AliasNode {
		return t.UnmarshalYAML(value.Alias)
	}
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("config: theme must be a string, found %s", value.ShortTag())
	}

	switch strings.ToLower(strings.TrimSpace(value.Value)) {
	case "", "normal":
		*t = ThemeNormal
	case "high", "high-contrast", "hc":
		*t = ThemeHigh
	default:
		return fmt.Errorf("config: line %d: unknown theme %q (expected normal or high)", value.Line, value.Value)
	}
	return nil
}

type Limits struct {
	Variables      int `yaml:"variables"`
	Functions      int `yaml:"functions"`
	CallDepth      int `yaml:"call_depth"`
	BlockLines     int `yaml:"block_lines"`
	LoopIterations int `yaml:"loop_iterations"`
}

type Speech struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
}

// Config holds the interpreter settings read from YAML. Keys missing from
// the file keep their defaults.
type Config struct {
	Path    string `yaml:"-"`
	Debug   bool   `yaml:"debug"`
	Audio   bool   `yaml:"audio"`
	Theme   Theme  `yaml:"theme"`
	Color   bool   `yaml:"color"`
	History bool   `yaml:"history"`
	Limits  Limits `yaml:"limits"`
	Speech  Speech `yaml:"speech"`
}

// ValidationError aggregates configuration problems
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// Default returns the built-in settings
func Default() *Config {
	limits := interpreter.DefaultLimits()
	return &Config{
		Theme:   ThemeNormal,
		Color:   true,
		History: true,
		Limits: Limits{
			Variables:      limits.Variables,
			Functions:      limits.Functions,
			CallDepth:      limits.CallDepth,
			BlockLines:     limits.BlockLines,
			LoopIterations: limits.LoopIterations,
		},
		Speech: Speech{Command: speech.Espeak().Name},
	}
}

// Load reads a configuration file on top of the defaults
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	cfg := Default()
	cfg.Path = absPath

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault reads $HOME/.claro.yaml when it exists, the defaults otherwise
func LoadDefault() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Default(), nil
	}

	path := filepath.Join(home, FileName)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("config: stat %s: %w", path, err)
	}
	return Load(path)
}

func (c *Config) validate() error {
	var issues []string
	check := func(name string, v int) {
		if v < 0 {
			issues = append(issues, fmt.Sprintf("limits.%s must not be negative (got %d)", name, v))
		}
	}
	check("variables", c.Limits.Variables)
	check("functions", c.Limits.Functions)
	check("call_depth", c.Limits.CallDepth)
	check("block_lines", c.Limits.BlockLines)
	check("loop_iterations", c.Limits.LoopIterations)

	if c.Audio && strings.TrimSpace(c.Speech.Command) == "" {
		issues = append(issues, "speech.command is required when audio is enabled")
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// InterpreterLimits converts the limits section for the interpreter
func (c *Config) InterpreterLimits() interpreter.Limits {
	return interpreter.Limits{
		Variables:      c.Limits.Variables,
		Functions:      c.Limits.Functions,
		CallDepth:      c.Limits.CallDepth,
		BlockLines:     c.Limits.BlockLines,
		LoopIterations: c.Limits.LoopIterations,
	}
}

// Speaker returns the speech command described by the speech section
func (c *Config) Speaker() speech.Command {
	return speech.Command{Name: c.Speech.Command, Args: c.Speech.Args}
}
