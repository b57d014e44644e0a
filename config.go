package problemlens

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"dario.cat/mergo"
	"github.com/goccy/go-yaml"
)

type Config struct {
	LogLevel slog.Level `yaml:"logLevel"`
	Enabled  *bool      `yaml:"enabled"`
	// DelayMs coalesces bursts of document-change events before a
	// refresh pass runs. Zero means refresh immediately.
	DelayMs                 int             `yaml:"delayMs"`
	EnabledDiagnosticLevels []string        `yaml:"enabledDiagnosticLevels"`
	MessageTemplate         string          `yaml:"messageTemplate"`
	RemoveLinebreaks        *bool           `yaml:"removeLinebreaks"`
	ReplaceLinebreaksSymbol string          `yaml:"replaceLinebreaksSymbol"`
	Exclude                 []string        `yaml:"exclude"`
	ExcludeBySource         []string        `yaml:"excludeBySource"`
	ExcludePatterns         []string        `yaml:"excludePatterns"`
	StatusBar               StatusBarConfig `yaml:"statusBar"`
	Server                  ServerConfig    `yaml:"server"`
}

type StatusBarConfig struct {
	Enabled  *bool  `yaml:"enabled"`
	Strategy string `yaml:"strategy"`
	// Template overrides messageTemplate for the status bar when set.
	Template      string `yaml:"template"`
	Priority      int    `yaml:"priority"`
	Alignment     string `yaml:"alignment"`
	ColorsEnabled *bool  `yaml:"colorsEnabled"`
}

// ServerConfig describes the language server the demo host launches.
// The library itself never starts a server; only cmd/problemlens does.
type ServerConfig struct {
	Name                  string         `yaml:"name"`
	Command               string         `yaml:"command"`
	Args                  []string       `yaml:"args"`
	InitializationOptions map[string]any `yaml:"initializationOptions"`
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel:                slog.LevelInfo,
		Enabled:                 Ptr(true),
		DelayMs:                 300,
		EnabledDiagnosticLevels: []string{"error", "warning", "info", "hint"},
		MessageTemplate:         "$message",
		RemoveLinebreaks:        Ptr(true),
		ReplaceLinebreaksSymbol: "⏎",
		StatusBar: StatusBarConfig{
			Enabled:       Ptr(true),
			Strategy:      "activeLine",
			Alignment:     "left",
			ColorsEnabled: Ptr(false),
		},
	}
}

func LoadConfigFile(fname string) (*Config, error) {
	r, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return LoadConfig(r)
}

func LoadConfig(r io.Reader) (*Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && err != io.EOF {
		return nil, err
	}

	if err := mergo.Merge(&cfg, DefaultConfig()); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if _, err := ParseStrategy(c.StatusBar.Strategy); err != nil {
		return fmt.Errorf("statusBar.strategy: %w", err)
	}

	if a := c.StatusBar.Alignment; a != "left" && a != "right" {
		return fmt.Errorf("statusBar.alignment: must be left or right, got %q", a)
	}

	for _, level := range c.EnabledDiagnosticLevels {
		if _, ok := ParseSeverity(level); !ok {
			return fmt.Errorf("enabledDiagnosticLevels: unknown level %q", level)
		}
	}

	return nil
}

// StatusBarTemplate returns the template the status bar renders with:
// its own when configured, the shared message template otherwise.
func (c *Config) StatusBarTemplate() string {
	if c.StatusBar.Template != "" {
		return c.StatusBar.Template
	}
	return c.MessageTemplate
}

func (c *Config) FormatOptions() FormatOptions {
	return FormatOptions{
		RemoveLinebreaks:        OrZeroValue(c.RemoveLinebreaks),
		ReplaceLinebreaksSymbol: c.ReplaceLinebreaksSymbol,
	}
}
