package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultDatasetPath is the file name the dashboard expects next to where it runs.
const DefaultDatasetPath = "countriesMBTI_16types.csv"

// Global configuration structure.
type Global struct {
	DatasetPath string `mapstructure:"dataset_path" yaml:"dataset_path"`
	// Delimiter is "," ";" or "tab"; empty sniffs by extension.
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`

	// View defaults
	TopN           int  `mapstructure:"top_n" yaml:"top_n"`
	SortDescending bool `mapstructure:"sort_descending" yaml:"sort_descending"`
	ChartWidth     int  `mapstructure:"chart_width" yaml:"chart_width"`

	// Summary
	SampleRows   int     `mapstructure:"sample_rows" yaml:"sample_rows"`
	SumTolerance float64 `mapstructure:"sum_tolerance" yaml:"sum_tolerance"`

	// Logging
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`

	// HTTP
	ListenAddr string `mapstructure:"listen_addr" yaml:"listen_addr"`
}

// Default returns the built-in configuration.
func Default() Global {
	return Global{
		DatasetPath:    DefaultDatasetPath,
		TopN:           10,
		SortDescending: true,
		ChartWidth:     40,
		SampleRows:     5,
		SumTolerance:   0.02,
		LogLevel:       "warn",
		LogFormat:      "console",
		ListenAddr:     ":8080",
	}
}

// DefaultPath returns ~/.mbtiboard/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".mbtiboard", "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.mbtiboard/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	return load(cfgFile, true)
}

// LoadFile loads the config file over defaults, ignoring MBTIBOARD_* env
// vars. Use it when the result is written back with Save.
func LoadFile(cfgFile string) (*Global, error) {
	return load(cfgFile, false)
}

func load(cfgFile string, withEnv bool) (*Global, error) {
	v := viper.New()
	if withEnv {
		v.SetEnvPrefix("MBTIBOARD")
		v.AutomaticEnv()
	}

	// Defaults
	d := Default()
	v.SetDefault("dataset_path", d.DatasetPath)
	v.SetDefault("delimiter", d.Delimiter)
	v.SetDefault("top_n", d.TopN)
	v.SetDefault("sort_descending", d.SortDescending)
	v.SetDefault("chart_width", d.ChartWidth)
	v.SetDefault("sample_rows", d.SampleRows)
	v.SetDefault("sum_tolerance", d.SumTolerance)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("listen_addr", d.ListenAddr)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".mbtiboard"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate rejects values no command could use.
func (c *Global) Validate() error {
	if c.TopN <= 0 {
		return fmt.Errorf("top_n must be positive, got %d", c.TopN)
	}
	if c.ChartWidth <= 0 {
		return fmt.Errorf("chart_width must be positive, got %d", c.ChartWidth)
	}
	if c.SumTolerance < 0 {
		return fmt.Errorf("sum_tolerance must not be negative, got %g", c.SumTolerance)
	}
	if _, err := ParseDelimiter(c.Delimiter); err != nil {
		return err
	}
	return nil
}

// ParseDelimiter maps the config spelling onto a rune; "" yields 0 (sniff).
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case ",":
		return ',', nil
	case ";":
		return ';', nil
	case "\t", "tab":
		return '\t', nil
	default:
		return 0, fmt.Errorf("unsupported delimiter: %q (use ','|';'|'tab')", s)
	}
}
