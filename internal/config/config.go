package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"
)

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Method name casing for generated builder calls
const (
	MethodCaseVerbatim = "verbatim"
	MethodCaseCamel    = "camel"
)

// Config represents the complete configuration for asserthint
type Config struct {
	Color   ColorConfig   `yaml:"color"`
	Parser  ParserConfig  `yaml:"parser"`
	Builder BuilderConfig `yaml:"builder"`
	Dev     DevConfig     `yaml:"dev"`
}

// ColorConfig controls hint colorization
type ColorConfig struct {
	Mode string `yaml:"mode"`
}

// ParserConfig bounds the work done on untrusted input
type ParserConfig struct {
	MaxDepth      int   `yaml:"max_depth"`
	MaxInputBytes int64 `yaml:"max_input_bytes"`
}

// BuilderConfig controls generated builder code
type BuilderConfig struct {
	Indent        int               `yaml:"indent"`
	ListFactory   string            `yaml:"list_factory"`
	MapFactory    string            `yaml:"map_factory"`
	BuilderMethod string            `yaml:"builder_method"`
	BuildMethod   string            `yaml:"build_method"`
	MethodCase    string            `yaml:"method_case"`
	FieldMappings map[string]string `yaml:"field_mappings"`
	SkipFields    []FieldPattern    `yaml:"skip_fields"`
}

// FieldPattern selects fields by a regular expression on their name
type FieldPattern struct {
	Pattern string `yaml:"pattern"`
	Comment string `yaml:"comment,omitempty"`

	// compiled regex (not serialized)
	regex *regexp.Regexp
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Color: ColorConfig{
			Mode: ColorAuto,
		},
		Parser: ParserConfig{
			MaxDepth:      256,
			MaxInputBytes: 1 << 20,
		},
		Builder: BuilderConfig{
			Indent:        2,
			ListFactory:   "List.of",
			MapFactory:    "Map.of",
			BuilderMethod: "builder",
			BuildMethod:   "build",
			MethodCase:    MethodCaseVerbatim,
			FieldMappings: make(map[string]string),
			SkipFields:    []FieldPattern{},
		},
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.compilePatterns(); err != nil {
		return nil, fmt.Errorf("failed to compile patterns: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".asserthint.yml", ".asserthint.yaml", "asserthint.yml", "asserthint.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks enumerated and numeric settings
func (c *Config) Validate() error {
	switch c.Color.Mode {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color mode '%s': must be one of auto, always, never", c.Color.Mode)
	}
	switch c.Builder.MethodCase {
	case MethodCaseVerbatim, MethodCaseCamel:
	default:
		return fmt.Errorf("invalid builder method case '%s': must be verbatim or camel", c.Builder.MethodCase)
	}
	if c.Builder.Indent < 0 {
		return fmt.Errorf("builder indent must not be negative, got %d", c.Builder.Indent)
	}
	if c.Parser.MaxDepth < 0 {
		return fmt.Errorf("parser max_depth must not be negative, got %d", c.Parser.MaxDepth)
	}
	if c.Parser.MaxInputBytes < 0 {
		return fmt.Errorf("parser max_input_bytes must not be negative, got %d", c.Parser.MaxInputBytes)
	}
	return nil
}

// compilePatterns compiles all regex patterns in the config
func (c *Config) compilePatterns() error {
	for i := range c.Builder.SkipFields {
		skip := &c.Builder.SkipFields[i]
		regex, err := regexp.Compile(skip.Pattern)
		if err != nil {
			return fmt.Errorf("invalid skip field pattern '%s': %w", skip.Pattern, err)
		}
		skip.regex = regex
	}
	return nil
}

// MatchesField checks if this pattern matches the given field name
func (fp *FieldPattern) MatchesField(fieldName string) bool {
	if fp.regex == nil {
		// Try to compile if not already compiled (fallback)
		regex, err := regexp.Compile(fp.Pattern)
		if err != nil {
			return false
		}
		fp.regex = regex
	}
	return fp.regex.MatchString(fieldName)
}

// MethodName returns the builder method used to set a field
func (c *Config) MethodName(fieldName string) string {
	if mapped, exists := c.Builder.FieldMappings[fieldName]; exists {
		return mapped
	}

	if c.Builder.MethodCase == MethodCaseCamel {
		return strcase.ToLowerCamel(fieldName)
	}

	return fieldName
}

// ShouldSkipField checks if a field is left out of generated builder code
func (c *Config) ShouldSkipField(fieldName string) bool {
	for i := range c.Builder.SkipFields {
		if c.Builder.SkipFields[i].MatchesField(fieldName) {
			return true
		}
	}
	return false
}

// ColorEnabled resolves the color mode. isTerminal reports whether the
// output goes to an interactive terminal and only matters in auto mode.
func (c *Config) ColorEnabled(isTerminal bool) bool {
	switch c.Color.Mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return isTerminal && os.Getenv("NO_COLOR") == ""
	}
}

// LoadConfigWithCLI loads config with CLI argument precedence. Empty CLI
// values leave the file (or default) setting alone.
func LoadConfigWithCLI(configPath, cliColor string, cliDebug bool) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if cliColor != "" {
		cfg.Color.Mode = cliColor
	}
	if cliDebug {
		cfg.Dev.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
