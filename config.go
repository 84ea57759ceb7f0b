package offmesh

import (
	"fmt"
	"os"
	"regexp"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"github.com/shibukawa/offmesh/parser"
)

// DefaultPrecision is the number of decimal places written by the formatter.
const DefaultPrecision = 6

// MaxPrecision is the largest accepted format.precision. float32 carries about
// nine significant digits, more places only reproduce noise.
const MaxPrecision = 9

// Config represents the offmesh configuration
type Config struct {
	// ColorFormat is the name of the parser.ColorFormat used to read colors.
	ColorFormat string        `yaml:"color_format"`
	Limits      parser.Limits `yaml:"limits"`
	Format      FormatConfig  `yaml:"format"`
	// Rules are CEL expressions evaluated by `offmesh validate`.
	Rules []string `yaml:"rules"`
}

// FormatConfig represents settings of the OFF formatter
type FormatConfig struct {
	Precision int `yaml:"precision"`
	// ColorFormat is used when writing colors. Empty means the input color format.
	ColorFormat string `yaml:"color_format"`
}

// LoadConfig loads configuration from the specified file.
// A missing file yields DefaultConfig.
func LoadConfig(configPath string) (*Config, error) {
	// Load .env files first
	err := loadEnvFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	_, err = os.Stat(configPath)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML with strict mode to detect unknown fields
	var config Config

	err = yaml.UnmarshalWithOptions(data, &config, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Expanded before validation so that `color_format: ${OFF_COLOR_FORMAT}` works
	expandConfigEnvVars(&config)

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	applyDefaults(&config)

	return &config, nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		ColorFormat: parser.DefaultColorFormat.String(),
		Limits:      parser.DefaultLimits(),
		Format: FormatConfig{
			Precision:   DefaultPrecision,
			ColorFormat: parser.DefaultColorFormat.String(),
		},
		Rules: []string{},
	}
}

// validateConfig validates the configuration for common errors and inconsistencies
func validateConfig(config *Config) error {
	if config.ColorFormat != "" {
		if _, err := parser.ParseColorFormat(config.ColorFormat); err != nil {
			return fmt.Errorf("%w: color_format: %w", ErrConfigValidation, err)
		}
	}

	if config.Format.ColorFormat != "" {
		if _, err := parser.ParseColorFormat(config.Format.ColorFormat); err != nil {
			return fmt.Errorf("%w: format.color_format: %w", ErrConfigValidation, err)
		}
	}

	if config.Limits.VertexCount < 0 {
		return fmt.Errorf("%w: limits.vertex_count must be non-negative, got %d", ErrConfigValidation, config.Limits.VertexCount)
	}

	if config.Limits.FaceCount < 0 {
		return fmt.Errorf("%w: limits.face_count must be non-negative, got %d", ErrConfigValidation, config.Limits.FaceCount)
	}

	if config.Limits.FaceVertexCount < 0 {
		return fmt.Errorf("%w: limits.face_vertex_count must be non-negative, got %d", ErrConfigValidation, config.Limits.FaceVertexCount)
	}

	if config.Format.Precision < 0 || config.Format.Precision > MaxPrecision {
		return fmt.Errorf("%w: format.precision must be between 0 and %d, got %d", ErrConfigValidation, MaxPrecision, config.Format.Precision)
	}

	for i, rule := range config.Rules {
		if rule == "" {
			return fmt.Errorf("%w: rules[%d]: expression is required", ErrConfigValidation, i)
		}
	}

	return nil
}

// applyDefaults applies default values to missing configuration fields.
// Zero limits are treated as unset.
func applyDefaults(config *Config) {
	if config.ColorFormat == "" {
		config.ColorFormat = parser.DefaultColorFormat.String()
	}

	defaults := parser.DefaultLimits()

	if config.Limits.VertexCount == 0 {
		config.Limits.VertexCount = defaults.VertexCount
	}

	if config.Limits.FaceCount == 0 {
		config.Limits.FaceCount = defaults.FaceCount
	}

	if config.Limits.FaceVertexCount == 0 {
		config.Limits.FaceVertexCount = defaults.FaceVertexCount
	}

	if config.Format.Precision == 0 {
		config.Format.Precision = DefaultPrecision
	}

	if config.Format.ColorFormat == "" {
		config.Format.ColorFormat = config.ColorFormat
	}

	if config.Rules == nil {
		config.Rules = []string{}
	}
}

// loadEnvFiles loads .env files if they exist
func loadEnvFiles() error {
	if fileExists(".env") {
		err := godotenv.Load(".env")
		if err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	return nil
}

var (
	bracedEnvVar = regexp.MustCompile(`\$\{([^}]+)\}`)
	plainEnvVar  = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// expandEnvVars expands environment variables in the format ${VAR} or $VAR
func expandEnvVars(s string) string {
	s = bracedEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})

	return plainEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[1:])
	})
}

// expandConfigEnvVars expands environment variables in string settings.
// Rules are left alone, they are CEL source.
func expandConfigEnvVars(config *Config) {
	config.ColorFormat = expandEnvVars(config.ColorFormat)
	config.Format.ColorFormat = expandEnvVars(config.Format.ColorFormat)
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// ParserOptions builds the options passed to parser.Parse.
func (c *Config) ParserOptions() (parser.Options, error) {
	format, err := parser.ParseColorFormat(c.ColorFormat)
	if err != nil {
		return parser.Options{}, err
	}

	return parser.Options{ColorFormat: format, Limits: c.Limits}, nil
}

// OutputColorFormat returns the color format written by the formatter.
func (c *Config) OutputColorFormat() (parser.ColorFormat, error) {
	if c.Format.ColorFormat == "" {
		return parser.ParseColorFormat(c.ColorFormat)
	}

	return parser.ParseColorFormat(c.Format.ColorFormat)
}
