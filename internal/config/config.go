package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"

	"github.com/alnah/go-mdtidy/internal/codec"
	"github.com/alnah/go-mdtidy/internal/dateutil"
	"github.com/alnah/go-mdtidy/internal/fileutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidConfig   = errors.New("invalid config")
)

// DefaultConfigName is looked up when no --config flag is given.
const DefaultConfigName = "settings"

// MaxWorkers caps the worker count accepted from config and flags.
const MaxWorkers = 64

// AppDirName is the directory under the user config dir searched for configs.
const AppDirName = "mdtidy"

// Log levels and formats accepted in config.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// searchExtensions are tried in order when resolving a bare config name.
var searchExtensions = []string{".yaml", ".yml", ".toml"}

var extensionPattern = regexp.MustCompile(`^\.[^./\\]+$`)

// validExtension rejects empty and path-like entries before the shape check.
func validExtension(value any) error {
	ext, _ := value.(string)
	return fileutil.ValidateExtension(ext)
}

// Config holds everything the formatter needs from a config file.
// YAML keys are camelCase; TOML keys are snake_case so a settings.toml
// with a single target_dir line keeps working.
type Config struct {
	TargetDir  string         `yaml:"targetDir" toml:"target_dir"`
	Extensions []string       `yaml:"extensions" toml:"extensions"`
	Workers    int            `yaml:"workers" toml:"workers"`
	KeepGoing  bool           `yaml:"keepGoing" toml:"keep_going"` // false = stop at first failure
	Verify     bool           `yaml:"verify" toml:"verify"`        // compare heading outlines
	Log        LogConfig      `yaml:"log" toml:"log"`
	Metadata   MetadataConfig `yaml:"metadata" toml:"metadata"`
}

// LogConfig selects the slog handler and level.
type LogConfig struct {
	Level  string `yaml:"level" toml:"level"`   // debug, info, warn, error
	Format string `yaml:"format" toml:"format"` // text, json
}

// MetadataConfig controls book metadata extraction.
type MetadataConfig struct {
	DateFormats []string `yaml:"dateFormats" toml:"date_formats"`
}

// Validate checks the log settings.
func (c LogConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Level, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.Format, validation.In(LogFormatText, LogFormatJSON)),
	)
}

// SlogLevel maps Level to a slog.Level, defaulting to info.
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Validate checks that every date format converts to a layout.
func (c MetadataConfig) Validate() error {
	return dateutil.ValidateFormats(c.DateFormats)
}

// Validate checks field ranges. TargetDir is not required here because
// command-line arguments may supply the target instead.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.Workers, validation.Min(0), validation.Max(MaxWorkers)),
		validation.Field(&c.Extensions, validation.Each(validation.By(validExtension), validation.Match(extensionPattern).Error("must look like .md"))),
		validation.Field(&c.Log),
		validation.Field(&c.Metadata),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is found.
func DefaultConfig() *Config {
	return &Config{
		Extensions: []string{".md"},
		Log:        LogConfig{Level: "info", Format: LogFormatText},
		Metadata:   MetadataConfig{DateFormats: append([]string(nil), dateutil.DefaultDateFormats...)},
	}
}

// LoadConfig loads configuration from a file path or config name.
// A value containing a path separator or a known extension is a path.
// Otherwise it is a name searched as name.yaml, name.yml, name.toml in the
// working directory, then in the user config directory under mdtidy/.
//
// ${VAR} references are expanded before decoding. Variables come from the
// process environment, then from a .env file next to the config.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isConfigPath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	format, err := codec.FormatFromPath(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	env, err := readDotEnv(filepath.Dir(configPath))
	if err != nil {
		return nil, fmt.Errorf("%w: .env: %v", ErrConfigParse, err)
	}
	expanded := expandEnv(string(data), env)

	cfg := DefaultConfig()
	if err := codec.UnmarshalStrict([]byte(expanded), cfg, format); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDefault loads the default config name if one exists and otherwise
// returns DefaultConfig. Parse and validation errors are still reported.
func LoadDefault() (*Config, error) {
	cfg, err := LoadConfig(DefaultConfigName)
	if errors.Is(err, ErrConfigNotFound) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// isConfigPath returns true if s should be read directly rather than searched.
func isConfigPath(s string) bool {
	if fileutil.IsFilePath(s) {
		return true
	}
	_, err := codec.FormatFromPath(s)
	return err == nil
}

// resolveConfigPath searches for a config file by name in standard locations.
func resolveConfigPath(name string) (string, error) {
	dirs := []string{"."}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(userConfigDir, AppDirName))
	}

	tried := make([]string, 0, len(dirs)*len(searchExtensions))
	for _, dir := range dirs {
		for _, ext := range searchExtensions {
			candidate := filepath.Join(dir, name+ext)
			if fileutil.FileExists(candidate) {
				return candidate, nil
			}
			tried = append(tried, candidate)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

// readDotEnv reads dir/.env if present. A missing file is not an error.
func readDotEnv(dir string) (map[string]string, error) {
	path := filepath.Join(dir, ".env")
	if !fileutil.FileExists(path) {
		return nil, nil
	}
	return godotenv.Read(path)
}

// expandEnv replaces ${VAR} and $VAR using the process environment first,
// then the .env values. Unknown variables expand to "".
func expandEnv(s string, dotenv map[string]string) string {
	return os.Expand(s, func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return dotenv[key]
	})
}
