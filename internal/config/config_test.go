package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.TargetDir != "" {
		t.Errorf("TargetDir = %q, want empty", cfg.TargetDir)
	}
	if !slices.Equal(cfg.Extensions, []string{".md"}) {
		t.Errorf("Extensions = %q, want [.md]", cfg.Extensions)
	}
	if cfg.KeepGoing {
		t.Error("KeepGoing = true, want false (fail fast)")
	}
	if cfg.Log.SlogLevel() != slog.LevelInfo {
		t.Errorf("Log level = %v, want info", cfg.Log.SlogLevel())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "negative workers",
			mutate:  func(c *Config) { c.Workers = -1 },
			wantErr: true,
		},
		{
			name:    "too many workers",
			mutate:  func(c *Config) { c.Workers = MaxWorkers + 1 },
			wantErr: true,
		},
		{
			name:   "workers at maximum",
			mutate: func(c *Config) { c.Workers = MaxWorkers },
		},
		{
			name:    "extension without dot",
			mutate:  func(c *Config) { c.Extensions = []string{"md"} },
			wantErr: true,
		},
		{
			name:    "extension with separator",
			mutate:  func(c *Config) { c.Extensions = []string{"./md"} },
			wantErr: true,
		},
		{
			name:   "several extensions",
			mutate: func(c *Config) { c.Extensions = []string{".md", ".markdown"} },
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Log.Level = "loud" },
			wantErr: true,
		},
		{
			name:    "unknown log format",
			mutate:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: true,
		},
		{
			name:    "bad date format",
			mutate:  func(c *Config) { c.Metadata.DateFormats = []string{"[YYYY"} },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestLogConfig_SlogLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"DEBUG": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
	}

	for in, want := range tests {
		if got := (LogConfig{Level: in}).SlogLevel(); got != want {
			t.Errorf("SlogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("TOML settings file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "settings.toml")
		writeFile(t, path, "target_dir = \"c:/temp\"\n")

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.TargetDir != "c:/temp" {
			t.Errorf("TargetDir = %q, want %q", cfg.TargetDir, "c:/temp")
		}
		if !slices.Equal(cfg.Extensions, []string{".md"}) {
			t.Errorf("Extensions = %q, want defaults kept", cfg.Extensions)
		}
	})

	t.Run("YAML file with nested sections", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "mdtidy.yaml")
		writeFile(t, path, `targetDir: /notes
workers: 4
keepGoing: true
verify: true
extensions: [.md, .markdown]
log:
  level: debug
  format: json
metadata:
  dateFormats: ["DD.MM.YYYY"]
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.TargetDir != "/notes" || cfg.Workers != 4 || !cfg.KeepGoing || !cfg.Verify {
			t.Errorf("cfg = %+v", cfg)
		}
		if cfg.Log.Format != LogFormatJSON || cfg.Log.SlogLevel() != slog.LevelDebug {
			t.Errorf("Log = %+v", cfg.Log)
		}
		if !slices.Equal(cfg.Metadata.DateFormats, []string{"DD.MM.YYYY"}) {
			t.Errorf("DateFormats = %q", cfg.Metadata.DateFormats)
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unsupported extension returns ErrConfigParse", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.json")
		writeFile(t, path, "{}")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "settings.toml")
		writeFile(t, path, "target_dir = \"/a\"\ntarget = \"/b\"\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid values return ErrInvalidConfig", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "bad.yaml")
		writeFile(t, path, "workers: -3\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("error = %v, want ErrInvalidConfig", err)
		}
	})

	t.Run("variables expand from .env next to config", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, ".env"), "MDTIDY_TEST_NOTES=/from/dotenv\n")
		path := filepath.Join(dir, "mdtidy.yaml")
		writeFile(t, path, "targetDir: ${MDTIDY_TEST_NOTES}/books\n")

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.TargetDir != "/from/dotenv/books" {
			t.Errorf("TargetDir = %q, want %q", cfg.TargetDir, "/from/dotenv/books")
		}
	})

	t.Run("process environment wins over .env", func(t *testing.T) {
		t.Setenv("MDTIDY_TEST_ROOT", "/from/env")
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, ".env"), "MDTIDY_TEST_ROOT=/from/dotenv\n")
		path := filepath.Join(dir, "mdtidy.yaml")
		writeFile(t, path, "targetDir: $MDTIDY_TEST_ROOT\n")

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.TargetDir != "/from/env" {
			t.Errorf("TargetDir = %q, want %q", cfg.TargetDir, "/from/env")
		}
	})

	t.Run("bare name resolved in working directory", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "settings.toml"), "target_dir = \"./notes\"\n")
		t.Chdir(dir)

		cfg, err := LoadConfig("settings")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.TargetDir != "./notes" {
			t.Errorf("TargetDir = %q, want %q", cfg.TargetDir, "./notes")
		}
	})

	t.Run("yaml preferred over toml for same name", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "settings.toml"), "target_dir = \"toml\"\n")
		writeFile(t, filepath.Join(dir, "settings.yaml"), "targetDir: yaml\n")
		t.Chdir(dir)

		cfg, err := LoadConfig("settings")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.TargetDir != "yaml" {
			t.Errorf("TargetDir = %q, want %q", cfg.TargetDir, "yaml")
		}
	})

	t.Run("bare name not found", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		t.Setenv("HOME", t.TempDir())

		_, err := LoadConfig("missing-config")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})
}

func TestLoadDefault(t *testing.T) {
	t.Run("no settings file yields defaults", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		t.Setenv("HOME", t.TempDir())

		cfg, err := LoadDefault()
		if err != nil {
			t.Fatalf("LoadDefault() error = %v", err)
		}
		if cfg.TargetDir != "" {
			t.Errorf("TargetDir = %q, want empty", cfg.TargetDir)
		}
	})

	t.Run("broken settings file is reported", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "settings.toml"), "target_dir = \n")
		t.Chdir(dir)

		if _, err := LoadDefault(); !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})
}
