package main

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-mdtidy/internal/config"
)

// envPrefix marks environment variables read by mdtidy.
const envPrefix = "MDTIDY_"

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without editing config files.
type envConfig struct {
	ConfigPath string // MDTIDY_CONFIG: config file name or path
	TargetDir  string // MDTIDY_TARGET_DIR: directory to format
	Workers    int    // MDTIDY_WORKERS: parallel workers
	KeepGoing  string // MDTIDY_KEEP_GOING: "true" or "false"
	LogLevel   string // MDTIDY_LOG_LEVEL: debug, info, warn, error
	LogFormat  string // MDTIDY_LOG_FORMAT: text, json
}

// knownEnvVars lists valid MDTIDY_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDTIDY_CONFIG":     true,
	"MDTIDY_TARGET_DIR": true,
	"MDTIDY_WORKERS":    true,
	"MDTIDY_KEEP_GOING": true,
	"MDTIDY_LOG_LEVEL":  true,
	"MDTIDY_LOG_FORMAT": true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers are ignored rather than reported.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MDTIDY_CONFIG"),
		TargetDir:  os.Getenv("MDTIDY_TARGET_DIR"),
		KeepGoing:  os.Getenv("MDTIDY_KEEP_GOING"),
		LogLevel:   os.Getenv("MDTIDY_LOG_LEVEL"),
		LogFormat:  os.Getenv("MDTIDY_LOG_FORMAT"),
	}

	if workers := os.Getenv("MDTIDY_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// unknownEnvVars returns MDTIDY_* variables that mdtidy does not read.
// Helps catch typos like MDTIDY_WORKER instead of MDTIDY_WORKERS.
func unknownEnvVars() []string {
	var unknown []string
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// warnUnknownEnvVars logs one warning per unknown MDTIDY_* variable.
func warnUnknownEnvVars(logger *slog.Logger) {
	for _, name := range unknownEnvVars() {
		logger.Warn("unknown environment variable (typo?)", slog.String("name", name))
	}
}

// applyEnvConfig overrides config values with environment values.
// Priority: CLI flags > env vars > config file > defaults
// (CLI flags are applied later by resolveSettings).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.TargetDir != "" {
		cfg.TargetDir = env.TargetDir
	}
	if env.Workers > 0 {
		cfg.Workers = env.Workers
	}
	if b, err := strconv.ParseBool(env.KeepGoing); err == nil {
		cfg.KeepGoing = b
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.LogFormat != "" {
		cfg.Log.Format = env.LogFormat
	}
}
