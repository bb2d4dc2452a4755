// Package codec decodes configuration and metadata documents in YAML or
// TOML, isolating the third-party parsers from their callers.
package codec

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
)

// Format identifies a serialization format.
type Format string

// Supported formats.
const (
	YAML Format = "yaml"
	TOML Format = "toml"
)

// MaxInputSize limits decoder input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData           = errors.New("codec: nil or empty data")
	ErrNilDestination    = errors.New("codec: nil destination pointer")
	ErrInputTooLarge     = errors.New("codec: input exceeds maximum size")
	ErrUnsupportedFormat = errors.New("codec: unsupported format")
	ErrUnknownField      = errors.New("codec: unknown field")
)

// FormatFromPath picks a format from a file extension (.yaml, .yml, .toml).
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// Unmarshal decodes data in the given format into v, ignoring unknown fields.
func Unmarshal(data []byte, v any, format Format) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	switch format {
	case YAML:
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("codec: %w", err)
		}
	case TOML:
		if _, err := toml.Decode(string(data), v); err != nil {
			return fmt.Errorf("codec: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return nil
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any, format Format) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	switch format {
	case YAML:
		if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
			return fmt.Errorf("codec: %w", err)
		}
	case TOML:
		md, err := toml.Decode(string(data), v)
		if err != nil {
			return fmt.Errorf("codec: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			sort.Strings(keys)
			return fmt.Errorf("%w: %s", ErrUnknownField, strings.Join(keys, ", "))
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return nil
}

// MarshalYAML encodes v as YAML.
func MarshalYAML(v any) ([]byte, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("codec: %w", err)
	}
	return out, nil
}
