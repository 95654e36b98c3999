// Package config loads the registry's ambient, non-core knobs: log
// level, whether OTel metrics are enabled, and where (if anywhere) the
// growth audit log lives. It never touches BlockSize: that stays a
// compile-time constant, fixed for the lifetime of a Registry.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the ambient settings a host may supply when constructing
// a Registry. The zero Config is valid and selects sensible defaults.
type Config struct {
	LogLevel       string `yaml:"log_level" json:"log_level"`
	MetricsEnabled bool   `yaml:"metrics_enabled" json:"metrics_enabled"`
	AuditDBPath    string `yaml:"audit_db_path" json:"audit_db_path"`
}

// Default returns the zero-value Config's effective defaults spelled
// out explicitly, for callers that want to start from them and override
// a few fields.
func Default() Config {
	return Config{LogLevel: "info"}
}

// FromFile loads a Config from path, auto-detecting YAML or JSON by
// extension.
func FromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("privreg/config: read %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return FromYAML(data)
	case ".json":
		return FromJSON(data)
	default:
		return Config{}, fmt.Errorf("privreg/config: unsupported extension %q", ext)
	}
}

// FromYAML parses YAML bytes into a Config.
func FromYAML(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("privreg/config: parse yaml: %w", err)
	}
	return cfg, nil
}

// FromJSON parses JSON bytes into a Config.
func FromJSON(data []byte) (Config, error) {
	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("privreg/config: parse json: %w", err)
	}
	return cfg, nil
}
