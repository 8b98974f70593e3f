package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// cliFlagPaths maps command line flag names onto configuration paths.
var cliFlagPaths = map[string]string{
	"base-url":             "api.base_url",
	"timeout":              "api.timeout",
	"debug-http":           "api.debug",
	"format":               "cli.default_format",
	"interactive":          "cli.interactive",
	"no-color":             "cli.no_color",
	"log-level":            "runtime.log_level",
	"log-json":             "runtime.log_json",
	"log-source":           "runtime.log_source",
	"log-file":             "runtime.log_file",
	"notification-timeout": "ui.notification_timeout",
	"page-size":            "ui.page_size",
}

// CLIFlagNames returns the flag names understood by NewCLIProvider.
func CLIFlagNames() []string {
	names := make([]string, 0, len(cliFlagPaths))
	for name := range cliFlagPaths {
		names = append(names, name)
	}
	return names
}

// defaultProvider implements Source for the built-in defaults.
type defaultProvider struct{}

// NewDefaultProvider creates a source that yields the default configuration.
func NewDefaultProvider() Source {
	return &defaultProvider{}
}

// Load returns an empty map; defaults are always loaded first by the loader.
func (d *defaultProvider) Load() (map[string]any, error) {
	return make(map[string]any), nil
}

// Type returns the source type identifier.
func (d *defaultProvider) Type() SourceType {
	return SourceDefault
}

// cliProvider implements Source interface for CLI flags.
type cliProvider struct {
	flags map[string]any
}

// NewCLIProvider creates a new CLI flags configuration source.
func NewCLIProvider(flags map[string]any) Source {
	return &cliProvider{
		flags: flags,
	}
}

// Load returns the CLI flags as configuration data.
func (c *cliProvider) Load() (map[string]any, error) {
	config := make(map[string]any)
	for key, value := range c.flags {
		path, ok := cliFlagPaths[key]
		if !ok {
			continue
		}
		if err := setNested(config, path, value); err != nil {
			return nil, fmt.Errorf("failed to set CLI flag %s: %w", key, err)
		}
	}
	return config, nil
}

// Type returns the source type identifier.
func (c *cliProvider) Type() SourceType {
	return SourceCLI
}

// setNested sets a value in a nested map structure using dot notation.
// It returns an error if a path conflict is encountered.
func setNested(m map[string]any, path string, value any) error {
	if path == "" {
		return nil
	}
	parts := strings.Split(path, ".")
	current := m
	for i := 0; i < len(parts)-1; i++ {
		part := parts[i]
		if _, exists := current[part]; !exists {
			current[part] = make(map[string]any)
		}
		next, ok := current[part].(map[string]any)
		if !ok {
			return fmt.Errorf("configuration conflict: key %q is not a map", strings.Join(parts[:i+1], "."))
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
	return nil
}

// yamlProvider implements Source interface for YAML files.
type yamlProvider struct {
	path string
}

// NewYAMLProvider creates a new YAML file configuration source.
// A missing file yields an empty configuration.
func NewYAMLProvider(path string) Source {
	return &yamlProvider{
		path: path,
	}
}

// Load reads configuration from a YAML file.
func (y *yamlProvider) Load() (map[string]any, error) {
	if y.path == "" {
		return make(map[string]any), nil
	}
	data, err := os.ReadFile(y.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]any), nil
		}
		return nil, fmt.Errorf("failed to read YAML file: %w", err)
	}
	var config map[string]any
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML file %s: %w", y.path, err)
	}
	if config == nil {
		config = make(map[string]any)
	}
	return config, nil
}

// Type returns the source type identifier.
func (y *yamlProvider) Type() SourceType {
	return SourceYAML
}
