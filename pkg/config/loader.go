package config

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// loader implements the Service interface for configuration management.
type loader struct {
	koanf      *koanf.Koanf
	validator  *validator.Validate
	metadata   Metadata
	metadataMu sync.RWMutex
}

// NewService creates a new configuration service with validation support.
func NewService() Service {
	v := validator.New()
	if err := RegisterCustomValidators(v); err != nil {
		panic(fmt.Sprintf("failed to register config validators: %v", err))
	}
	return &loader{
		koanf:     koanf.New("."),
		validator: v,
		metadata: Metadata{
			Sources: make(map[string]SourceType),
		},
	}
}

// Load loads configuration from the specified sources with precedence order.
// Later sources win; environment variables are applied last.
func (l *loader) Load(_ context.Context, sources ...Source) (*Config, error) {
	l.reset()
	if err := l.loadDefaults(); err != nil {
		return nil, err
	}
	if err := l.loadSources(sources); err != nil {
		return nil, err
	}
	if err := l.loadEnvironment(); err != nil {
		return nil, err
	}
	return l.unmarshalAndValidate()
}

// reset clears the configuration and metadata.
func (l *loader) reset() {
	l.koanf = koanf.New(".")
	l.metadataMu.Lock()
	l.metadata.Sources = make(map[string]SourceType)
	l.metadata.LoadedAt = time.Now()
	l.metadataMu.Unlock()
}

// loadDefaults loads the default configuration.
func (l *loader) loadDefaults() error {
	if err := l.koanf.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return fmt.Errorf("failed to load defaults: %w", err)
	}
	for _, key := range l.koanf.Keys() {
		l.trackSource(key, SourceDefault)
	}
	return nil
}

// loadEnvironment loads PRODUCTS_* variables that map onto a config path.
func (l *loader) loadEnvironment() error {
	envToPath := make(map[string]string)
	for _, mapping := range GenerateEnvMappings() {
		envToPath[mapping.EnvVar] = mapping.ConfigPath
	}
	before := l.snapshot()
	if err := l.koanf.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key string, value string) (string, any) {
			configPath, ok := envToPath[key]
			if !ok {
				return "", nil
			}
			return configPath, value
		},
	}), nil); err != nil {
		return fmt.Errorf("failed to load environment variables: %w", err)
	}
	l.trackChanges(before, SourceEnv)
	return nil
}

// loadSources loads configuration from additional sources.
func (l *loader) loadSources(sources []Source) error {
	for _, source := range sources {
		if source == nil || source.Type() == SourceEnv {
			continue
		}
		if err := l.loadSource(source); err != nil {
			return err
		}
	}
	return nil
}

// loadSource merges one source on top of what is already loaded.
func (l *loader) loadSource(source Source) error {
	data, err := source.Load()
	if err != nil {
		return fmt.Errorf("failed to load from source %s: %w", source.Type(), err)
	}
	if len(data) == 0 {
		return nil
	}
	before := l.snapshot()
	for key, value := range flattenMap("", data) {
		if err := l.koanf.Set(key, value); err != nil {
			return fmt.Errorf("failed to set key %s from source %s: %w", key, source.Type(), err)
		}
	}
	l.trackChanges(before, source.Type())
	return nil
}

func (l *loader) snapshot() map[string]any {
	keys := make(map[string]any)
	for _, key := range l.koanf.Keys() {
		keys[key] = l.koanf.Get(key)
	}
	return keys
}

func (l *loader) trackChanges(before map[string]any, source SourceType) {
	for _, key := range l.koanf.Keys() {
		valBefore, existed := before[key]
		if !existed || fmt.Sprint(valBefore) != fmt.Sprint(l.koanf.Get(key)) {
			l.trackSource(key, source)
		}
	}
}

// flattenMap flattens a nested map into dot-notation keys
func flattenMap(prefix string, m map[string]any) map[string]any {
	result := make(map[string]any)
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nestedMap, ok := v.(map[string]any); ok {
			for fk, fv := range flattenMap(key, nestedMap) {
				result[fk] = fv
			}
			continue
		}
		result[key] = v
	}
	return result
}

// unmarshalAndValidate unmarshals the configuration and validates it.
func (l *loader) unmarshalAndValidate() (*Config, error) {
	var config Config
	if err := l.koanf.UnmarshalWithConf("", &config, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &config,
			TagName:          "koanf",
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	config.API.BaseURL = strings.TrimRight(config.API.BaseURL, "/")
	if err := l.Validate(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}

// Validate checks if the configuration meets all validation requirements.
func (l *loader) Validate(config *Config) error {
	if config == nil {
		return fmt.Errorf("configuration cannot be nil")
	}
	if err := l.validator.Struct(config); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// GetSource returns the source type for a specific configuration key.
func (l *loader) GetSource(key string) SourceType {
	l.metadataMu.RLock()
	defer l.metadataMu.RUnlock()
	if source, ok := l.metadata.Sources[key]; ok {
		return source
	}
	return SourceDefault
}

// trackSource records which source provided a specific configuration key.
func (l *loader) trackSource(key string, source SourceType) {
	l.metadataMu.Lock()
	defer l.metadataMu.Unlock()
	l.metadata.Sources[key] = source
}
