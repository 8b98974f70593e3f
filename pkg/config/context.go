package config

import "context"

// ContextKey is an alias used for storing values in context
type ContextKey string

const (
	// ConfigCtxKey is the context key used to store the active *Config
	ConfigCtxKey ContextKey = "config"
)

// ContextWithConfig stores the configuration in the context.
func ContextWithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ConfigCtxKey, cfg)
}

// FromContext returns the configuration attached to ctx, or nil.
func FromContext(ctx context.Context) *Config {
	if ctx == nil {
		return nil
	}
	if cfg, ok := ctx.Value(ConfigCtxKey).(*Config); ok {
		return cfg
	}
	return nil
}

// ServiceCtxKey is the context key used to store the Service that produced the configuration
const ServiceCtxKey ContextKey = "config_service"

// ContextWithService stores the configuration service in the context.
func ContextWithService(ctx context.Context, svc Service) context.Context {
	return context.WithValue(ctx, ServiceCtxKey, svc)
}

// ServiceFromContext returns the configuration service attached to ctx, or nil.
func ServiceFromContext(ctx context.Context) Service {
	if ctx == nil {
		return nil
	}
	if svc, ok := ctx.Value(ServiceCtxKey).(Service); ok {
		return svc
	}
	return nil
}
