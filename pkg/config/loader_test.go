package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSource struct {
	data       map[string]any
	sourceType SourceType
}

func (m *mockSource) Load() (map[string]any, error) {
	return m.data, nil
}

func (m *mockSource) Type() SourceType {
	return m.sourceType
}

func TestLoader_Load(t *testing.T) {
	t.Run("Should load default configuration when no sources provided", func(t *testing.T) {
		loader := NewService()

		cfg, err := loader.Load(t.Context())

		require.NoError(t, err)
		require.NotNil(t, cfg)
		assert.Equal(t, "http://localhost:3000/api", cfg.API.BaseURL)
		assert.Equal(t, time.Duration(0), cfg.API.Timeout)
		assert.Equal(t, 6*time.Second, cfg.UI.NotificationTimeout)
		assert.Equal(t, 5, cfg.UI.PageSize)
		assert.Equal(t, "auto", cfg.CLI.DefaultFormat)
		assert.Equal(t, SourceDefault, loader.GetSource("api.base_url"))
	})

	t.Run("Should apply sources in precedence order", func(t *testing.T) {
		loader := NewService()
		yamlSource := &mockSource{
			data: map[string]any{
				"api": map[string]any{
					"base_url": "http://yaml.example.com/api",
					"timeout":  "5s",
				},
			},
			sourceType: SourceYAML,
		}
		cliSource := &mockSource{
			data: map[string]any{
				"api": map[string]any{
					"base_url": "http://cli.example.com/api",
				},
			},
			sourceType: SourceCLI,
		}

		cfg, err := loader.Load(t.Context(), yamlSource, cliSource)

		require.NoError(t, err)
		assert.Equal(t, "http://cli.example.com/api", cfg.API.BaseURL)
		assert.Equal(t, 5*time.Second, cfg.API.Timeout)
		assert.Equal(t, SourceCLI, loader.GetSource("api.base_url"))
		assert.Equal(t, SourceYAML, loader.GetSource("api.timeout"))
	})

	t.Run("Should let environment variables override other sources", func(t *testing.T) {
		t.Setenv("PRODUCTS_API_BASE_URL", "http://env.example.com:8080/api")
		t.Setenv("PRODUCTS_UI_NOTIFICATION_TIMEOUT", "2s")
		loader := NewService()
		cliSource := &mockSource{
			data:       map[string]any{"api": map[string]any{"base_url": "http://cli.example.com/api"}},
			sourceType: SourceCLI,
		}

		cfg, err := loader.Load(t.Context(), cliSource)

		require.NoError(t, err)
		assert.Equal(t, "http://env.example.com:8080/api", cfg.API.BaseURL)
		assert.Equal(t, 2*time.Second, cfg.UI.NotificationTimeout)
		assert.Equal(t, SourceEnv, loader.GetSource("api.base_url"))
	})

	t.Run("Should ignore unrelated environment variables", func(t *testing.T) {
		t.Setenv("PRODUCTS_UNKNOWN_SETTING", "value")
		t.Setenv("API_BASE_URL", "http://unprefixed.example.com")

		cfg, err := NewService().Load(t.Context())

		require.NoError(t, err)
		assert.Equal(t, "http://localhost:3000/api", cfg.API.BaseURL)
	})

	t.Run("Should trim trailing slashes from the base URL", func(t *testing.T) {
		source := &mockSource{
			data:       map[string]any{"api": map[string]any{"base_url": "http://localhost:3000/api/"}},
			sourceType: SourceCLI,
		}

		cfg, err := NewService().Load(t.Context(), source)

		require.NoError(t, err)
		assert.Equal(t, "http://localhost:3000/api", cfg.API.BaseURL)
	})

	t.Run("Should reject a base URL without http scheme", func(t *testing.T) {
		source := &mockSource{
			data:       map[string]any{"api": map[string]any{"base_url": "ftp://localhost/api"}},
			sourceType: SourceCLI,
		}

		_, err := NewService().Load(t.Context(), source)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation failed")
	})

	t.Run("Should reject a non-positive page size", func(t *testing.T) {
		source := &mockSource{
			data:       map[string]any{"ui": map[string]any{"page_size": 0}},
			sourceType: SourceCLI,
		}

		_, err := NewService().Load(t.Context(), source)

		require.Error(t, err)
	})

	t.Run("Should reject unknown output formats", func(t *testing.T) {
		source := &mockSource{
			data:       map[string]any{"cli": map[string]any{"default_format": "xml"}},
			sourceType: SourceCLI,
		}

		_, err := NewService().Load(t.Context(), source)

		require.Error(t, err)
	})
}

func TestYAMLProvider(t *testing.T) {
	t.Run("Should read nested keys from a YAML file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "products.yaml")
		content := "api:\n  base_url: http://yaml.local:4000/api\nui:\n  page_size: 10\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		cfg, err := NewService().Load(t.Context(), NewYAMLProvider(path))

		require.NoError(t, err)
		assert.Equal(t, "http://yaml.local:4000/api", cfg.API.BaseURL)
		assert.Equal(t, 10, cfg.UI.PageSize)
	})

	t.Run("Should treat a missing file as empty", func(t *testing.T) {
		data, err := NewYAMLProvider(filepath.Join(t.TempDir(), "missing.yaml")).Load()

		require.NoError(t, err)
		assert.Empty(t, data)
	})

	t.Run("Should fail on malformed YAML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.yaml")
		require.NoError(t, os.WriteFile(path, []byte("api: [unterminated"), 0o600))

		_, err := NewYAMLProvider(path).Load()

		require.Error(t, err)
	})
}

func TestCLIProvider(t *testing.T) {
	t.Run("Should map known flags onto config paths", func(t *testing.T) {
		data, err := NewCLIProvider(map[string]any{
			"base-url":  "http://flags.local/api",
			"page-size": 7,
			"unknown":   true,
		}).Load()

		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"api": map[string]any{"base_url": "http://flags.local/api"},
			"ui":  map[string]any{"page_size": 7},
		}, data)
	})
}

func TestGenerateEnvMappings(t *testing.T) {
	t.Run("Should derive env mappings from struct tags", func(t *testing.T) {
		assert.Equal(t, "PRODUCTS_API_BASE_URL", GetEnvVarForConfigPath("api.base_url"))
		assert.Equal(t, "PRODUCTS_UI_PAGE_SIZE", GetEnvVarForConfigPath("ui.page_size"))
		assert.Empty(t, GetEnvVarForConfigPath("api"))
	})
}

func TestFromContext(t *testing.T) {
	t.Run("Should return the config stored in context", func(t *testing.T) {
		cfg := Default()
		ctx := ContextWithConfig(t.Context(), cfg)

		assert.Same(t, cfg, FromContext(ctx))
	})

	t.Run("Should return nil when no config is stored", func(t *testing.T) {
		assert.Nil(t, FromContext(t.Context()))
	})
}

func TestServiceFromContext(t *testing.T) {
	t.Run("Should return the service stored in context", func(t *testing.T) {
		svc := NewService()
		ctx := ContextWithService(t.Context(), svc)

		assert.Same(t, svc, ServiceFromContext(ctx))
		assert.Nil(t, ServiceFromContext(t.Context()))
	})
}
