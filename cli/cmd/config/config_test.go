package config

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgconfig "github.com/compozy/products/pkg/config"
)

func TestFlattenConfig(t *testing.T) {
	t.Run("Should flatten nested keys with printable values", func(t *testing.T) {
		flat := flattenConfig(pkgconfig.Default())

		assert.Equal(t, "http://localhost:3000/api", flat["api.base_url"])
		assert.Equal(t, "6s", flat["ui.notification_timeout"])
		assert.Equal(t, "5", flat["ui.page_size"])
	})
}

func TestFormatConfigOutput(t *testing.T) {
	t.Run("Should render a sorted table", func(t *testing.T) {
		var buf bytes.Buffer

		require.NoError(t, formatConfigOutput(&buf, pkgconfig.Default(), nil, "table"))

		out := buf.String()
		assert.Contains(t, out, "KEY")
		assert.Less(t, bytes.Index(buf.Bytes(), []byte("api.base_url")), bytes.Index(buf.Bytes(), []byte("ui.page_size")))
	})

	t.Run("Should include sources when requested", func(t *testing.T) {
		var buf bytes.Buffer
		sources := map[string]pkgconfig.SourceType{"api.base_url": pkgconfig.SourceCLI}

		require.NoError(t, formatConfigOutput(&buf, pkgconfig.Default(), sources, "json"))

		assert.Contains(t, buf.String(), `"sources"`)
		assert.Contains(t, buf.String(), `"cli"`)
		assert.Contains(t, buf.String(), `"PRODUCTS_API_BASE_URL"`)
	})

	t.Run("Should name the overriding environment variable next to each source", func(t *testing.T) {
		var buf bytes.Buffer
		sources := map[string]pkgconfig.SourceType{"ui.page_size": pkgconfig.SourceEnv}

		require.NoError(t, formatConfigOutput(&buf, pkgconfig.Default(), sources, "table"))

		out := buf.String()
		assert.Contains(t, out, "ENV")
		assert.Regexp(t, `ui\.page_size\s+5\s+env\s+PRODUCTS_UI_PAGE_SIZE`, out)
	})

	t.Run("Should reject unknown formats", func(t *testing.T) {
		var buf bytes.Buffer
		assert.Error(t, formatConfigOutput(&buf, pkgconfig.Default(), nil, "xml"))
	})
}

func TestSourcesOf(t *testing.T) {
	t.Run("Should report where each value came from", func(t *testing.T) {
		service := pkgconfig.NewService()
		cfg, err := service.Load(t.Context(), pkgconfig.NewCLIProvider(map[string]any{"page-size": 10}))
		require.NoError(t, err)

		sources := sourcesOf(service, cfg)

		assert.Equal(t, pkgconfig.SourceCLI, sources["ui.page_size"])
		assert.Equal(t, pkgconfig.SourceDefault, sources["api.timeout"])
	})
}
