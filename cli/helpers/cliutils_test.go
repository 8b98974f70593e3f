package helpers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/compozy/products/cli/api"
	"github.com/compozy/products/cli/tui/models"
	"github.com/compozy/products/pkg/config"
	"github.com/compozy/products/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCliError(t *testing.T) {
	t.Run("Should create error with code and message", func(t *testing.T) {
		err := NewCliError("TEST_ERROR", "Test message")
		assert.Equal(t, "TEST_ERROR", err.Code)
		assert.Equal(t, "Test message", err.Message)
		assert.Empty(t, err.Details)
		assert.NotNil(t, err.Context)
	})

	t.Run("Should implement error interface", func(t *testing.T) {
		assert.Equal(t, "TEST_ERROR: Test message", NewCliError("TEST_ERROR", "Test message").Error())
		assert.Equal(t, "TEST_ERROR: Test message (Details)",
			NewCliError("TEST_ERROR", "Test message", "Details").Error())
	})
}

func TestFromAPIError(t *testing.T) {
	t.Run("Should map not found errors", func(t *testing.T) {
		err := FromAPIError(&api.Error{Action: api.ActionGet, Kind: api.KindNotFound, Status: 404})
		assert.Equal(t, CodeNotFound, err.Code)
		assert.Equal(t, "Product not found", err.Message)
		assert.Equal(t, 404, err.Context["status"])
		assert.Equal(t, "get", err.Context["action"])
	})

	t.Run("Should map server errors with details", func(t *testing.T) {
		err := FromAPIError(&api.Error{
			Action:  api.ActionList,
			Kind:    api.KindServer,
			Status:  500,
			Message: "database unavailable",
		})
		assert.Equal(t, CodeServer, err.Code)
		assert.Equal(t, "Error fetching products", err.Message)
		assert.Equal(t, "database unavailable", err.Details)
	})

	t.Run("Should detect timeouts behind network errors", func(t *testing.T) {
		err := FromAPIError(&api.Error{
			Action: api.ActionDelete,
			Kind:   api.KindNetwork,
			Cause:  fmt.Errorf("request: %w", context.DeadlineExceeded),
		})
		assert.Equal(t, CodeTimeout, err.Code)
		assert.True(t, IsTimeoutError(err))
	})

	t.Run("Should keep existing CLI errors", func(t *testing.T) {
		original := NewCliError(CodeValidation, "id is required")
		assert.Same(t, original, FromAPIError(fmt.Errorf("wrap: %w", original)))
	})

	t.Run("Should treat foreign errors as internal", func(t *testing.T) {
		assert.Equal(t, CodeInternal, FromAPIError(errors.New("boom")).Code)
		assert.Nil(t, FromAPIError(nil))
	})
}

func TestIsNetworkError(t *testing.T) {
	t.Run("Should detect network errors", func(t *testing.T) {
		assert.True(t, IsNetworkError(NewCliError(CodeNetwork, "Error fetching products")))
		assert.True(t, IsNetworkError(errors.New("dial tcp: connection refused")))
		assert.False(t, IsNetworkError(errors.New("bad request")))
		assert.False(t, IsNetworkError(nil))
	})
}

func TestFormatError(t *testing.T) {
	t.Run("Should format CLI errors as JSON", func(t *testing.T) {
		out := FormatError(NewCliError(CodeNotFound, "Product not found", "status 404"), models.ModeJSON)
		assert.JSONEq(t, `{"code":"NOT_FOUND","error":"Product not found","details":"status 404"}`, out)
	})

	t.Run("Should format plain errors as JSON", func(t *testing.T) {
		out := FormatError(errors.New("boom"), models.ModeJSON)
		assert.JSONEq(t, `{"error":"boom","details":""}`, out)
	})

	t.Run("Should include details in TUI output", func(t *testing.T) {
		out := FormatError(NewCliError(CodeServer, "Error adding product", "price invalid"), models.ModeTUI)
		assert.Contains(t, out, "Error adding product")
		assert.Contains(t, out, "Details: price invalid")
	})

	t.Run("Should return empty string for nil", func(t *testing.T) {
		assert.Empty(t, FormatError(nil, models.ModeJSON))
	})

	t.Run("Should write to the given writer", func(t *testing.T) {
		var buf bytes.Buffer
		OutputError(&buf, errors.New("boom"), models.Mode("plain"))
		assert.Equal(t, "boom\n", buf.String())
	})
}

func TestTruncate(t *testing.T) {
	t.Run("Should truncate long strings", func(t *testing.T) {
		assert.Equal(t, "hello", Truncate("hello", 10))
		assert.Equal(t, "hel...", Truncate("hello world", 6))
		assert.Equal(t, "he", Truncate("hello", 2))
		assert.Equal(t, "héé...", Truncate("hééééééé", 6))
	})
}

func TestContainsAny(t *testing.T) {
	t.Run("Should match case insensitively", func(t *testing.T) {
		assert.True(t, ContainsAny("Hello", "", "xyz", "ELL"))
		assert.False(t, ContainsAny("Hello", "", "xyz"))
	})
}

func TestLogOperation(t *testing.T) {
	t.Run("Should log the operation and return its error", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.NewLogger(&logger.Config{Level: logger.DebugLevel, Output: &buf, TimeFormat: "15:04:05"})
		ctx := logger.ContextWithLogger(context.Background(), log)
		boom := errors.New("boom")

		err := LogOperation(ctx, "list products", func() error { return boom })

		assert.ErrorIs(t, err, boom)
		assert.Contains(t, buf.String(), "starting operation")
		assert.Contains(t, buf.String(), "operation failed")
		assert.Contains(t, buf.String(), "list products")
	})

	t.Run("Should log completion on success", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.NewLogger(&logger.Config{Level: logger.DebugLevel, Output: &buf, TimeFormat: "15:04:05"})
		ctx := logger.ContextWithLogger(context.Background(), log)

		require.NoError(t, LogOperation(ctx, "get product", func() error { return nil }))

		assert.Contains(t, buf.String(), "operation completed")
	})
}

func TestOutputWriter(t *testing.T) {
	product := api.Product{ID: "1", Type: "Books", Name: "Go", Price: "25"}

	t.Run("Should write JSON", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewOutputWriter(&buf, OutputFormatJSON).WriteData(product))
		assert.JSONEq(t, `{"id":"1","type":"Books","name":"Go","price":"25"}`, buf.String())
	})

	t.Run("Should write YAML", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewOutputWriter(&buf, OutputFormatYAML).WriteData(product))
		assert.Contains(t, buf.String(), "name: Go")
		assert.Contains(t, buf.String(), `price: "25"`)
	})

	t.Run("Should reject unknown formats", func(t *testing.T) {
		var buf bytes.Buffer
		assert.Error(t, NewOutputWriter(&buf, OutputFormatTUI).WriteData(product))
	})
}

func TestDetectMode(t *testing.T) {
	newCmd := func(cfg *config.Config) *cobra.Command {
		cmd := &cobra.Command{}
		ctx := context.Background()
		if cfg != nil {
			ctx = config.ContextWithConfig(ctx, cfg)
		}
		cmd.SetContext(ctx)
		return cmd
	}

	t.Run("Should honor explicit formats", func(t *testing.T) {
		cfg := config.Default()
		cfg.CLI.DefaultFormat = "tui"
		assert.Equal(t, models.ModeTUI, DetectMode(newCmd(cfg)))

		cfg.CLI.DefaultFormat = "json"
		assert.Equal(t, models.ModeJSON, DetectMode(newCmd(cfg)))
	})

	t.Run("Should fall back to JSON without configuration", func(t *testing.T) {
		assert.Equal(t, models.ModeJSON, DetectMode(newCmd(nil)))
	})

	t.Run("Should use TUI when interactive is forced", func(t *testing.T) {
		cfg := config.Default()
		cfg.CLI.Interactive = true
		assert.Equal(t, models.ModeTUI, DetectMode(newCmd(cfg)))
	})

	t.Run("Should disable color when configured", func(t *testing.T) {
		cfg := config.Default()
		cfg.CLI.NoColor = true
		assert.False(t, ShouldUseColor(newCmd(cfg)))
	})
}
