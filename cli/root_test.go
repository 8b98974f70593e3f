package cli

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/compozy/products/pkg/config"
	"github.com/compozy/products/pkg/logger"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupGlobalConfig(t *testing.T) {
	t.Run("Should inject YAML values into the command context", func(t *testing.T) {
		dir := t.TempDir()
		cfgPath := filepath.Join(dir, "products.yaml")
		require.NoError(t, os.WriteFile(cfgPath, []byte("ui:\n  page_size: 8\n"), 0o600))
		cmd := RootCmd()
		cmd.SetContext(context.Background())
		require.NoError(t, cmd.ParseFlags([]string{"--env-file", "", "--config", cfgPath}))
		t.Cleanup(func() { logger.Init(logger.TestConfig()) })

		require.NoError(t, SetupGlobalConfig(cmd))

		cfg := config.FromContext(cmd.Context())
		require.NotNil(t, cfg)
		assert.Equal(t, 8, cfg.UI.PageSize)
		assert.NotNil(t, config.ServiceFromContext(cmd.Context()))
	})

	t.Run("Should let flags override the file", func(t *testing.T) {
		dir := t.TempDir()
		cfgPath := filepath.Join(dir, "products.yaml")
		require.NoError(t, os.WriteFile(cfgPath, []byte("api:\n  base_url: http://file:1/api\n"), 0o600))
		cmd := RootCmd()
		cmd.SetContext(context.Background())
		require.NoError(t, cmd.ParseFlags([]string{
			"--env-file", "",
			"--config", cfgPath,
			"--base-url", "http://flag:2/api",
			"--timeout", "3s",
			"--log-level", "disabled",
		}))
		t.Cleanup(func() { logger.Init(logger.TestConfig()) })

		require.NoError(t, SetupGlobalConfig(cmd))

		cfg := config.FromContext(cmd.Context())
		assert.Equal(t, "http://flag:2/api", cfg.API.BaseURL)
		assert.Equal(t, 3*time.Second, cfg.API.Timeout)
		assert.Equal(t, "disabled", cfg.Runtime.LogLevel)
	})

	t.Run("Should reject invalid configuration", func(t *testing.T) {
		cmd := RootCmd()
		cmd.SetContext(context.Background())
		require.NoError(t, cmd.ParseFlags([]string{
			"--env-file", "",
			"--config", filepath.Join(t.TempDir(), "missing.yaml"),
			"--base-url", "ftp://nope",
		}))

		assert.Error(t, SetupGlobalConfig(cmd))
	})
}

func TestSetupGlobalConfig_Output(t *testing.T) {
	t.Run("Should drop colors when --no-color is set", func(t *testing.T) {
		previous := lipgloss.ColorProfile()
		lipgloss.SetColorProfile(termenv.TrueColor)
		t.Cleanup(func() {
			lipgloss.SetColorProfile(previous)
			logger.Init(logger.TestConfig())
		})
		cmd := RootCmd()
		cmd.SetContext(context.Background())
		require.NoError(t, cmd.ParseFlags([]string{
			"--env-file", "",
			"--config", filepath.Join(t.TempDir(), "none.yaml"),
			"--log-level", "disabled",
			"--no-color",
		}))

		require.NoError(t, SetupGlobalConfig(cmd))

		assert.True(t, config.FromContext(cmd.Context()).CLI.NoColor)
		assert.Equal(t, termenv.Ascii, lipgloss.ColorProfile())
	})

	t.Run("Should log to the configured file and close it once", func(t *testing.T) {
		dir := t.TempDir()
		logPath := filepath.Join(dir, "products.log")
		t.Cleanup(func() {
			_ = CloseLogOutput()
			logger.Init(logger.TestConfig())
		})
		setup := func() {
			cmd := RootCmd()
			cmd.SetContext(context.Background())
			require.NoError(t, cmd.ParseFlags([]string{
				"--env-file", "",
				"--config", filepath.Join(dir, "none.yaml"),
				"--log-level", "debug",
				"--log-file", logPath,
			}))
			require.NoError(t, SetupGlobalConfig(cmd))
		}

		setup()
		first, ok := logOutput.(*os.File)
		require.True(t, ok)
		setup()

		_, err := first.WriteString("late")
		assert.Error(t, err)
		require.NoError(t, CloseLogOutput())
		assert.Nil(t, logOutput)
		assert.NoError(t, CloseLogOutput())
		content, err := os.ReadFile(logPath)
		require.NoError(t, err)
		assert.Contains(t, string(content), "configuration loaded")
	})
}

func TestIsPathWithinDirectory(t *testing.T) {
	t.Run("Should accept nested paths and reject escapes", func(t *testing.T) {
		dir := t.TempDir()
		assert.True(t, isPathWithinDirectory(filepath.Join(dir, ".env"), dir))
		assert.True(t, isPathWithinDirectory(dir, dir))
		assert.False(t, isPathWithinDirectory(filepath.Join(dir, "..", "other", ".env"), dir))
	})
}

func TestRootCmd(t *testing.T) {
	t.Run("Should list products as JSON end to end", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/products", r.URL.Path)
			_, _ = io.WriteString(w, `[{"id":1,"type":"Books","name":"Go","price":"25"}]`)
		}))
		t.Cleanup(server.Close)
		t.Cleanup(func() { logger.Init(logger.TestConfig()) })
		var out bytes.Buffer
		cmd := RootCmd()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{
			"list",
			"--env-file", "",
			"--config", filepath.Join(t.TempDir(), "none.yaml"),
			"--base-url", server.URL + "/api",
			"--format", "json",
			"--log-level", "disabled",
		})

		require.NoError(t, cmd.ExecuteContext(context.Background()))

		assert.JSONEq(t, `[{"id":"1","type":"Books","name":"Go","price":"25"}]`, out.String())
	})

	t.Run("Should register every command", func(t *testing.T) {
		cmd := RootCmd()
		names := make([]string, 0)
		for _, c := range cmd.Commands() {
			names = append(names, c.Name())
		}
		assert.Subset(t, names, []string{"view", "list", "get", "types", "add", "delete", "config"})
	})
}
