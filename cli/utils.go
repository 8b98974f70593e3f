package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/compozy/products/cli/helpers"
	"github.com/compozy/products/pkg/config"
	"github.com/compozy/products/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// logOutput is the log file opened for the running command, if any
var logOutput io.Closer

// SetupGlobalConfig loads the env file and configuration, installs the logger
// and stores everything on the command context
func SetupGlobalConfig(cmd *cobra.Command) error {
	if _, err := loadEnvFile(cmd); err != nil {
		return err
	}
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	flags := make(map[string]any)
	extractCLIFlags(cmd, flags)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	service := config.NewService()
	cfg, err := service.Load(ctx,
		config.NewDefaultProvider(),
		config.NewYAMLProvider(configPath),
		config.NewCLIProvider(flags),
	)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	log, err := setupLogger(cfg)
	if err != nil {
		return err
	}
	ctx = config.ContextWithConfig(ctx, cfg)
	ctx = config.ContextWithService(ctx, service)
	ctx = logger.ContextWithLogger(ctx, log)
	cmd.SetContext(ctx)
	if !helpers.ShouldUseColor(cmd) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	log.Debug("configuration loaded", "base_url", cfg.API.BaseURL, "config_file", configPath)
	return nil
}

// setupLogger builds the logger for one-shot commands. Logs go to stderr
// unless a log file is configured, keeping stdout for command output.
func setupLogger(cfg *config.Config) (logger.Logger, error) {
	if err := CloseLogOutput(); err != nil {
		return nil, err
	}
	var output io.Writer = os.Stderr
	if cfg.Runtime.LogFile != "" {
		f, err := logger.OpenLogFile(cfg.Runtime.LogFile)
		if err != nil {
			return nil, err
		}
		logOutput = f
		output = f
	}
	logger.SetupLogger(cfg.Runtime.LogLevel, cfg.Runtime.LogJSON, cfg.Runtime.LogSource, output)
	return logger.GetDefault(), nil
}

// CloseLogOutput closes the log file opened by SetupGlobalConfig
func CloseLogOutput() error {
	if logOutput == nil {
		return nil
	}
	err := logOutput.Close()
	logOutput = nil
	if err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	return nil
}

// extractCLIFlags collects the flags the user explicitly set into flags,
// keyed by flag name
func extractCLIFlags(cmd *cobra.Command, flags map[string]any) {
	for _, name := range config.CLIFlagNames() {
		flag := cmd.Flags().Lookup(name)
		if flag == nil || !flag.Changed {
			continue
		}
		if value, ok := flagValue(cmd.Flags(), flag); ok {
			flags[name] = value
		}
	}
}

func flagValue(set *pflag.FlagSet, flag *pflag.Flag) (any, bool) {
	var (
		value any
		err   error
	)
	switch flag.Value.Type() {
	case "bool":
		value, err = set.GetBool(flag.Name)
	case "int":
		value, err = set.GetInt(flag.Name)
	case "duration":
		value, err = set.GetDuration(flag.Name)
	default:
		value, err = set.GetString(flag.Name)
	}
	return value, err == nil
}

// loadEnvFile loads environment variables from a file with security validation
func loadEnvFile(cmd *cobra.Command) (string, error) {
	envFile, err := cmd.Flags().GetString("env-file")
	if err != nil {
		return "", fmt.Errorf("failed to get env-file flag: %w", err)
	}
	if envFile == "" {
		return "", nil
	}
	pwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}
	if !filepath.IsAbs(envFile) {
		envFile = filepath.Join(pwd, envFile)
	}
	absPath, err := filepath.Abs(filepath.Clean(envFile))
	if err != nil {
		return "", fmt.Errorf("failed to resolve env file path: %w", err)
	}
	if !isPathWithinDirectory(absPath, pwd) {
		return "", fmt.Errorf("env file path '%s' is outside the project directory", envFile)
	}
	fileInfo, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return absPath, nil
		}
		return "", fmt.Errorf("failed to stat env file: %w", err)
	}
	if !fileInfo.Mode().IsRegular() {
		return "", fmt.Errorf("env file path '%s' is not a regular file", envFile)
	}
	if err := godotenv.Load(absPath); err != nil {
		return "", fmt.Errorf("failed to load env file %s: %w", absPath, err)
	}
	return absPath, nil
}

// isPathWithinDirectory checks if a given path is within the specified directory
func isPathWithinDirectory(path, dir string) bool {
	absPath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return false
	}
	absDir, err := filepath.Abs(filepath.Clean(dir))
	if err != nil {
		return false
	}
	if !strings.HasSuffix(absDir, string(filepath.Separator)) {
		absDir += string(filepath.Separator)
	}
	return strings.HasPrefix(absPath, absDir) || absPath == strings.TrimSuffix(absDir, string(filepath.Separator))
}
