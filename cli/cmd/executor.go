package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/compozy/products/cli/api"
	"github.com/compozy/products/cli/helpers"
	"github.com/compozy/products/cli/tui/models"
	"github.com/compozy/products/pkg/config"
	"github.com/compozy/products/pkg/logger"
	"github.com/spf13/cobra"
)

// CommandExecutor handles common setup and execution patterns for CLI commands:
// client creation, mode detection, context cancellation and error output.
type CommandExecutor struct {
	mode   models.Mode
	out    io.Writer
	errOut io.Writer

	// Only populated when requested
	client api.ProductClient
}

// HandlerFunc defines the signature for command handlers.
type HandlerFunc func(ctx context.Context, cmd *cobra.Command, executor *CommandExecutor, args []string) error

// ModeHandlers contains handlers for different execution modes.
type ModeHandlers struct {
	JSON HandlerFunc
	TUI  HandlerFunc
}

// ExecutorOptions allows customization of the command executor
type ExecutorOptions struct {
	RequireClient bool
	// ForceMode overrides mode detection, e.g. for the full-screen view
	ForceMode models.Mode
}

// NewCommandExecutor creates a new command executor with all necessary setup.
func NewCommandExecutor(cmd *cobra.Command, opts ExecutorOptions) (*CommandExecutor, error) {
	ctx := cmd.Context()
	log := logger.FromContext(ctx)
	mode := opts.ForceMode
	if mode == "" {
		mode = helpers.DetectMode(cmd)
	}
	log.Debug("detected execution mode", "mode", mode)
	executor := &CommandExecutor{
		mode:   mode,
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
	}
	if opts.RequireClient {
		cfg := config.FromContext(ctx)
		if cfg == nil {
			return nil, helpers.NewCliError(helpers.CodeConfig, "configuration not found in context")
		}
		client, err := api.NewClient(cfg)
		if err != nil {
			return nil, helpers.NewCliError(helpers.CodeConfig, "failed to create API client", err.Error())
		}
		executor.client = client.SetLogger(log)
	}
	return executor, nil
}

// Execute runs the appropriate handler based on the detected mode.
func (e *CommandExecutor) Execute(ctx context.Context, cmd *cobra.Command, handlers ModeHandlers, args []string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	switch e.mode {
	case models.ModeJSON:
		if handlers.JSON == nil {
			return fmt.Errorf("JSON mode handler not implemented")
		}
		return handlers.JSON(ctx, cmd, e, args)
	case models.ModeTUI:
		if handlers.TUI == nil {
			return fmt.Errorf("TUI mode handler not implemented")
		}
		return handlers.TUI(ctx, cmd, e, args)
	default:
		return fmt.Errorf("unsupported mode: %s", e.mode)
	}
}

// GetClient returns the configured product client.
func (e *CommandExecutor) GetClient() api.ProductClient {
	return e.client
}

// GetMode returns the detected execution mode.
func (e *CommandExecutor) GetMode() models.Mode {
	return e.mode
}

// Out returns the writer command results go to.
func (e *CommandExecutor) Out() io.Writer {
	return e.out
}

// ExecuteCommand is a convenience function that combines executor creation and execution.
func ExecuteCommand(cmd *cobra.Command, opts ExecutorOptions, handlers ModeHandlers, args []string) error {
	executor, err := NewCommandExecutor(cmd, opts)
	if err != nil {
		return HandleCommonErrors(cmd.ErrOrStderr(), err, helpers.DetectMode(cmd))
	}
	return HandleCommonErrors(executor.errOut, executor.Execute(cmd.Context(), cmd, handlers, args), executor.GetMode())
}

// HandleCommonErrors writes err to w in the format of mode and returns it categorized.
func HandleCommonErrors(w io.Writer, err error, mode models.Mode) error {
	if err == nil {
		return nil
	}
	cliErr := categorizeError(err)
	helpers.OutputError(w, cliErr, mode)
	return cliErr
}

// categorizeError converts errors to structured CLI errors
func categorizeError(err error) *helpers.CliError {
	switch {
	case errors.Is(err, context.Canceled):
		return helpers.NewCliError(helpers.CodeCanceled, "Operation was canceled by user")
	case errors.Is(err, context.DeadlineExceeded):
		return helpers.NewCliError(helpers.CodeTimeout, "Operation timed out")
	default:
		return helpers.FromAPIError(err)
	}
}
