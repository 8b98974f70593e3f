package config

import (
	"context"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"

	"github.com/compozy/products/cli/cmd"
	"github.com/compozy/products/cli/helpers"
	"github.com/compozy/products/pkg/config"
	"github.com/compozy/products/pkg/logger"
)

// NewConfigCommand creates the config command using the unified command pattern
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the resolved configuration",
	}
	cmd.AddCommand(
		NewConfigShowCommand(),
		NewConfigValidateCommand(),
	)
	return cmd
}

// NewConfigShowCommand creates the config show subcommand
func NewConfigShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration values",
		Long:  "Display the resolved configuration as JSON, YAML or a table, optionally with the source of each value.",
		RunE:  executeConfigShowCommand,
	}
	cmd.Flags().StringP("output", "o", "table", "Output format (json, yaml, table)")
	cmd.Flags().Bool("sources", false, "Show which source provided each value")
	return cmd
}

func executeConfigShowCommand(cobraCmd *cobra.Command, args []string) error {
	return cmd.ExecuteCommand(cobraCmd, cmd.ExecutorOptions{}, cmd.ModeHandlers{
		JSON: handleConfigShow,
		TUI:  handleConfigShow,
	}, args)
}

func handleConfigShow(ctx context.Context, cobraCmd *cobra.Command, executor *cmd.CommandExecutor, _ []string) error {
	logger.FromContext(ctx).Debug("executing config show command", "mode", executor.GetMode())
	cfg := config.FromContext(ctx)
	if cfg == nil {
		return helpers.NewCliError(helpers.CodeConfig, "configuration not found in context")
	}
	format, err := cobraCmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	showSources, err := cobraCmd.Flags().GetBool("sources")
	if err != nil {
		return fmt.Errorf("failed to get sources flag: %w", err)
	}
	var sources map[string]config.SourceType
	if showSources {
		sources = sourcesOf(config.ServiceFromContext(ctx), cfg)
	}
	return formatConfigOutput(executor.Out(), cfg, sources, format)
}

// NewConfigValidateCommand creates the config validate subcommand
func NewConfigValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the resolved configuration",
		RunE:  executeConfigValidateCommand,
	}
}

func executeConfigValidateCommand(cobraCmd *cobra.Command, args []string) error {
	return cmd.ExecuteCommand(cobraCmd, cmd.ExecutorOptions{}, cmd.ModeHandlers{
		JSON: handleConfigValidateJSON,
		TUI:  handleConfigValidateTUI,
	}, args)
}

func validate(ctx context.Context) error {
	cfg := config.FromContext(ctx)
	service := config.ServiceFromContext(ctx)
	if service == nil {
		service = config.NewService()
	}
	return service.Validate(cfg)
}

func handleConfigValidateJSON(ctx context.Context, _ *cobra.Command, executor *cmd.CommandExecutor, _ []string) error {
	result := map[string]any{"valid": true, "message": "Configuration is valid"}
	if err := validate(ctx); err != nil {
		result = map[string]any{"valid": false, "message": err.Error()}
	}
	return helpers.NewOutputWriter(executor.Out(), helpers.OutputFormatJSON).WriteData(result)
}

func handleConfigValidateTUI(ctx context.Context, _ *cobra.Command, executor *cmd.CommandExecutor, _ []string) error {
	if err := validate(ctx); err != nil {
		return helpers.NewCliError(helpers.CodeConfig, "configuration validation failed", err.Error())
	}
	_, err := fmt.Fprintln(executor.Out(), "✅ Configuration is valid")
	return err
}

// formatConfigOutput formats and outputs configuration based on requested format
func formatConfigOutput(w io.Writer, cfg *config.Config, sources map[string]config.SourceType, format string) error {
	flat := flattenConfig(cfg)
	switch format {
	case "json", "yaml":
		output := map[string]any{"config": flat}
		if len(sources) > 0 {
			output["sources"] = sources
			output["env"] = envVarsOf(flat)
		}
		return helpers.NewOutputWriter(w, helpers.OutputFormat(format)).WriteData(output)
	case "table":
		return outputTable(w, flat, sources)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// flattenConfig converts the configuration to dotted keys with printable values
func flattenConfig(cfg *config.Config) map[string]string {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(cfg, "koanf"), nil); err != nil {
		return map[string]string{}
	}
	flat := make(map[string]string, len(k.Keys()))
	for key, value := range k.All() {
		flat[key] = fmt.Sprint(value)
	}
	return flat
}

func sourcesOf(service config.Service, cfg *config.Config) map[string]config.SourceType {
	if service == nil {
		return nil
	}
	keys := flattenConfig(cfg)
	sources := make(map[string]config.SourceType, len(keys))
	for key := range keys {
		sources[key] = service.GetSource(key)
	}
	return sources
}

// envVarsOf maps each key to the environment variable that overrides it
func envVarsOf(flat map[string]string) map[string]string {
	vars := make(map[string]string, len(flat))
	for key := range flat {
		if name := config.GetEnvVarForConfigPath(key); name != "" {
			vars[key] = name
		}
	}
	return vars
}

// outputTable outputs configuration as a table
func outputTable(w io.Writer, flat map[string]string, sources map[string]config.SourceType) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var envVars map[string]string
	if sources != nil {
		envVars = envVarsOf(flat)
		fmt.Fprintln(tw, "KEY\tVALUE\tSOURCE\tENV")
	} else {
		fmt.Fprintln(tw, "KEY\tVALUE")
	}
	for _, k := range keys {
		if sources != nil {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", k, flat[k], sources[k], envVars[k])
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\n", k, flat[k])
	}
	return tw.Flush()
}
