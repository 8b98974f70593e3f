package cli

import (
	"time"

	"github.com/compozy/products/cli/cmd/config"
	"github.com/compozy/products/cli/cmd/products"
	"github.com/spf13/cobra"
)

// RootCmd returns the products command tree
func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "products",
		Short:         "Manage products through the products REST API",
		Long:          "A terminal client to list, search, add and delete products served by a products REST API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return SetupGlobalConfig(cmd)
		},
	}
	addGlobalFlags(root)
	root.AddCommand(products.Commands()...)
	root.AddCommand(config.NewConfigCommand())
	return root
}

func addGlobalFlags(root *cobra.Command) {
	flags := root.PersistentFlags()
	flags.String("config", "products.yaml", "Path to the configuration file")
	flags.String("env-file", ".env", "Path to an environment file to load")
	flags.String("base-url", "", "Base URL of the products API")
	flags.Duration("timeout", 0, "Request timeout (0 disables it)")
	flags.Bool("debug-http", false, "Log raw HTTP traffic")
	flags.String("format", "", "Output mode (json, tui, auto)")
	flags.Bool("interactive", false, "Force interactive mode")
	flags.Bool("no-color", false, "Disable colored output")
	flags.String("log-level", "", "Log level (debug, info, warn, error, disabled)")
	flags.Bool("log-json", false, "Emit logs as JSON")
	flags.Bool("log-source", false, "Include source location in logs")
	flags.String("log-file", "", "Write logs to this file")
	flags.Duration("notification-timeout", 6*time.Second, "How long notifications stay visible")
	flags.Int("page-size", 5, "Rows per page in the product grid")
}
