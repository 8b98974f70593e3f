package products

import (
	"github.com/compozy/products/cli/cmd"
	"github.com/compozy/products/cli/tui/models"
	"github.com/spf13/cobra"
)

// Commands returns every products command
func Commands() []*cobra.Command {
	return []*cobra.Command{
		ViewCmd(),
		ListCmd(),
		GetCmd(),
		TypesCmd(),
		AddCmd(),
		DeleteCmd(),
	}
}

// ViewCmd returns the interactive products view command
func ViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Open the interactive product manager",
		Long:  "Browse, search, add and delete products in a full-screen terminal view",
		Args:  cobra.NoArgs,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return cmd.ExecuteCommand(cobraCmd, cmd.ExecutorOptions{
				ForceMode: models.ModeTUI,
			}, cmd.ModeHandlers{
				TUI: ViewTUI,
			}, args)
		},
	}
}

// ListCmd returns the product listing command
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all products",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
	addOutputFlag(cmd)
	return cmd
}

func runList(cobraCmd *cobra.Command, args []string) error {
	return cmd.ExecuteCommand(cobraCmd, cmd.ExecutorOptions{
		RequireClient: true,
	}, cmd.ModeHandlers{
		JSON: ListJSON,
		TUI:  ListTUI,
	}, args)
}

// GetCmd returns the command fetching one product by id
func GetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get [product-id]",
		Short: "Show a product by id",
		Args:  cobra.ExactArgs(1),
		RunE:  runGet,
	}
	addOutputFlag(cmd)
	return cmd
}

func runGet(cobraCmd *cobra.Command, args []string) error {
	return cmd.ExecuteCommand(cobraCmd, cmd.ExecutorOptions{
		RequireClient: true,
	}, cmd.ModeHandlers{
		JSON: GetJSON,
		TUI:  GetTUI,
	}, args)
}

// TypesCmd returns the product type listing command
func TypesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "types",
		Short: "List product types",
		Args:  cobra.NoArgs,
		RunE:  runTypes,
	}
	addOutputFlag(cmd)
	return cmd
}

func runTypes(cobraCmd *cobra.Command, args []string) error {
	return cmd.ExecuteCommand(cobraCmd, cmd.ExecutorOptions{
		RequireClient: true,
	}, cmd.ModeHandlers{
		JSON: TypesJSON,
		TUI:  TypesTUI,
	}, args)
}

// AddCmd returns the product creation command
func AddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product",
		Long:  "Add a product. Values are sent to the API exactly as given.",
		Args:  cobra.NoArgs,
		RunE:  runAdd,
	}
	cmd.Flags().String("type", "", "Product type")
	cmd.Flags().String("name", "", "Product name")
	cmd.Flags().String("price", "", "Product price")
	addOutputFlag(cmd)
	return cmd
}

func runAdd(cobraCmd *cobra.Command, args []string) error {
	return cmd.ExecuteCommand(cobraCmd, cmd.ExecutorOptions{
		RequireClient: true,
	}, cmd.ModeHandlers{
		JSON: AddJSON,
		TUI:  AddTUI,
	}, args)
}

// DeleteCmd returns the product deletion command
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [product-id]",
		Short: "Delete a product by id",
		Args:  cobra.ExactArgs(1),
		RunE:  runDelete,
	}
	addOutputFlag(cmd)
	return cmd
}

func runDelete(cobraCmd *cobra.Command, args []string) error {
	return cmd.ExecuteCommand(cobraCmd, cmd.ExecutorOptions{
		RequireClient: true,
	}, cmd.ModeHandlers{
		JSON: DeleteJSON,
		TUI:  DeleteTUI,
	}, args)
}

func addOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "json", "Encoding in JSON mode (json, yaml)")
}
