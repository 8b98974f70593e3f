package products

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/compozy/products/cli/api"
	"github.com/compozy/products/cli/cmd"
	"github.com/compozy/products/cli/helpers"
	"github.com/compozy/products/cli/products"
	"github.com/compozy/products/cli/tui/components"
	"github.com/compozy/products/cli/tui/models"
	"github.com/compozy/products/cli/tui/styles"
	"github.com/compozy/products/pkg/config"
	"github.com/compozy/products/pkg/logger"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// maxBannerWidth caps outcome banners on wide terminals
const maxBannerWidth = 60

// ActionResult is printed by mutating commands in JSON mode
type ActionResult struct {
	Message string          `json:"message"          yaml:"message"`
	ID      string          `json:"id,omitempty"     yaml:"id,omitempty"`
	Product *api.NewProduct `json:"product,omitempty" yaml:"product,omitempty"`
}

func writer(cobraCmd *cobra.Command, executor *cmd.CommandExecutor) (*helpers.OutputWriter, error) {
	format, err := cobraCmd.Flags().GetString("output")
	if err != nil {
		return nil, fmt.Errorf("failed to get output flag: %w", err)
	}
	switch helpers.OutputFormat(format) {
	case helpers.OutputFormatJSON, helpers.OutputFormatYAML:
		return helpers.NewOutputWriter(executor.Out(), helpers.OutputFormat(format)), nil
	default:
		return nil, helpers.NewCliError(helpers.CodeValidation, "output must be one of: json, yaml",
			fmt.Sprintf("provided: %s", format))
	}
}

// ListJSON prints every product
func ListJSON(ctx context.Context, cobraCmd *cobra.Command, executor *cmd.CommandExecutor, _ []string) error {
	logger.FromContext(ctx).Debug("listing products in JSON mode")
	out, err := writer(cobraCmd, executor)
	if err != nil {
		return err
	}
	items, err := listProducts(ctx, executor)
	if err != nil {
		return err
	}
	return out.WriteData(items)
}

// ListTUI renders every product as a table
func ListTUI(ctx context.Context, _ *cobra.Command, executor *cmd.CommandExecutor, _ []string) error {
	logger.FromContext(ctx).Debug("listing products in TUI mode")
	items, err := listProducts(ctx, executor)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(executor.Out(), RenderProductTable(items))
	return err
}

func listProducts(ctx context.Context, executor *cmd.CommandExecutor) ([]api.Product, error) {
	var items []api.Product
	err := helpers.LogOperation(ctx, "list products", func() error {
		var err error
		items, err = executor.GetClient().ListProducts(ctx)
		return err
	})
	return items, err
}

func getProduct(ctx context.Context, executor *cmd.CommandExecutor, id string) (*api.Product, error) {
	var product *api.Product
	err := helpers.LogOperation(ctx, "get product "+id, func() error {
		var err error
		product, err = executor.GetClient().GetProduct(ctx, id)
		return err
	})
	return product, err
}

func listTypes(ctx context.Context, executor *cmd.CommandExecutor) ([]string, error) {
	var types []string
	err := helpers.LogOperation(ctx, "list product types", func() error {
		var err error
		types, err = executor.GetClient().ListProductTypes(ctx)
		return err
	})
	return types, err
}

func createProduct(ctx context.Context, executor *cmd.CommandExecutor, draft api.NewProduct) error {
	return helpers.LogOperation(ctx, "add product", func() error {
		return executor.GetClient().CreateProduct(ctx, draft)
	})
}

func deleteProduct(ctx context.Context, executor *cmd.CommandExecutor, id string) error {
	return helpers.LogOperation(ctx, "delete product "+id, func() error {
		return executor.GetClient().DeleteProduct(ctx, id)
	})
}

// RenderProductTable renders products with the grid columns
func RenderProductTable(items []api.Product) string {
	if len(items) == 0 {
		return styles.HelpStyle.Render("No products found")
	}
	columns := components.ProductColumns()
	headers := make([]string, 0, len(columns))
	for _, c := range columns {
		headers = append(headers, c.Title)
	}
	rows := make([][]string, 0, len(items))
	for _, p := range items {
		row := components.ProductRow(p)
		for i := range row {
			row[i] = helpers.Truncate(row[i], columns[i].Width)
		}
		rows = append(rows, row)
	}
	t := ltable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.Border)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1).Width(columns[col].Width + 2)
			if row == ltable.HeaderRow {
				return style.Bold(true).Foreground(styles.Primary)
			}
			return style
		})
	summary := styles.HelpStyle.Render(fmt.Sprintf("%d %s", len(items), helpers.Pluralize(len(items), "product", "products")))
	return t.String() + "\n" + summary
}

// GetJSON prints one product
func GetJSON(ctx context.Context, cobraCmd *cobra.Command, executor *cmd.CommandExecutor, args []string) error {
	out, err := writer(cobraCmd, executor)
	if err != nil {
		return err
	}
	product, err := getProduct(ctx, executor, args[0])
	if err != nil {
		return err
	}
	return out.WriteData(product)
}

// GetTUI renders one product as a details panel
func GetTUI(ctx context.Context, _ *cobra.Command, executor *cmd.CommandExecutor, args []string) error {
	product, err := getProduct(ctx, executor, args[0])
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(executor.Out(), RenderProductDetails(*product))
	return err
}

// RenderProductDetails renders the fields of a single product
func RenderProductDetails(p api.Product) string {
	lines := []string{
		styles.LabelStyle.Render("ID:") + p.ID.String(),
		styles.LabelStyle.Render("Type:") + p.Type,
		styles.LabelStyle.Render("Name:") + p.Name,
		styles.LabelStyle.Render("Price:") + p.FormatPrice(),
	}
	return styles.RenderTitle("Product Details") + "\n" + styles.PanelStyle.Render(strings.Join(lines, "\n"))
}

// TypesJSON prints the product types
func TypesJSON(ctx context.Context, cobraCmd *cobra.Command, executor *cmd.CommandExecutor, _ []string) error {
	out, err := writer(cobraCmd, executor)
	if err != nil {
		return err
	}
	types, err := listTypes(ctx, executor)
	if err != nil {
		return err
	}
	return out.WriteData(types)
}

// TypesTUI renders the product types as chips
func TypesTUI(ctx context.Context, _ *cobra.Command, executor *cmd.CommandExecutor, _ []string) error {
	types, err := listTypes(ctx, executor)
	if err != nil {
		return err
	}
	if len(types) == 0 {
		_, err = fmt.Fprintln(executor.Out(), styles.HelpStyle.Render("No product types available"))
		return err
	}
	chips := make([]string, 0, len(types))
	for _, t := range types {
		chips = append(chips, styles.ChipStyle.Render(t))
	}
	_, err = fmt.Fprintln(executor.Out(), lipgloss.JoinHorizontal(lipgloss.Top, chips...))
	return err
}

func draftFromFlags(cobraCmd *cobra.Command) (api.NewProduct, error) {
	var draft api.NewProduct
	var err error
	if draft.Type, err = cobraCmd.Flags().GetString("type"); err != nil {
		return draft, fmt.Errorf("failed to get type flag: %w", err)
	}
	if draft.Name, err = cobraCmd.Flags().GetString("name"); err != nil {
		return draft, fmt.Errorf("failed to get name flag: %w", err)
	}
	if draft.Price, err = cobraCmd.Flags().GetString("price"); err != nil {
		return draft, fmt.Errorf("failed to get price flag: %w", err)
	}
	return draft, nil
}

// AddJSON creates a product from flags
func AddJSON(ctx context.Context, cobraCmd *cobra.Command, executor *cmd.CommandExecutor, _ []string) error {
	out, err := writer(cobraCmd, executor)
	if err != nil {
		return err
	}
	draft, err := draftFromFlags(cobraCmd)
	if err != nil {
		return err
	}
	if err := createProduct(ctx, executor, draft); err != nil {
		return err
	}
	return out.WriteData(ActionResult{Message: api.ActionAdd.SuccessMessage(), Product: &draft})
}

// AddTUI creates a product, prompting for any value not given as a flag
func AddTUI(ctx context.Context, cobraCmd *cobra.Command, executor *cmd.CommandExecutor, _ []string) error {
	draft, err := draftFromFlags(cobraCmd)
	if err != nil {
		return err
	}
	if draft.Type == "" || draft.Name == "" || draft.Price == "" {
		types, err := listTypes(ctx, executor)
		if err != nil {
			logger.FromContext(ctx).Debug("product types unavailable for suggestions", "error", err)
		}
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("Type").Suggestions(types).Value(&draft.Type),
			huh.NewInput().Title("Name").Value(&draft.Name),
			huh.NewInput().Title("Price").Value(&draft.Price),
		))
		if err := form.RunWithContext(ctx); err != nil {
			return fmt.Errorf("add product form: %w", err)
		}
	}
	if err := createProduct(ctx, executor, draft); err != nil {
		return err
	}
	_, err = fmt.Fprintln(executor.Out(), renderOutcome(api.ActionAdd.SuccessMessage()))
	return err
}

// DeleteJSON deletes a product by id
func DeleteJSON(ctx context.Context, cobraCmd *cobra.Command, executor *cmd.CommandExecutor, args []string) error {
	out, err := writer(cobraCmd, executor)
	if err != nil {
		return err
	}
	if err := deleteProduct(ctx, executor, args[0]); err != nil {
		return err
	}
	return out.WriteData(ActionResult{Message: api.ActionDelete.SuccessMessage(), ID: args[0]})
}

// DeleteTUI deletes a product by id and reports the outcome
func DeleteTUI(ctx context.Context, _ *cobra.Command, executor *cmd.CommandExecutor, args []string) error {
	if err := deleteProduct(ctx, executor, args[0]); err != nil {
		return err
	}
	_, err := fmt.Fprintln(executor.Out(), renderOutcome(api.ActionDelete.SuccessMessage()))
	return err
}

func terminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return models.DefaultWidth
}

// renderOutcome renders the success banner of a one-shot command
func renderOutcome(message string) string {
	width := min(terminalWidth(), maxBannerWidth)
	return styles.SuccessBannerStyle.Width(width - 2).Render("✓ " + message)
}

// ViewTUI runs the interactive products view until the user quits
func ViewTUI(ctx context.Context, _ *cobra.Command, _ *cmd.CommandExecutor, _ []string) error {
	cfg := config.FromContext(ctx)
	if cfg == nil {
		return helpers.NewCliError(helpers.CodeConfig, "configuration not found in context")
	}
	log := viewLogger(ctx, cfg)
	ctx = logger.ContextWithLogger(ctx, log)
	client, err := api.NewClient(cfg)
	if err != nil {
		return helpers.NewCliError(helpers.CodeConfig, "failed to create API client", err.Error())
	}
	model := products.New(ctx, client.SetLogger(log), products.Options{
		NotificationTimeout: cfg.UI.NotificationTimeout,
		PageSize:            cfg.UI.PageSize,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("products view: %w", err)
	}
	return nil
}

// viewLogger keeps log output off the screen while the view runs. With a log
// file configured the command logger already writes there.
func viewLogger(ctx context.Context, cfg *config.Config) logger.Logger {
	if cfg.Runtime.LogFile != "" {
		return logger.FromContext(ctx)
	}
	return logger.NewLogger(&logger.Config{
		Level:      logger.DisabledLevel,
		Output:     io.Discard,
		TimeFormat: "15:04:05",
	})
}
