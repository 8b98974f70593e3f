package products

import (
	"context"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/compozy/products/cli/api"
)

func listProductsCmd(ctx context.Context, client api.ProductClient, t Ticket) tea.Cmd {
	return func() tea.Msg {
		products, err := client.ListProducts(ctx)
		return productsLoadedMsg{ticket: t, products: products, err: err}
	}
}

func getProductCmd(ctx context.Context, client api.ProductClient, t Ticket, id string) tea.Cmd {
	return func() tea.Msg {
		product, err := client.GetProduct(ctx, id)
		return productLoadedMsg{ticket: t, product: product, err: err}
	}
}

func listTypesCmd(ctx context.Context, client api.ProductClient, t Ticket) tea.Cmd {
	return func() tea.Msg {
		types, err := client.ListProductTypes(ctx)
		return typesLoadedMsg{ticket: t, types: types, err: err}
	}
}

func addProductCmd(ctx context.Context, client api.ProductClient, t Ticket, draft api.NewProduct) tea.Cmd {
	return func() tea.Msg {
		return productAddedMsg{ticket: t, err: client.CreateProduct(ctx, draft)}
	}
}

func deleteProductCmd(ctx context.Context, client api.ProductClient, t Ticket, id string) tea.Cmd {
	return func() tea.Msg {
		return productDeletedMsg{ticket: t, err: client.DeleteProduct(ctx, id)}
	}
}

// copyToClipboard is replaced in tests
var copyToClipboard = clipboard.WriteAll

func copyIDCmd(id string) tea.Cmd {
	return func() tea.Msg {
		return clipboardMsg{id: id, err: copyToClipboard(id)}
	}
}
