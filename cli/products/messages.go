package products

import "github.com/compozy/products/cli/api"

// Result messages delivered to the view when a request settles

type productsLoadedMsg struct {
	ticket   Ticket
	products []api.Product
	err      error
}

type productLoadedMsg struct {
	ticket  Ticket
	product *api.Product
	err     error
}

type typesLoadedMsg struct {
	ticket Ticket
	types  []string
	err    error
}

type productAddedMsg struct {
	ticket Ticket
	err    error
}

type productDeletedMsg struct {
	ticket Ticket
	err    error
}

type clipboardMsg struct {
	id  string
	err error
}
