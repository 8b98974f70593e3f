package products

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	ListAll     key.Binding
	ListTypes   key.Binding
	AddProduct  key.Binding
	Search      key.Binding
	Delete      key.Binding
	Submit      key.Binding
	Back        key.Binding
	CloseNotice key.Binding
	CopyID      key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		ListAll:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all products")),
		ListTypes:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "product types")),
		AddProduct:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "add product")),
		Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search by id")),
		Delete:      key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete by id")),
		Submit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Back:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		CloseNotice: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "close notice")),
		CopyID:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy id")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ListAll, k.ListTypes, k.AddProduct, k.Search, k.Delete, k.CopyID, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		k.ShortHelp(),
		{k.Submit, k.Back, k.CloseNotice},
	}
}
