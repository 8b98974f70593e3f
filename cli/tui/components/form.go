package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/compozy/products/cli/api"
	"github.com/compozy/products/cli/tui/styles"
)

// AddProductSubmittedMsg is emitted when the add form is completed
type AddProductSubmittedMsg struct {
	Draft api.NewProduct
}

const priceKey = "price"

// AddProductForm is the modal used to draft a new product
type AddProductForm struct {
	form      *huh.Form
	draft     *api.NewProduct
	submitted bool
}

// NewAddProductForm creates the form prefilled with draft. Types are offered
// as suggestions for the type field.
func NewAddProductForm(draft api.NewProduct, types []string) *AddProductForm {
	values := draft
	f := &AddProductForm{draft: &values}
	keyMap := huh.NewDefaultKeyMap()
	keyMap.Quit = key.NewBinding(key.WithKeys("ctrl+c"))
	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Type").
				Suggestions(types).
				Value(&f.draft.Type),
			huh.NewInput().
				Title("Name").
				Value(&f.draft.Name),
			huh.NewInput().
				Key(priceKey).
				Title("Price").
				Value(&f.draft.Price),
		),
	).
		WithKeyMap(keyMap).
		WithShowHelp(true)
	return f
}

// Init initializes the form
func (f *AddProductForm) Init() tea.Cmd {
	return f.form.Init()
}

// Draft returns the values typed so far
func (f *AddProductForm) Draft() api.NewProduct {
	return *f.draft
}

// SetWidth constrains the rendered form width
func (f *AddProductForm) SetWidth(width int) {
	if width > 8 {
		f.form = f.form.WithWidth(width - 8)
	}
}

// Update delegates to the huh form and reports submission once completed.
// The price field only accepts characters of a decimal number.
func (f *AddProductForm) Update(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyRunes && f.editingPrice() {
		keyMsg.Runes = numericRunes(keyMsg.Runes)
		if len(keyMsg.Runes) == 0 {
			return nil
		}
		msg = keyMsg
	}
	model, cmd := f.form.Update(msg)
	if form, ok := model.(*huh.Form); ok {
		f.form = form
	}
	if f.form.State == huh.StateCompleted && !f.submitted {
		f.submitted = true
		draft := f.Draft()
		return func() tea.Msg {
			return AddProductSubmittedMsg{Draft: draft}
		}
	}
	return cmd
}

func (f *AddProductForm) editingPrice() bool {
	field := f.form.GetFocusedField()
	return field != nil && field.GetKey() == priceKey
}

func numericRunes(runes []rune) []rune {
	out := runes[:0:0]
	for _, r := range runes {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			out = append(out, r)
		}
	}
	return out
}

// View renders the form inside a dialog box
func (f *AddProductForm) View() string {
	var b strings.Builder
	b.WriteString(styles.RenderTitle("Add Product"))
	b.WriteString("\n\n")
	b.WriteString(f.form.View())
	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("enter next/submit • esc cancel"))
	return styles.DialogStyle.Render(b.String())
}
