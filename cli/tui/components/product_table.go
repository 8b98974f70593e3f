package components

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/compozy/products/cli/api"
	"github.com/compozy/products/cli/tui/styles"
)

type SortOrder string

// Sort direction constants
const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// Column indexes of a product row
const (
	ColumnID = iota
	ColumnType
	ColumnName
	ColumnPrice
)

// DefaultPageSize is the number of rows shown per page
const DefaultPageSize = 5

// ProductTableComponent renders products as a paged, sortable grid
type ProductTableComponent struct {
	table    table.Model
	products []api.Product
	rows     []table.Row
	focused  bool

	// Sorting; an empty column keeps the order the API returned
	sortColumn    string
	sortDirection SortOrder

	// Pagination
	currentPage  int
	itemsPerPage int

	keyMap ProductTableKeyMap
}

// ProductTableKeyMap defines key bindings for the product table
type ProductTableKeyMap struct {
	SortByID    key.Binding
	SortByType  key.Binding
	SortByName  key.Binding
	SortByPrice key.Binding
	NextPage    key.Binding
	PrevPage    key.Binding
	FirstPage   key.Binding
	LastPage    key.Binding
}

// DefaultProductTableKeyMap returns the default key bindings
func DefaultProductTableKeyMap() ProductTableKeyMap {
	return ProductTableKeyMap{
		SortByID:    newBinding([]string{"1"}, "sort by id", "1"),
		SortByType:  newBinding([]string{"2"}, "sort by type", "2"),
		SortByName:  newBinding([]string{"3"}, "sort by name", "3"),
		SortByPrice: newBinding([]string{"4"}, "sort by price", "4"),
		NextPage:    newBinding([]string{"right", "pgdown"}, "next page", "→"),
		PrevPage:    newBinding([]string{"left", "pgup"}, "prev page", "←"),
		FirstPage:   newBinding([]string{"home"}, "first page", "home"),
		LastPage:    newBinding([]string{"end"}, "last page", "end"),
	}
}

func newBinding(keys []string, help, display string) key.Binding {
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(display, help),
	)
}

// ProductColumns are the grid columns with their fixed widths
func ProductColumns() []table.Column {
	return []table.Column{
		{Title: "ID", Width: 15},
		{Title: "Type", Width: 18},
		{Title: "Name", Width: 25},
		{Title: "Price", Width: 15},
	}
}

// NewProductTableComponent creates a table showing pageSize rows at a time
func NewProductTableComponent(pageSize int) ProductTableComponent {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	t := table.New(
		table.WithColumns(ProductColumns()),
		table.WithFocused(true),
		table.WithHeight(pageSize+1),
	)
	t.SetStyles(defaultProductTableStyles())
	return ProductTableComponent{
		table:         t,
		products:      []api.Product{},
		rows:          []table.Row{},
		focused:       true,
		sortDirection: SortOrderAsc,
		itemsPerPage:  pageSize,
		keyMap:        DefaultProductTableKeyMap(),
	}
}

func defaultProductTableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Border).
		BorderBottom(true).
		Bold(true).
		Foreground(styles.Primary)
	s.Selected = s.Selected.
		Foreground(styles.Highlight).
		Background(styles.Surface).
		Bold(true)
	return s
}

// KeyMap returns the table key bindings
func (pt *ProductTableComponent) KeyMap() ProductTableKeyMap {
	return pt.keyMap
}

// SetFocused sets the focus state
func (pt *ProductTableComponent) SetFocused(focused bool) {
	pt.focused = focused
	if focused {
		pt.table.Focus()
		return
	}
	pt.table.Blur()
}

// SetProducts replaces the rows with products
func (pt *ProductTableComponent) SetProducts(products []api.Product) {
	pt.products = products
	pt.currentPage = 0
	pt.updateRows()
	pt.updatePage()
}

// Rows returns every row across all pages in display order
func (pt *ProductTableComponent) Rows() []table.Row {
	return pt.rows
}

// PageRows returns the rows of the current page
func (pt *ProductTableComponent) PageRows() []table.Row {
	return pt.table.Rows()
}

// Page returns the zero based current page and the page count
func (pt *ProductTableComponent) Page() (current, total int) {
	total = (len(pt.rows) + pt.itemsPerPage - 1) / pt.itemsPerPage
	return pt.currentPage, max(total, 1)
}

// SelectedID returns the id of the highlighted row
func (pt *ProductTableComponent) SelectedID() (string, bool) {
	row := pt.table.SelectedRow()
	if row == nil {
		return "", false
	}
	return row[ColumnID], true
}

// Update handles sorting, paging and cursor movement
func (pt *ProductTableComponent) Update(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, pt.keyMap.SortByID):
			pt.setSortColumn("id")
			return nil
		case key.Matches(keyMsg, pt.keyMap.SortByType):
			pt.setSortColumn("type")
			return nil
		case key.Matches(keyMsg, pt.keyMap.SortByName):
			pt.setSortColumn("name")
			return nil
		case key.Matches(keyMsg, pt.keyMap.SortByPrice):
			pt.setSortColumn("price")
			return nil
		case key.Matches(keyMsg, pt.keyMap.NextPage):
			pt.nextPage()
			return nil
		case key.Matches(keyMsg, pt.keyMap.PrevPage):
			pt.prevPage()
			return nil
		case key.Matches(keyMsg, pt.keyMap.FirstPage):
			pt.currentPage = 0
			pt.updatePage()
			return nil
		case key.Matches(keyMsg, pt.keyMap.LastPage):
			_, total := pt.Page()
			pt.currentPage = total - 1
			pt.updatePage()
			return nil
		}
	}
	var cmd tea.Cmd
	pt.table, cmd = pt.table.Update(msg)
	return cmd
}

// View renders the table with its sort and pagination lines
func (pt *ProductTableComponent) View() string {
	sections := []string{pt.renderHeader(), pt.table.View(), pt.renderPagination()}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (pt *ProductTableComponent) renderHeader() string {
	parts := make([]string, 0, 2)
	if pt.sortColumn != "" {
		parts = append(parts, styles.InfoStyle.Render(fmt.Sprintf("Sort: %s %s", pt.sortColumn, pt.sortDirection)))
	}
	parts = append(parts, styles.HelpStyle.Render(fmt.Sprintf("Total: %d", len(pt.rows))))
	return strings.Join(parts, " • ")
}

func (pt *ProductTableComponent) renderPagination() string {
	if len(pt.rows) == 0 {
		return styles.PaginationStyle.Render("No products found")
	}
	current, total := pt.Page()
	start := current*pt.itemsPerPage + 1
	end := min(start+pt.itemsPerPage-1, len(pt.rows))
	return styles.PaginationStyle.Render(fmt.Sprintf(
		"Page %d of %d • Rows %d-%d of %d",
		current+1, total, start, end, len(pt.rows),
	))
}

func (pt *ProductTableComponent) setSortColumn(column string) {
	if pt.sortColumn == column {
		if pt.sortDirection == SortOrderAsc {
			pt.sortDirection = SortOrderDesc
		} else {
			pt.sortDirection = SortOrderAsc
		}
	} else {
		pt.sortColumn = column
		pt.sortDirection = SortOrderAsc
	}
	pt.updateRows()
	pt.updatePage()
}

func (pt *ProductTableComponent) nextPage() {
	if _, total := pt.Page(); pt.currentPage < total-1 {
		pt.currentPage++
		pt.updatePage()
	}
}

func (pt *ProductTableComponent) prevPage() {
	if pt.currentPage > 0 {
		pt.currentPage--
		pt.updatePage()
	}
}

// ProductRow converts a product into a grid row
func ProductRow(p api.Product) table.Row {
	return table.Row{p.ID.String(), p.Type, p.Name, p.Price.String()}
}

func (pt *ProductTableComponent) updateRows() {
	products := make([]api.Product, len(pt.products))
	copy(products, pt.products)
	if pt.sortColumn != "" {
		sort.SliceStable(products, func(i, j int) bool {
			if pt.sortDirection == SortOrderDesc {
				return compareProducts(pt.sortColumn, products[j], products[i])
			}
			return compareProducts(pt.sortColumn, products[i], products[j])
		})
	}
	rows := make([]table.Row, 0, len(products))
	for _, p := range products {
		rows = append(rows, ProductRow(p))
	}
	pt.rows = rows
}

// compareProducts orders numeric ids and prices by value and text by case-insensitive comparison
func compareProducts(column string, a, b api.Product) bool {
	switch column {
	case "id":
		return lessNumeric(a.ID, b.ID)
	case "type":
		return strings.ToLower(a.Type) < strings.ToLower(b.Type)
	case "price":
		return lessNumeric(a.Price, b.Price)
	default:
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	}
}

func lessNumeric(a, b api.Flex) bool {
	da, okA := a.Decimal()
	db, okB := b.Decimal()
	switch {
	case okA && okB:
		return da.LessThan(db)
	case okA != okB:
		return okA
	default:
		return a.String() < b.String()
	}
}

func (pt *ProductTableComponent) updatePage() {
	if len(pt.rows) == 0 {
		pt.table.SetRows([]table.Row{})
		return
	}
	start := pt.currentPage * pt.itemsPerPage
	if start >= len(pt.rows) {
		pt.currentPage = 0
		start = 0
	}
	end := min(start+pt.itemsPerPage, len(pt.rows))
	pt.table.SetRows(pt.rows[start:end])
	pt.table.SetCursor(0)
}
