package products

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/compozy/products/cli/api"
	"github.com/compozy/products/cli/tui/components"
	"github.com/compozy/products/cli/tui/models"
	"github.com/compozy/products/cli/tui/styles"
	"github.com/compozy/products/pkg/logger"
)

const title = "Product Management"

type focus int

const (
	focusTable focus = iota
	focusSearch
	focusDelete
)

// Options tune the view
type Options struct {
	NotificationTimeout time.Duration
	PageSize            int
}

// Model is the interactive products view
type Model struct {
	models.BaseModel
	client api.ProductClient
	state  *State
	opts   Options
	log    logger.Logger

	table       components.ProductTableComponent
	searchInput textinput.Model
	deleteInput textinput.Model
	form        *components.AddProductForm
	spinner     spinner.Model
	spinning    bool
	help        help.Model
	keys        keyMap
	focus       focus
}

// New creates the view. Requests run with ctx as parent and are canceled on exit.
func New(ctx context.Context, client api.ProductClient, opts Options) *Model {
	if opts.NotificationTimeout <= 0 {
		opts.NotificationTimeout = components.DefaultNotificationTimeout
	}
	if opts.PageSize <= 0 {
		opts.PageSize = components.DefaultPageSize
	}
	search := textinput.New()
	search.Placeholder = "Search by ID"
	search.Prompt = "🔍 "
	del := textinput.New()
	del.Placeholder = "Delete by ID"
	del.Prompt = "🗑  "
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Primary)
	return &Model{
		BaseModel:   models.NewBaseModel(ctx),
		client:      client,
		state:       NewState(),
		opts:        opts,
		log:         logger.FromContext(ctx),
		table:       components.NewProductTableComponent(opts.PageSize),
		searchInput: search,
		deleteInput: del,
		spinner:     sp,
		help:        help.New(),
		keys:        defaultKeyMap(),
	}
}

// State exposes the current view state
func (m *Model) State() *State {
	return m.state
}

// Init implements tea.Model. Nothing is fetched until the user asks.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cmd := m.BaseModel.Update(msg); cmd != nil {
		m.state.CancelAll()
		return m, cmd
	}
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if m.form != nil {
			m.form.SetWidth(msg.Width)
		}
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case spinner.TickMsg:
		if !m.state.Busy() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case components.NotificationExpiredMsg:
		m.state.ExpireNotification(msg.Seq)
		return m, nil
	case components.AddProductSubmittedMsg:
		m.state.SetDraft(msg.Draft)
		return m, m.submitAdd()
	case clipboardMsg:
		if msg.err != nil {
			m.log.Debug("Clipboard copy failed", "error", msg.err)
			return m, m.notify("Could not copy product id", true)
		}
		return m, m.notify(fmt.Sprintf("Copied product id %s", msg.id), false)
	case productsLoadedMsg:
		effect := m.state.ApplyListResult(msg.ticket, msg.products, msg.err)
		if effect.Applied && msg.err == nil {
			m.table.SetProducts(m.state.Products)
		}
		return m, m.afterResult(msg.ticket, msg.err, effect)
	case productLoadedMsg:
		return m, m.afterResult(msg.ticket, msg.err, m.state.ApplyGetResult(msg.ticket, msg.product, msg.err))
	case typesLoadedMsg:
		return m, m.afterResult(msg.ticket, msg.err, m.state.ApplyTypesResult(msg.ticket, msg.types, msg.err))
	case productAddedMsg:
		effect := m.state.ApplyAddResult(msg.ticket, msg.err)
		if !effect.Applied {
			return m, m.afterResult(msg.ticket, msg.err, effect)
		}
		return m, tea.Batch(m.syncAddDialog(), m.afterResult(msg.ticket, msg.err, effect))
	case productDeletedMsg:
		effect := m.state.ApplyDeleteResult(msg.ticket, msg.err)
		if effect.Applied && msg.err == nil {
			m.deleteInput.SetValue("")
		}
		return m, m.afterResult(msg.ticket, msg.err, effect)
	}
	return m, m.forward(msg)
}

// forward passes messages such as cursor blinks to whatever has focus
func (m *Model) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case m.form != nil:
		cmd = m.form.Update(msg)
	case m.focus == focusSearch:
		m.searchInput, cmd = m.searchInput.Update(msg)
	case m.focus == focusDelete:
		m.deleteInput, cmd = m.deleteInput.Update(msg)
	}
	return cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.form != nil {
		if key.Matches(msg, m.keys.Back) {
			m.state.CloseAddDialog()
			m.state.SetDraft(m.form.Draft())
			m.form = nil
			return nil
		}
		return m.form.Update(msg)
	}
	switch m.focus {
	case focusSearch:
		return m.handleInputKey(msg, &m.searchInput, m.submitSearch)
	case focusDelete:
		return m.handleInputKey(msg, &m.deleteInput, m.submitDelete)
	}
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Quit()
		m.state.CancelAll()
		return tea.Quit
	case key.Matches(msg, m.keys.ListAll):
		return m.issue(api.ActionList, "")
	case key.Matches(msg, m.keys.ListTypes):
		return m.issue(api.ActionTypes, "")
	case key.Matches(msg, m.keys.AddProduct):
		return m.openAddDialog()
	case key.Matches(msg, m.keys.Search):
		return m.focusInput(focusSearch)
	case key.Matches(msg, m.keys.Delete):
		return m.focusInput(focusDelete)
	case key.Matches(msg, m.keys.CloseNotice):
		m.state.CloseNotification()
		return nil
	case key.Matches(msg, m.keys.CopyID):
		if id, ok := m.table.SelectedID(); ok {
			return copyIDCmd(id)
		}
		return nil
	}
	return m.table.Update(msg)
}

func (m *Model) handleInputKey(msg tea.KeyMsg, input *textinput.Model, submit func() tea.Cmd) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.blurInputs()
		return nil
	case key.Matches(msg, m.keys.Submit):
		return submit()
	}
	var cmd tea.Cmd
	*input, cmd = input.Update(msg)
	m.state.SetSearchID(m.searchInput.Value())
	m.state.SetDeleteID(m.deleteInput.Value())
	return cmd
}

func (m *Model) focusInput(f focus) tea.Cmd {
	m.blurInputs()
	m.focus = f
	m.table.SetFocused(false)
	if f == focusSearch {
		return m.searchInput.Focus()
	}
	return m.deleteInput.Focus()
}

func (m *Model) blurInputs() {
	m.searchInput.Blur()
	m.deleteInput.Blur()
	m.focus = focusTable
	m.table.SetFocused(true)
}

func (m *Model) openAddDialog() tea.Cmd {
	m.state.OpenAddDialog()
	return m.buildForm()
}

// buildForm creates a focused form from the current draft and types
func (m *Model) buildForm() tea.Cmd {
	m.form = components.NewAddProductForm(m.state.Draft, m.state.Types)
	if w, _ := m.Size(); w > 0 {
		m.form.SetWidth(w)
	}
	return m.form.Init()
}

// syncAddDialog rebuilds or drops the form to match state after an add settles.
// A rebuilt form starts focused so the kept draft can be edited.
func (m *Model) syncAddDialog() tea.Cmd {
	if !m.state.AddDialogOpen {
		m.form = nil
		return nil
	}
	return m.buildForm()
}

func (m *Model) submitSearch() tea.Cmd {
	m.state.SetSearchID(m.searchInput.Value())
	return m.issue(api.ActionGet, m.state.SearchID)
}

func (m *Model) submitDelete() tea.Cmd {
	m.state.SetDeleteID(m.deleteInput.Value())
	return m.issue(api.ActionDelete, m.state.DeleteID)
}

func (m *Model) submitAdd() tea.Cmd {
	return m.issue(api.ActionAdd, "")
}

// issue starts a request of action, superseding any in-flight one of the same kind
func (m *Model) issue(action api.Action, id string) tea.Cmd {
	ctx, ticket := m.state.Begin(m.Context(), action)
	m.log.Debug("Issuing request", "action", action, "ticket", ticket.Gen)
	var cmd tea.Cmd
	switch action {
	case api.ActionList:
		cmd = listProductsCmd(ctx, m.client, ticket)
	case api.ActionGet:
		cmd = getProductCmd(ctx, m.client, ticket, id)
	case api.ActionTypes:
		cmd = listTypesCmd(ctx, m.client, ticket)
	case api.ActionAdd:
		cmd = addProductCmd(ctx, m.client, ticket, m.state.Draft)
	case api.ActionDelete:
		cmd = deleteProductCmd(ctx, m.client, ticket, id)
	default:
		return nil
	}
	if m.spinning {
		return cmd
	}
	m.spinning = true
	return tea.Batch(cmd, m.spinner.Tick)
}

func (m *Model) afterResult(t Ticket, err error, effect Effect) tea.Cmd {
	if !effect.Applied {
		m.log.Debug("Dropping stale result", "action", t.Action, "ticket", t.Gen)
		return nil
	}
	if err != nil {
		m.log.Debug("Request failed", "action", t.Action, "kind", api.KindOf(err), "error", err)
	}
	var cmds []tea.Cmd
	if effect.Notified {
		cmds = append(cmds, components.ExpireNotification(m.state.Notification.Seq, m.opts.NotificationTimeout))
	}
	if effect.Relist {
		cmds = append(cmds, m.issue(api.ActionList, ""))
	}
	return tea.Batch(cmds...)
}

func (m *Model) notify(message string, failed bool) tea.Cmd {
	seq := m.state.Notify(message, failed)
	return components.ExpireNotification(seq, m.opts.NotificationTimeout)
}

// View implements tea.Model
func (m *Model) View() string {
	if m.IsQuitting() {
		return ""
	}
	width, _ := m.Size()
	sections := []string{components.RenderASCIIHeader(title, width)}
	if n := m.state.Notification; n.Visible {
		sections = append(sections, components.RenderNotification(n.Message, n.Failed, width))
	}
	if m.form != nil {
		sections = append(sections, m.form.View())
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}
	sections = append(sections,
		m.renderStatus(),
		m.renderTypes(),
		styles.RenderSection("Search"),
		m.searchInput.View(),
	)
	if m.state.Detail != nil {
		sections = append(sections, m.renderDetail(*m.state.Detail))
	}
	sections = append(sections,
		styles.RenderSection("Products"),
		m.table.View(),
		styles.RenderSection("Delete"),
		m.deleteInput.View(),
		"",
		m.help.View(m.keys),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderStatus() string {
	if !m.state.Busy() {
		return ""
	}
	var pending []string
	for _, action := range api.Actions {
		if m.state.Pending(action) {
			pending = append(pending, string(action))
		}
	}
	return m.spinner.View() + styles.HelpStyle.Render(" loading "+strings.Join(pending, ", "))
}

func (m *Model) renderTypes() string {
	heading := styles.RenderSection("Product Types")
	if len(m.state.Types) == 0 {
		return heading + "\n" + styles.HelpStyle.Render("No product types available")
	}
	chips := make([]string, 0, len(m.state.Types))
	for _, t := range m.state.Types {
		chips = append(chips, styles.ChipStyle.Render(t))
	}
	return heading + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, chips...)
}

func (m *Model) renderDetail(p api.Product) string {
	line := func(label, value string) string {
		return styles.LabelStyle.Render(label+":") + value
	}
	body := strings.Join([]string{
		line("ID", p.ID.String()),
		line("Type", p.Type),
		line("Name", p.Name),
		line("Price", p.FormatPrice()),
	}, "\n")
	return styles.RenderSection("Product Details") + "\n" + styles.PanelStyle.Render(body)
}
