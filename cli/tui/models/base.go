package models

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Mode represents the output mode for CLI commands
type Mode string

const (
	// ModeTUI represents interactive TUI mode
	ModeTUI Mode = "tui"
	// ModeJSON represents non-interactive JSON output mode
	ModeJSON Mode = "json"
)

// DefaultWidth is assumed until the terminal reports its size
const DefaultWidth = 100

// BaseModel holds state every full-screen model needs
type BaseModel struct {
	ctx      context.Context
	width    int
	height   int
	quitting bool
}

// NewBaseModel creates a new base model
func NewBaseModel(ctx context.Context) BaseModel {
	return BaseModel{ctx: ctx, width: DefaultWidth}
}

// Context returns the context
func (m BaseModel) Context() context.Context {
	return m.ctx
}

// Size returns the terminal size
func (m BaseModel) Size() (width, height int) {
	return m.width, m.height
}

// IsQuitting returns whether the model is quitting
func (m BaseModel) IsQuitting() bool {
	return m.quitting
}

// SetSize sets the terminal size
func (m *BaseModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Quit marks the model as quitting
func (m *BaseModel) Quit() {
	m.quitting = true
}

// Update handles window resizing and ctrl+c for all models
func (m *BaseModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.Quit()
			return tea.Quit
		}
	}
	return nil
}
