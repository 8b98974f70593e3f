package styles

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	Primary   = lipgloss.Color("#04B575")
	Secondary = lipgloss.Color("#7D56F4")
	Highlight = lipgloss.Color("#FAFAFA")
	Surface   = lipgloss.Color("#3C3C3C")
	Border    = lipgloss.Color("#555555")
	Muted     = lipgloss.Color("#888888")
	Success   = lipgloss.Color("#04B575")
	Warning   = lipgloss.Color("#F7B500")
	Danger    = lipgloss.Color("#FF6B6B")
	Info      = lipgloss.Color("#5DA9E9")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	SectionTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(Secondary).
				MarginTop(1)

	InfoStyle    = lipgloss.NewStyle().Foreground(Info)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
	SuccessStyle = lipgloss.NewStyle().Foreground(Success).Bold(true)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Danger).Bold(true)

	HelpStyle       = lipgloss.NewStyle().Foreground(Muted)
	PaginationStyle = lipgloss.NewStyle().Foreground(Muted).MarginTop(1)
	LabelStyle      = lipgloss.NewStyle().Foreground(Muted).Width(8)

	ChipStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1)

	DialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	SuccessBannerStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Success).
				Foreground(Success).
				Padding(0, 1)

	ErrorBannerStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Danger).
				Foreground(Danger).
				Padding(0, 1)
)

// RenderTitle renders a plain title
func RenderTitle(title string) string {
	return TitleStyle.Render(title)
}

// RenderSection renders a section heading
func RenderSection(title string) string {
	return SectionTitleStyle.Render(title)
}
