package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/compozy/products/cli/tui/styles"
)

// DefaultNotificationTimeout is how long a notification stays visible
const DefaultNotificationTimeout = 6 * time.Second

// NotificationExpiredMsg asks the owner to hide the notification with Seq
type NotificationExpiredMsg struct {
	Seq uint64
}

// ExpireNotification fires NotificationExpiredMsg for seq after timeout
func ExpireNotification(seq uint64, timeout time.Duration) tea.Cmd {
	if timeout <= 0 {
		timeout = DefaultNotificationTimeout
	}
	return tea.Tick(timeout, func(time.Time) tea.Msg {
		return NotificationExpiredMsg{Seq: seq}
	})
}

// RenderNotification renders a banner for message; failed selects the error style
func RenderNotification(message string, failed bool, width int) string {
	style := styles.SuccessBannerStyle
	icon := "✓"
	if failed {
		style = styles.ErrorBannerStyle
		icon = "✗"
	}
	if width > 4 {
		style = style.Width(width - 2)
	}
	return style.Render(icon+" "+message) + "\n" + styles.HelpStyle.Render("x to close")
}
