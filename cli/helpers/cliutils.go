package helpers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/compozy/products/cli/tui/models"
	"github.com/compozy/products/pkg/logger"
)

// CliError represents a CLI-specific error with enhanced context
type CliError struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   string         `json:"details,omitempty"`
	Context   map[string]any `json:"context,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

func (e *CliError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewCliError creates a new CLI error with context
func NewCliError(code, message string, details ...string) *CliError {
	err := &CliError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
		Context:   make(map[string]any),
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}

// WithContext adds context to the error
func (e *CliError) WithContext(key string, value any) *CliError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// IsTimeoutError checks if an error is a timeout error
func IsTimeoutError(err error) bool {
	if err == nil {
		return false
	}
	var cliErr *CliError
	if errors.As(err, &cliErr) && cliErr.Code == CodeTimeout {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// IsNetworkError checks if an error is a network-related error
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	var cliErr *CliError
	if errors.As(err, &cliErr) && cliErr.Code == CodeNetwork {
		return true
	}
	return ContainsAny(err.Error(), "connection refused", "connection reset", "no route to host", "no such host")
}

// FormatError formats errors based on output mode
func FormatError(err error, mode models.Mode) string {
	if err == nil {
		return ""
	}
	switch mode {
	case models.ModeJSON:
		return formatErrorJSON(err)
	case models.ModeTUI:
		return formatErrorTUI(err)
	default:
		return err.Error()
	}
}

// formatErrorJSON formats errors for JSON output
func formatErrorJSON(err error) string {
	errorResponse := map[string]any{
		"error":   err.Error(),
		"details": "",
	}
	var cliErr *CliError
	if errors.As(err, &cliErr) {
		errorResponse = map[string]any{
			"code":    cliErr.Code,
			"error":   cliErr.Message,
			"details": cliErr.Details,
		}
	}
	jsonBytes, err := json.MarshalIndent(errorResponse, "", "  ")
	if err != nil {
		return `{"error": "JSON marshaling failed", "details": ""}`
	}
	return string(jsonBytes)
}

// formatErrorTUI formats errors for TUI output with colors and icons
func formatErrorTUI(err error) string {
	message, details := err.Error(), ""
	var cliErr *CliError
	if errors.As(err, &cliErr) {
		message, details = cliErr.Message, cliErr.Details
	}
	result := formatErrorMessage(getErrorIcon(err), message)
	if details != "" {
		result += formatErrorDetails(details)
	}
	return result
}

// getErrorIcon returns appropriate icon based on error type
func getErrorIcon(err error) string {
	switch {
	case IsNetworkError(err):
		return "🌐"
	case IsTimeoutError(err):
		return "⏰"
	default:
		return "❌"
	}
}

func formatErrorMessage(icon, message string) string {
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF6B6B")).
		Bold(true)
	return fmt.Sprintf("%s %s", icon, style.Render(message))
}

func formatErrorDetails(details string) string {
	detailStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		Italic(true)
	return "\n" + detailStyle.Render(fmt.Sprintf("Details: %s", details))
}

// OutputError writes an error to w in the appropriate format
func OutputError(w io.Writer, err error, mode models.Mode) {
	if err == nil {
		return
	}
	fmt.Fprintln(w, FormatError(err, mode))
}

// ContainsAny reports whether s contains any of the provided substrings.
// The comparison is case-insensitive; empty substrings are ignored.
func ContainsAny(s string, substrings ...string) bool {
	lower := strings.ToLower(s)
	for _, sub := range substrings {
		if sub == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}

// Truncate returns s truncated to at most maxLength runes.
// Longer strings end with "..." when maxLength > 3.
func Truncate(s string, maxLength int) string {
	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}
	if maxLength <= 3 {
		return string(runes[:maxLength])
	}
	return string(runes[:maxLength-3]) + "..."
}

// LogOperation logs the start and completion of an operation
func LogOperation(ctx context.Context, operation string, fn func() error) error {
	log := logger.FromContext(ctx)
	start := time.Now()
	log.Debug("starting operation", "operation", operation)
	err := fn()
	duration := time.Since(start)
	if err != nil {
		log.Debug("operation failed", "operation", operation, "duration", duration, "error", err)
	} else {
		log.Debug("operation completed", "operation", operation, "duration", duration)
	}
	return err
}

// Pluralize returns singular or plural form based on count
func Pluralize(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}
