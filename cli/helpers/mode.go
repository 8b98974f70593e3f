package helpers

import (
	"os"

	"github.com/compozy/products/cli/tui/models"
	"github.com/compozy/products/pkg/config"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// isRunningInCI checks if we're running in a CI/CD environment
func isRunningInCI() bool {
	if os.Getenv("CI") != "" {
		return true
	}
	ciVars := []string{
		"JENKINS_HOME",
		"GITHUB_ACTIONS",
		"GITLAB_CI",
		"CIRCLECI",
		"TRAVIS",
		"BUILDKITE",
		"DRONE",
		"TF_BUILD", // Azure DevOps
		"CODEBUILD_BUILD_ID",
		"TEAMCITY_VERSION",
		"CONTINUOUS_INTEGRATION",
	}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// checkExplicitFormat checks for an explicit format in configuration
func checkExplicitFormat(cfg *config.Config) (models.Mode, bool) {
	switch cfg.CLI.DefaultFormat {
	case string(OutputFormatJSON):
		return models.ModeJSON, true
	case string(OutputFormatTUI):
		return models.ModeTUI, true
	default:
		return models.ModeJSON, false
	}
}

// isInteractiveEnvironment checks if we're in an interactive environment
func isInteractiveEnvironment(cfg *config.Config) bool {
	if cfg.CLI.Interactive {
		return true
	}
	if isRunningInCI() {
		return false
	}
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return false
	}
	term := os.Getenv("TERM")
	return term != "dumb" && term != ""
}

// DetectMode picks the output mode from configuration, falling back to
// terminal detection when the format is "auto"
func DetectMode(cmd *cobra.Command) models.Mode {
	cfg := config.FromContext(cmd.Context())
	if cfg == nil {
		return models.ModeJSON
	}
	if mode, found := checkExplicitFormat(cfg); found {
		return mode
	}
	if isInteractiveEnvironment(cfg) {
		return models.ModeTUI
	}
	return models.ModeJSON
}

// ShouldUseColor determines if colored output should be used
func ShouldUseColor(cmd *cobra.Command) bool {
	cfg := config.FromContext(cmd.Context())
	if cfg != nil && cfg.CLI.NoColor {
		return false
	}
	if os.Getenv("NO_COLOR") != "" || isRunningInCI() {
		return false
	}
	if !isTerminal(os.Stdout) {
		return false
	}
	term := os.Getenv("TERM")
	return term != "dumb" && term != ""
}
