package helpers

// OutputFormat represents the encodings one-shot commands can print
type OutputFormat string

const (
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatTUI  OutputFormat = "tui"
)

// Error codes used by CliError
const (
	CodeNetwork    = "NETWORK_ERROR"
	CodeTimeout    = "TIMEOUT"
	CodeNotFound   = "NOT_FOUND"
	CodeServer     = "SERVER_ERROR"
	CodeValidation = "VALIDATION_ERROR"
	CodeCanceled   = "CANCELED"
	CodeConfig     = "CONFIG_ERROR"
	CodeInternal   = "INTERNAL_ERROR"
)
