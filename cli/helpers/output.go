package helpers

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// OutputWriter encodes command results for scripting
type OutputWriter struct {
	writer io.Writer
	format OutputFormat
}

// NewOutputWriter creates a new output writer
func NewOutputWriter(writer io.Writer, format OutputFormat) *OutputWriter {
	return &OutputWriter{
		writer: writer,
		format: format,
	}
}

// WriteData writes data in the configured format
func (ow *OutputWriter) WriteData(data any) error {
	switch ow.format {
	case OutputFormatJSON:
		return ow.writeJSON(data)
	case OutputFormatYAML:
		return ow.writeYAML(data)
	default:
		return fmt.Errorf("unsupported output format: %s", ow.format)
	}
}

func (ow *OutputWriter) writeJSON(data any) error {
	encoder := json.NewEncoder(ow.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func (ow *OutputWriter) writeYAML(data any) error {
	encoder := yaml.NewEncoder(ow.writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return encoder.Close()
}
