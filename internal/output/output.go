// Package output handles result serialization for files and stdout.
package output

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Format represents output format types.
type Format string

const (
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
	FormatYAML  Format = "yaml"
)

// Writer handles output serialization. Write may buffer; Flush commits.
type Writer interface {
	Write(data any) error
	Flush() error
	Close() error
}

// NewWriter creates a writer for the specified format.
func NewWriter(w io.Writer, format Format) (Writer, error) {
	switch format {
	case FormatJSON:
		return &jsonWriter{w: bufio.NewWriter(w)}, nil
	case FormatJSONL:
		return &jsonlWriter{w: bufio.NewWriter(w)}, nil
	case FormatYAML:
		return &yamlWriter{enc: yaml.NewEncoder(w)}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// jsonWriter buffers items and emits a single object or an array on Flush.
type jsonWriter struct {
	w     *bufio.Writer
	items []any
}

func (w *jsonWriter) Write(data any) error {
	w.items = append(w.items, data)
	return nil
}

func (w *jsonWriter) Flush() error {
	var payload any = w.items
	if len(w.items) == 1 {
		payload = w.items[0]
	}
	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	if _, err := w.w.Write(out); err != nil {
		return err
	}
	if _, err := w.w.WriteString("\n"); err != nil {
		return err
	}
	return w.w.Flush()
}

func (w *jsonWriter) Close() error {
	return w.Flush()
}

// jsonlWriter writes newline-delimited JSON.
type jsonlWriter struct {
	w *bufio.Writer
}

func (w *jsonlWriter) Write(data any) error {
	out, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(out); err != nil {
		return err
	}
	if _, err := w.w.WriteString("\n"); err != nil {
		return err
	}
	return nil
}

func (w *jsonlWriter) Flush() error {
	return w.w.Flush()
}

func (w *jsonlWriter) Close() error {
	return w.Flush()
}

// yamlWriter writes each item as a YAML document.
type yamlWriter struct {
	enc *yaml.Encoder
}

func (w *yamlWriter) Write(data any) error {
	return w.enc.Encode(data)
}

func (w *yamlWriter) Flush() error {
	return nil
}

func (w *yamlWriter) Close() error {
	return w.enc.Close()
}
