// Package output provides JSON output formatting for datasets and
// descriptors.
package output

import (
	"encoding/json"
	"io"
	"os"
)

// Config holds output configuration.
type Config struct {
	Pretty   bool   `json:"pretty" yaml:"pretty"`
	FilePath string `json:"file_path" yaml:"file_path"`
}

// JSONWriter writes values in JSON format.
type JSONWriter struct {
	writer io.Writer
	pretty bool
}

// NewJSONWriter creates a new JSON writer.
func NewJSONWriter(w io.Writer, pretty bool) *JSONWriter {
	return &JSONWriter{writer: w, pretty: pretty}
}

// Write marshals a value and writes it followed by a newline.
func (j *JSONWriter) Write(v interface{}) error {
	var data []byte
	var err error

	if j.pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	if _, err = j.writer.Write(data); err != nil {
		return err
	}
	_, err = j.writer.Write([]byte("\n"))
	return err
}

// WriteFile marshals a value to a file, or to stdout when path is empty.
func WriteFile(path string, v interface{}, pretty bool) error {
	if path == "" {
		return NewJSONWriter(os.Stdout, pretty).Write(v)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return NewJSONWriter(f, pretty).Write(v)
}
