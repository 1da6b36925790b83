// Package record serializes analysis results into the fixed-shape JSON
// records that callers of the file_stats tool parse. Field names and order
// are part of the external contract and must not change.
package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"filestats/internal/analyzer"
)

// ToolName identifies this tool in every emitted record.
const ToolName = "file_stats"

// Success is the record emitted for a completed analysis.
type Success struct {
	Tool       string `json:"tool"`
	Filename   string `json:"filename"`
	Lines      int64  `json:"lines"`
	Words      int64  `json:"words"`
	Characters int64  `json:"characters"`
	SizeBytes  int64  `json:"size_bytes"`
	Status     string `json:"status"`
}

// Failure is the record emitted when analysis cannot run or fails.
type Failure struct {
	Tool   string `json:"tool"`
	Error  string `json:"error"`
	Status string `json:"status"`
}

// FromStats builds a Success record from analyzer output.
func FromStats(stats *analyzer.Stats) Success {
	return Success{
		Tool:       ToolName,
		Filename:   stats.Filename,
		Lines:      stats.Lines,
		Words:      stats.Words,
		Characters: stats.Characters,
		SizeBytes:  stats.SizeBytes,
		Status:     "success",
	}
}

// NewFailure builds a Failure record carrying the given message.
func NewFailure(message string) Failure {
	return Failure{
		Tool:   ToolName,
		Error:  message,
		Status: "error",
	}
}

// FailureFromError maps an analyzer error onto the stable messages callers
// match against. All open-time failures share one message.
func FailureFromError(err error) Failure {
	var readErr *analyzer.ReadError
	if errors.As(err, &readErr) {
		return NewFailure("Unable to read file")
	}

	return NewFailure("Unable to open file")
}

// Marshal renders a record as indented JSON with a trailing newline.
// encoding/json escapes quotes and control characters in string fields, so
// hostile filenames cannot break the record shape. HTML escaping is off:
// records go to stdout for machine parsing, never into markup, and the
// usage message contains angle brackets.
func Marshal(rec any) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	err := enc.Encode(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}

	return buf.Bytes(), nil
}

// Write renders a record and writes it to w.
func Write(w io.Writer, rec any) error {
	data, err := Marshal(rec)
	if err != nil {
		return err
	}

	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}

	return nil
}
