// Package analyzer computes text file statistics: lines, words, characters
// and byte size. A single pass over the file classifies every byte, so memory
// use stays constant regardless of file size.
package analyzer

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// MaxFilenameLen bounds the filename recorded in Stats. Longer paths are
// silently truncated to this many bytes.
const MaxFilenameLen = 255

// Stats holds the result of analyzing a single file.
type Stats struct {
	Filename   string `json:"filename"`
	Lines      int64  `json:"lines"`
	Words      int64  `json:"words"`
	Characters int64  `json:"characters"`
	SizeBytes  int64  `json:"size_bytes"`
}

// OpenError reports that the target file could not be opened for analysis.
// It covers missing files, permission denials and directories alike.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("unable to open file %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// ReadError reports an I/O failure partway through the scan. No partial
// counts are returned alongside it.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("unable to read file %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Analyze opens the file at path and computes its statistics in one pass.
// Words are maximal runs of non-whitespace bytes; lines count newline bytes
// only, so a final line without a trailing newline is not counted. The
// returned filename is the supplied path capped at MaxFilenameLen bytes.
func Analyze(path string) (*Stats, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	defer file.Close()

	// os.Open succeeds on directories; treat that as an open failure too.
	info, err := file.Stat()
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}

	if info.IsDir() {
		return nil, &OpenError{Path: path, Err: fmt.Errorf("%s is a directory", path)}
	}

	// Determine size by seeking to the end, then rewind for the scan.
	size, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}

	_, err = file.Seek(0, io.SeekStart)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}

	stats := &Stats{
		Filename:  truncateFilename(path),
		SizeBytes: size,
	}

	reader := bufio.NewReader(file)
	inWord := false

	for {
		b, err := reader.ReadByte()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, &ReadError{Path: path, Err: err}
		}

		stats.Characters++

		if b == '\n' {
			stats.Lines++
		}

		if isSpace(b) {
			inWord = false
		} else if !inWord {
			inWord = true
			stats.Words++
		}
	}

	return stats, nil
}

// isSpace reports whether b is ASCII whitespace: space, tab, newline,
// vertical tab, form feed or carriage return.
func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}

// truncateFilename caps path at MaxFilenameLen bytes. Truncation is silent;
// the cap exists so the filename field of a record stays bounded.
func truncateFilename(path string) string {
	if len(path) > MaxFilenameLen {
		return path[:MaxFilenameLen]
	}

	return path
}
