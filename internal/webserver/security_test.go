package webserver

import (
	"bytes"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filestats/internal/analyzer"
	"filestats/internal/config"
)

func newMultipartFile(t *testing.T, filename, content string) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)

	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(body, writer.Boundary())

	form, err := reader.ReadForm(10 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	headers := form.File["file"]
	require.Len(t, headers, 1)

	file, err := headers[0].Open()
	require.NoError(t, err)
	t.Cleanup(func() { file.Close() })

	return file, headers[0]
}

func TestValidateUpload(t *testing.T) {
	cfg := config.Default()

	tests := []struct {
		name        string
		filename    string
		content     string
		expectError bool
		errorMatch  string
	}{
		{
			name:        "valid text file",
			filename:    "notes.txt",
			content:     "line one\nline two\n",
			expectError: false,
		},
		{
			name:        "valid empty file",
			filename:    "empty.md",
			content:     "",
			expectError: false,
		},
		{
			name:        "invalid extension",
			filename:    "tool.exe",
			content:     "content",
			expectError: true,
			errorMatch:  "invalid file type",
		},
		{
			name:        "path traversal filename",
			filename:    "test..txt",
			content:     "content",
			expectError: true,
			errorMatch:  "path traversal",
		},
		{
			name:        "whitespace only filename",
			filename:    "   ",
			content:     "content",
			expectError: true,
			errorMatch:  "cannot be empty",
		},
		{
			name:        "binary content",
			filename:    "fake.txt",
			content:     "\x00\x01\x02\x03",
			expectError: true,
			errorMatch:  "invalid characters",
		},
		{
			name:        "text with analyzer whitespace bytes",
			filename:    "spaced.txt",
			content:     "a\tb\vc\fd\r\n",
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, header := newMultipartFile(t, tt.filename, tt.content)

			err := ValidateUpload(file, header, cfg)

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMatch)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUploadSizeLimit(t *testing.T) {
	cfg := config.Default()
	cfg.MaxUploadBytes = 8

	file, header := newMultipartFile(t, "big.txt", "this is more than eight bytes\n")

	err := ValidateUpload(file, header, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}

func TestValidateUploadRestoresPosition(t *testing.T) {
	file, header := newMultipartFile(t, "pos.txt", "hello\n")

	require.NoError(t, ValidateUpload(file, header, config.Default()))

	// The sniff must not consume the content the handler will copy.
	buf := make([]byte, 16)
	n, _ := file.Read(buf)
	assert.Equal(t, "hello\n", string(buf[:n]))
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "clean name", input: "report.txt", expected: "report.txt"},
		{name: "path separators removed", input: "a/b\\c.txt", expected: "abc.txt"},
		{name: "dangerous characters removed", input: "a:*?<>|.txt", expected: "a.txt"},
		{name: "whitespace trimmed", input: "  padded.txt  ", expected: "padded.txt"},
		{name: "empty becomes placeholder", input: "///", expected: "upload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

func TestSanitizeFilenameCapsLength(t *testing.T) {
	long := strings.Repeat("n", 400) + ".txt"

	sanitized := SanitizeFilename(long)
	assert.Len(t, sanitized, analyzer.MaxFilenameLen)
}
