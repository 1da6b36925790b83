package webserver

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"filestats/internal/analyzer"
	"filestats/internal/config"
)

// sniffLen is how many leading bytes are inspected to decide whether an
// upload looks like text.
const sniffLen = 512

// ValidateUpload checks an uploaded file against the server configuration
// before it is written to disk.
func ValidateUpload(file multipart.File, header *multipart.FileHeader, cfg config.Config) error {
	if strings.TrimSpace(header.Filename) == "" {
		return fmt.Errorf("filename cannot be empty")
	}

	if header.Size > cfg.MaxUploadBytes {
		return fmt.Errorf("file too large: %d bytes (max %d)", header.Size, cfg.MaxUploadBytes)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !cfg.ExtensionAllowed(ext) {
		return fmt.Errorf("invalid file type: %s (allowed: %s)", ext, strings.Join(cfg.AllowedExtensions, ", "))
	}

	if strings.Contains(header.Filename, "..") || strings.ContainsAny(header.Filename, `/\`) {
		return fmt.Errorf("invalid filename: contains path traversal characters")
	}

	err := sniffText(file)
	if err != nil {
		return err
	}

	return nil
}

// sniffText reads the first bytes of the upload and rejects content that is
// clearly binary. The file position is restored afterwards.
func sniffText(file multipart.File) error {
	buffer := make([]byte, sniffLen)

	n, err := file.Read(buffer)
	if err != nil && n == 0 {
		// Empty files are legitimate input for the analyzer.
		if errors.Is(err, io.EOF) {
			return nil
		}

		return fmt.Errorf("cannot read file content: %w", err)
	}

	if seeker, ok := file.(interface{ Seek(int64, int) (int64, error) }); ok {
		seeker.Seek(0, 0)
	}

	for i := 0; i < n; i++ {
		b := buffer[i]
		// Printable ASCII plus the whitespace bytes the analyzer classifies.
		if b < 32 && b != '\t' && b != '\n' && b != '\v' && b != '\f' && b != '\r' {
			return fmt.Errorf("file contains invalid characters (not a text file)")
		}
	}

	return nil
}

// SanitizeFilename strips path separators and shell-hostile characters from
// an uploaded filename and caps it at the analyzer's filename bound.
func SanitizeFilename(filename string) string {
	replacer := strings.NewReplacer(
		"/", "",
		`\`, "",
		"..", "",
		":", "",
		"*", "",
		"?", "",
		"<", "",
		">", "",
		"|", "",
	)

	filename = strings.TrimSpace(replacer.Replace(filename))

	if filename == "" {
		filename = "upload"
	}

	if len(filename) > analyzer.MaxFilenameLen {
		filename = filename[:analyzer.MaxFilenameLen]
	}

	return filename
}
