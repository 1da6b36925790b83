// Package webserver exposes the analyzer over HTTP: upload a text file,
// receive the same JSON record the file_stats CLI prints.
package webserver

import (
	"embed"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"filestats/internal/analyzer"
	"filestats/internal/config"
	"filestats/internal/record"
)

//go:embed www/*
var wwwFiles embed.FS

// Server handles upload-and-analyze requests.
type Server struct {
	cfg config.Config
}

// New returns a Server using the given configuration.
func New(cfg config.Config) *Server {
	return &Server{cfg: cfg}
}

// Handler builds the full HTTP handler chain: routes, request logging and
// (when enabled) response compression.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.HomeHandler)
	mux.HandleFunc("/analyze", s.AnalyzeHandler)

	var handler http.Handler = mux
	handler = LoggingMiddleware(handler)

	if s.cfg.Compression {
		handler = CompressionMiddleware(handler)
	}

	return handler
}

// HomeHandler serves the embedded upload page.
func (s *Server) HomeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	content, err := wwwFiles.ReadFile("www/index.html")
	if err != nil {
		slog.Error("Error reading index.html", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(content)
}

// AnalyzeHandler receives a multipart file upload, analyzes it and responds
// with a file_stats record. The record's filename field reports the uploaded
// name, not the server-side temporary path.
func (s *Server) AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	log := slog.With("handler", "AnalyzeHandler")

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	file, header, err := s.receiveUpload(w, r)
	if err != nil {
		log.Error("Failed to receive upload", "error", err)
		WriteErrorResponse(w, err, http.StatusBadRequest)

		return
	}
	defer file.Close()

	tmpPath, err := saveUpload(file, header)
	if err != nil {
		log.Error("Failed to store upload", "error", err)
		WriteErrorResponse(w, err, http.StatusInternalServerError)

		return
	}
	defer os.Remove(tmpPath)

	stats, err := analyzer.Analyze(tmpPath)
	if err != nil {
		// The file was just written by us, so a failure here is a server
		// problem. Keep the record shape so agent callers can still parse it.
		log.Error("Analysis failed", "error", err)
		writeRecord(w, record.FailureFromError(err), http.StatusInternalServerError)

		return
	}

	stats.Filename = SanitizeFilename(header.Filename)

	writeRecord(w, record.FromStats(stats), http.StatusOK)
	log.Info("Upload analyzed", "filename", stats.Filename, "size_bytes", stats.SizeBytes)
}

// receiveUpload parses the multipart form and validates the uploaded file.
func (s *Server) receiveUpload(w http.ResponseWriter, r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	err := r.ParseMultipartForm(s.cfg.MaxFormBytes)
	if err != nil {
		return nil, nil, fmt.Errorf("form parsing error: %w", err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, nil, fmt.Errorf("file retrieval error: %w", err)
	}

	err = ValidateUpload(file, header, s.cfg)
	if err != nil {
		file.Close()
		return nil, nil, err
	}

	return file, header, nil
}

// saveUpload copies the uploaded content to a temporary file and returns its
// path. The caller removes the file when done.
func saveUpload(file multipart.File, header *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))

	tmp, err := os.CreateTemp("", "filestats-*"+ext)
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}

	_, err = io.Copy(tmp, file)
	closeErr := tmp.Close()

	if err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write temporary file: %w", err)
	}

	if closeErr != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to close temporary file: %w", closeErr)
	}

	return tmp.Name(), nil
}

// writeRecord sends a file_stats record as the response body.
func writeRecord(w http.ResponseWriter, rec any, status int) {
	data, err := record.Marshal(rec)
	if err != nil {
		slog.Error("Failed to marshal record", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}
