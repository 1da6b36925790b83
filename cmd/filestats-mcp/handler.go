package main

import (
	"context"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/mcp"

	"filestats/internal/analyzer"
	"filestats/internal/record"
)

// handleFileStats runs one analysis for the file_stats tool. Analyzer
// failures are returned as error records inside the tool result, not as
// protocol errors, so callers always get a parseable record back.
func handleFileStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments

	filename, ok := args["filename"].(string)
	if !ok || filename == "" {
		return nil, fmt.Errorf("missing or invalid required argument: filename (string)")
	}

	log.Printf("Handling file_stats: filename=%s", filename)

	var rec any

	stats, err := analyzer.Analyze(filename)
	if err != nil {
		log.Printf("Analysis failed for '%s': %v", filename, err)
		rec = record.FailureFromError(err)
	} else {
		rec = record.FromStats(stats)
	}

	data, err := record.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: string(data),
			},
		},
	}, nil
}
