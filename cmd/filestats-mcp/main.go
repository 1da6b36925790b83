// Command filestats-mcp serves the analyzer as an MCP tool over stdio so
// agent runtimes can call file_stats without spawning the CLI themselves.
package main

import (
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func main() {
	mcpServer := server.NewMCPServer(
		"FileStats",
		"1.0.0",
		server.WithLogging(),
		server.WithRecovery(),
	)

	fileStatsTool := mcp.NewTool("file_stats",
		mcp.WithDescription("Analyze a text file and report its line, word, character and byte counts as a JSON record."),
		mcp.WithString("filename",
			mcp.Description("Path to the text file to analyze. Must be readable by the server process."),
			mcp.Required(),
		),
	)

	mcpServer.AddTool(fileStatsTool, handleFileStats)

	log.Println("Starting FileStats MCP server via stdio...")
	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
