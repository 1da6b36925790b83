// Command filestats-server runs the upload-and-analyze HTTP server. Clients
// POST a text file to /analyze and receive the same JSON record the
// file_stats CLI prints.
package main

import (
	"flag"
	"log"
	"net/http"

	"filestats/internal/config"
	"filestats/internal/webserver"
)

func main() {
	configPath := flag.String("config", "filestats.toml", "path to the TOML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	srv := webserver.New(cfg)

	log.Println("Server started on", cfg.Listen)
	log.Println("POST a file to /analyze to get its statistics")

	if err := http.ListenAndServe(cfg.Listen, srv.Handler()); err != nil {
		log.Fatal("Server startup error:", err)
	}
}
