package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/meltforce/healthbridge/internal/mcp"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", "", "HealthBridge server URL (e.g. https://healthbridge.tail1234.ts.net)")
	apiKey := flag.String("api-key", "", "API key for the bridge's read endpoints")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("healthbridge-mcp", Version)
		return
	}

	// Log to stderr: stdout carries the MCP stdio transport.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *serverURL == "" || *apiKey == "" {
		fmt.Fprintf(os.Stderr, "Usage: healthbridge-mcp -server <URL> -api-key <key>\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	ds := mcp.NewHTTPClient(*serverURL, *apiKey)
	s := mcp.New(ds, Version, log)

	log.Info("MCP server starting", "transport", "stdio", "bridge", *serverURL)
	if err := server.ServeStdio(s); err != nil {
		log.Error("MCP server error", "error", err)
		os.Exit(1)
	}
}
