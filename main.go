package main

import (
	"flag"
	"net/http"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/phuslu/log"

	"screenerscraper/api"
	"screenerscraper/app"
	"screenerscraper/config"
	"screenerscraper/tools"
)

const version = "1.0.0"

func main() {
	httpMode := flag.Bool("http", false, "serve the HTTP API instead of the MCP stdio server")
	flag.Parse()

	cfg := config.Load()

	// MCP talks JSON-RPC over stdout, so logs go to stderr in both modes.
	log.DefaultLogger = log.Logger{
		Level:  log.ParseLevel(cfg.LogLevel),
		Writer: &log.ConsoleWriter{Writer: os.Stderr},
	}

	svc := app.New(cfg)

	if *httpMode {
		router := api.NewRouter(svc)
		log.Info().Str("port", cfg.Port).Msg("HTTP server listening")
		if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
		return
	}

	mcpServer := server.NewMCPServer(
		"screener",
		version,
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(tools.CreateGetStockDataTool(), tools.HandleGetStockData(svc))
	mcpServer.AddTool(tools.CreateFetchLivePriceTool(), tools.HandleFetchLivePrice(svc))

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatal().Err(err).Msg("MCP server failed")
	}
}
