package main

import (
	"flag"
	"log/slog"
	"os"

	"gradecli/internal/app"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional, defaults apply)")
	flag.Parse()

	application, err := app.New(*configPath)
	if err != nil {
		slog.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}
