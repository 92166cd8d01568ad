package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/mlorenzo/librarian/internal/config"
	"github.com/mlorenzo/librarian/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	// A missing .env file is fine; the environment still applies.
	_ = godotenv.Load()

	cfg := config.NewConfig()
	if err := entrypoint.Run(cfg, Version); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
