package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/gavel-review/gavel/internal/cli"
)

func main() {
	// API keys commonly live in a local .env during development. A missing
	// file is fine.
	_ = godotenv.Load()

	os.Exit(cli.Run())
}
