package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/rustyeddy/fxcredit/cmd/fxcredit/cmd"
	"github.com/rustyeddy/fxcredit/logger"
)

func main() {
	// Load environment variables from .env if present.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Get().WithError(err).Warn("Error loading .env file")
	}

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
