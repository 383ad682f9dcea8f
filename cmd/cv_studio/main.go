// Package main provides the entry point for the CV Studio HTTP API server and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cv_studio",
	Short: "CV Studio HTTP API Server",
	Long:  "CV Studio drives a multi-step CV editor: AI-drafted content, undo-aware editing, template and color selection, and PDF/image export via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
