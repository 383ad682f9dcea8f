package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-studio/internal/config"
	"github.com/jonathan/cv-studio/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for editor sessions, stored CVs, sharing and exports.`,
	RunE:  runServe,
}

var (
	serveConfigPath string
	servePort       int
	serveBaseURL    string
	serveLocale     string
)

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on")
	serveCmd.Flags().StringVar(&serveBaseURL, "base-url", "", "Public origin used in share links")
	serveCmd.Flags().StringVar(&serveLocale, "locale", "", "Default editor locale (fr or en)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	fileCfg := &config.Config{}
	if serveConfigPath != "" {
		loaded, err := config.LoadConfig(serveConfigPath)
		if err != nil {
			return err
		}
		fileCfg = loaded
	}

	// Flags override the config file, the config file overrides built-in
	// defaults and the environment fills the secrets.
	flagCfg := config.Config{
		Port:    servePort,
		BaseURL: serveBaseURL,
		Locale:  serveLocale,
	}
	merged := flagCfg.MergeWithDefaults(*fileCfg)
	merged = merged.MergeWithDefaults(config.Config{
		Port:        8080,
		BaseURL:     "http://localhost:8080",
		Locale:      "fr",
		DatabaseURL: os.Getenv("DATABASE_URL"),
		APIKey:      os.Getenv("GEMINI_API_KEY"),
	})
	if err := merged.Validate(); err != nil {
		return err
	}

	if merged.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	srv, err := server.New(context.Background(), server.Config{
		Port:        merged.Port,
		DatabaseURL: merged.DatabaseURL,
		APIKey:      merged.APIKey,
		BaseURL:     merged.BaseURL,
		Locale:      merged.Locale,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
