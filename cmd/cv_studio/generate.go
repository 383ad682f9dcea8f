package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-studio/internal/draft"
	"github.com/jonathan/cv-studio/internal/observability"
	"github.com/jonathan/cv-studio/internal/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a draft CV from basic details",
	Long:  "Calls the Gemini API to draft summary, experience, education, skills, languages and interests from a name and professional title, and writes the resulting CVDocument JSON.",
	RunE:  runGenerate,
}

var (
	generateName    string
	generateTitle   string
	generateEmail   string
	generatePhone   string
	generateLocale  string
	generateOutput  string
	generateAPIKey  string
	generateVerbose bool
)

func init() {
	generateCmd.Flags().StringVarP(&generateName, "name", "n", "", "Candidate name (required)")
	generateCmd.Flags().StringVarP(&generateTitle, "title", "t", "", "Professional title (required)")
	generateCmd.Flags().StringVar(&generateEmail, "email", "", "Candidate email")
	generateCmd.Flags().StringVar(&generatePhone, "phone", "", "Candidate phone")
	generateCmd.Flags().StringVarP(&generateLocale, "locale", "l", "fr", "Draft language (fr or en)")
	generateCmd.Flags().StringVarP(&generateOutput, "out", "o", "", "Path to output CVDocument JSON file (required)")
	generateCmd.Flags().StringVar(&generateAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	generateCmd.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "Print detailed debug information")

	if err := generateCmd.MarkFlagRequired("name"); err != nil {
		panic(fmt.Sprintf("failed to mark name flag as required: %v", err))
	}
	if err := generateCmd.MarkFlagRequired("title"); err != nil {
		panic(fmt.Sprintf("failed to mark title flag as required: %v", err))
	}
	if err := generateCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(_ *cobra.Command, _ []string) error {
	apiKey := generateAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("Gemini API key is required (--api-key or GEMINI_API_KEY)")
	}

	info := types.BasicInfo{
		Name:  generateName,
		Title: generateTitle,
		Email: generateEmail,
		Phone: generatePhone,
	}
	if err := info.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	generator, err := draft.NewGeminiGenerator(ctx, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create draft generator: %w", err)
	}
	defer generator.Close()

	doc, genErr := draft.Build(ctx, generator, info, generateLocale)

	printer := observability.NewPrinter(os.Stdout)
	if generateVerbose {
		printer.PrintDraftWarning(genErr)
		printer.PrintDocument(doc)
	} else if genErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: generation fell back to seed draft: %v\n", genErr)
	}

	jsonBytes, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal document to JSON: %w", err)
	}

	outputDir := filepath.Dir(generateOutput)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(generateOutput, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write document to output file: %w", err)
	}

	fmt.Printf("Draft written to %s\n", generateOutput)
	return nil
}
