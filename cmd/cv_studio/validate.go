package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-studio/internal/observability"
	"github.com/jonathan/cv-studio/internal/types"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a CV document file",
	Long:  "Decodes a CVDocument JSON file, migrating any legacy field spellings, and reports whether it is usable by the editor.",
	RunE:  runValidate,
}

var (
	validateInput   string
	validateVerbose bool
)

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "in", "i", "", "Path to CVDocument JSON file (required)")
	validateCmd.Flags().BoolVarP(&validateVerbose, "verbose", "v", false, "Print the decoded document")

	if err := validateCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, _ []string) error {
	content, err := os.ReadFile(validateInput)
	if err != nil {
		return fmt.Errorf("failed to read document file: %w", err)
	}

	var doc types.CVDocument
	if err := json.Unmarshal(content, &doc); err != nil {
		return fmt.Errorf("failed to unmarshal document JSON: %w", err)
	}

	info := types.BasicInfo{Name: doc.Name, Title: doc.Title, Email: doc.Email, Phone: doc.Phone}
	if err := info.Validate(); err != nil {
		return fmt.Errorf("document is incomplete: %w", err)
	}

	if validateVerbose {
		observability.NewPrinter(os.Stdout).PrintDocument(&doc)
	}

	fmt.Printf("%s is a valid CV document\n", validateInput)
	return nil
}
