package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-studio/internal/export"
	"github.com/jonathan/cv-studio/internal/observability"
	"github.com/jonathan/cv-studio/internal/rendering"
	"github.com/jonathan/cv-studio/internal/types"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a CV document to PDF or image",
	Long:  "Renders a CVDocument JSON file with the chosen template and accent color into a PDF, PNG or JPEG file using headless Chrome.",
	RunE:  runRender,
}

var (
	renderInput    string
	renderOutput   string
	renderFormat   string
	renderTemplate int
	renderColor    int
	renderVerbose  bool
)

func init() {
	renderCmd.Flags().StringVarP(&renderInput, "in", "i", "", "Path to CVDocument JSON file (required)")
	renderCmd.Flags().StringVarP(&renderOutput, "out", "o", "", "Path to output file (required)")
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "pdf", "Output format: pdf, png or jpg")
	renderCmd.Flags().IntVarP(&renderTemplate, "template", "t", 0, "Template index")
	renderCmd.Flags().IntVarP(&renderColor, "color", "c", 0, "Accent color index")
	renderCmd.Flags().BoolVarP(&renderVerbose, "verbose", "v", false, "Print detailed debug information")

	if err := renderCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}
	if err := renderCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(renderCmd)
}

func runRender(_ *cobra.Command, _ []string) error {
	content, err := os.ReadFile(renderInput)
	if err != nil {
		return fmt.Errorf("failed to read document file: %w", err)
	}

	var doc types.CVDocument
	if err := json.Unmarshal(content, &doc); err != nil {
		return fmt.Errorf("failed to unmarshal document JSON: %w", err)
	}

	if renderVerbose {
		observability.NewPrinter(os.Stdout).PrintDocument(&doc)
	}

	format, err := export.ParseFormat(renderFormat)
	if err != nil {
		return err
	}

	html, err := rendering.RenderHTML(&doc, renderTemplate, renderColor)
	if err != nil {
		return err
	}

	renderer := export.NewChromeRenderer()
	ctx := context.Background()

	var data []byte
	if format == export.FormatPDF {
		data, err = renderer.RenderPDF(ctx, html)
	} else {
		data, err = renderer.RenderImage(ctx, html, format)
	}
	if err != nil {
		return fmt.Errorf("failed to render document: %w", err)
	}

	outputDir := filepath.Dir(renderOutput)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(renderOutput, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	fmt.Printf("Rendered %s (%d bytes) to %s\n", format, len(data), renderOutput)
	return nil
}
