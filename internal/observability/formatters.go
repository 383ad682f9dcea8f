// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/cv-studio/internal/editor"
	"github.com/jonathan/cv-studio/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintDocument outputs a human-readable summary of a CV document.
func (p *Printer) PrintDocument(doc *types.CVDocument) {
	if doc == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:   %s\n", doc.Name))
	sb.WriteString(fmt.Sprintf("Title:  %s\n", doc.Title))
	if doc.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:  %s\n", doc.Email))
	}
	if doc.Phone != "" {
		sb.WriteString(fmt.Sprintf("Phone:  %s\n", doc.Phone))
	}

	if doc.Summary != "" {
		summary := doc.Summary
		if len(summary) > 50 {
			summary = summary[:47] + "..."
		}
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("Summary: %s\n", summary))
	}

	if len(doc.Experience) > 0 {
		sb.WriteString("\nExperience:\n")
		count := min(len(doc.Experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			exp := doc.Experience[i]
			sb.WriteString(fmt.Sprintf("  • %s", exp.Position))
			if exp.Company != "" {
				sb.WriteString(fmt.Sprintf(" @ %s", exp.Company))
			}
			sb.WriteString("\n")
		}
		if len(doc.Experience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(doc.Experience)-maxItemsToShow))
		}
	}

	if len(doc.Education) > 0 {
		sb.WriteString("\nEducation:\n")
		count := min(len(doc.Education), 3)
		for i := 0; i < count; i++ {
			edu := doc.Education[i]
			sb.WriteString(fmt.Sprintf("  • %s", edu.Degree))
			if edu.Period != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", edu.Period))
			}
			sb.WriteString("\n")
		}
		if len(doc.Education) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(doc.Education)-3))
		}
	}

	if len(doc.Skills) > 0 {
		skills := strings.Join(doc.Skills, ", ")
		if len(skills) > 45 {
			skills = skills[:42] + "..."
		}
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("Skills: %s\n", skills))
	}

	if len(doc.Languages) > 0 {
		sb.WriteString("\nLanguages:\n")
		count := min(len(doc.Languages), 3)
		for i := 0; i < count; i++ {
			lang := doc.Languages[i]
			sb.WriteString(fmt.Sprintf("  • %s (%s)\n", lang.Name, lang.Level))
		}
		if len(doc.Languages) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(doc.Languages)-3))
		}
	}

	p.printBox("CV DOCUMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSession outputs the state of an editing session.
func (p *Printer) PrintSession(sess *editor.Session) {
	if sess == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Session:  %s\n", sess.ID))
	sb.WriteString(fmt.Sprintf("Step:     %s\n", sess.Step))
	sb.WriteString(fmt.Sprintf("Locale:   %s\n", sess.Locale))
	sb.WriteString(fmt.Sprintf("Template: %d\n", sess.TemplateIndex))
	sb.WriteString(fmt.Sprintf("Color:    %d\n", sess.ColorIndex))

	status := []string{}
	if sess.Generating {
		status = append(status, "generating")
	}
	if sess.Loading {
		status = append(status, "loading")
	}
	if sess.CanUndo() {
		status = append(status, "undoable")
	}
	if sess.CanRedo() {
		status = append(status, "redoable")
	}
	if len(status) > 0 {
		sb.WriteString(fmt.Sprintf("Status:   %s\n", strings.Join(status, ", ")))
	}

	p.printBox("EDITOR SESSION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDraftWarning outputs a warning box when AI generation fell back to a
// seed-only draft.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintDraftWarning(err error) {
	if err == nil {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ DRAFT GENERATED")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	msg := err.Error()
	if len(msg) > 50 {
		msg = msg[:47] + "..."
	}
	p.printBox("DRAFT FALLBACK", fmt.Sprintf("⚠ generation failed, using seed draft\n%s", msg))
}
