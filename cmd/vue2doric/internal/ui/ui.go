// Package ui renders the CLI's human-facing status lines.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Style definitions
var (
	primaryColor = lipgloss.Color("#3b82f6")
	successColor = lipgloss.Color("#10b981")
	warningColor = lipgloss.Color("#f59e0b")
	errorColor   = lipgloss.Color("#ef4444")
	mutedColor   = lipgloss.Color("#94a3b8")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	successStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	addedStyle   = lipgloss.NewStyle().Foreground(successColor)
	removedStyle = lipgloss.NewStyle().Foreground(errorColor)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)
)

// Printer writes styled lines to an output stream.
type Printer struct {
	w io.Writer
}

// New returns a Printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Title prints a heading.
func (p *Printer) Title(format string, args ...any) {
	fmt.Fprintln(p.w, titleStyle.Render(fmt.Sprintf(format, args...)))
}

// Success prints a completed step.
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintln(p.w, successStyle.Render("✓ ")+fmt.Sprintf(format, args...))
}

// Warn prints a non-fatal problem.
func (p *Printer) Warn(format string, args ...any) {
	fmt.Fprintln(p.w, warningStyle.Render("! "+fmt.Sprintf(format, args...)))
}

// Error prints a failure.
func (p *Printer) Error(format string, args ...any) {
	fmt.Fprintln(p.w, errorStyle.Render("✗ ")+fmt.Sprintf(format, args...))
}

// Muted prints secondary information.
func (p *Printer) Muted(format string, args ...any) {
	fmt.Fprintln(p.w, mutedStyle.Render(fmt.Sprintf(format, args...)))
}

// Diff prints a line diff with added and removed lines colored.
func (p *Printer) Diff(patch string) {
	for _, line := range strings.Split(strings.TrimSuffix(patch, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+"):
			line = addedStyle.Render(line)
		case strings.HasPrefix(line, "-"):
			line = removedStyle.Render(line)
		case strings.HasPrefix(line, "@@"):
			line = mutedStyle.Render(line)
		}
		fmt.Fprintln(p.w, "  "+line)
	}
}

// Table prints rows in aligned columns inside a box.
func (p *Printer) Table(header []string, rows [][]string) {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); i < len(widths) && w > widths[i] {
				widths[i] = w
			}
		}
	}

	line := func(cells []string, style lipgloss.Style) string {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = style.Width(widths[i]).Render(cell)
		}
		return strings.Join(parts, "  ")
	}

	lines := []string{line(header, titleStyle)}
	for _, row := range rows {
		lines = append(lines, line(row, lipgloss.NewStyle()))
	}
	fmt.Fprintln(p.w, boxStyle.Render(strings.Join(lines, "\n")))
}
