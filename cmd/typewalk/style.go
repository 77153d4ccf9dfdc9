package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
)

// colorEnabled reports whether w is a terminal that accepts styling.
func colorEnabled(w io.Writer) bool {
	// NO_COLOR convention: https://no-color.org/
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

type printer struct {
	w     io.Writer
	color bool
}

// field prints one "label: value" line.
func (p *printer) field(label, value string) {
	if p.color {
		label = labelStyle.Render(label)
		value = typeStyle.Render(value)
	}
	fmt.Fprintf(p.w, "%s: %s\n", label, value)
}

// line prints a bare value.
func (p *printer) line(value string) {
	if p.color {
		value = typeStyle.Render(value)
	}
	fmt.Fprintln(p.w, value)
}

func errorLine(color bool, err error) string {
	msg := "Error: " + err.Error()
	if color {
		return errorStyle.Render(msg)
	}
	return msg
}
