package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the tmsim ASCII art banner.
func PrintBanner(w io.Writer) {
	o := termenv.NewOutput(w)
	// Using a subtle gradient-like color scheme (Indigo/Violet)
	lines := []struct {
		text  string
		color string
	}{
		{"  _                 _", "#818cf8"},
		{" | |_ _ __ ___  ___(_)_ __ ___", "#a78bfa"},
		{" | __| '_ ` _ \\/ __| | '_ ` _ \\", "#c084fc"},
		{" | |_| | | | | \\__ \\ | | | | | |", "#e879f9"},
		{"  \\__|_| |_| |_|___/_|_| |_| |_|", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, o.String(l.text).Foreground(o.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// Success prints a green status line.
func Success(w io.Writer, msg string) {
	o := termenv.NewOutput(w)
	fmt.Fprintln(w, o.String("✔ "+msg).Foreground(o.Color("#22c55e")))
}

// Failure prints a red status line.
func Failure(w io.Writer, msg string) {
	o := termenv.NewOutput(w)
	fmt.Fprintln(w, o.String("✘ "+msg).Foreground(o.Color("#ef4444")))
}
