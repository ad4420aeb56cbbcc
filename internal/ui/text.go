package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Formatter renders one kind of CLI output. With color it uses its color;
// without, it wraps the text in its plain decoration.
type Formatter struct {
	color *color.Color
	open  string
	close string
}

// Sprint formats the arguments like fmt.Sprint.
func (f Formatter) Sprint(a ...any) string {
	return f.render(fmt.Sprint(a...))
}

// Sprintf formats like fmt.Sprintf.
func (f Formatter) Sprintf(format string, a ...any) string {
	return f.render(fmt.Sprintf(format, a...))
}

func (f Formatter) render(text string) string {
	if noColor() {
		return f.open + text + f.close
	}
	return f.color.Sprint(text)
}

// EnsureNewline appends a newline unless s already ends with one.
func EnsureNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

// List renders items as an indented bullet list, each item formatted by f.
func List(f Formatter, items []string) string {
	var b strings.Builder
	for _, item := range items {
		b.WriteString("    - ")
		b.WriteString(f.Sprint(item))
		b.WriteString("\n")
	}
	return b.String()
}

// ColorEnabled reports whether formatters emit ANSI colors.
func ColorEnabled() bool {
	return !noColor()
}

// noColor reports whether color output is disabled, either by NO_COLOR
// (https://no-color.org/) or by fatih/color's terminal detection.
func noColor() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return true
	}
	return color.NoColor
}

var (
	// Code formats commands. `backticks` without color.
	Code = Formatter{color.New(color.FgYellow), "`", "`"}

	// Path formats file paths.
	Path = Formatter{color.New(color.FgYellow), "", ""}

	// Name formats variable names.
	Name = Formatter{color.New(color.FgCyan, color.Bold), "", ""}

	// Value formats revealed or masked values. 'single quotes' without
	// color.
	Value = Formatter{color.New(color.FgMagenta), "'", "'"}

	// Dimension formats a dimension token such as production or arm64.
	// [brackets] without color.
	Dimension = Formatter{color.New(color.FgBlue), "[", "]"}

	Success = Formatter{color.New(color.FgGreen), "", ""}
	Error   = Formatter{color.New(color.FgRed), "", ""}
	Warning = Formatter{color.New(color.FgYellow), "", ""}
	Info    = Formatter{color.New(color.FgCyan), "", ""}

	// Muted formats secondary text. (parentheses) without color.
	Muted = Formatter{color.New(color.FgHiBlack), "(", ")"}
)
