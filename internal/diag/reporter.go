package diag

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Reporter renders Errors against one file's source, Rust-compiler
// style, grounded on kanso's ErrorReporter.FormatError.
type Reporter struct {
	filename string
	lines    []string
}

func NewReporter(filename, source string) *Reporter {
	return &Reporter{filename: filename, lines: strings.Split(source, "\n")}
}

func (r *Reporter) Format(err *Error) string {
	var b strings.Builder

	levelColor := r.levelColor(err.Level())
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	fmt.Fprintf(&b, "%s[%s]: %s\n", levelColor(string(err.Level())), err.Kind.Code(), err.Message)

	width := lineNumberWidth(err.Position.Line)
	indent := strings.Repeat(" ", width)

	fmt.Fprintf(&b, "%s %s %s:%d:%d\n", indent, dim("-->"), r.filename, err.Position.Line, err.Position.Column)
	fmt.Fprintf(&b, "%s %s\n", indent, dim("│"))

	if err.Position.Line > 1 && err.Position.Line-1 <= len(r.lines) {
		fmt.Fprintf(&b, "%s %s %s\n", dim(fmt.Sprintf("%*d", width, err.Position.Line-1)), dim("│"), r.lines[err.Position.Line-2])
	}

	if err.Position.Line > 0 && err.Position.Line <= len(r.lines) {
		fmt.Fprintf(&b, "%s %s %s\n", bold(fmt.Sprintf("%*d", width, err.Position.Line)), dim("│"), r.lines[err.Position.Line-1])
		fmt.Fprintf(&b, "%s %s %s\n", indent, dim("│"), r.marker(err.Position.Column, err.Length, err.Level()))
	}

	if err.Position.Line < len(r.lines) {
		fmt.Fprintf(&b, "%s %s %s\n", dim(fmt.Sprintf("%*d", width, err.Position.Line+1)), dim("│"), r.lines[err.Position.Line])
	}

	if len(err.Suggestions) > 0 {
		fmt.Fprintf(&b, "%s %s\n", indent, dim("│"))
		help := color.New(color.FgCyan).SprintFunc()
		for i, s := range err.Suggestions {
			if i == 0 {
				fmt.Fprintf(&b, "%s %s %s: %s\n", indent, help("help"), help("try"), s.Message)
			} else {
				fmt.Fprintf(&b, "%s %s %s\n", indent, help("    "), s.Message)
			}
			if s.Replacement != "" {
				fmt.Fprintf(&b, "%s %s %s\n", indent, dim("│"), help(s.Replacement))
			}
		}
	}

	for _, note := range err.Notes {
		noteColor := color.New(color.FgBlue).SprintFunc()
		fmt.Fprintf(&b, "%s %s %s %s\n", indent, dim("│"), noteColor("note:"), note)
	}

	if err.HelpText != "" {
		helpColor := color.New(color.FgGreen).SprintFunc()
		fmt.Fprintf(&b, "%s %s %s %s\n", indent, dim("│"), helpColor("help:"), err.HelpText)
	}

	b.WriteString("\n")
	return b.String()
}

func (r *Reporter) levelColor(level Level) func(...interface{}) string {
	switch level {
	case LevelWarning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

func (r *Reporter) marker(column, length int, level Level) string {
	if length <= 0 {
		length = 1
	}
	spaces := strings.Repeat(" ", max0(column-1))
	markerColor := color.New(color.FgRed, color.Bold).SprintFunc()
	if level == LevelWarning {
		markerColor = color.New(color.FgYellow, color.Bold).SprintFunc()
	}
	return spaces + markerColor(strings.Repeat("^", length))
}

func lineNumberWidth(line int) int {
	width := len(fmt.Sprintf("%d", line))
	if width < 3 {
		return 3
	}
	return width
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
