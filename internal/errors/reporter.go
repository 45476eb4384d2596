package errors

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"mapshim/internal/ast"
)

// ErrorLevel represents the severity of an error
type ErrorLevel string

const (
	Error   ErrorLevel = "error"
	Warning ErrorLevel = "warning"
	Note    ErrorLevel = "note"
	Help    ErrorLevel = "help"
)

// CompilerError represents a structured error with suggestions and context
type CompilerError struct {
	Level       ErrorLevel
	Code        string       // Error code like E0001
	Message     string       // Primary error message
	Position    ast.Position // Location in source; Line 0 when there is none
	Length      int          // Length of the problematic region
	Target      string       // Interposition target the error concerns
	Suggestions []Suggestion // Suggested fixes
	Notes       []string     // Additional context notes
	HelpText    string       // Help text for the error
}

func (e CompilerError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s[%s]: %s", e.Level, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Level, e.Message)
}

// Suggestion represents a suggested fix. A Replacement with a Position is
// shown spliced into the source line it applies to.
type Suggestion struct {
	Message     string
	Replacement string
	Position    ast.Position
	Length      int
}

var (
	faint = color.New(color.Faint).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
	blue  = color.New(color.FgBlue).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()

	levelColors = map[ErrorLevel]*color.Color{
		Error:   color.New(color.FgRed, color.Bold),
		Warning: color.New(color.FgYellow, color.Bold),
		Note:    color.New(color.FgBlue, color.Bold),
		Help:    color.New(color.FgGreen, color.Bold),
	}
)

func levelColor(level ErrorLevel) func(...interface{}) string {
	if c, ok := levelColors[level]; ok {
		return c.SprintFunc()
	}
	return levelColors[Error].SprintFunc()
}

// ErrorReporter renders errors against the source of one file
type ErrorReporter struct {
	filename string
	lines    []string
}

func NewErrorReporter(filename, source string) *ErrorReporter {
	var lines []string
	if source != "" {
		lines = strings.Split(source, "\n")
	}
	return &ErrorReporter{filename: filename, lines: lines}
}

// FormatError renders err with the source lines around its position.
// Errors without a line, such as an exhausted name or an unreadable
// config file, get the header and annotations only.
func (er *ErrorReporter) FormatError(err CompilerError) string {
	var b strings.Builder
	gutter := strings.Repeat(" ", gutterWidth(err.Position.Line))
	paint := levelColor(err.Level)

	if err.Code != "" {
		fmt.Fprintf(&b, "%s[%s]: %s\n", paint(string(err.Level)), err.Code, err.Message)
	} else {
		fmt.Fprintf(&b, "%s: %s\n", paint(string(err.Level)), err.Message)
	}
	if location := er.location(err.Position); location != "" {
		fmt.Fprintf(&b, "%s %s %s\n", gutter, faint("-->"), location)
	}

	if line, ok := er.line(err.Position.Line); ok {
		fmt.Fprintf(&b, "%s %s\n", gutter, faint("│"))
		er.context(&b, err.Position.Line-1, gutter)
		fmt.Fprintf(&b, "%s %s %s\n", bold(lineNumber(err.Position.Line, len(gutter))), faint("│"), line)
		fmt.Fprintf(&b, "%s %s %s\n", gutter, faint("│"),
			marker(displayColumn(line, err.Position.Column), err.Length, "^", paint))
		er.context(&b, err.Position.Line+1, gutter)
	}

	annotate := func(label string, color func(...interface{}) string, text string) {
		fmt.Fprintf(&b, "%s %s %s %s\n", gutter, faint("="), color(label+":"), text)
	}
	if err.Target != "" {
		annotate("target", bold, err.Target)
	}
	for _, s := range err.Suggestions {
		annotate("help", cyan, s.Message)
		if s.Replacement != "" {
			er.replacement(&b, s, gutter)
		}
	}
	for _, note := range err.Notes {
		annotate("note", blue, note)
	}
	if err.HelpText != "" {
		annotate("help", green, err.HelpText)
	}

	b.WriteString("\n")
	return b.String()
}

// FormatErrors formats every error in order
func (er *ErrorReporter) FormatErrors(errs []CompilerError) string {
	var b strings.Builder
	for _, err := range errs {
		b.WriteString(er.FormatError(err))
	}
	return b.String()
}

// location is file:line:column, or just the file for positionless errors
func (er *ErrorReporter) location(pos ast.Position) string {
	filename := pos.Filename
	if filename == "" {
		filename = er.filename
	}
	if pos.Line <= 0 {
		return filename
	}
	return fmt.Sprintf("%s:%d:%d", filename, pos.Line, pos.Column)
}

func (er *ErrorReporter) line(n int) (string, bool) {
	if n < 1 || n > len(er.lines) {
		return "", false
	}
	return er.lines[n-1], true
}

func (er *ErrorReporter) context(b *strings.Builder, n int, gutter string) {
	if line, ok := er.line(n); ok {
		fmt.Fprintf(b, "%s %s %s\n", faint(lineNumber(n, len(gutter))), faint("│"), line)
	}
}

// replacement shows the suggested text in place of the span it replaces
func (er *ErrorReporter) replacement(b *strings.Builder, s Suggestion, gutter string) {
	line, ok := er.line(s.Position.Line)
	start := s.Position.Column - 1
	if !ok || start < 0 || start+s.Length > len(line) || strings.Contains(s.Replacement, "\n") {
		for _, text := range strings.Split(s.Replacement, "\n") {
			fmt.Fprintf(b, "%s %s %s\n", gutter, cyan("│"), cyan(text))
		}
		return
	}

	patched := line[:start] + s.Replacement + line[start+s.Length:]
	fmt.Fprintf(b, "%s %s %s\n", lineNumber(s.Position.Line, len(gutter)), faint("│"), patched)
	fmt.Fprintf(b, "%s %s %s\n", gutter, faint("│"),
		marker(displayColumn(patched, s.Position.Column), runewidth.StringWidth(s.Replacement), "~", cyan))
}

// marker underlines length cells starting at a 1-based display column
func marker(column, length int, char string, paint func(...interface{}) string) string {
	return strings.Repeat(" ", max(0, column-1)) + paint(strings.Repeat(char, max(1, length)))
}

// displayColumn converts a 1-based byte column into a 1-based display column
func displayColumn(line string, column int) int {
	if column <= 1 {
		return column
	}
	prefix := line
	if column-1 < len(line) {
		prefix = line[:column-1]
	}
	return runewidth.StringWidth(prefix) + 1
}

func lineNumber(n, width int) string {
	return fmt.Sprintf("%*d", width, n)
}

// gutterWidth is at least three columns so short files line up
func gutterWidth(line int) int {
	return max(3, len(strconv.Itoa(line)))
}
