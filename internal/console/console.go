// Package console is the line-oriented terminal the game talks through.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ANSI styles.
const (
	Reset     = "\033[0m"
	Bold      = "\033[1m"
	Underline = "\033[4m"
	Red       = "\033[91m"
	Green     = "\033[92m"
	Yellow    = "\033[93m"
	Blue      = "\033[94m"
	Magenta   = "\033[95m"
	Cyan      = "\033[96m"
)

// Console reads answers from In and writes narration to Out.
type Console struct {
	in    *bufio.Reader
	out   io.Writer
	color bool
}

func New(in io.Reader, out io.Writer, color bool) *Console {
	return &Console{in: bufio.NewReader(in), out: out, color: color}
}

// Prompt writes text and blocks for one line. The trailing newline is
// stripped. A final line without a newline is returned before io.EOF.
func (c *Console) Prompt(text string) (string, error) {
	fmt.Fprint(c.out, c.Style(Yellow, text))
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Show writes text followed by a newline.
func (c *Console) Show(text string) {
	fmt.Fprintln(c.out, c.styleLine(text))
}

// Showf formats and shows text in the given style.
func (c *Console) Showf(style, format string, args ...any) {
	fmt.Fprintln(c.out, c.Style(style, fmt.Sprintf(format, args...)))
}

// Style wraps text in an ANSI style when color is enabled.
func (c *Console) Style(style, text string) string {
	if !c.color || style == "" {
		return text
	}
	return style + text + Reset
}

// styleLine colors engine narration by what it reports.
func (c *Console) styleLine(text string) string {
	switch {
	case strings.Contains(text, "'s HP:") && strings.Contains(text, "Mana:"):
		return c.Style(Cyan, text)
	case strings.Contains(text, "'s HP:"):
		return c.Style(Magenta, text)
	case strings.HasPrefix(text, "You defeated"), strings.HasPrefix(text, "Quest successful"):
		return c.Style(Bold+Green, text)
	case strings.HasPrefix(text, "You have been defeated"), strings.HasPrefix(text, "Quest failed"):
		return c.Style(Bold+Red, text)
	case strings.Contains(text, "you are entering the"):
		return c.Style(Bold, text)
	default:
		return text
	}
}
