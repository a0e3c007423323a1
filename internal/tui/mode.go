package tui

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"golang.org/x/term"
)

// Format selects how list output is rendered.
type Format string

const (
	// FormatAuto probes the output: human for a terminal, plain otherwise.
	FormatAuto  Format = ""
	FormatHuman Format = "human"
	FormatPlain Format = "plain"
)

// ParseFormat validates a --format value. The empty string means auto.
func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case FormatAuto, FormatHuman, FormatPlain:
		return f, nil
	default:
		return FormatAuto, fmt.Errorf("unknown format %q (expected human or plain)", raw)
	}
}

// FormatFor resolves the format for out. An explicit choice always wins.
func FormatFor(explicit Format, out io.Writer) Format {
	if explicit != FormatAuto {
		return explicit
	}
	if IsTerminal(out) {
		return FormatHuman
	}
	return FormatPlain
}

// IsTerminal reports whether out is an interactive terminal that can show
// styled text.
func IsTerminal(out io.Writer) bool {
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	if !term.IsTerminal(int(file.Fd())) {
		return false
	}
	if runtime.GOOS != "windows" {
		t := os.Getenv("TERM")
		if t == "" || strings.EqualFold(t, "dumb") {
			return false
		}
	}
	return true
}
