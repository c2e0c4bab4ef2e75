// Package report renders check runs for people and for monitoring systems.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/harrison/segcheck/internal/girder"
)

// Format selects a renderer.
type Format string

const (
	FormatConsole    Format = "console"
	FormatMarkdown   Format = "markdown"
	FormatHTML       Format = "html"
	FormatPrometheus Format = "prometheus"
)

// Formats lists the supported formats in display order.
var Formats = []Format{FormatConsole, FormatMarkdown, FormatHTML, FormatPrometheus}

// ParseFormat converts a user-supplied format name. Empty means console.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "console", "text":
		return FormatConsole, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	case "prometheus", "prom":
		return FormatPrometheus, nil
	default:
		return "", fmt.Errorf("unknown report format %q (valid: %s)", s, joinFormats())
	}
}

func joinFormats() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// Options tune rendering.
type Options struct {
	// Color enables ANSI colors in console output.
	Color bool
}

// Render writes run to w in the requested format.
func Render(w io.Writer, format Format, run *girder.Run, opts Options) error {
	if run == nil {
		return fmt.Errorf("nothing to render")
	}
	switch format {
	case FormatConsole, "":
		return renderConsole(w, run, opts)
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(run))
		return err
	case FormatHTML:
		return renderHTML(w, run)
	case FormatPrometheus:
		return renderPrometheus(w, run)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}
