package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/harrison/segcheck/internal/girder"
	"github.com/harrison/segcheck/internal/segment"
)

type palette struct {
	header, pass, fail, dim *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		header: color.New(color.Bold),
		pass:   color.New(color.FgGreen),
		fail:   color.New(color.FgRed, color.Bold),
		dim:    color.New(color.FgHiBlack),
	}
	for _, c := range []*color.Color{p.header, p.pass, p.fail, p.dim} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) status(passed bool) string {
	if passed {
		return p.pass.Sprint("PASS")
	}
	return p.fail.Sprint("FAIL")
}

func renderConsole(w io.Writer, run *girder.Run, opts Options) error {
	p := newPalette(opts.Color)
	var b strings.Builder

	for _, g := range run.Girders {
		fmt.Fprintf(&b, "%s  %s\n", p.header.Sprint(g.Name), p.status(g.Passed))
		if g.FilePath != "" {
			fmt.Fprintf(&b, "%s\n", p.dim.Sprint(g.FilePath))
		}
		for _, s := range g.Segments {
			fmt.Fprintf(&b, "  %-34s %s  release %-10s final %-10s\n",
				s.Key, p.status(s.Passed), s.ReleaseStrength, s.SegmentStrength)
			writeFailedChecks(&b, p, s)
		}
		fmt.Fprintf(&b, "  governing f'c: release %s, segment %s, closure joint %s, deck %s\n\n",
			g.ReleaseStrength, g.SegmentStrength, g.ClosureJointStrength, g.DeckStrength)
	}

	for _, e := range run.Errors {
		fmt.Fprintf(&b, "%s %s\n", p.fail.Sprint("ERROR"), e.Error())
	}

	total, passed, failed := run.Counts()
	fmt.Fprintf(&b, "%s %d segments, %d passed, %d failed\n", p.header.Sprint("Total:"), total, passed, failed)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeFailedChecks(b *strings.Builder, p palette, s segment.Summary) {
	for _, c := range s.FailedChecks() {
		fmt.Fprintf(b, "      %s %s\n", p.fail.Sprint("x"), c)
	}
	if !s.HasHauling {
		fmt.Fprintf(b, "      %s\n", p.dim.Sprint("no hauling analysis"))
	}
}
