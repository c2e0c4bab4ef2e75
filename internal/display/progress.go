package display

import (
	"fmt"
	"io"
	"path/filepath"
	"sync"
)

// ProgressIndicator prints one line per loaded check file. Step is safe for
// concurrent use.
type ProgressIndicator struct {
	mu      sync.Mutex
	writer  io.Writer
	total   int
	current int
}

// NewProgressIndicator creates a new progress indicator
func NewProgressIndicator(w io.Writer, total int) *ProgressIndicator {
	return &ProgressIndicator{writer: w, total: total}
}

// Start displays the header message
func (p *ProgressIndicator) Start() {
	fmt.Fprintf(p.writer, "Loading check files:\n")
}

// Step displays progress for current item: [N/Total] filename (cyan)
func (p *ProgressIndicator) Step(filename string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current++
	fmt.Fprintf(p.writer, "\x1b[36m  [%d/%d] %s\x1b[0m\n", p.current, p.total, filepath.Base(filename))
}

// Complete displays success message with green checkmark
func (p *ProgressIndicator) Complete() {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.writer, "\x1b[32m✓\x1b[0m Loaded %d of %d check files\n", p.current, p.total)
}

// DisplaySingleFile shows simple loading message for single file
func DisplaySingleFile(w io.Writer, filename string) {
	fmt.Fprintf(w, "Checking %s...\n", filename)
}
