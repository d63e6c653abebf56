package render

import (
	"fmt"
	"io"
	"sync"

	"golang.org/x/term"

	"github.com/control-theory/wd/internal/chunk"
	"github.com/control-theory/wd/internal/style"
)

// StyledRenderer writes one styled, wrapped line per entry using the
// config's Normal profile — the non-interactive counterpart to the TUI's
// per-row rendering, used when stdout is a terminal but --renderer=styled
// (rather than the default interactive mode) was requested.
type StyledRenderer struct {
	w             io.Writer
	fallbackWidth int

	mu     sync.RWMutex
	config style.Config
}

// NewStyledRenderer builds a StyledRenderer writing to w. fallbackWidth is
// used when the output isn't a terminal (so no width can be detected).
func NewStyledRenderer(w io.Writer, config style.Config, fallbackWidth int) *StyledRenderer {
	return &StyledRenderer{w: w, config: config, fallbackWidth: fallbackWidth}
}

// SetConfig swaps the active style profile set, used by --style
// base16:<path>'s live-reload watcher to pick up an edited color scheme
// without restarting the renderer.
func (r *StyledRenderer) SetConfig(config style.Config) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.config = config
}

func (r *StyledRenderer) getConfig() style.Config {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.config
}

func (r *StyledRenderer) width() int {
	if f, ok := r.w.(interface{ Fd() uintptr }); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	if r.fallbackWidth > 0 {
		return r.fallbackWidth
	}
	return NoWrap
}

// Render writes one Entry to the underlying writer.
func (r *StyledRenderer) Render(e Entry) error {
	switch v := e.(type) {
	case MessageEntry:
		chunks := chunk.Classify(v.Message)
		lines := StyledRender(chunks, r.getConfig().Normal, r.width())
		for _, line := range lines {
			if _, err := fmt.Fprintln(r.w, line); err != nil {
				return err
			}
		}
		return nil
	case EofEntry:
		_, err := fmt.Fprintf(r.w, "[EOF: %s]\n", v.Source)
		return err
	default:
		return nil
	}
}
