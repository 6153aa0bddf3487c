package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

type Bar struct {
	total      int64
	current    int64
	width      int
	writer     io.Writer
	mu         sync.Mutex
	label      string
	enabled    bool
	lastUpdate time.Time
}

func New(total int64) *Bar {
	return &Bar{
		total:      total,
		current:    0,
		width:      50,
		writer:     os.Stdout,
		enabled:    true, // Always enabled - terminal detection can be unreliable
		lastUpdate: time.Now(),
	}
}

// SetLabel records the name of the file currently being hashed.
func (b *Bar) SetLabel(name string) {
	if !b.enabled {
		return
	}

	b.mu.Lock()
	b.label = name
	b.render()
	b.mu.Unlock()
}

func (b *Bar) Increment() {
	if !b.enabled {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.current++

	// Update at most every 100ms to reduce flickering
	now := time.Now()
	if now.Sub(b.lastUpdate) > 100*time.Millisecond || b.current == b.total {
		b.lastUpdate = now
		b.render()
	}
}

// render must be called with mu already locked
func (b *Bar) render() {
	if b.total == 0 {
		return
	}

	percent := float64(b.current) / float64(b.total) * 100
	filledWidth := int(float64(b.width) * float64(b.current) / float64(b.total))

	if filledWidth > b.width {
		filledWidth = b.width
	}

	bar := strings.Repeat("█", filledWidth) + strings.Repeat("░", b.width-filledWidth)

	var labelDisplay string
	if b.label != "" {
		labelDisplay = " | " + b.label
	}

	// Clear the line and write progress
	fmt.Fprintf(b.writer, "\r\033[K[%s] %3d%% (%d/%d)%s",
		bar, int(percent), b.current, b.total, labelDisplay)
}

func (b *Bar) Finish() {
	if !b.enabled {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.current = b.total
	b.render()
	fmt.Fprintf(b.writer, "\n")
}
