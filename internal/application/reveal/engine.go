// Package reveal discloses an already complete text one rune at a time.
package reveal

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/doeshing/copywriter-go/internal/domain"
	"github.com/doeshing/copywriter-go/internal/ports"
)

// Engine starts reveals at a fixed cadence.
type Engine struct {
	interval time.Duration
}

// NewEngine builds an engine; a non-positive interval uses domain.DefaultRevealInterval.
func NewEngine(interval time.Duration) *Engine {
	if interval <= 0 {
		interval = domain.DefaultRevealInterval
	}
	return &Engine{interval: interval}
}

// Interval returns the tick cadence.
func (e *Engine) Interval() time.Duration {
	return e.interval
}

// Reveal implements ports.Revealer.
func (e *Engine) Reveal(ctx context.Context, text string, onTick func(prefix string)) ports.RevealHandle {
	return Start(ctx, text, onTick, e.interval)
}

// Handle controls one reveal. The sequence it drives is finite and cannot be restarted.
type Handle struct {
	stop      chan struct{}
	done      chan struct{}
	once      sync.Once
	completed atomic.Bool
}

// Start emits domain.RevealPlaceholder immediately, then one rune longer prefix per tick
// until the full text has been emitted once. A text of n runes yields n+1 calls. For an
// empty text that single call is the placeholder, so the last frame is " " rather than "";
// callers that display the final text take it from the provider result, not the last frame.
// onTick is always called from a single goroutine and never after Cancel returns; it must
// not call Cancel itself.
func Start(ctx context.Context, text string, onTick func(prefix string), interval time.Duration) *Handle {
	if ctx == nil {
		ctx = context.Background()
	}
	if interval <= 0 {
		interval = domain.DefaultRevealInterval
	}
	h := &Handle{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go h.run(ctx, []rune(text), onTick, interval)
	return h
}

func (h *Handle) run(ctx context.Context, runes []rune, onTick func(string), interval time.Duration) {
	defer close(h.done)

	if h.halted(ctx) {
		return
	}
	onTick(domain.RevealPlaceholder)
	if len(runes) == 0 {
		h.completed.Store(true)
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for i := 1; i <= len(runes); i++ {
		select {
		case <-h.stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		if h.halted(ctx) {
			return
		}
		onTick(string(runes[:i]))
	}
	h.completed.Store(true)
}

func (h *Handle) halted(ctx context.Context) bool {
	select {
	case <-h.stop:
		return true
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// Cancel stops the reveal and waits for the ticking goroutine to exit.
// Safe to call repeatedly and after natural completion.
func (h *Handle) Cancel() {
	h.once.Do(func() { close(h.stop) })
	<-h.done
}

// Done is closed once the reveal has stopped, either completed or cancelled.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Completed reports whether the full text was emitted.
func (h *Handle) Completed() bool {
	return h.completed.Load()
}

var _ ports.Revealer = (*Engine)(nil)
var _ ports.RevealHandle = (*Handle)(nil)
