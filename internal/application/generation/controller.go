// Package generation drives one rewrite end to end: validate, dispatch to a provider,
// reveal the result and commit it to history.
package generation

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/doeshing/copywriter-go/internal/application/prompt"
	"github.com/doeshing/copywriter-go/internal/domain"
	"github.com/doeshing/copywriter-go/internal/ports"
)

var tracer = otel.Tracer("copywriter/generation")

// ErrInFlight is returned by Submit and LoadEntry while another pipeline is running.
var ErrInFlight = errors.New("a generation is already in progress")

// ErrEntryNotFound is returned by LoadEntry for unknown ids.
var ErrEntryNotFound = errors.New("history entry not found")

// Controller owns the observable generation status. At most one pipeline runs at a time.
type Controller struct {
	selector ports.ProviderSelector
	history  ports.HistoryRepository
	revealer ports.Revealer
	logger   ports.Logger
	observer func(domain.Snapshot)

	mu      sync.Mutex
	snap    domain.Snapshot
	cancel  context.CancelFunc
	reveal  ports.RevealHandle
	aborted bool
	done    chan struct{}
}

// Option configures a Controller.
type Option func(*Controller)

// WithObserver registers a callback for every state change and reveal tick.
// It is invoked sequentially, never concurrently with itself.
func WithObserver(fn func(domain.Snapshot)) Option {
	return func(c *Controller) {
		c.observer = fn
	}
}

// New builds a controller in the idle state.
func New(selector ports.ProviderSelector, history ports.HistoryRepository, revealer ports.Revealer, logger ports.Logger, opts ...Option) *Controller {
	c := &Controller{
		selector: selector,
		history:  history,
		revealer: revealer,
		logger:   logger,
		snap:     domain.Snapshot{State: domain.StateIdle},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetObserver replaces the observer. Intended for presentation layers wired after construction.
func (c *Controller) SetObserver(fn func(domain.Snapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observer = fn
}

// Snapshot returns the current status.
func (c *Controller) Snapshot() domain.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

// Submit runs the pipeline to its end and returns the final snapshot. Pipeline failures are
// rendered into the snapshot; the only error returned is ErrInFlight.
func (c *Controller) Submit(ctx context.Context, req domain.GenerationRequest) (domain.Snapshot, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	c.mu.Lock()
	if c.snap.State.Busy() {
		snap := c.snap
		c.mu.Unlock()
		return snap, ErrInFlight
	}
	stale := c.reveal
	c.reveal = nil
	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.aborted = false
	c.done = make(chan struct{})
	done := c.done
	c.snap.State = domain.StateValidating
	c.snap.Request = req
	c.mu.Unlock()

	if stale != nil {
		stale.Cancel()
	}
	defer func() {
		cancel()
		close(done)
	}()
	c.emit()

	runCtx, span := tracer.Start(runCtx, "generation.Submit", trace.WithAttributes(
		attribute.String("generation.style", string(req.Style)),
		attribute.Int("generation.input_runes", len([]rune(req.InputText))),
	))
	defer span.End()

	snap := c.run(runCtx, req)
	if snap.ErrKind != "" {
		span.SetStatus(codes.Error, string(snap.ErrKind))
	}
	return snap, nil
}

func (c *Controller) run(ctx context.Context, req domain.GenerationRequest) domain.Snapshot {
	if req.Blank() {
		return c.fail(domain.ValidationError(domain.MsgEmptyInput))
	}
	if !req.Style.Valid() {
		return c.fail(domain.ValidationError(fmt.Sprintf("unknown style %q", req.Style)))
	}

	c.update(func(s *domain.Snapshot) {
		s.State = domain.StateAwaitingProvider
		s.Error = ""
		s.ErrKind = ""
		s.Result = ""
		s.Committed = nil
	})

	provider, err := c.selector.Select(ctx)
	if err != nil {
		return c.fail(err)
	}

	c.info("calling provider", map[string]interface{}{
		"provider": provider.Name(),
		"style":    string(req.Style),
	})

	text, err := provider.Generate(ctx, prompt.Build(req.InputText, req.Style))
	if c.stopped(ctx) {
		return c.finishAborted()
	}
	if err != nil {
		return c.fail(err)
	}

	c.update(func(s *domain.Snapshot) { s.State = domain.StateRevealing })

	handle := c.revealer.Reveal(ctx, text, func(prefix string) {
		c.update(func(s *domain.Snapshot) { s.Result = prefix })
	})
	c.mu.Lock()
	c.reveal = handle
	c.mu.Unlock()

	<-handle.Done()
	if !handle.Completed() {
		return c.finishAborted()
	}

	entry, err := c.history.Insert(ctx, req, text)
	if err != nil {
		c.warn("history commit failed", map[string]interface{}{"error": err.Error()})
		return c.update(func(s *domain.Snapshot) {
			s.State = domain.StateError
			s.Result = text
			s.Error = domain.UserMessage(domain.PersistenceError(err.Error(), err))
			s.ErrKind = domain.KindPersistence
		})
	}

	return c.update(func(s *domain.Snapshot) {
		s.State = domain.StateIdle
		s.Result = text
		s.Committed = &entry
	})
}

// Cancel aborts the running pipeline, if any. The provider call and any reveal are stopped
// and no history entry is written. It does not wait for the pipeline to unwind, and like
// Close it must not be called from the observer.
func (c *Controller) Cancel() {
	c.mu.Lock()
	if !c.snap.State.Busy() {
		c.mu.Unlock()
		return
	}
	c.aborted = true
	cancel := c.cancel
	handle := c.reveal
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if handle != nil {
		handle.Cancel()
	}
}

// Close cancels any running pipeline and waits for it to return to idle.
// It must not be called from the observer.
func (c *Controller) Close() {
	c.Cancel()
	c.mu.Lock()
	done := c.done
	handle := c.reveal
	c.mu.Unlock()
	if done != nil {
		<-done
	}
	if handle != nil {
		handle.Cancel()
	}
}

// LoadEntry puts a history entry back on display without calling a provider.
func (c *Controller) LoadEntry(id int64) (domain.EditorView, error) {
	if c.Snapshot().State.Busy() {
		return domain.EditorView{}, ErrInFlight
	}

	entry, found := c.history.Get(id)
	if !found {
		return domain.EditorView{}, fmt.Errorf("%w: %d", ErrEntryNotFound, id)
	}
	view := entry.Project()

	// A pipeline may have started while the entry was looked up; the busy
	// check and the state write must share one critical section.
	c.mu.Lock()
	if c.snap.State.Busy() {
		c.mu.Unlock()
		return domain.EditorView{}, ErrInFlight
	}
	c.snap.State = domain.StateIdle
	c.snap.Request = view.Request
	c.snap.Result = view.GeneratedText
	c.snap.Error = ""
	c.snap.ErrKind = ""
	c.snap.Committed = nil
	snap := c.snap
	observer := c.observer
	c.mu.Unlock()

	if observer != nil {
		observer(snap)
	}
	return view, nil
}

func (c *Controller) fail(err error) domain.Snapshot {
	kind := domain.KindOf(err)
	if kind == "" {
		kind = domain.KindProvider
	}
	c.warn("generation failed", map[string]interface{}{"kind": string(kind), "error": err.Error()})
	return c.update(func(s *domain.Snapshot) {
		s.State = domain.StateError
		s.Error = domain.UserMessage(err)
		s.ErrKind = kind
	})
}

func (c *Controller) finishAborted() domain.Snapshot {
	c.info("generation cancelled", nil)
	return c.update(func(s *domain.Snapshot) {
		s.State = domain.StateIdle
	})
}

// stopped reports whether the pipeline was cancelled, either through Cancel or
// by the caller's context ending. Both paths finish the same way.
func (c *Controller) stopped(ctx context.Context) bool {
	if ctx.Err() != nil {
		return true
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aborted
}

func (c *Controller) update(fn func(*domain.Snapshot)) domain.Snapshot {
	c.mu.Lock()
	fn(&c.snap)
	snap := c.snap
	observer := c.observer
	c.mu.Unlock()
	if observer != nil {
		observer(snap)
	}
	return snap
}

func (c *Controller) emit() {
	c.update(func(*domain.Snapshot) {})
}

func (c *Controller) info(msg string, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.Info(msg, fields)
	}
}

func (c *Controller) warn(msg string, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.Warn(msg, fields)
	}
}
