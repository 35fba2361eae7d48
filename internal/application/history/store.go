// Package history owns the ordered log of completed generations and its persisted blob.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/doeshing/copywriter-go/internal/domain"
	"github.com/doeshing/copywriter-go/internal/ports"
)

var tracer = otel.Tracer("copywriter/history")

// Store keeps the newest-first collection in memory and rewrites the whole blob under
// domain.HistoryStorageKey after every mutation. Memory is only swapped once the write
// succeeded, so the two views never diverge.
type Store struct {
	kv  ports.KeyValueStore
	log ports.Logger
	key string
	now func() time.Time

	mu      sync.RWMutex
	entries []domain.HistoryEntry
	lastID  int64
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// Open loads the collection once. A missing or unreadable blob yields an empty store.
func Open(ctx context.Context, kv ports.KeyValueStore, log ports.Logger, opts ...Option) *Store {
	s := &Store{
		kv:  kv,
		log: log,
		key: domain.HistoryStorageKey,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Load(ctx)
	return s
}

// Load re-reads the persisted blob and replaces the in-memory view.
func (s *Store) Load(ctx context.Context) []domain.HistoryEntry {
	entries := s.read(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = entries
	s.lastID = maxID(entries)
	return cloneEntries(s.entries)
}

func (s *Store) read(ctx context.Context) []domain.HistoryEntry {
	raw, found, err := s.kv.Get(ctx, s.key)
	if err != nil {
		s.warn("history read failed, starting empty", err)
		return nil
	}
	if !found || len(raw) == 0 {
		return nil
	}
	var entries []domain.HistoryEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		s.warn("history blob malformed, starting empty", domain.PersistenceError("decode history", err))
		return nil
	}
	return entries
}

// Entries returns a copy of the collection, newest first.
func (s *Store) Entries() []domain.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneEntries(s.entries)
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Get finds an entry by id.
func (s *Store) Get(id int64) (domain.HistoryEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		if e.ID == id {
			return e, true
		}
	}
	return domain.HistoryEntry{}, false
}

// Insert stamps a new entry and prepends it.
func (s *Store) Insert(ctx context.Context, req domain.GenerationRequest, generated string) (domain.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := domain.NewHistoryEntry(req, generated, s.now(), s.lastID)
	next := make([]domain.HistoryEntry, 0, len(s.entries)+1)
	next = append(next, entry)
	next = append(next, s.entries...)

	if err := s.write(ctx, "insert", next); err != nil {
		return domain.HistoryEntry{}, err
	}
	s.entries = next
	s.lastID = entry.ID
	return entry, nil
}

// Remove drops the entry with id. Unknown ids are a no-op and do not touch storage.
func (s *Store) Remove(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]domain.HistoryEntry, 0, len(s.entries))
	for _, e := range s.entries {
		if e.ID != id {
			next = append(next, e)
		}
	}
	if len(next) == len(s.entries) {
		return nil
	}
	if err := s.write(ctx, "remove", next); err != nil {
		return err
	}
	s.entries = next
	return nil
}

// Clear wipes the collection and deletes the key. Confirmation is the caller's job.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, span := tracer.Start(ctx, "history.Clear")
	defer span.End()

	if err := s.kv.Delete(ctx, s.key); err != nil {
		span.RecordError(err)
		return domain.PersistenceError("clear history", err)
	}
	s.entries = nil
	return nil
}

// Project reloads an entry into the editor shape.
func (s *Store) Project(entry domain.HistoryEntry) domain.EditorView {
	return entry.Project()
}

// Export writes the collection as an indented JSON array.
func (s *Store) Export(w io.Writer) error {
	entries := s.Entries()
	if entries == nil {
		entries = []domain.HistoryEntry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(entries)
}

// Location describes where the blob lives.
func (s *Store) Location() string {
	return s.kv.Location()
}

func (s *Store) write(ctx context.Context, op string, entries []domain.HistoryEntry) error {
	ctx, span := tracer.Start(ctx, "history.persist", trace.WithAttributes(
		attribute.String("history.op", op),
		attribute.Int("history.size", len(entries)),
	))
	defer span.End()

	raw, err := json.Marshal(entries)
	if err != nil {
		span.RecordError(err)
		return domain.PersistenceError(fmt.Sprintf("encode history: %v", err), err)
	}
	if err := s.kv.Set(ctx, s.key, raw); err != nil {
		span.RecordError(err)
		return domain.PersistenceError(err.Error(), err)
	}
	s.debug("history persisted", map[string]interface{}{"op": op, "entries": len(entries)})
	return nil
}

func (s *Store) warn(msg string, err error) {
	if s.log == nil {
		return
	}
	s.log.Warn(msg, map[string]interface{}{"error": err.Error(), "location": s.kv.Location()})
}

func (s *Store) debug(msg string, fields map[string]interface{}) {
	if s.log == nil {
		return
	}
	s.log.Debug(msg, fields)
}

func cloneEntries(entries []domain.HistoryEntry) []domain.HistoryEntry {
	if entries == nil {
		return nil
	}
	out := make([]domain.HistoryEntry, len(entries))
	copy(out, entries)
	return out
}

func maxID(entries []domain.HistoryEntry) int64 {
	var max int64
	for _, e := range entries {
		if e.ID > max {
			max = e.ID
		}
	}
	return max
}

var _ ports.HistoryRepository = (*Store)(nil)
