package cli

import (
	"io"
	"strings"
	"sync"

	"github.com/doeshing/copywriter-go/internal/domain"
)

// revealWriter turns successive reveal prefixes into appended terminal output.
type revealWriter struct {
	out     io.Writer
	mu      sync.Mutex
	written string
}

// NewRevealWriter builds a revealWriter for stdout.
func NewRevealWriter(out io.Writer) *revealWriter {
	return &revealWriter{out: out}
}

// WritePrefix prints whatever prefix adds beyond what is already on screen.
// The placeholder frame prints nothing.
func (s *revealWriter) WritePrefix(prefix string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prefix == domain.RevealPlaceholder && s.written == "" {
		return
	}
	if !strings.HasPrefix(prefix, s.written) {
		return
	}
	delta := prefix[len(s.written):]
	if delta == "" {
		return
	}
	_, _ = io.WriteString(s.out, delta)
	s.written = prefix
}

// Finish prints any text the reveal did not get to and ends the line.
func (s *revealWriter) Finish(full string) {
	s.WritePrefix(full)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.written != "" && !strings.HasSuffix(s.written, "\n") {
		_, _ = io.WriteString(s.out, "\n")
	}
}

// Written reports the text printed so far.
func (s *revealWriter) Written() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.written
}
