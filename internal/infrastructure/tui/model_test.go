package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/doeshing/copywriter-go/internal/domain"
)

type stubGenerator struct {
	mu        sync.Mutex
	requests  []domain.GenerationRequest
	cancelled int
	result    domain.Snapshot
	entries   map[int64]domain.HistoryEntry
}

func (g *stubGenerator) Submit(_ context.Context, req domain.GenerationRequest) (domain.Snapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests = append(g.requests, req)
	return g.result, nil
}

func (g *stubGenerator) Cancel() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cancelled++
}

func (g *stubGenerator) Close() {}

func (g *stubGenerator) LoadEntry(id int64) (domain.EditorView, error) {
	entry, ok := g.entries[id]
	if !ok {
		return domain.EditorView{}, errors.New("history entry not found")
	}
	return entry.Project(), nil
}

func (g *stubGenerator) SetObserver(func(domain.Snapshot)) {}

type stubHistory struct {
	entries []domain.HistoryEntry
}

func (h *stubHistory) Entries() []domain.HistoryEntry {
	out := make([]domain.HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *stubHistory) Get(id int64) (domain.HistoryEntry, bool) {
	for _, e := range h.entries {
		if e.ID == id {
			return e, true
		}
	}
	return domain.HistoryEntry{}, false
}

func (h *stubHistory) Insert(context.Context, domain.GenerationRequest, string) (domain.HistoryEntry, error) {
	return domain.HistoryEntry{}, errors.New("not supported")
}

func (h *stubHistory) Remove(_ context.Context, id int64) error {
	for i, e := range h.entries {
		if e.ID == id {
			h.entries = append(h.entries[:i], h.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

func (h *stubHistory) Clear(context.Context) error {
	h.entries = nil
	return nil
}

type stubGate struct{ user, password string }

func (g stubGate) Enabled() bool { return g.user != "" }

func (g stubGate) Check(user, password string) bool {
	return !g.Enabled() || (user == g.user && password == g.password)
}

type stubClipboard struct{ copied string }

func (c *stubClipboard) Copy(text string) error {
	c.copied = text
	return nil
}

func (c *stubClipboard) Enabled() bool { return true }

func sampleEntries() []domain.HistoryEntry {
	return []domain.HistoryEntry{
		{ID: 3, InputText: "third", GeneratedText: "out three", Style: domain.StyleBAB, Timestamp: "2026/10/18 10:03:00"},
		{ID: 2, InputText: "second", GeneratedText: "out two", Style: domain.StylePAS, Timestamp: "2026/10/18 10:02:00"},
		{ID: 1, InputText: "first", GeneratedText: "out one", Style: domain.StyleAIDA, Timestamp: "2026/10/18 10:01:00"},
	}
}

func newTestModel(gate stubGate) (*model, *stubGenerator, *stubHistory, *stubClipboard) {
	hist := &stubHistory{entries: sampleEntries()}
	gen := &stubGenerator{entries: map[int64]domain.HistoryEntry{}}
	for _, e := range hist.entries {
		gen.entries[e.ID] = e
	}
	clip := &stubClipboard{}
	m := newModel(Config{
		Controller:   gen,
		History:      hist,
		Gate:         gate,
		Clipboard:    clip,
		DefaultStyle: domain.StylePAS,
	})
	return m, gen, hist, clip
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "ctrl+y":
		return tea.KeyMsg{Type: tea.KeyCtrlY}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m *model, msg tea.Msg) tea.Cmd {
	t.Helper()
	_, cmd := m.Update(msg)
	return cmd
}

func typeText(t *testing.T, m *model, text string) {
	t.Helper()
	for _, r := range text {
		send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestModelStartsInEditorWithoutGate(t *testing.T) {
	m, _, _, _ := newTestModel(stubGate{})
	if m.mode != editorMode {
		t.Fatalf("mode = %v, want editor", m.mode)
	}
	if m.style != domain.StylePAS {
		t.Fatalf("style = %s, want default PAS", m.style)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	m, _, _, _ := newTestModel(stubGate{user: "admin", password: "secret"})
	if m.mode != loginMode {
		t.Fatalf("mode = %v, want login", m.mode)
	}

	typeText(t, m, "admin")
	send(t, m, key("enter"))
	typeText(t, m, "wrong")
	send(t, m, key("enter"))

	if m.mode != loginMode {
		t.Fatalf("mode = %v, want login after failure", m.mode)
	}
	if m.loginErr != msgInvalidLogin {
		t.Fatalf("loginErr = %q", m.loginErr)
	}
	if m.passwordInput.Value() != "" {
		t.Fatalf("password field should be cleared")
	}
	if !strings.Contains(m.View(), msgInvalidLogin) {
		t.Fatalf("view should show the login error")
	}

	typeText(t, m, "secret")
	send(t, m, key("enter"))
	if m.mode != editorMode {
		t.Fatalf("mode = %v, want editor after login", m.mode)
	}
}

func TestTabCyclesStyle(t *testing.T) {
	m, _, _, _ := newTestModel(stubGate{})
	send(t, m, key("tab"))
	if m.style != domain.Style4C {
		t.Fatalf("style = %s, want 4C", m.style)
	}
	send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.style != domain.StylePAS {
		t.Fatalf("style = %s, want PAS", m.style)
	}
}

func TestSubmitSendsRequestAndAppliesResult(t *testing.T) {
	m, gen, _, clip := newTestModel(stubGate{})
	gen.result = domain.Snapshot{State: domain.StateIdle, Result: "polished copy"}

	typeText(t, m, "raw copy")
	cmd := send(t, m, key("ctrl+s"))
	if cmd == nil {
		t.Fatalf("expected submit command")
	}
	send(t, m, cmd())

	if len(gen.requests) != 1 {
		t.Fatalf("requests = %d, want 1", len(gen.requests))
	}
	if got := gen.requests[0]; got.InputText != "raw copy" || got.Style != domain.StylePAS {
		t.Fatalf("request = %+v", got)
	}
	if !strings.Contains(m.View(), "polished copy") {
		t.Fatalf("view should show the result")
	}

	send(t, m, key("ctrl+y"))
	if clip.copied != "polished copy" {
		t.Fatalf("copied = %q", clip.copied)
	}
}

func TestBusyEditorIgnoresInputAndEscCancels(t *testing.T) {
	m, gen, _, _ := newTestModel(stubGate{})
	send(t, m, snapshotMsg(domain.Snapshot{State: domain.StateAwaitingProvider}))

	typeText(t, m, "x")
	if m.textarea.Value() != "" {
		t.Fatalf("textarea should be locked while busy")
	}
	if cmd := send(t, m, key("ctrl+s")); cmd != nil {
		t.Fatalf("submit should be disabled while busy")
	}
	send(t, m, key("tab"))
	if m.style != domain.StylePAS {
		t.Fatalf("style should not change while busy")
	}

	send(t, m, key("esc"))
	if gen.cancelled != 1 {
		t.Fatalf("cancelled = %d, want 1", gen.cancelled)
	}
}

func TestErrorSnapshotIsRendered(t *testing.T) {
	m, _, _, _ := newTestModel(stubGate{})
	send(t, m, snapshotMsg(domain.Snapshot{State: domain.StateError, Error: domain.MsgEmptyInput, ErrKind: domain.KindValidation}))
	if !strings.Contains(m.View(), domain.MsgEmptyInput) {
		t.Fatalf("view should show the error message")
	}
}

func TestHistoryLoadEntry(t *testing.T) {
	m, _, _, _ := newTestModel(stubGate{})
	send(t, m, key("ctrl+r"))
	if m.mode != historyMode || len(m.entries) != 3 {
		t.Fatalf("mode = %v entries = %d", m.mode, len(m.entries))
	}

	send(t, m, key("down"))
	cmd := send(t, m, key("enter"))
	if cmd == nil {
		t.Fatalf("expected load command")
	}
	send(t, m, cmd())

	if m.mode != editorMode {
		t.Fatalf("mode = %v, want editor", m.mode)
	}
	if m.textarea.Value() != "second" || m.style != domain.StylePAS {
		t.Fatalf("editor = %q/%s", m.textarea.Value(), m.style)
	}
	if m.snap.Result != "out two" {
		t.Fatalf("result = %q", m.snap.Result)
	}
}

func TestHistoryDeleteAndClear(t *testing.T) {
	m, _, hist, _ := newTestModel(stubGate{})
	send(t, m, key("ctrl+r"))

	send(t, m, key("d"))
	if len(hist.entries) != 2 || hist.entries[0].ID != 2 {
		t.Fatalf("entries after delete = %+v", hist.entries)
	}

	send(t, m, key("C"))
	if m.mode != confirmClearMode {
		t.Fatalf("mode = %v, want confirm", m.mode)
	}
	send(t, m, key("n"))
	if m.mode != historyMode || len(hist.entries) != 2 {
		t.Fatalf("declined clear should keep entries")
	}

	send(t, m, key("C"))
	send(t, m, key("y"))
	if len(hist.entries) != 0 || len(m.entries) != 0 {
		t.Fatalf("clear should empty history")
	}
	if !strings.Contains(m.View(), "暂无历史记录") {
		t.Fatalf("view should show the empty notice")
	}
}
