package domain

import (
	"strings"
	"time"
)

// HistoryEntry is one completed generation. Entries are immutable once created.
type HistoryEntry struct {
	ID            int64    `json:"id"`
	InputText     string   `json:"inputText"`
	GeneratedText string   `json:"generatedText"`
	Style         StyleKey `json:"model"`
	Timestamp     string   `json:"timestamp"`
}

// GenerationRequest is built at submission time and discarded once the pipeline ends.
type GenerationRequest struct {
	InputText string
	Style     StyleKey
}

// Blank reports whether the request carries no usable input.
func (r GenerationRequest) Blank() bool {
	return strings.TrimSpace(r.InputText) == ""
}

// EditorView is what reloading a history entry puts back in front of the user.
type EditorView struct {
	Request       GenerationRequest
	GeneratedText string
}

// NewHistoryEntry stamps a completed generation. lastID is the largest id already stored;
// the returned id is always greater than it.
func NewHistoryEntry(req GenerationRequest, generated string, now time.Time, lastID int64) HistoryEntry {
	id := now.UnixMilli()
	if id <= lastID {
		id = lastID + 1
	}
	return HistoryEntry{
		ID:            id,
		InputText:     req.InputText,
		GeneratedText: generated,
		Style:         req.Style,
		Timestamp:     now.Format(TimestampFormat),
	}
}

// Project turns an entry back into the editor shape without touching a provider.
func (e HistoryEntry) Project() EditorView {
	return EditorView{
		Request:       GenerationRequest{InputText: e.InputText, Style: e.Style},
		GeneratedText: e.GeneratedText,
	}
}
