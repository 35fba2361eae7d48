package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/doeshing/copywriter-go/internal/domain"
	"github.com/doeshing/copywriter-go/internal/infrastructure/cli/helpers"
)

func (m *model) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "ctrl+r":
		return m, m.backToEditor()

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}

	case "enter":
		if len(m.entries) == 0 {
			return m, nil
		}
		return m, m.loadEntry(m.entries[m.cursor].ID)

	case "d", "delete":
		if len(m.entries) == 0 {
			return m, nil
		}
		if err := m.config.History.Remove(context.Background(), m.entries[m.cursor].ID); err != nil {
			m.status = domain.UserMessage(err)
			return m, m.clearStatusAfterDelay()
		}
		m.entries = m.config.History.Entries()
		if m.cursor >= len(m.entries) && m.cursor > 0 {
			m.cursor--
		}

	case "C":
		if len(m.entries) > 0 {
			m.mode = confirmClearMode
		}
	}
	return m, nil
}

func (m *model) updateConfirmClear(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if err := m.config.History.Clear(context.Background()); err != nil {
			m.status = domain.UserMessage(err)
		}
		m.entries = m.config.History.Entries()
		m.cursor = 0
		m.mode = historyMode
		return m, m.clearStatusAfterDelay()
	default:
		m.mode = historyMode
		return m, nil
	}
}

// loadEntry runs off the update loop because the controller notifies its observer
// synchronously and the observer feeds back into this program.
func (m *model) loadEntry(id int64) tea.Cmd {
	gen := m.config.Controller
	return func() tea.Msg {
		view, err := gen.LoadEntry(id)
		return entryLoadedMsg{view: view, err: err}
	}
}

func (m *model) applyLoaded(msg entryLoadedMsg) tea.Cmd {
	if msg.err != nil {
		m.status = msg.err.Error()
		return m.clearStatusAfterDelay()
	}
	m.textarea.SetValue(msg.view.Request.InputText)
	m.style = msg.view.Request.Style
	m.snap = domain.Snapshot{State: domain.StateIdle, Request: msg.view.Request, Result: msg.view.GeneratedText}
	m.viewport.SetContent(msg.view.GeneratedText)
	m.viewport.GotoTop()
	if m.mode == historyMode {
		return m.backToEditor()
	}
	return nil
}

func (m *model) backToEditor() tea.Cmd {
	m.mode = editorMode
	return m.textarea.Focus()
}

func (m *model) historyView() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("历史记录 (%d)", len(m.entries))))
	b.WriteString("\n")

	if len(m.entries) == 0 {
		b.WriteString(dimStyle.Render("暂无历史记录"))
		b.WriteString("\n")
	}

	visible := max(m.height-8, 3) / 2
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	for i := start; i < len(m.entries) && i < start+visible; i++ {
		entry := m.entries[i]
		cursor := " "
		style := itemStyle
		if i == m.cursor {
			cursor = ">"
			style = selectedItemStyle
		}
		line := fmt.Sprintf("%s %s  %s  %s", cursor, entry.Timestamp, entry.Style,
			helpers.Truncate(entry.InputText, domain.InputPreviewRunes))
		b.WriteString(style.Render(line))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("    " + helpers.Truncate(entry.GeneratedText, domain.OutputPreviewRunes)))
		b.WriteString("\n")
	}

	if m.mode == confirmClearMode {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("确定要清空所有历史记录吗？(y/N)"))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("↑/k ↓/j: move • enter: load • d: delete • C: clear all • esc: back"))
	if m.status != "" {
		b.WriteString("  ")
		b.WriteString(statusStyle.Render(m.status))
	}
	return b.String()
}
