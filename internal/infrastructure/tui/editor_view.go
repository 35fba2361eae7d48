package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/doeshing/copywriter-go/internal/domain"
)

func (m *model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	busy := m.snap.Loading()

	switch msg.String() {
	case "esc":
		if busy {
			m.config.Controller.Cancel()
		}
		return m, nil

	case "ctrl+s":
		if busy {
			return m, nil
		}
		return m, m.submit()

	case "tab":
		if !busy {
			m.style = m.style.Next()
		}
		return m, nil

	case "shift+tab":
		if !busy {
			m.style = previousStyle(m.style)
		}
		return m, nil

	case "ctrl+y":
		return m, m.copyResult()

	case "ctrl+r":
		m.entries = m.config.History.Entries()
		m.cursor = 0
		m.mode = historyMode
		m.textarea.Blur()
		return m, nil

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	if busy {
		return m, nil
	}
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m *model) copyResult() tea.Cmd {
	text := m.snap.Result
	if text == "" || m.snap.Loading() {
		return nil
	}
	if m.config.Clipboard == nil || !m.config.Clipboard.Enabled() {
		m.status = "剪贴板不可用"
		return m.clearStatusAfterDelay()
	}
	if err := m.config.Clipboard.Copy(text); err != nil {
		m.status = "复制失败: " + err.Error()
	} else {
		m.status = "已复制到剪贴板"
	}
	return m.clearStatusAfterDelay()
}

func previousStyle(key domain.StyleKey) domain.StyleKey {
	styles := domain.Styles()
	for i, s := range styles {
		if s.Key == key {
			return styles[(i+len(styles)-1)%len(styles)].Key
		}
	}
	return domain.DefaultStyle
}

func (m *model) editorView() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("营销文案助手"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("风格 "))
	b.WriteString(styleBadge.Render(m.style.Label()))
	b.WriteString("\n\n")
	b.WriteString(m.textarea.View())
	b.WriteString("\n\n")

	switch {
	case m.snap.State == domain.StateAwaitingProvider || m.snap.State == domain.StateValidating:
		b.WriteString(loadingStyle.Render(fmt.Sprintf("%s 正在生成...", m.spinner.View())))
		b.WriteString("\n")
	case m.snap.State == domain.StateError:
		b.WriteString(errorStyle.Render(m.snap.Error))
		b.WriteString("\n")
	}

	if m.snap.Result != "" {
		b.WriteString(outputBoxStyle.Render(m.viewport.View()))
		b.WriteString("\n")
	}

	help := "ctrl+s: generate • tab: style • ctrl+y: copy • ctrl+r: history • ctrl+c: quit"
	if m.snap.Loading() {
		help = "esc: cancel • ctrl+c: quit"
	}
	b.WriteString(helpStyle.Render(help))
	if m.status != "" {
		b.WriteString("  ")
		b.WriteString(statusStyle.Render(m.status))
	}
	return b.String()
}
