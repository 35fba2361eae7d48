package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const msgInvalidLogin = "用户名或密码错误"

func (m *model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, tea.Quit

	case "tab", "shift+tab", "up", "down":
		m.toggleLoginFocus()
		return m, nil

	case "enter":
		if m.userInput.Focused() {
			m.toggleLoginFocus()
			return m, nil
		}
		if !m.config.Gate.Check(strings.TrimSpace(m.userInput.Value()), m.passwordInput.Value()) {
			m.loginErr = msgInvalidLogin
			m.passwordInput.SetValue("")
			return m, nil
		}
		m.loginErr = ""
		m.passwordInput.SetValue("")
		m.passwordInput.Blur()
		m.mode = editorMode
		return m, m.textarea.Focus()
	}

	var cmd tea.Cmd
	if m.userInput.Focused() {
		m.userInput, cmd = m.userInput.Update(msg)
	} else {
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	return m, cmd
}

func (m *model) toggleLoginFocus() {
	if m.userInput.Focused() {
		m.userInput.Blur()
		m.passwordInput.Focus()
		return
	}
	m.passwordInput.Blur()
	m.userInput.Focus()
}

func (m *model) loginView() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("营销文案助手"))
	b.WriteString("\n")
	b.WriteString(m.userInput.View())
	b.WriteString("\n")
	b.WriteString(m.passwordInput.View())
	if m.loginErr != "" {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render(m.loginErr))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab: switch field • enter: sign in • esc: quit"))
	return loginBoxStyle.Render(b.String())
}
