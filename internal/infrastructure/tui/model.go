package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/doeshing/copywriter-go/internal/domain"
)

type viewMode int

const (
	loginMode viewMode = iota
	editorMode
	historyMode
	confirmClearMode
)

// snapshotMsg carries a controller observation into the update loop.
type snapshotMsg domain.Snapshot

type submitDoneMsg struct {
	snap domain.Snapshot
	err  error
}

type entryLoadedMsg struct {
	view domain.EditorView
	err  error
}

type statusMsg string

type model struct {
	config Config
	mode   viewMode

	// login
	userInput     textinput.Model
	passwordInput textinput.Model
	loginErr      string

	// editor
	textarea textarea.Model
	viewport viewport.Model
	spinner  spinner.Model
	style    domain.StyleKey
	snap     domain.Snapshot

	// history
	entries []domain.HistoryEntry
	cursor  int

	status string
	width  int
	height int
}

func newModel(config Config) *model {
	style := config.DefaultStyle
	if !style.Valid() {
		style = domain.DefaultStyle
	}

	user := textinput.New()
	user.Placeholder = "用户名"
	user.Focus()
	password := textinput.New()
	password.Placeholder = "密码"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	ta := textarea.New()
	ta.Placeholder = "在此输入原始文案..."
	ta.CharLimit = 0
	ta.SetWidth(76)
	ta.SetHeight(6)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = loadingStyle

	m := &model{
		config:        config,
		mode:          editorMode,
		userInput:     user,
		passwordInput: password,
		textarea:      ta,
		viewport:      viewport.New(78, 10),
		spinner:       sp,
		style:         style,
		width:         80,
		height:        24,
	}
	if config.Gate != nil && config.Gate.Enabled() {
		m.mode = loginMode
	} else {
		m.textarea.Focus()
	}
	return m
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, textarea.Blink)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case snapshotMsg:
		return m, m.applySnapshot(domain.Snapshot(msg))

	case submitDoneMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, m.clearStatusAfterDelay()
		}
		return m, m.applySnapshot(msg.snap)

	case entryLoadedMsg:
		return m, m.applyLoaded(msg)

	case spinner.TickMsg:
		if !m.snap.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case statusMsg:
		m.status = string(msg)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			if m.snap.Loading() {
				m.config.Controller.Cancel()
			}
			return m, tea.Quit
		}
		switch m.mode {
		case loginMode:
			return m.updateLogin(msg)
		case historyMode:
			return m.updateHistory(msg)
		case confirmClearMode:
			return m.updateConfirmClear(msg)
		default:
			return m.updateEditor(msg)
		}
	}
	return m, nil
}

func (m *model) View() string {
	switch m.mode {
	case loginMode:
		return m.loginView()
	case historyMode, confirmClearMode:
		return m.historyView()
	default:
		return m.editorView()
	}
}

func (m *model) applySnapshot(snap domain.Snapshot) tea.Cmd {
	wasLoading := m.snap.Loading()
	m.snap = snap
	m.viewport.SetContent(snap.Result)
	m.viewport.GotoBottom()
	if snap.Committed != nil && !snap.Loading() {
		m.status = "已保存到历史记录"
		return m.clearStatusAfterDelay()
	}
	if snap.Loading() && !wasLoading {
		return m.spinner.Tick
	}
	return nil
}

func (m *model) submit() tea.Cmd {
	req := domain.GenerationRequest{InputText: m.textarea.Value(), Style: m.style}
	gen := m.config.Controller
	return func() tea.Msg {
		snap, err := gen.Submit(context.Background(), req)
		return submitDoneMsg{snap: snap, err: err}
	}
}

func (m *model) resize(width, height int) {
	m.width = width
	m.height = height
	m.textarea.SetWidth(max(width-4, 20))
	m.viewport.Width = max(width-4, 20)
	m.viewport.Height = max(height-m.textarea.Height()-10, 3)
}

func (m *model) clearStatusAfterDelay() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return statusMsg("")
	})
}
