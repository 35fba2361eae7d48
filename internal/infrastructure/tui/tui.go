// Package tui is the interactive terminal editor: login, input, reveal output and history.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/doeshing/copywriter-go/internal/domain"
	"github.com/doeshing/copywriter-go/internal/ports"
)

// Generator is the part of the generation controller the editor drives.
type Generator interface {
	Submit(ctx context.Context, req domain.GenerationRequest) (domain.Snapshot, error)
	Cancel()
	Close()
	LoadEntry(id int64) (domain.EditorView, error)
	SetObserver(fn func(domain.Snapshot))
}

// Config carries the TUI's collaborators.
type Config struct {
	Controller   Generator
	History      ports.HistoryRepository
	Gate         ports.Authenticator
	Clipboard    ports.Clipboard
	DefaultStyle domain.StyleKey
}

// Run starts the TUI application and blocks until it exits. Any running
// generation is cancelled before Run returns.
func Run(config Config) error {
	p := tea.NewProgram(
		newModel(config),
		tea.WithAltScreen(),
	)
	config.Controller.SetObserver(func(s domain.Snapshot) {
		p.Send(snapshotMsg(s))
	})
	defer func() {
		config.Controller.SetObserver(nil)
		config.Controller.Close()
	}()

	_, err := p.Run()
	return err
}
