// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and external
// adapters (infrastructure). The generation pipeline depends only on these
// abstractions; concrete providers, storage backends and presentation live in the
// infrastructure layer.
//
// Key architectural concepts:
//   - Ports: Interfaces defined here (e.g., Provider, KeyValueStore)
//   - Adapters: Concrete implementations in the infrastructure layer
//   - Dependency inversion: Application depends on abstractions, not implementations
package ports

import (
	"context"

	"github.com/doeshing/copywriter-go/internal/domain"
)

// ConfigProvider loads the latest configuration.
// Implementations typically read ~/.copywriter/config.yaml and overlay the environment.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// Provider is one AI text-generation backend.
// Generate returns the full rewritten text or a *domain.Error of kind provider.
type Provider interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// ProviderSelector resolves the backend for a single request.
// It is consulted on every submission so configuration changes take effect without a restart.
type ProviderSelector interface {
	Select(context.Context) (Provider, error)
}

// KeyValueStore is the key-scoped persistent store backing the history blob.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Location() string
	Close() error
}

// HistoryRepository is the ordered log of completed generations.
type HistoryRepository interface {
	Entries() []domain.HistoryEntry
	Get(id int64) (domain.HistoryEntry, bool)
	Insert(ctx context.Context, req domain.GenerationRequest, generated string) (domain.HistoryEntry, error)
	Remove(ctx context.Context, id int64) error
	Clear(ctx context.Context) error
}

// Revealer progressively discloses finished text to a sink.
type Revealer interface {
	Reveal(ctx context.Context, text string, onTick func(prefix string)) RevealHandle
}

// RevealHandle controls one in-flight reveal.
type RevealHandle interface {
	Cancel()
	Done() <-chan struct{}
	Completed() bool
}

// ConfirmationPrompter handles interactive confirmations for destructive operations.
type ConfirmationPrompter interface {
	Confirm(question string) (bool, error)
	ReadLine(label string) (string, error)
	Enabled() bool
}

// Clipboard provides cross-platform clipboard integration for copying results.
type Clipboard interface {
	Copy(text string) error
	Enabled() bool
}

// Authenticator is the entry gate in front of the interactive surfaces.
type Authenticator interface {
	Enabled() bool
	Check(user, password string) bool
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
