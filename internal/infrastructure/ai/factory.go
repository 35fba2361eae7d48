// Package ai adapts remote text-generation backends to ports.Provider.
package ai

import (
	"context"
	"fmt"
	"net/http"

	"github.com/doeshing/copywriter-go/internal/domain"
	"github.com/doeshing/copywriter-go/internal/ports"
)

// Factory builds a provider for a resolved ProviderSpec.
type Factory struct {
	httpClient    *http.Client
	geminiBaseURL string
	logger        ports.Logger
}

// FactoryOption customizes a Factory.
type FactoryOption func(*Factory)

// WithHTTPClient overrides the HTTP client shared by both backends.
func WithHTTPClient(client *http.Client) FactoryOption {
	return func(f *Factory) {
		if client != nil {
			f.httpClient = client
		}
	}
}

// WithGeminiBaseURL points the secondary backend at another endpoint.
// Empty keeps the SDK default.
func WithGeminiBaseURL(baseURL string) FactoryOption {
	return func(f *Factory) {
		f.geminiBaseURL = baseURL
	}
}

// NewFactory creates a Factory. The default client has no timeout; callers
// bound a request through its context.
func NewFactory(logger ports.Logger, opts ...FactoryOption) *Factory {
	f := &Factory{httpClient: &http.Client{}, logger: logger}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// ForSpec returns the backend named by spec.
func (f *Factory) ForSpec(ctx context.Context, spec domain.ProviderSpec) (ports.Provider, error) {
	switch s := spec.(type) {
	case domain.PrimarySpec:
		return newDeepSeekProvider(s, f.httpClient, f.logger), nil
	case domain.SecondarySpec:
		return newGeminiProvider(ctx, s, f.httpClient, f.geminiBaseURL, f.logger)
	default:
		return nil, domain.ConfigurationError(fmt.Sprintf("unsupported provider spec %T", spec))
	}
}
