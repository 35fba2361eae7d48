package ai

import (
	"context"

	"github.com/doeshing/copywriter-go/internal/domain"
	"github.com/doeshing/copywriter-go/internal/ports"
)

// Selector re-reads configuration on every request and picks exactly one backend.
type Selector struct {
	config  ports.ConfigProvider
	factory *Factory
	logger  ports.Logger
}

// NewSelector wires a Selector.
func NewSelector(config ports.ConfigProvider, factory *Factory, logger ports.Logger) *Selector {
	return &Selector{config: config, factory: factory, logger: logger}
}

// Select resolves credentials without touching the network.
func (s *Selector) Select(ctx context.Context) (ports.Provider, error) {
	cfg, err := s.config.Load(ctx)
	if err != nil {
		return nil, domain.NewError(domain.KindConfiguration, err.Error(), err)
	}
	spec, err := domain.ResolveProvider(cfg.ProviderCredentials())
	if err != nil {
		return nil, err
	}
	s.logger.Debug("provider selected", map[string]interface{}{
		"provider": spec.Kind(),
		"model":    spec.ModelID(),
	})
	return s.factory.ForSpec(ctx, spec)
}

var _ ports.ProviderSelector = (*Selector)(nil)
