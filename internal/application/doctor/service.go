package doctor

import (
	"context"
	"fmt"

	"github.com/doeshing/copywriter-go/internal/application/config"
	"github.com/doeshing/copywriter-go/internal/domain"
	"github.com/doeshing/copywriter-go/internal/ports"
)

// Service runs environment diagnostics. It never calls a provider.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Store          ports.KeyValueStore
	History        ports.HistoryRepository
	Gate           ports.Authenticator
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	if err := config.Validate(cfg); err != nil {
		checks = append(checks, fail("Config file", err.Error()))
	} else {
		checks = append(checks, ok("Config file", fmt.Sprintf("format version %s", cfg.ConfigFormatVersion)))
	}

	checks = append(checks, providerCheck(cfg.ProviderCredentials()))
	checks = append(checks, s.storageCheck(ctx))

	if s.History != nil {
		checks = append(checks, ok("History", fmt.Sprintf("%d entries", len(s.History.Entries()))))
	}

	switch {
	case s.Gate == nil:
	case s.Gate.Enabled():
		checks = append(checks, ok("Entry gate", "credentials configured"))
	default:
		checks = append(checks, warn("Entry gate", "disabled (COPYWRITER_LOGIN_USER/COPYWRITER_LOGIN_PASSWORD not set)"))
	}

	return domain.HealthReport{Checks: checks}, nil
}

func providerCheck(creds domain.ProviderCredentials) domain.HealthCheck {
	spec, err := domain.ResolveProvider(creds)
	if err != nil {
		return fail("Provider", err.Error())
	}
	details := fmt.Sprintf("%s (%s)", spec.Kind(), spec.ModelID())
	if creds.PrimaryKey != "" && creds.SecondaryKey != "" {
		return warn("Provider", details+"; GEMINI_API_KEY ignored while DEEPSEEK_API_KEY is set")
	}
	return ok("Provider", details)
}

func (s *Service) storageCheck(ctx context.Context) domain.HealthCheck {
	if s.Store == nil {
		return warn("Storage", "not initialized")
	}
	if _, _, err := s.Store.Get(ctx, domain.HistoryStorageKey); err != nil {
		return fail("Storage", fmt.Sprintf("%s: %v", s.Store.Location(), err))
	}
	return ok("Storage", s.Store.Location())
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
