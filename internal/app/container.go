package app

import (
	"context"
	"errors"

	configapp "github.com/doeshing/copywriter-go/internal/application/config"
	"github.com/doeshing/copywriter-go/internal/application/doctor"
	"github.com/doeshing/copywriter-go/internal/application/generation"
	"github.com/doeshing/copywriter-go/internal/application/history"
	"github.com/doeshing/copywriter-go/internal/application/reveal"
	"github.com/doeshing/copywriter-go/internal/domain"
	"github.com/doeshing/copywriter-go/internal/infrastructure/ai"
	"github.com/doeshing/copywriter-go/internal/infrastructure/auth"
	"github.com/doeshing/copywriter-go/internal/infrastructure/config"
	"github.com/doeshing/copywriter-go/internal/infrastructure/storage"
	"github.com/doeshing/copywriter-go/internal/pkg/logger"
	"github.com/doeshing/copywriter-go/internal/pkg/tracing"
	"github.com/doeshing/copywriter-go/internal/ports"
	"github.com/doeshing/copywriter-go/internal/version"
)

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config         domain.Config
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	Logger         ports.Logger
	Store          ports.KeyValueStore
	History        *history.Store
	Controller     *generation.Controller
	Gate           ports.Authenticator
	DoctorService  *doctor.Service

	// Set by the presentation layer.
	Prompter  ports.ConfirmationPrompter
	Clipboard ports.Clipboard

	shutdownTracing func(context.Context) error
}

// BuildContainer constructs the dependency graph. Configuration problems that
// do not prevent startup are logged; doctor reports them in full.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	log := logger.New(logger.Options{Level: level, Format: cfg.Logging.Format})
	if err := configapp.Validate(cfg); err != nil {
		log.Warn("configuration invalid, using defaults where possible", map[string]interface{}{"error": err.Error()})
	}

	shutdown, err := tracing.Init(ctx, tracing.Config{
		ServiceVersion: version.Version,
		Exporter:       cfg.Telemetry.Exporter,
	})
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(ctx, cfg, log)
	if err != nil {
		_ = shutdown(ctx)
		return nil, err
	}
	historyStore := history.Open(ctx, store, log)

	interval, err := cfg.RevealIntervalDuration()
	if err != nil {
		interval = domain.DefaultRevealInterval
	}

	selector := ai.NewSelector(cfgLoader, ai.NewFactory(log), log)
	controller := generation.New(selector, historyStore, reveal.NewEngine(interval), log)
	gate := auth.NewGate(cfg.Credentials)

	doctorService := &doctor.Service{
		ConfigProvider: cfgLoader,
		Store:          store,
		History:        historyStore,
		Gate:           gate,
	}

	return &Container{
		Config:          cfg,
		ConfigProvider:  cfgLoader,
		ConfigLoader:    cfgLoader,
		Logger:          log,
		Store:           store,
		History:         historyStore,
		Controller:      controller,
		Gate:            gate,
		DoctorService:   doctorService,
		shutdownTracing: shutdown,
	}, nil
}

// Close stops any running generation and releases storage and tracing.
func (c *Container) Close(ctx context.Context) error {
	if c.Controller != nil {
		c.Controller.Close()
	}
	var errs []error
	if c.Store != nil {
		errs = append(errs, c.Store.Close())
	}
	if c.shutdownTracing != nil {
		errs = append(errs, c.shutdownTracing(ctx))
	}
	return errors.Join(errs...)
}
