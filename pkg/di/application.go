package di

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/ssargent/dataprov/pkg/api"
	"github.com/ssargent/dataprov/pkg/codec"
	"github.com/ssargent/dataprov/pkg/config"
	"github.com/ssargent/dataprov/pkg/dataset"
	"github.com/ssargent/dataprov/pkg/model"
	"github.com/ssargent/dataprov/pkg/patient"
	"github.com/ssargent/dataprov/pkg/service"
)

// Application is the wired set of services behind one server
type Application struct {
	Finances  *service.Service[model.FinancialRecord]
	Transport *service.Service[model.TransportRecord]
	Patients  *patient.Service
	Metrics   *api.Metrics
	Server    *api.Server

	config  *config.Config
	logger  *slog.Logger
	loader  *dataset.Loader
	starter ServerStarter
	closers []io.Closer
}

// SeedResult reports how one kind's dataset was loaded
type SeedResult struct {
	Kind    string
	Source  string
	Loaded  int
	Skipped int   // malformed rows plus records without an id
	Err     error // set when the source could not be read
}

// Seed loads the configured datasets. A source that fails is logged and its
// kind starts empty.
func (a *Application) Seed(ctx context.Context) []SeedResult {
	return []SeedResult{
		seed(ctx, a.loader, a.logger, a.config.Datasets.Finance, a.Finances),
		seed(ctx, a.loader, a.logger, a.config.Datasets.Transport, a.Transport),
	}
}

func seed[V any](ctx context.Context, loader *dataset.Loader, logger *slog.Logger, uri string, svc *service.Service[V]) SeedResult {
	result := SeedResult{Kind: svc.Kind(), Source: uri}
	if uri == "" {
		logger.Info("no dataset configured", "kind", result.Kind)
		return result
	}

	records, malformed, err := dataset.Load(ctx, loader, uri, codec.NewTabular(svc.Schema()))
	if err != nil {
		result.Err = err
		logger.Warn("failed to load dataset", "kind", result.Kind, "source", uri, "error", err)
		return result
	}

	loaded, skipped := svc.Seed(records)
	result.Loaded = loaded
	result.Skipped = skipped + malformed
	logger.Info("seeded records", "kind", result.Kind, "source", uri, "loaded", result.Loaded, "skipped", result.Skipped)
	return result
}

// Run serves the API until ctx is cancelled
func (a *Application) Run(ctx context.Context) error {
	return a.starter(ctx, a.Server)
}

// Close releases store resources
func (a *Application) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
