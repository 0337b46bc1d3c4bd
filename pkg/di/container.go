// Package di provides dependency injection container
package di

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ssargent/dataprov/pkg/api"
	"github.com/ssargent/dataprov/pkg/config"
	"github.com/ssargent/dataprov/pkg/dataset"
	"github.com/ssargent/dataprov/pkg/ids"
	"github.com/ssargent/dataprov/pkg/model"
	"github.com/ssargent/dataprov/pkg/patient"
	"github.com/ssargent/dataprov/pkg/service"
	"github.com/ssargent/dataprov/pkg/store"
)

// S3ClientFactory creates the client used for s3:// dataset sources
type S3ClientFactory func(ctx context.Context, cfg dataset.S3Config) (dataset.ObjectGetter, error)

// ServerStarter runs the API server until ctx is cancelled
type ServerStarter func(ctx context.Context, server *api.Server) error

// Container holds all the dependencies for the application
type Container struct {
	s3ClientFactory S3ClientFactory
	serverStarter   ServerStarter
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	return &Container{
		s3ClientFactory: func(ctx context.Context, cfg dataset.S3Config) (dataset.ObjectGetter, error) {
			return dataset.NewS3Client(ctx, cfg)
		},
		serverStarter: func(ctx context.Context, server *api.Server) error {
			return server.StartServer(ctx)
		},
	}
}

// SetS3ClientFactory allows overriding the S3 client factory (for testing)
func (c *Container) SetS3ClientFactory(factory S3ClientFactory) {
	c.s3ClientFactory = factory
}

// SetServerStarter allows overriding how the server is run (for testing)
func (c *Container) SetServerStarter(starter ServerStarter) {
	c.serverStarter = starter
}

// Build wires stores, services and the API server from cfg. Datasets are not
// loaded until Seed is called.
func (c *Container) Build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	newID, err := ids.New(cfg.Store.IDStrategy)
	if err != nil {
		return nil, err
	}

	app := &Application{
		config:  cfg,
		logger:  logger,
		starter: c.serverStarter,
	}

	financeStore, err := openStore[model.FinancialRecord](app, model.FinanceKind)
	if err != nil {
		app.Close()
		return nil, err
	}
	transportStore, err := openStore[model.TransportRecord](app, model.TransportKind)
	if err != nil {
		app.Close()
		return nil, err
	}
	patientStore, err := openStore[model.PatientRecord](app, model.PatientKind)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.Finances = service.New(model.FinanceSchema, financeStore,
		service.WithIDGenerator[model.FinancialRecord](newID))
	app.Transport = service.New(model.TransportSchema, transportStore,
		service.WithIDGenerator[model.TransportRecord](newID))
	app.Patients = patient.NewService(service.New(model.PatientSchema, patientStore,
		service.WithIDGenerator[model.PatientRecord](newID)))

	var loaderOpts []dataset.LoaderOption
	if usesS3(cfg.Datasets) {
		client, err := c.s3ClientFactory(ctx, dataset.S3Config{
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			PathStyle:       cfg.S3.PathStyle,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
		})
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to create s3 client: %w", err)
		}
		loaderOpts = append(loaderOpts, dataset.WithS3(client))
	}
	app.loader = dataset.NewLoader(loaderOpts...)

	app.Metrics = api.NewMetrics(nil)
	app.Server = api.NewServer(api.ServerConfig{
		Bind:   cfg.Bind,
		Port:   cfg.Port,
		Logger: logger,
	}, app.Patients, app.Metrics,
		api.NewTabularResource("finances", model.FinanceLookupField, app.Finances),
		api.NewTabularResource("transport", model.TransportLookupField, app.Transport),
	)

	return app, nil
}

func openStore[V any](app *Application, kind string) (store.Store[string, V], error) {
	st, err := store.New[V](store.Config{
		Backend: app.config.Store.Backend,
		Name:    kind,
		Logger:  app.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", kind, err)
	}
	if closer, ok := st.(io.Closer); ok {
		app.closers = append(app.closers, closer)
	}
	return st, nil
}

func usesS3(d config.Datasets) bool {
	for _, uri := range []string{d.Finance, d.Transport} {
		if strings.HasPrefix(uri, "s3://") {
			return true
		}
	}
	return false
}
