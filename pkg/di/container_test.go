package di

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/ssargent/dataprov/pkg/api"
	"github.com/ssargent/dataprov/pkg/config"
	"github.com/ssargent/dataprov/pkg/dataset"
	"github.com/ssargent/dataprov/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bucket map[string]string

func (b bucket) GetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	body, ok := b[aws.ToString(params.Bucket)+"/"+aws.ToString(params.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func build(t *testing.T, c *Container, cfg *config.Config) *Application {
	t.Helper()
	app, err := c.Build(context.Background(), cfg, quietLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func TestBuild_SeedsBundledDatasets(t *testing.T) {
	app := build(t, NewContainer(), config.DefaultConfig())

	results := app.Seed(context.Background())
	require.Len(t, results, 2)

	for _, r := range results {
		assert.NoError(t, r.Err, r.Kind)
		assert.Equal(t, 10, r.Loaded, r.Kind)
		assert.Zero(t, r.Skipped, r.Kind)
	}
	assert.Equal(t, 10, app.Finances.Len())
	assert.Equal(t, 10, app.Transport.Len())
	assert.Zero(t, app.Patients.Len())

	rec, ok := app.Finances.Get("F-1002")
	require.True(t, ok)
	assert.Equal(t, "Team lunch, quarterly kickoff", rec.Description)
}

func TestBuild_FailingSourceStartsEmpty(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Datasets.Finance = filepath.Join(t.TempDir(), "missing.csv")
	cfg.Datasets.Transport = ""

	app := build(t, NewContainer(), cfg)
	results := app.Seed(context.Background())

	assert.Error(t, results[0].Err)
	assert.Zero(t, app.Finances.Len())
	assert.NoError(t, results[1].Err)
	assert.Zero(t, results[1].Loaded)
	assert.Zero(t, app.Transport.Len())
}

func TestBuild_S3Datasets(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Datasets.Finance = "s3://datasets/finance.csv"
	cfg.S3.Region = "eu-west-1"

	var got dataset.S3Config
	c := NewContainer()
	c.SetS3ClientFactory(func(_ context.Context, s3cfg dataset.S3Config) (dataset.ObjectGetter, error) {
		got = s3cfg
		return bucket{
			"datasets/finance.csv": "id,transactionDate,description,amount,currency,category\n" +
				"S-1,2024-02-01,,12.50,EUR,travel\n" +
				"S-2,2024-02-02,broken row\n",
		}, nil
	})

	app := build(t, c, cfg)
	results := app.Seed(context.Background())

	assert.Equal(t, "eu-west-1", got.Region)
	require.NoError(t, results[0].Err)
	assert.Equal(t, 1, results[0].Loaded)
	assert.Equal(t, 1, results[0].Skipped)
	assert.Equal(t, 10, results[1].Loaded)
}

func TestBuild_S3ClientError(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Datasets.Transport = "s3://datasets/transport.csv"

	c := NewContainer()
	c.SetS3ClientFactory(func(context.Context, dataset.S3Config) (dataset.ObjectGetter, error) {
		return nil, errors.New("no credentials")
	})

	_, err := c.Build(context.Background(), cfg, quietLogger())
	assert.ErrorContains(t, err, "no credentials")
}

func TestBuild_S3ClientOnlyWhenNeeded(t *testing.T) {
	c := NewContainer()
	c.SetS3ClientFactory(func(context.Context, dataset.S3Config) (dataset.ObjectGetter, error) {
		t.Fatal("s3 client created without an s3 dataset")
		return nil, nil
	})

	build(t, c, config.DefaultConfig())
}

func TestBuild_InvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Store.Backend = "cassandra"

	_, err := NewContainer().Build(context.Background(), cfg, quietLogger())
	assert.Error(t, err)
}

func TestBuild_PebbleBackend(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Store.Backend = "pebble"
	cfg.Store.IDStrategy = "ksuid"

	app := build(t, NewContainer(), cfg)
	app.Seed(context.Background())

	assert.Equal(t, 10, app.Transport.Len())
	assert.Len(t, app.closers, 3)

	id, err := app.Patients.CreatePatient(&model.PatientRecord{Name: "Ada"})
	require.NoError(t, err)
	assert.Len(t, id, 27)

	require.NoError(t, app.Close())
	assert.Empty(t, app.closers)
}

func TestApplication_Run(t *testing.T) {
	var started *api.Server
	c := NewContainer()
	c.SetServerStarter(func(_ context.Context, s *api.Server) error {
		started = s
		return nil
	})

	app := build(t, c, config.DefaultConfig())
	require.NoError(t, app.Run(context.Background()))
	assert.Same(t, app.Server, started)
}
