// Package dataset opens the tabular files records are seeded from.
//
// A source is named by URI:
//
//	builtin:<name>      a dataset bundled into the binary
//	s3://<bucket>/<key> an object in S3 or an S3-compatible store
//	<path>              a file on the local filesystem
package dataset

import (
	"context"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/ssargent/dataprov/pkg/codec"
)

//go:embed data/*.csv
var bundled embed.FS

const (
	builtinScheme = "builtin:"
	s3Scheme      = "s3://"
)

// ObjectGetter is the part of the S3 client a Loader needs
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Loader resolves source URIs to readers
type Loader struct {
	builtin fs.FS
	s3      ObjectGetter
}

// LoaderOption customizes a Loader
type LoaderOption func(*Loader)

// WithS3 enables s3:// sources
func WithS3(client ObjectGetter) LoaderOption {
	return func(l *Loader) {
		l.s3 = client
	}
}

// NewLoader creates a loader that serves the bundled datasets and local files
func NewLoader(opts ...LoaderOption) *Loader {
	sub, _ := fs.Sub(bundled, "data")
	l := &Loader{builtin: sub}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Builtin lists the names of the bundled datasets
func Builtin() []string {
	entries, _ := fs.ReadDir(bundled, "data")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

// Open returns a reader for the source. The caller closes it.
func (l *Loader) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	switch {
	case strings.TrimSpace(uri) == "":
		return nil, fmt.Errorf("dataset source cannot be empty")
	case strings.HasPrefix(uri, builtinScheme):
		name := strings.TrimPrefix(uri, builtinScheme)
		f, err := l.builtin.Open(name)
		if err != nil {
			return nil, fmt.Errorf("unknown builtin dataset %s: %w", name, err)
		}
		return f, nil
	case strings.HasPrefix(uri, s3Scheme):
		return l.openS3(ctx, uri)
	default:
		f, err := os.Open(uri)
		if err != nil {
			return nil, fmt.Errorf("failed to open dataset file: %w", err)
		}
		return f, nil
	}
}

func (l *Loader) openS3(ctx context.Context, uri string) (io.ReadCloser, error) {
	if l.s3 == nil {
		return nil, fmt.Errorf("dataset %s: s3 is not configured", uri)
	}

	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("invalid s3 uri %s: %w", uri, err)
	}
	bucket := u.Host
	key := strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return nil, fmt.Errorf("invalid s3 uri %s: bucket and key are required", uri)
	}

	out, err := l.s3.GetObject(ctx, &s3.GetObjectInput{Bucket: &bucket, Key: &key})
	if err != nil {
		return nil, fmt.Errorf("failed to get s3 object %s: %w", uri, err)
	}
	return out.Body, nil
}

// Load opens the source and decodes it leniently, returning the records and
// the number of malformed rows that were skipped
func Load[V any](ctx context.Context, l *Loader, uri string, c *codec.Tabular[V]) ([]V, int, error) {
	rc, err := l.Open(ctx, uri)
	if err != nil {
		return nil, 0, err
	}
	defer rc.Close()

	records, skipped, err := c.DecodeLenient(rc)
	if err != nil {
		return nil, skipped, fmt.Errorf("failed to decode dataset %s: %w", uri, err)
	}
	return records, skipped, nil
}
