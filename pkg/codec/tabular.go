package codec

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ssargent/dataprov/pkg/record"
)

// Tabular encodes and decodes records of one kind as delimited text
type Tabular[V any] struct {
	schema *record.Schema[V]
}

// NewTabular creates a codec for the given schema
func NewTabular[V any](schema *record.Schema[V]) *Tabular[V] {
	return &Tabular[V]{schema: schema}
}

// Schema returns the schema the codec was built for
func (c *Tabular[V]) Schema() *record.Schema[V] {
	return c.schema
}

// Encode renders records as header plus rows. An empty slice encodes to "".
func (c *Tabular[V]) Encode(records []V) (string, error) {
	if len(records) == 0 {
		return "", nil
	}

	var sb strings.Builder
	if err := c.EncodeTo(&sb, records); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// EncodeTo writes the header and one row per record to w
func (c *Tabular[V]) EncodeTo(w io.Writer, records []V) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(c.schema.Header()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	fields := c.schema.Fields()
	row := make([]string, len(fields))
	for i := range records {
		for j, f := range fields {
			text, _ := f.Format(&records[i])
			row[j] = text
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// Decode parses text into records, discarding the first row
func (c *Tabular[V]) Decode(text string) ([]V, error) {
	if strings.TrimSpace(text) == "" {
		return []V{}, nil
	}

	records := []V{}
	err := c.scan(strings.NewReader(text), func(v V, rowErr error) error {
		if rowErr != nil {
			return rowErr
		}
		records = append(records, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// DecodeLenient parses r like Decode but skips malformed rows, returning how
// many were skipped. Only read failures are returned as errors.
func (c *Tabular[V]) DecodeLenient(r io.Reader) ([]V, int, error) {
	records := []V{}
	skipped := 0
	err := c.scan(r, func(v V, rowErr error) error {
		if rowErr != nil {
			skipped++
			return nil
		}
		records = append(records, v)
		return nil
	})
	if err != nil {
		return nil, skipped, err
	}
	return records, skipped, nil
}

// scan reads every data row and hands each decoded record, or the row's
// MalformedInput error, to yield. Returning an error from yield stops the scan.
func (c *Tabular[V]) scan(r io.Reader, yield func(v V, rowErr error) error) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	// The first row is a header whatever it contains
	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		var parseErr *csv.ParseError
		if !errors.As(err, &parseErr) {
			return fmt.Errorf("failed to read header: %w", err)
		}
		// A broken header is still discarded
	}

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}

		var v V
		var rowErr error
		var parseErr *csv.ParseError
		switch {
		case errors.As(err, &parseErr):
			rowErr = fmt.Errorf("%w: line %d: %v", record.ErrMalformedInput, parseErr.StartLine, parseErr.Err)
		case err != nil:
			return fmt.Errorf("failed to read row: %w", err)
		default:
			line, _ := reader.FieldPos(0)
			v, rowErr = c.decodeRow(row, line)
		}

		if err := yield(v, rowErr); err != nil {
			return err
		}
	}
}

func (c *Tabular[V]) decodeRow(row []string, line int) (V, error) {
	var v V
	fields := c.schema.Fields()
	if len(row) != len(fields) {
		return v, fmt.Errorf("%w: line %d: expected %d columns, got %d",
			record.ErrMalformedInput, line, len(fields), len(row))
	}

	for i, f := range fields {
		if err := f.Parse(&v, row[i]); err != nil {
			return v, fmt.Errorf("%w: line %d: %v", record.ErrMalformedInput, line, err)
		}
	}
	return v, nil
}
