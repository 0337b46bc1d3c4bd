package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ssargent/dataprov/pkg/codec"
	"github.com/ssargent/dataprov/pkg/di"
	"github.com/ssargent/dataprov/pkg/model"
	"github.com/ssargent/dataprov/pkg/service"
)

var tabularKinds = []string{model.FinanceKind, model.TransportKind}

func unknownKind(kind string) error {
	return fmt.Errorf("unknown record kind %q (expected one of: %s)", kind, strings.Join(tabularKinds, ", "))
}

// validation summarizes a dataset check
type validation struct {
	Records    int
	Malformed  int
	Incomplete []string
}

func validateKind(kind string, r io.Reader) (validation, error) {
	switch kind {
	case model.FinanceKind:
		return validateRecords(codec.NewTabular(model.FinanceSchema), r)
	case model.TransportKind:
		return validateRecords(codec.NewTabular(model.TransportSchema), r)
	default:
		return validation{}, unknownKind(kind)
	}
}

func validateRecords[V any](c *codec.Tabular[V], r io.Reader) (validation, error) {
	records, malformed, err := c.DecodeLenient(r)
	if err != nil {
		return validation{}, err
	}

	result := validation{Records: len(records), Malformed: malformed}
	schema := c.Schema()
	for i := range records {
		if !schema.IsComplete(&records[i]) {
			id := schema.ID(&records[i])
			if id == "" {
				id = fmt.Sprintf("row %d", i+1)
			}
			result.Incomplete = append(result.Incomplete, id)
		}
	}
	return result, nil
}

func exportKind(app *di.Application, kind string, w io.Writer) error {
	switch kind {
	case model.FinanceKind:
		return exportRecords(app.Finances, w)
	case model.TransportKind:
		return exportRecords(app.Transport, w)
	default:
		return unknownKind(kind)
	}
}

// exportRecords writes every record of svc as CSV, ordered by id
func exportRecords[V any](svc *service.Service[V], w io.Writer) error {
	records := svc.GetAll()
	schema := svc.Schema()
	sort.Slice(records, func(i, j int) bool {
		return schema.ID(&records[i]) < schema.ID(&records[j])
	})
	return codec.NewTabular(schema).EncodeTo(w, records)
}
