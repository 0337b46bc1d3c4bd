package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/ssargent/dataprov/pkg/model"
)

// Resource is a record collection served under its own path
type Resource interface {
	// Kind returns the record kind name
	Kind() string

	// Path returns the route prefix without slashes
	Path() string

	// Len returns the number of stored records
	Len() int

	// Mount registers the collection routes on r
	Mount(r chi.Router, metrics *Metrics, maxBodyBytes int64)
}

// PatientService is the operation set of the patient-records endpoint
type PatientService interface {
	CreatePatient(p *model.PatientRecord) (string, error)
	GetPatient(id string) (*model.PatientRecord, error)
	UpdatePatient(p *model.PatientRecord) (bool, error)
	DeletePatient(id string) (bool, error)
}

// counter is implemented by services that can report their size
type counter interface {
	Len() int
}
