// Package patient exposes patient records through the operation set of the
// patient-records web service: create, get, update and delete by id.
package patient

import (
	"fmt"
	"strings"

	"github.com/ssargent/dataprov/pkg/model"
	"github.com/ssargent/dataprov/pkg/record"
	"github.com/ssargent/dataprov/pkg/service"
)

// Service implements the patient operations on top of the generic record service
type Service struct {
	records *service.Service[model.PatientRecord]
}

// NewService wraps a patient record service
func NewService(records *service.Service[model.PatientRecord]) *Service {
	return &Service{records: records}
}

// CreatePatient stores p and returns its id, minting one when p has none
func (s *Service) CreatePatient(p *model.PatientRecord) (string, error) {
	created, err := s.records.Create(p)
	if err != nil {
		return "", err
	}
	return created.ID, nil
}

// GetPatient returns the patient stored under id
func (s *Service) GetPatient(id string) (*model.PatientRecord, error) {
	p, ok := s.records.Get(id)
	if !ok {
		return nil, notFound("patient with id %s not found", id)
	}
	return &p, nil
}

// UpdatePatient replaces the stored patient with the same id
func (s *Service) UpdatePatient(p *model.PatientRecord) (bool, error) {
	if p == nil || strings.TrimSpace(p.ID) == "" {
		return false, notFound("missing patient id")
	}

	if _, err := s.records.Update(p.ID, p); err != nil {
		return false, notFound("patient with id %s not found", p.ID)
	}
	return true, nil
}

// DeletePatient removes the patient stored under id
func (s *Service) DeletePatient(id string) (bool, error) {
	if !s.records.Delete(id) {
		return false, notFound("patient with id %s not found", id)
	}
	return true, nil
}

// Len returns the number of stored patients
func (s *Service) Len() int {
	return s.records.Len()
}

func notFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", record.ErrNotFound, fmt.Sprintf(format, args...))
}
