package patient

import (
	"testing"

	"github.com/ssargent/dataprov/pkg/model"
	"github.com/ssargent/dataprov/pkg/record"
	"github.com/ssargent/dataprov/pkg/service"
	"github.com/ssargent/dataprov/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return NewService(service.New(model.PatientSchema, store.NewMemoryStore[string, model.PatientRecord]()))
}

func TestService_CreateAndGetPatient(t *testing.T) {
	svc := newTestService()

	id, err := svc.CreatePatient(&model.PatientRecord{Name: "Ada Lovelace", Age: 36})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	p, err := svc.GetPatient(id)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", p.Name)
	assert.Equal(t, 36, p.Age)

	id, err = svc.CreatePatient(&model.PatientRecord{ID: "p-7"})
	require.NoError(t, err)
	assert.Equal(t, "p-7", id)
}

func TestService_CreatePatient_Nil(t *testing.T) {
	svc := newTestService()

	_, err := svc.CreatePatient(nil)
	assert.ErrorIs(t, err, record.ErrInvalidInput)
}

func TestService_GetPatient_NotFound(t *testing.T) {
	svc := newTestService()

	p, err := svc.GetPatient("missing")
	assert.Nil(t, p)
	assert.ErrorIs(t, err, record.ErrNotFound)
}

func TestService_UpdatePatient(t *testing.T) {
	svc := newTestService()
	id, err := svc.CreatePatient(&model.PatientRecord{Name: "Grace"})
	require.NoError(t, err)

	ok, err := svc.UpdatePatient(&model.PatientRecord{ID: id, Name: "Grace Hopper", Condition: "stable"})
	require.NoError(t, err)
	assert.True(t, ok)

	p, err := svc.GetPatient(id)
	require.NoError(t, err)
	assert.Equal(t, "Grace Hopper", p.Name)
	assert.Equal(t, "stable", p.Condition)

	testCases := []struct {
		name    string
		patient *model.PatientRecord
	}{
		{name: "nil patient", patient: nil},
		{name: "blank id", patient: &model.PatientRecord{ID: "  ", Name: "x"}},
		{name: "absent id", patient: &model.PatientRecord{ID: "nope", Name: "x"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := svc.UpdatePatient(tc.patient)
			assert.False(t, ok)
			assert.ErrorIs(t, err, record.ErrNotFound)
		})
	}
	assert.Equal(t, 1, svc.Len())
}

func TestService_DeletePatient(t *testing.T) {
	svc := newTestService()
	id, err := svc.CreatePatient(&model.PatientRecord{Name: "Alan"})
	require.NoError(t, err)

	ok, err := svc.DeletePatient(id)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.DeletePatient(id)
	assert.False(t, ok)
	assert.ErrorIs(t, err, record.ErrNotFound)
	assert.Zero(t, svc.Len())
}
