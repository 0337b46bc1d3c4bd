package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFinanceSchema_IsComplete(t *testing.T) {
	complete := func() FinancialRecord {
		return FinancialRecord{
			ID:              "1",
			TransactionDate: "2024-01-01",
			Amount:          decimal.NewNullDecimal(decimal.NewFromInt(10)),
			Currency:        "USD",
			Category:        "food",
		}
	}

	testCases := []struct {
		name   string
		mutate func(r *FinancialRecord)
		want   bool
	}{
		{name: "complete without description", mutate: func(r *FinancialRecord) {}, want: true},
		{name: "zero amount is present", mutate: func(r *FinancialRecord) { r.Amount = decimal.NewNullDecimal(decimal.Zero) }, want: true},
		{name: "missing id", mutate: func(r *FinancialRecord) { r.ID = "" }, want: false},
		{name: "blank transaction date", mutate: func(r *FinancialRecord) { r.TransactionDate = " \t" }, want: false},
		{name: "null amount", mutate: func(r *FinancialRecord) { r.Amount = decimal.NullDecimal{} }, want: false},
		{name: "missing currency", mutate: func(r *FinancialRecord) { r.Currency = "" }, want: false},
		{name: "missing category", mutate: func(r *FinancialRecord) { r.Category = "" }, want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := complete()
			tc.mutate(&r)
			assert.Equal(t, tc.want, FinanceSchema.IsComplete(&r))
		})
	}
}

func TestTransportSchema_IsComplete(t *testing.T) {
	r := TransportRecord{ID: "T1", VehicleType: "bus", Origin: "A", Destination: "B", Status: "scheduled"}
	assert.True(t, TransportSchema.IsComplete(&r), "departure, arrival and area are optional")

	for _, mutate := range []func(r *TransportRecord){
		func(r *TransportRecord) { r.ID = "" },
		func(r *TransportRecord) { r.VehicleType = "  " },
		func(r *TransportRecord) { r.Origin = "" },
		func(r *TransportRecord) { r.Destination = "" },
		func(r *TransportRecord) { r.Status = "" },
	} {
		incomplete := r
		mutate(&incomplete)
		assert.False(t, TransportSchema.IsComplete(&incomplete))
	}
}

func TestPatientSchema_AlwaysComplete(t *testing.T) {
	assert.True(t, PatientSchema.IsComplete(&PatientRecord{}))
	assert.False(t, PatientSchema.IsComplete(nil))
}

func TestSchemas_Header(t *testing.T) {
	assert.Equal(t, []string{"id", "transactionDate", "description", "amount", "currency", "category"}, FinanceSchema.Header())
	assert.Equal(t, []string{"id", "vehicleType", "origin", "destination", "departureTime", "arrivalTime", "status", "area"}, TransportSchema.Header())
	assert.Equal(t, []string{"id", "name", "dateOfBirth", "notes", "age", "condition"}, PatientSchema.Header())
}

func TestSchemas_LookupFields(t *testing.T) {
	_, ok := FinanceSchema.Lookup(FinanceLookupField)
	assert.True(t, ok)
	_, ok = TransportSchema.Lookup(TransportLookupField)
	assert.True(t, ok)
	_, ok = PatientSchema.Lookup(PatientLookupField)
	assert.True(t, ok)
}
