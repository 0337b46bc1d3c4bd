package model

import "github.com/ssargent/dataprov/pkg/record"

// PatientRecord represents a patient served over the SOAP endpoint
type PatientRecord struct {
	ID          string `json:"id" xml:"id"`
	Name        string `json:"name" xml:"name"`
	DateOfBirth string `json:"dateOfBirth" xml:"dateOfBirth"` // ISO yyyy-MM-dd
	Notes       string `json:"notes" xml:"notes"`
	Age         int    `json:"age" xml:"age"`
	Condition   string `json:"condition" xml:"condition"`
}

const (
	PatientKind = "patient"

	// PatientLookupField is the column the patient lookup route filters on
	PatientLookupField = "condition"
)

// PatientSchema has no required fields: patients are created lazily and
// only the identifier is assigned by the service.
var PatientSchema = record.MustSchema(PatientKind,
	func(r *PatientRecord) string { return r.ID },
	func(r *PatientRecord, id string) { r.ID = id },
	record.StringField("id", 0, false, func(r *PatientRecord) *string { return &r.ID }),
	record.StringField("name", 1, false, func(r *PatientRecord) *string { return &r.Name }),
	record.StringField("dateOfBirth", 2, false, func(r *PatientRecord) *string { return &r.DateOfBirth }),
	record.StringField("notes", 3, false, func(r *PatientRecord) *string { return &r.Notes }),
	record.IntegerField("age", 4, false, func(r *PatientRecord) *int { return &r.Age }),
	record.StringField("condition", 5, false, func(r *PatientRecord) *string { return &r.Condition }),
)
