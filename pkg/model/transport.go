package model

import "github.com/ssargent/dataprov/pkg/record"

// TransportRecord represents a single vehicle movement
type TransportRecord struct {
	ID            string `json:"id"`
	VehicleType   string `json:"vehicleType"`
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureTime string `json:"departureTime"`
	ArrivalTime   string `json:"arrivalTime"`
	Status        string `json:"status"`
	Area          string `json:"area"`
}

const (
	TransportKind = "transport"

	// TransportLookupField is the column the transport lookup route filters on
	TransportLookupField = "area"
)

// TransportSchema binds TransportRecord to its eight columns. Departure,
// arrival and area are optional.
var TransportSchema = record.MustSchema(TransportKind,
	func(r *TransportRecord) string { return r.ID },
	func(r *TransportRecord, id string) { r.ID = id },
	record.StringField("id", 0, true, func(r *TransportRecord) *string { return &r.ID }),
	record.StringField("vehicleType", 1, true, func(r *TransportRecord) *string { return &r.VehicleType }),
	record.StringField("origin", 2, true, func(r *TransportRecord) *string { return &r.Origin }),
	record.StringField("destination", 3, true, func(r *TransportRecord) *string { return &r.Destination }),
	record.StringField("departureTime", 4, false, func(r *TransportRecord) *string { return &r.DepartureTime }),
	record.StringField("arrivalTime", 5, false, func(r *TransportRecord) *string { return &r.ArrivalTime }),
	record.StringField("status", 6, true, func(r *TransportRecord) *string { return &r.Status }),
	record.StringField("area", 7, false, func(r *TransportRecord) *string { return &r.Area }),
)
