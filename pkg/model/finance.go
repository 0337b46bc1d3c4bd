// Package model defines the record kinds served by dataprov and their schemas.
package model

import (
	"github.com/shopspring/decimal"
	"github.com/ssargent/dataprov/pkg/record"
)

// FinancialRecord represents a single financial transaction
type FinancialRecord struct {
	ID              string              `json:"id"`
	TransactionDate string              `json:"transactionDate"`
	Description     string              `json:"description"`
	Amount          decimal.NullDecimal `json:"amount"`
	Currency        string              `json:"currency"`
	Category        string              `json:"category"`
}

const (
	FinanceKind = "finance"

	// FinanceLookupField is the column the finance lookup route filters on
	FinanceLookupField = "category"
)

// FinanceSchema binds FinancialRecord to its six columns. Description is optional.
var FinanceSchema = record.MustSchema(FinanceKind,
	func(r *FinancialRecord) string { return r.ID },
	func(r *FinancialRecord, id string) { r.ID = id },
	record.StringField("id", 0, true, func(r *FinancialRecord) *string { return &r.ID }),
	record.StringField("transactionDate", 1, true, func(r *FinancialRecord) *string { return &r.TransactionDate }),
	record.StringField("description", 2, false, func(r *FinancialRecord) *string { return &r.Description }),
	record.DecimalField("amount", 3, true, func(r *FinancialRecord) *decimal.NullDecimal { return &r.Amount }),
	record.StringField("currency", 4, true, func(r *FinancialRecord) *string { return &r.Currency }),
	record.StringField("category", 5, true, func(r *FinancialRecord) *string { return &r.Category }),
)
