// Package codec converts records to and from delimited tabular text.
//
// # Format
//
// Encoded text is comma-separated with one header row naming the columns of
// the record kind, followed by one row per record:
//
//	id,transactionDate,description,amount,currency,category
//	1,2024-01-01,,12.5,USD,food
//
// Columns appear in the fixed order given by the kind's record.Schema. Cells
// that contain a comma, a double quote, a line break or leading whitespace
// are quoted and embedded quotes are doubled (RFC 4180). Decimal cells are
// written in their shortest form, so 12.50 encodes as 12.5.
//
// # Decoding
//
// The first row is always treated as a header and discarded, whatever it
// contains, so callers must always send one. Leading whitespace in a cell is
// trimmed. Blank input decodes to an empty slice. A row with the wrong number
// of columns or a numeric cell that does not parse fails the whole decode with
// record.ErrMalformedInput.
//
// DecodeLenient is used for bundled datasets: malformed rows are skipped and
// counted instead of failing the load.
//
// # Empty input
//
// Encoding an empty slice yields the empty string, not a lone header. Decode
// accepts both forms and returns no records for either.
//
// # Thread Safety
//
// Tabular holds only its schema and is safe for concurrent use.
package codec
