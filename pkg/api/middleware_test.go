package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ssargent/dataprov/pkg/record"
	"github.com/stretchr/testify/assert"
)

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "not found", err: fmt.Errorf("%w: x", record.ErrNotFound), expected: http.StatusNotFound},
		{name: "malformed", err: fmt.Errorf("%w: line 2", record.ErrMalformedInput), expected: http.StatusBadRequest},
		{name: "invalid", err: record.ErrInvalidInput, expected: http.StatusBadRequest},
		{name: "validation", err: record.ErrValidationFailed, expected: http.StatusBadRequest},
		{name: "body too large", err: fmt.Errorf("read: %w", &http.MaxBytesError{Limit: 10}), expected: http.StatusRequestEntityTooLarge},
		{name: "unknown", err: errors.New("boom"), expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, errorStatus(tt.err))
		})
	}
}

func TestSendError(t *testing.T) {
	w := httptest.NewRecorder()
	sendError(w, "nope", http.StatusTeapot)

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":false,"error":"nope"}`, w.Body.String())
}
