package errors

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func handleAndDecode(t *testing.T, err error) (int, map[string]any) {
	t.Helper()
	h := NewErrorHandler(discardLogger(), false)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/test", nil)

	h.HandleError(w, r, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	return w.Code, doc
}

func TestHandleAPIError(t *testing.T) {
	status, doc := handleAndDecode(t, RosterNotFound("data/input.csv"))

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, TypeNotFound, doc["type"])
	assert.Equal(t, "Roster source not found", doc["detail"])
	assert.Equal(t, "/api/test", doc["instance"])

	details, ok := doc["details"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "data/input.csv", details["source"])
}

func TestHandleWrappedAPIError(t *testing.T) {
	wrapped := fmt.Errorf("loading roster: %w", ErrValidationFailed)
	status, doc := handleAndDecode(t, wrapped)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, TypeValidation, doc["type"])
}

func TestHandleUnknownErrorStaysOpaque(t *testing.T) {
	status, doc := handleAndDecode(t, fmt.Errorf("pointer dereference in stats"))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "An unexpected error occurred", doc["detail"],
		"internal detail must not leak to clients")
}

func TestHandleNilErrorWritesNothing(t *testing.T) {
	h := NewErrorHandler(discardLogger(), false)
	w := httptest.NewRecorder()
	h.HandleError(w, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	assert.Empty(t, w.Body.String())
}

func TestProblemDetailsContentType(t *testing.T) {
	h := NewErrorHandler(discardLogger(), false)
	w := httptest.NewRecorder()
	h.HandleError(w, httptest.NewRequest(http.MethodGet, "/", nil), ErrNotFound)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
}

func TestAPIErrorInterface(t *testing.T) {
	err := New(http.StatusBadRequest, "INVALID_REQUEST", "bad input")
	assert.Equal(t, "bad input", err.Error())
}
