package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Rakesh-27-git/WellnessSpace/pkg/errors"
	"github.com/Rakesh-27-git/WellnessSpace/pkg/validator"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestWriteSuccess_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccess(rec, http.StatusCreated, map[string]string{"id": "s-1"}, "Session created")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	resp := decode(t, rec)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, resp.Success)
	assert.Equal(t, "Session created", resp.Message)
}

func TestEnvelope_AlwaysCarriesErrorsField(t *testing.T) {
	// The errors field is part of the wire contract even when empty; it
	// must survive marshaling as [], not be dropped or come out null.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/my-sessions/x", nil)
	WriteError(rec, req, apperrors.NotFound("session", "x"), testLogger())
	assert.Contains(t, rec.Body.String(), `"errors":[]`)

	rec = httptest.NewRecorder()
	WriteSuccess(rec, http.StatusOK, nil, "")
	assert.Contains(t, rec.Body.String(), `"errors":[]`)
}

func TestNewResponse_DefaultMessageAndSuccessFlag(t *testing.T) {
	resp := NewResponse(http.StatusOK, nil, "")
	assert.Equal(t, "Success", resp.Message)
	assert.True(t, resp.Success)

	resp = NewResponse(http.StatusBadRequest, nil, "nope")
	assert.False(t, resp.Success)
}

func TestWriteError_AppError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/my-sessions/x", nil)

	WriteError(rec, req, apperrors.NotFound("session", "x"), testLogger())

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decode(t, rec)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.False(t, resp.Success)
	assert.Nil(t, resp.Data)
	assert.NotNil(t, resp.Errors)
	assert.Empty(t, resp.Stack)
}

func TestWriteError_SentinelError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/users/login", nil)

	WriteError(rec, req, apperrors.ErrUnauthorized, testLogger())

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	resp := decode(t, rec)
	assert.Equal(t, "unauthorized", resp.Message)
}

func TestWriteError_InternalHidesDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/sessions", nil)

	WriteError(rec, req, errors.New("pq: connection refused"), testLogger())

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decode(t, rec)
	assert.Equal(t, "an internal error occurred", resp.Message)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestWriteError_DebugStack(t *testing.T) {
	SetDebug(true)
	defer SetDebug(false)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/sessions", nil)

	WriteError(rec, req, errors.New("boom"), testLogger())

	resp := decode(t, rec)
	assert.NotEmpty(t, resp.Stack)
}

func TestWriteValidationError_FieldDetails(t *testing.T) {
	type body struct {
		Email string `validate:"required,email"`
		Title string `validate:"required"`
	}

	err := validator.Validate(body{Email: "not-an-email"})
	require.Error(t, err)

	rec := httptest.NewRecorder()
	WriteValidationError(rec, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode(t, rec)
	assert.Equal(t, "request validation failed", resp.Message)
	assert.Len(t, resp.Errors, 2)
}

func TestParseUUID(t *testing.T) {
	rec := httptest.NewRecorder()
	id, ok := ParseUUID(rec, "6e8bc430-9c3a-11d9-9669-0800200c9a66")
	assert.True(t, ok)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", id.String())

	rec = httptest.NewRecorder()
	_, ok = ParseUUID(rec, "not-a-uuid")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
