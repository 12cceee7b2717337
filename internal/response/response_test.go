package response

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/c5551051011/insidelab-frontend/internal/services"
)

func newTestBuilder() *Builder {
	return NewBuilder(DefaultConfig(), zap.NewNop())
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestWriteSuccess(t *testing.T) {
	b := newTestBuilder()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/labs", nil)

	b.WriteSuccess(rec, req, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	resp := decodeBody(t, rec)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
	assert.Equal(t, "v1", resp.Version)
	assert.NotZero(t, resp.Timestamp)
}

func TestWriteCreated(t *testing.T) {
	b := newTestBuilder()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/universities", nil)

	b.WriteCreated(rec, req, map[string]string{"id": "1"})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, decodeBody(t, rec).Success)
}

func TestWriteErrorUsesServiceStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{"not found", services.NewNotFoundError("Lab not found."), http.StatusNotFound, "NOT_FOUND"},
		{"unauthorized", services.NewUnauthorizedError("Log in first."), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"conflict", services.NewConflictError("Already reviewed.", "ALREADY_REVIEWED"), http.StatusConflict, "CONFLICT"},
		{"network", services.NewNetworkError("Backend unreachable.", nil), http.StatusServiceUnavailable, "NETWORK_ERROR"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBuilder()
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/labs", nil)

			b.WriteError(rec, req, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			resp := decodeBody(t, rec)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantType, resp.Error.Type)
		})
	}
}

func TestWriteErrorMasksInternalMessages(t *testing.T) {
	b := newTestBuilder()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/labs", nil)

	b.WriteError(rec, req, errors.New("pq: connection refused"))

	resp := decodeBody(t, rec)
	require.NotNil(t, resp.Error)
	assert.NotContains(t, resp.Error.Message, "pq:")
	assert.Equal(t, "An unexpected error occurred. Please try again.", resp.Error.Message)
}

func TestWriteErrorUnmaskedInDev(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaskInternalErrors = false
	b := NewBuilder(cfg, zap.NewNop())
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/labs", nil)

	b.WriteError(rec, req, errors.New("boom"))
	assert.Equal(t, "boom", decodeBody(t, rec).Error.Message)
}

func TestWriteValidationErrorSortsFields(t *testing.T) {
	b := newTestBuilder()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/reviews", nil)

	b.WriteValidationError(rec, req, "Please fix the highlighted fields.", map[string]string{
		"reviewText": "Too short.",
		"lab":        "Lab selection is required",
		"position":   "Position is required",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeBody(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Type)
	require.Len(t, resp.Error.Fields, 3)
	assert.Equal(t, "lab", resp.Error.Fields[0].Field)
	assert.Equal(t, "position", resp.Error.Fields[1].Field)
	assert.Equal(t, "reviewText", resp.Error.Fields[2].Field)
}

func TestWriteErrorCarriesServiceFields(t *testing.T) {
	b := newTestBuilder()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/register", nil)

	b.WriteError(rec, req, services.NewValidationError("Please fix the highlighted fields.",
		map[string]string{"email": "already taken"}))

	resp := decodeBody(t, rec)
	require.NotNil(t, resp.Error)
	require.Len(t, resp.Error.Fields, 1)
	assert.Equal(t, "email", resp.Error.Fields[0].Field)
	assert.Equal(t, "already taken", resp.Error.Fields[0].Message)
}

func TestWritePaginated(t *testing.T) {
	b := newTestBuilder()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/search", nil)

	b.WritePaginated(rec, req, []string{"a", "b"}, 2, 20, 45, true, true)

	resp := decodeBody(t, rec)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	require.NotNil(t, resp.Meta.Pagination)
	assert.Equal(t, 2, resp.Meta.Pagination.Page)
	assert.Equal(t, 20, resp.Meta.Pagination.PageSize)
	assert.Equal(t, 45, resp.Meta.Pagination.Total)
	assert.True(t, resp.Meta.Pagination.HasMore)
	assert.True(t, resp.Meta.Degraded)
}

func TestBuilderConfigToggles(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IncludeTimestamp = false
	cfg.IncludeRequestID = false
	b := NewBuilder(cfg, zap.NewNop())

	resp := b.Success(context.Background(), nil)
	assert.Zero(t, resp.Timestamp)
	assert.Empty(t, resp.RequestID)
}

func TestStatusCodeOf(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusCodeOf(services.NewNotFoundError("x")))
	assert.Equal(t, http.StatusInternalServerError, StatusCodeOf(errors.New("x")))
}
