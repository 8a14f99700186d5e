package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/ecodrive/internal/domain"
	"github.com/pkordes/ecodrive/internal/handler"
)

// mockDriverServicer is a test double for handler.DriverServicer.
// Set only the method fields your test needs.
type mockDriverServicer struct {
	list    func(ctx context.Context) []domain.Driver
	add     func(ctx context.Context, name string, avgConsumption float64) (domain.Driver, error)
	remove  func(ctx context.Context, id string) error
	replace func(ctx context.Context, drivers []domain.Driver) ([]domain.Driver, error)
}

func (m *mockDriverServicer) List(ctx context.Context) []domain.Driver { return m.list(ctx) }
func (m *mockDriverServicer) Add(ctx context.Context, name string, avg float64) (domain.Driver, error) {
	return m.add(ctx, name, avg)
}
func (m *mockDriverServicer) Remove(ctx context.Context, id string) error { return m.remove(ctx, id) }
func (m *mockDriverServicer) Replace(ctx context.Context, drivers []domain.Driver) ([]domain.Driver, error) {
	return m.replace(ctx, drivers)
}

// compile-time check: mockDriverServicer must satisfy handler.DriverServicer.
var _ handler.DriverServicer = (*mockDriverServicer)(nil)

// ---- helpers ---------------------------------------------------------------

var discard = slog.New(slog.DiscardHandler)

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorDetail {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Error
}

func serveDrivers(svc handler.DriverServicer, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler.NewServer(svc, nil, nil, nil, nil, discard).Routes().ServeHTTP(rec, req)
	return rec
}

// ---- GET /drivers ----------------------------------------------------------

func TestListDrivers_200(t *testing.T) {
	svc := &mockDriverServicer{
		list: func(context.Context) []domain.Driver {
			return []domain.Driver{{ID: "1", Name: "Pai", AvgConsumption: 12}}
		},
	}

	rec := serveDrivers(svc, httptest.NewRequest(http.MethodGet, "/drivers", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":"1","name":"Pai","avgConsumption":12}]`, rec.Body.String())
}

// ---- POST /drivers ---------------------------------------------------------

func TestCreateDriver_201(t *testing.T) {
	svc := &mockDriverServicer{
		add: func(_ context.Context, name string, avg float64) (domain.Driver, error) {
			return domain.Driver{ID: "new", Name: name, AvgConsumption: avg}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/drivers", jsonBody(t, map[string]any{"name": "Filho", "avgConsumption": 14}))
	rec := serveDrivers(svc, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var got domain.Driver
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, domain.Driver{ID: "new", Name: "Filho", AvgConsumption: 14}, got)
}

func TestCreateDriver_422_ValidationError(t *testing.T) {
	svc := &mockDriverServicer{
		add: func(context.Context, string, float64) (domain.Driver, error) {
			return domain.Driver{}, fmt.Errorf("service.DriverService.Add: %w: name is required", domain.ErrValidation)
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/drivers", jsonBody(t, map[string]any{"name": ""}))
	rec := serveDrivers(svc, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	detail := decodeError(t, rec)
	assert.Equal(t, "validation_error", detail.Code)
	assert.Equal(t, "name is required", detail.Message)
}

func TestCreateDriver_422_MalformedBody(t *testing.T) {
	for _, body := range []string{"", "{not json"} {
		req := httptest.NewRequest(http.MethodPost, "/drivers", strings.NewReader(body))
		rec := serveDrivers(&mockDriverServicer{}, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, "body %q", body)
	}
}

func TestCreateDriver_503_StorageWrite(t *testing.T) {
	svc := &mockDriverServicer{
		add: func(context.Context, string, float64) (domain.Driver, error) {
			return domain.Driver{}, fmt.Errorf("service.DriverService.Add: %w: disk full", domain.ErrStorageWrite)
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/drivers", jsonBody(t, map[string]any{"name": "Filho", "avgConsumption": 14}))
	rec := serveDrivers(svc, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "storage_write_failed", decodeError(t, rec).Code)
}

// ---- PUT /drivers ----------------------------------------------------------

func TestReplaceDrivers_200(t *testing.T) {
	var got []domain.Driver
	svc := &mockDriverServicer{
		replace: func(_ context.Context, drivers []domain.Driver) ([]domain.Driver, error) {
			got = drivers
			return drivers, nil
		},
	}

	req := httptest.NewRequest(http.MethodPut, "/drivers", jsonBody(t, []map[string]any{
		{"id": "1", "name": "Pai", "avgConsumption": 11},
		{"name": "Avó", "avgConsumption": 9},
	}))
	rec := serveDrivers(svc, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []domain.Driver{
		{ID: "1", Name: "Pai", AvgConsumption: 11},
		{Name: "Avó", AvgConsumption: 9},
	}, got)
}

func TestReplaceDrivers_422_NotAnArray(t *testing.T) {
	req := httptest.NewRequest(http.MethodPut, "/drivers", strings.NewReader("null"))
	rec := serveDrivers(&mockDriverServicer{}, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

// ---- DELETE /drivers/{id} --------------------------------------------------

func TestDeleteDriver_204(t *testing.T) {
	var gotID string
	svc := &mockDriverServicer{
		remove: func(_ context.Context, id string) error {
			gotID = id
			return nil
		},
	}

	rec := serveDrivers(svc, httptest.NewRequest(http.MethodDelete, "/drivers/abc-123", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "abc-123", gotID)
	assert.Empty(t, rec.Body.String())
}
