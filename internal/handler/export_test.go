package handler_test

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/ecodrive/internal/domain"
	"github.com/pkordes/ecodrive/internal/handler"
)

// ---- mock ExportServicer ---------------------------------------------------

type mockExportServicer struct {
	export func(ctx context.Context) []domain.ExportRow
}

func (m *mockExportServicer) Export(ctx context.Context) []domain.ExportRow {
	return m.export(ctx)
}

// compile-time check: mockExportServicer must satisfy handler.ExportServicer.
var _ handler.ExportServicer = (*mockExportServicer)(nil)

// ---- helpers ---------------------------------------------------------------

func serveExport(rows []domain.ExportRow, target string) *httptest.ResponseRecorder {
	svc := &mockExportServicer{export: func(context.Context) []domain.ExportRow { return rows }}
	rec := httptest.NewRecorder()
	handler.NewServer(nil, nil, nil, nil, svc, discard).Routes().
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func exportRowFixture() domain.ExportRow {
	return domain.ExportRow{
		TripID:        "t1",
		Date:          "2025-06-01",
		DriverID:      "1",
		DriverName:    "Pai",
		Origin:        "Casa",
		Destination:   "Rua A, 10, Centro",
		Category:      domain.CategoryWork,
		IsRoundTrip:   true,
		Distance:      12.5,
		TotalDistance: 25,
		Cost:          12.2708333,
	}
}

// ---- GET /export -----------------------------------------------------------

func TestGetExport_JSON(t *testing.T) {
	rec := serveExport([]domain.ExportRow{exportRowFixture()}, "/export")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var rows []domain.ExportRow
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&rows))
	require.Len(t, rows, 1)
	assert.Equal(t, exportRowFixture(), rows[0])
}

func TestGetExport_JSON_Empty(t *testing.T) {
	rec := serveExport([]domain.ExportRow{}, "/export?format=json")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGetExport_CSV(t *testing.T) {
	rec := serveExport([]domain.ExportRow{exportRowFixture()}, "/export?format=csv")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/csv"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")

	records, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "trip_id", records[0][0])
	assert.Equal(t, []string{
		"t1", "2025-06-01", "1", "Pai", "Casa", "Rua A, 10, Centro",
		"Trabalho", "true", "12.5", "25", "12.27",
	}, records[1])
}

func TestGetExport_CSV_HeaderOnlyWhenEmpty(t *testing.T) {
	rec := serveExport(nil, "/export?format=csv")

	require.Equal(t, http.StatusOK, rec.Code)
	records, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestGetExport_422_UnknownFormat(t *testing.T) {
	rec := serveExport(nil, "/export?format=xml")

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
