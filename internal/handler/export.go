package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/pkordes/ecodrive/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "date", "driver_id", "driver_name", "origin", "destination",
	"category", "round_trip", "distance_km", "total_distance_km", "cost",
}

// GetExport handles GET /export.
// It returns every trip as a flat table, newest first.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	rows := s.export.Export(r.Context())

	switch r.URL.Query().Get("format") {
	case "", "json":
		writeJSON(w, http.StatusOK, rows)
	case "csv":
		writeCSV(w, rows)
	default:
		requestError(w, "format must be json or csv")
	}
}

// writeCSV encodes rows as CSV with a header line.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		cw.Write(rowToCSVRecord(r))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="ecodrive-trips.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// rowToCSVRecord encodes a domain.ExportRow as a flat string slice.
// Money is written with two decimals, distances unrounded.
func rowToCSVRecord(r domain.ExportRow) []string {
	return []string{
		r.TripID,
		r.Date,
		r.DriverID,
		r.DriverName,
		r.Origin,
		r.Destination,
		string(r.Category),
		strconv.FormatBool(r.IsRoundTrip),
		strconv.FormatFloat(r.Distance, 'f', -1, 64),
		strconv.FormatFloat(r.TotalDistance, 'f', -1, 64),
		strconv.FormatFloat(r.Cost, 'f', 2, 64),
	}
}
