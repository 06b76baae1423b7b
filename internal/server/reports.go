package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/flipledger/flipledger/internal/analytics"
	"github.com/flipledger/flipledger/internal/common"
)

// dateRange reads from/to query params, defaulting to the last 12 months.
func dateRange(r *http.Request) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from := now.AddDate(-1, 0, 0)
	to := now

	parse := func(s string) (time.Time, error) {
		t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q (YYYY-MM-DD): %w", s, common.ErrInvalidInput)
		}
		return t, nil
	}

	var err error
	if s := r.URL.Query().Get("from"); s != "" {
		if from, err = parse(s); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if s := r.URL.Query().Get("to"); s != "" {
		if to, err = parse(s); err != nil {
			return time.Time{}, time.Time{}, err
		}
		// inclusive end of day
		to = to.Add(24*time.Hour - time.Nanosecond)
	}
	return from, to, nil
}

func (s *Server) handleProfitReport(w http.ResponseWriter, r *http.Request) {
	from, to, err := dateRange(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	window := analytics.Window(r.URL.Query().Get("window"))
	report, err := s.analytics.ProfitReport(r.Context(), from, to, window)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	from, to, err := dateRange(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	data, err := s.export.ExportXLSX(r.Context(), from, to)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="flipledger-export.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
