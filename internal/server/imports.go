package server

import (
	"fmt"
	"io"
	"net/http"

	"github.com/flipledger/flipledger/internal/common"
	"github.com/flipledger/flipledger/internal/importer"
)

type importResponse struct {
	Imported int      `json:"imported"`
	Warnings []string `json:"warnings,omitempty"`
}

func (s *Server) handleImportCSV(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	defer body.Close()

	lots, warnings, err := s.csv.Read(body)
	if err != nil {
		s.writeError(w, fmt.Errorf("%v: %w", err, common.ErrInvalidInput))
		return
	}

	imported := 0
	for _, lot := range lots {
		if _, err := s.lots.Create(r.Context(), lot); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", lot.Name, err))
			continue
		}
		imported++
	}
	s.writeJSON(w, http.StatusOK, importResponse{Imported: imported, Warnings: warnings})
}

func (s *Server) handleImportJSON(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		s.writeError(w, fmt.Errorf("read body: %w", common.ErrInvalidInput))
		return
	}
	lots, err := importer.ReadJSON(data)
	if err != nil {
		s.writeError(w, fmt.Errorf("%v: %w", err, common.ErrInvalidInput))
		return
	}

	var warnings []string
	imported := 0
	for _, lot := range lots {
		if _, err := s.lots.Create(r.Context(), lot); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", lot.Name, err))
			continue
		}
		imported++
	}
	s.writeJSON(w, http.StatusOK, importResponse{Imported: imported, Warnings: warnings})
}
