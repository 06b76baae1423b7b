// Package server is the JSON API edge: thin handlers over the repositories
// and services, no business logic of its own.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/flipledger/flipledger/internal/analytics"
	"github.com/flipledger/flipledger/internal/common"
	"github.com/flipledger/flipledger/internal/export"
	"github.com/flipledger/flipledger/internal/extract"
	"github.com/flipledger/flipledger/internal/importer"
	"github.com/flipledger/flipledger/internal/repository"
)

type Server struct {
	lots      repository.LotRepository
	sales     repository.SaleRepository
	analytics *analytics.Service
	export    *export.Service
	extract   *extract.Service
	csv       *importer.CSVImporter
	logger    *slog.Logger

	maxUploadBytes int64
}

func New(
	lots repository.LotRepository,
	sales repository.SaleRepository,
	an *analytics.Service,
	ex *export.Service,
	scanner *extract.Service,
	csv *importer.CSVImporter,
	maxUploadBytes int64,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if maxUploadBytes <= 0 {
		maxUploadBytes = 16 << 20
	}
	return &Server{
		lots:           lots,
		sales:          sales,
		analytics:      an,
		export:         ex,
		extract:        scanner,
		csv:            csv,
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/lots", func(r chi.Router) {
			r.Get("/", s.handleListLots)
			r.Post("/", s.handleCreateLot)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetLot)
				r.Put("/", s.handleUpdateLot)
				r.Delete("/", s.handleDeleteLot)
				r.Get("/sales", s.handleListSales)
				r.Post("/sales", s.handleCreateSale)
			})
		})
		r.Delete("/sales/{id}", s.handleDeleteSale)

		r.Get("/reports/profit", s.handleProfitReport)
		r.Get("/export/xlsx", s.handleExportXLSX)

		r.Post("/import/csv", s.handleImportCSV)
		r.Post("/import/json", s.handleImportJSON)

		r.Post("/extract", s.handleExtract)
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("write response failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := common.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
