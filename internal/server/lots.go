package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/flipledger/flipledger/internal/common"
	"github.com/flipledger/flipledger/internal/entity"
)

type lotRequest struct {
	Name        string  `json:"name"`
	Cost        float64 `json:"cost"`
	Quantity    int     `json:"quantity"`
	Platform    string  `json:"platform"`
	Category    string  `json:"category"`
	PurchasedAt string  `json:"purchased_at"` // YYYY-MM-DD
	Notes       string  `json:"notes"`
}

func (req *lotRequest) toEntity() (*entity.Lot, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("name is required: %w", common.ErrInvalidInput)
	}
	if req.Cost < 0 {
		return nil, fmt.Errorf("cost must be >= 0: %w", common.ErrInvalidInput)
	}
	lot := &entity.Lot{
		Name:     strings.TrimSpace(req.Name),
		Cost:     req.Cost,
		Quantity: req.Quantity,
		Platform: req.Platform,
		Category: req.Category,
		Notes:    req.Notes,
	}
	if lot.Quantity < 1 {
		lot.Quantity = 1
	}
	if req.PurchasedAt != "" {
		t, err := time.ParseInLocation("2006-01-02", req.PurchasedAt, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("purchased_at invalid (YYYY-MM-DD): %w", common.ErrInvalidInput)
		}
		lot.PurchasedAt = t
	}
	return lot, nil
}

func (s *Server) handleCreateLot(w http.ResponseWriter, r *http.Request) {
	var req lotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, fmt.Errorf("decode body: %w", common.ErrInvalidInput))
		return
	}
	lot, err := req.toEntity()
	if err != nil {
		s.writeError(w, err)
		return
	}
	created, err := s.lots.Create(r.Context(), lot)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListLots(w http.ResponseWriter, r *http.Request) {
	lots, err := s.lots.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if lots == nil {
		lots = []*entity.Lot{}
	}
	s.writeJSON(w, http.StatusOK, lots)
}

func (s *Server) handleGetLot(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	lot, err := s.lots.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, lot)
}

func (s *Server) handleUpdateLot(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	var req lotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, fmt.Errorf("decode body: %w", common.ErrInvalidInput))
		return
	}
	lot, err := req.toEntity()
	if err != nil {
		s.writeError(w, err)
		return
	}
	lot.ID = id
	existing, err := s.lots.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if lot.PurchasedAt.IsZero() {
		lot.PurchasedAt = existing.PurchasedAt
	}
	lot.CreatedAt = existing.CreatedAt
	updated, err := s.lots.Update(r.Context(), lot)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteLot(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.lots.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("id must be a UUID: %w", common.ErrInvalidInput)
	}
	return id, nil
}
