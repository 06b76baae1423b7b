package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/flipledger/flipledger/internal/common"
	"github.com/flipledger/flipledger/internal/entity"
)

type saleRequest struct {
	Price    float64 `json:"price"`
	Fees     float64 `json:"fees"`
	Quantity int     `json:"quantity"`
	Platform string  `json:"platform"`
	SoldAt   string  `json:"sold_at"` // YYYY-MM-DD
}

func (s *Server) handleCreateSale(w http.ResponseWriter, r *http.Request) {
	lotID, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	var req saleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, fmt.Errorf("decode body: %w", common.ErrInvalidInput))
		return
	}
	if req.Price < 0 || req.Fees < 0 {
		s.writeError(w, fmt.Errorf("price and fees must be >= 0: %w", common.ErrInvalidInput))
		return
	}

	sale := &entity.Sale{
		LotID:    lotID,
		Price:    req.Price,
		Fees:     req.Fees,
		Quantity: req.Quantity,
		Platform: req.Platform,
	}
	if req.SoldAt != "" {
		t, err := time.ParseInLocation("2006-01-02", req.SoldAt, time.UTC)
		if err != nil {
			s.writeError(w, fmt.Errorf("sold_at invalid (YYYY-MM-DD): %w", common.ErrInvalidInput))
			return
		}
		sale.SoldAt = t
	}

	created, err := s.sales.Create(r.Context(), sale)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListSales(w http.ResponseWriter, r *http.Request) {
	lotID, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	sales, err := s.sales.ListByLot(r.Context(), lotID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if sales == nil {
		sales = []*entity.Sale{}
	}
	s.writeJSON(w, http.StatusOK, sales)
}

func (s *Server) handleDeleteSale(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.sales.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
