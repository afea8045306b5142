package http

import (
	"net/http"

	"tally/internal/core"
	"tally/internal/services"
)

func (s *Server) handleCreateSettlement(w http.ResponseWriter, r *http.Request) {
	var req settlementRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	date, err := core.ParseDate(req.Date)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	created, err := s.svc.CreateSettlement(r.Context(), services.SettlementInput{
		Date:      date,
		FromID:    req.FromID,
		ToID:      req.ToID,
		AmountCAD: req.AmountCAD,
		Notes:     req.Notes,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, toSettlementView(created))
}

func (s *Server) handleListSettlements(w http.ResponseWriter, r *http.Request) {
	settlements, err := s.svc.ListSettlements(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	views := make([]settlementView, 0, len(settlements))
	for _, st := range settlements {
		views = append(views, toSettlementView(st))
	}
	s.respondJSON(w, http.StatusOK, views)
}

func (s *Server) handleDeleteSettlement(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteSettlement(r.Context(), r.PathValue("id")); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusNoContent, nil)
}
