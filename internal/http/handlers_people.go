package http

import (
	"net/http"

	"tally/internal/core"
)

func (s *Server) handleListPeople(w http.ResponseWriter, r *http.Request) {
	people, err := s.svc.ListPeople(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	views := make([]personView, 0, len(people))
	for _, p := range people {
		views = append(views, toPersonView(p))
	}
	s.respondJSON(w, http.StatusOK, views)
}

func (s *Server) handleCreatePerson(w http.ResponseWriter, r *http.Request) {
	var req personRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	party, err := core.ParseParty(req.Party)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	created, err := s.svc.CreatePerson(r.Context(), core.Person{Name: req.Name, Party: party})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, toPersonView(created))
}
