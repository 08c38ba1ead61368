package server

import (
	"net/http"
	"strconv"

	"github.com/codalotl/retransdiff/internal/store"
)

func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	var (
		items []store.HistoryItem
		err   error
	)
	if search := r.URL.Query().Get("search"); search != "" {
		items, err = s.store.SearchHistory(r.Context(), search)
	} else {
		items, err = s.store.ListHistory(r.Context())
	}
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleCreateHistory(w http.ResponseWriter, r *http.Request) {
	var req store.NewHistory
	if !s.decode(w, r, &req) {
		return
	}
	item, err := s.store.CreateHistory(r.Context(), req)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteAllHistory(r.Context()); err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "all history deleted"})
}

func (s *Server) handleDeleteHistory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	deleted, err := s.store.DeleteHistory(r.Context(), id)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "history not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "history deleted"})
}
