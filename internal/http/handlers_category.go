package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"planner/internal/core"
)

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.svc.Categories.List(r.Context(), identity(r).ID)
	if err != nil {
		respondError(w, r, err, "Category")
		return
	}
	if categories == nil {
		categories = []core.Category{}
	}
	respond(w, http.StatusOK, categories, "")
}

func (s *Server) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	c, err := s.svc.Categories.Get(r.Context(), identity(r).ID, chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err, "Category")
		return
	}
	respond(w, http.StatusOK, c, "")
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var in core.CategoryInput
	if !decodeJSON(w, r, &in) {
		return
	}
	c, err := s.svc.Categories.Create(r.Context(), identity(r).ID, in)
	if err != nil {
		respondError(w, r, err, "Category")
		return
	}
	respond(w, http.StatusCreated, c, "Category created")
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	var in core.CategoryInput
	if !decodeJSON(w, r, &in) {
		return
	}
	c, err := s.svc.Categories.Update(r.Context(), identity(r).ID, chi.URLParam(r, "id"), in)
	if err != nil {
		respondError(w, r, err, "Category")
		return
	}
	respond(w, http.StatusOK, c, "Category updated")
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Categories.Delete(r.Context(), identity(r).ID, chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err, "Category")
		return
	}
	respond(w, http.StatusOK, nil, "Category deleted")
}
