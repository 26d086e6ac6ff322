package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"planner/internal/core"
)

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.svc.Accounts.List(r.Context(), identity(r).ID)
	if err != nil {
		respondError(w, r, err, "Bank account")
		return
	}
	if accounts == nil {
		accounts = []core.BankAccount{}
	}
	respond(w, http.StatusOK, accounts, "")
}

func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	a, err := s.svc.Accounts.Get(r.Context(), identity(r).ID, chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err, "Bank account")
		return
	}
	respond(w, http.StatusOK, a, "")
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var in core.AccountInput
	if !decodeJSON(w, r, &in) {
		return
	}
	a, err := s.svc.Accounts.Create(r.Context(), identity(r).ID, in)
	if err != nil {
		respondError(w, r, err, "Bank account")
		return
	}
	respond(w, http.StatusCreated, a, "Bank account created")
}

func (s *Server) handleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	var in core.AccountInput
	if !decodeJSON(w, r, &in) {
		return
	}
	a, err := s.svc.Accounts.Update(r.Context(), identity(r).ID, chi.URLParam(r, "id"), in)
	if err != nil {
		respondError(w, r, err, "Bank account")
		return
	}
	respond(w, http.StatusOK, a, "Bank account updated")
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Accounts.Delete(r.Context(), identity(r).ID, chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err, "Bank account")
		return
	}
	respond(w, http.StatusOK, nil, "Bank account deleted")
}
