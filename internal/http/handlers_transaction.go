package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"planner/internal/core"
)

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseMonthQuery(r, s.now())
	if err != nil {
		respondError(w, r, err, "Transaction")
		return
	}

	var typ core.TransactionType
	if v := strings.TrimSpace(r.URL.Query().Get("type")); v != "" {
		typ = core.TransactionType(strings.ToUpper(v))
		if !typ.Valid() {
			respondError(w, r, core.NewValidationError("type", "must be one of: EXPENSE, INCOME"), "Transaction")
			return
		}
	}

	txs, err := s.svc.Ledger.List(r.Context(), identity(r).ID, year, month, typ)
	if err != nil {
		respondError(w, r, err, "Transaction")
		return
	}
	if txs == nil {
		txs = []core.Transaction{}
	}
	respond(w, http.StatusOK, txs, "")
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseMonthQuery(r, s.now())
	if err != nil {
		respondError(w, r, err, "Summary")
		return
	}
	summary, err := s.svc.Summary.MonthSummary(r.Context(), identity(r).ID, year, month)
	if err != nil {
		respondError(w, r, err, "Summary")
		return
	}
	respond(w, http.StatusOK, summary, "")
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	t, err := s.svc.Ledger.Get(r.Context(), identity(r).ID, chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err, "Transaction")
		return
	}
	respond(w, http.StatusOK, t, "")
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var in core.TransactionInput
	if !decodeJSON(w, r, &in) {
		return
	}
	t, err := s.svc.Ledger.Create(r.Context(), identity(r).ID, in)
	if err != nil {
		respondError(w, r, err, "Transaction")
		return
	}
	respond(w, http.StatusCreated, t, "Transaction created")
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var in core.TransactionInput
	if !decodeJSON(w, r, &in) {
		return
	}
	t, err := s.svc.Ledger.Update(r.Context(), identity(r).ID, chi.URLParam(r, "id"), in)
	if err != nil {
		respondError(w, r, err, "Transaction")
		return
	}
	respond(w, http.StatusOK, t, "Transaction updated")
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Ledger.Delete(r.Context(), identity(r).ID, chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err, "Transaction")
		return
	}
	respond(w, http.StatusOK, nil, "Transaction deleted")
}
