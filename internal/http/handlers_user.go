package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"planner/internal/core"
	"planner/internal/log"
)

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var in core.RegisterInput
	if !decodeJSON(w, r, &in) {
		return
	}

	u, err := s.svc.Users.Register(r.Context(), in)
	if err != nil {
		respondError(w, r, err, "User")
		return
	}

	if in.LoginAfterCreate {
		sess, err := s.svc.Auth.StartSession(r.Context(), u.Identity())
		if err != nil {
			// The account exists; the client can still log in explicitly.
			log.LogError(r.Context(), "Failed to start session after registration", err, log.OpLogin,
				log.NewFields().WithUser(u.ID))
		} else {
			s.setSessionCookie(w, sess.Token, sess.ExpiresAt)
		}
	}

	respond(w, http.StatusCreated, u, "User created")
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.svc.Users.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err, "User")
		return
	}
	respond(w, http.StatusOK, u, "")
}

// handleDeleteUser removes the caller and everything it owns, then ends its
// sessions. Logout failures are only logged.
func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	caller := identity(r)
	id := chi.URLParam(r, "id")

	if err := s.svc.Users.Delete(r.Context(), caller, id); err != nil {
		respondError(w, r, err, "User")
		return
	}

	if _, err := s.svc.Auth.LogoutUser(r.Context(), id); err != nil {
		log.LogError(r.Context(), "Failed to end sessions of deleted user", err, log.OpLogout,
			log.NewFields().WithUser(id))
	}
	s.clearSessionCookie(w)
	respond(w, http.StatusOK, nil, "User deleted")
}
