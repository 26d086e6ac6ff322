package http

import (
	"net/http"

	"planner/internal/core"
	"planner/internal/log"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in core.LoginInput
	if !decodeJSON(w, r, &in) {
		return
	}

	sess, err := s.svc.Auth.Login(r.Context(), in)
	if err != nil {
		respondError(w, r, err, "User")
		return
	}

	s.setSessionCookie(w, sess.Token, sess.ExpiresAt)
	log.FromContext(r.Context()).InfoContext(r.Context(), "User logged in",
		log.FieldUserID, sess.UserID,
		log.FieldOperation, log.OpLogin)
	respond(w, http.StatusOK, core.Identity{ID: sess.UserID, Email: sess.Email}, "Logged in")
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(s.opts.CookieName); err == nil {
		if err := s.svc.Auth.Logout(r.Context(), cookie.Value); err != nil {
			log.LogError(r.Context(), "Failed to delete session", err, log.OpLogout, nil)
			fail(w, http.StatusInternalServerError, "An error occurred while logging out", nil)
			return
		}
	}
	s.clearSessionCookie(w)
	respond(w, http.StatusOK, nil, "Logged out")
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, identity(r), "Authenticated")
}
