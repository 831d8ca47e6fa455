package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"datadict/internal/dictionary"
	"datadict/internal/view"
)

type loadRequest struct {
	Catalog string `json:"catalog"`
	Schema  string `json:"schema"`
}

type openRequest struct {
	Row    int    `json:"row"`
	Column string `json:"column"`
}

type editRequest struct {
	Row         int     `json:"row"`
	Description *string `json:"description"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, struct {
		OK       bool `json:"ok"`
		Sessions int  `json:"sessions"`
	}{OK: true, Sessions: s.registry.Len()})
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, sess.Snapshot())
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	var req loadRequest
	if !decode(w, r, &req) {
		return
	}
	s.dispatch(w, r, view.Load{Catalog: req.Catalog, Schema: req.Schema})
}

func (s *Server) handleOpen(w http.ResponseWriter, r *http.Request) {
	req := openRequest{Column: string(dictionary.FieldOpen)}
	if !decode(w, r, &req) {
		return
	}
	s.dispatch(w, r, view.OpenRow{Row: req.Row, Column: dictionary.Field(req.Column)})
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	var req editRequest
	if !decode(w, r, &req) {
		return
	}
	s.dispatch(w, r, view.Edit{Row: req.Row, Description: req.Description})
}

// handleAction dispatches an action that takes no arguments.
func (s *Server) handleAction(a view.Action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.dispatch(w, r, a)
	}
}

func (s *Server) dispatch(w http.ResponseWriter, r *http.Request, a view.Action) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, sess.Dispatch(r.Context(), a))
}

// session returns the editor session of the requesting browser, issuing a
// new session cookie when there is none.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*view.Session, bool) {
	// A cookie that fails to decode, e.g. after a secret change, yields a
	// fresh session rather than an error.
	cs, _ := s.sessionStore.Get(r, cookieName)
	id, _ := cs.Values[sessionIDKey].(string)
	if id == "" {
		id = uuid.NewString()
		cs.Values[sessionIDKey] = id
	}
	// saving on every request slides the cookie expiry along with the
	// server-side idle timeout
	if err := cs.Save(r, w); err != nil {
		s.logger.Error("failed to save session cookie", "error", err)
		http.Error(w, "session error: "+err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	return s.registry.Get(id), true
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
