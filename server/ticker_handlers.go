package server

import (
	"net/http"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/pixelsocial/pkg/session"
)

// tickerHandler renders viewer's ticker entries newest first with the counter swapped out-of-band
func (s *Server) tickerHandler(w http.ResponseWriter, r *http.Request) {
	s.renderTicker(w, s.session(r))
}

// tickerRemoveHandler dismisses a ticker entry for the viewer, the entry's element is swapped with nothing
func (s *Server) tickerRemoveHandler(w http.ResponseWriter, r *http.Request) {
	sess := s.session(r)
	id := r.PathValue("id")
	if err := sess.Ticker().Remove(id); err != nil {
		lgr.Printf("[DEBUG] ticker entry %s for %s: %v", id, sess.ID(), err) // already dismissed or evicted
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "ticker-count", tickerData{Count: sess.Ticker().Len(), OOB: true}); err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to render ticker", err)
	}
}

func (s *Server) renderTicker(w http.ResponseWriter, sess *session.Session) {
	data := tickerData{Items: sess.Ticker().Newest(), Count: sess.Ticker().Len(), OOB: true}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "ticker-items", data); err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to render ticker", err)
		return
	}
	if err := s.templates.ExecuteTemplate(w, "ticker-count", data); err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to render ticker", err)
	}
}
