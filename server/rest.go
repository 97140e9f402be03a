package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/pixelsocial/pkg/domain"
)

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":   "ok",
		"version":  s.version,
		"time":     time.Now().UTC(),
		"sessions": s.sessions.Len(),
	}
	if s.ticker != nil {
		status["notifications"] = s.ticker.Len()
	}
	renderJSON(w, r, http.StatusOK, status)
}

// feedPreviewHandler returns a raw page of the feed source as JSON
func (s *Server) feedPreviewHandler(w http.ResponseWriter, r *http.Request) {
	if s.preview == nil {
		renderError(w, r, fmt.Errorf("feed source not configured"), http.StatusServiceUnavailable)
		return
	}

	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		v, err := strconv.Atoi(p)
		if err != nil || v < 1 {
			renderError(w, r, fmt.Errorf("invalid page"), http.StatusBadRequest)
			return
		}
		page = v
	}

	fc := s.config.GetFullConfig().Feed
	posts, err := s.preview.FetchPage(r.Context(), page, fc.BatchSize)
	if err != nil {
		lgr.Printf("[WARN] feed preview page %d: %v", page, err)
		renderError(w, r, err, http.StatusBadGateway)
		return
	}

	hasMore := len(posts) == fc.BatchSize && (fc.MaxPages <= 0 || page < fc.MaxPages)
	renderJSON(w, r, http.StatusOK, domain.FeedState{Posts: posts, Page: page + 1, HasMore: hasMore})
}

// renderPage renders a pre-parsed page template
func (s *Server) renderPage(w http.ResponseWriter, templateName string, data interface{}) error {
	tmpl, ok := s.pageTemplates[templateName]
	if !ok {
		return fmt.Errorf("template %s not found", templateName)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return tmpl.ExecuteTemplate(w, templateName, data)
}

// respondWithError logs the error and sends plain text message
func (s *Server) respondWithError(w http.ResponseWriter, code int, message string, err error) {
	lgr.Printf("[ERROR] %s: %v", message, err)
	http.Error(w, message, code)
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
