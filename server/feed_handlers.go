package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/pixelsocial/pkg/domain"
	"github.com/umputun/pixelsocial/pkg/feed"
	"github.com/umputun/pixelsocial/pkg/session"
)

// feedPageHandler renders the feed shell, every render starts a new mount
func (s *Server) feedPageHandler(w http.ResponseWriter, r *http.Request) {
	sess := s.session(r)
	m := sess.Mount()
	data := feedPage{layout: s.layout(r, sess, "Feed", "feed"), MountID: m.ID()}
	if err := s.renderPage(w, "feed.html", data); err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to render feed", err)
	}
}

// feedInitHandler performs the initial load of the mount and renders loaded posts
func (s *Server) feedInitHandler(w http.ResponseWriter, r *http.Request) {
	m, ok := s.mount(w, r)
	if !ok {
		return
	}

	err := m.Init(r.Context())
	if errors.Is(err, feed.ErrClosed) {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	data := batchData{MountID: m.ID(), Cards: s.cards(m, m.Feed().Posts())}
	s.fillTail(&data, m, err)
	s.renderBatch(w, data)
}

// feedMoreHandler handles a sentinel visibility report and renders the next batch
func (s *Server) feedMoreHandler(w http.ResponseWriter, r *http.Request) {
	m, ok := s.mount(w, r)
	if !ok {
		return
	}

	ratio, err := strconv.ParseFloat(r.URL.Query().Get("ratio"), 64)
	if err != nil {
		ratio = m.Trigger().Threshold() // htmx intersect fires once the threshold is reached
	}

	sentinel := r.URL.Query().Get("sentinel")
	res, err := m.More(r.Context(), sentinel, ratio)
	if errors.Is(err, feed.ErrClosed) {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	data := batchData{MountID: m.ID()}
	if err == nil && res.Skipped {
		// the reporting sentinel fired once and is gone after the swap, put back the live tail
		ctrl := m.Feed()
		if sentinel != feed.SentinelID(ctrl.Page()) {
			w.WriteHeader(http.StatusOK) // stale sentinel, swapped with nothing
			return
		}
		data.Wait = ctrl.Loading()
		s.fillTail(&data, m, nil)
		s.renderBatch(w, data)
		return
	}

	data.Cards = s.cards(m, res.Posts)
	s.fillTail(&data, m, err)
	s.renderBatch(w, data)
}

// fillTail sets what follows the cards: retry button on error, next sentinel or the end marker
func (s *Server) fillTail(data *batchData, m *session.Mount, err error) {
	ctrl := m.Feed()
	data.Threshold = m.Trigger().Threshold()
	switch {
	case err != nil:
		lgr.Printf("[WARN] feed load failed for mount %s: %v", m.ID(), err)
		data.Retry, data.Error = true, "Failed to load posts"
		data.Sentinel = feed.SentinelID(ctrl.Page())
	case ctrl.HasMore():
		data.Sentinel = feed.SentinelID(ctrl.Page())
	default:
		data.End = true
	}
}

func (s *Server) renderBatch(w http.ResponseWriter, data batchData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "feed-batch", data); err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to render posts", err)
	}
}

// likeHandler toggles like of a post and renders the updated card
func (s *Server) likeHandler(w http.ResponseWriter, r *http.Request) {
	m, ok := s.mount(w, r)
	if !ok {
		return
	}
	view, err := m.ToggleLike(r.PathValue("id"))
	s.renderCard(w, m, view, err)
}

// reactHandler selects a reaction, "none" clears it
func (s *Server) reactHandler(w http.ResponseWriter, r *http.Request) {
	m, ok := s.mount(w, r)
	if !ok {
		return
	}

	reaction := domain.ReactionNone
	if name := r.PathValue("reaction"); name != "none" {
		if reaction, ok = domain.ParseReaction(name); !ok {
			http.Error(w, "Unknown reaction", http.StatusBadRequest)
			return
		}
	}
	view, err := m.React(r.PathValue("id"), reaction)
	s.renderCard(w, m, view, err)
}

// postExpandHandler opens the expanded view of a post with its comments
func (s *Server) postExpandHandler(w http.ResponseWriter, r *http.Request) {
	m, ok := s.mount(w, r)
	if !ok {
		return
	}
	view, err := m.SetExpanded(r.PathValue("id"), true)
	if err != nil {
		s.postError(w, err)
		return
	}

	data := modalData{Card: postCard{PostView: view, MountID: m.ID()}, Comments: s.content.Comments(view.Post)}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "post-modal", data); err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to render post", err)
	}
}

// postCollapseHandler closes the expanded view, the modal is swapped with nothing
func (s *Server) postCollapseHandler(w http.ResponseWriter, r *http.Request) {
	m, ok := s.mount(w, r)
	if !ok {
		return
	}
	if _, err := m.SetExpanded(r.PathValue("id"), false); err != nil {
		s.postError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) renderCard(w http.ResponseWriter, m *session.Mount, view feed.PostView, err error) {
	if err != nil {
		s.postError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "post-card", postCard{PostView: view, MountID: m.ID()}); err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to render post", err)
	}
}

func (s *Server) postError(w http.ResponseWriter, err error) {
	if errors.Is(err, session.ErrPostNotFound) {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}
	s.respondWithError(w, http.StatusInternalServerError, "Failed to update post", err)
}

// mount finds the mount a fragment was rendered for, fragments of a replaced mount get 410
func (s *Server) mount(w http.ResponseWriter, r *http.Request) (*session.Mount, bool) {
	id := r.FormValue("mount")
	m := s.session(r).MountByID(id)
	if m == nil || id == "" {
		lgr.Printf("[DEBUG] stale mount %q", id)
		http.Error(w, "Feed was reloaded", http.StatusGone)
		return nil, false
	}
	return m, true
}

func (s *Server) cards(m *session.Mount, posts []domain.Post) []postCard {
	views := m.Views(posts)
	res := make([]postCard, len(views))
	for i, v := range views {
		res[i] = postCard{PostView: v, MountID: m.ID()}
	}
	return res
}
