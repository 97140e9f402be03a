package server

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/samber/lo"

	"github.com/umputun/pixelsocial/pkg/domain"
	"github.com/umputun/pixelsocial/pkg/forms"
	"github.com/umputun/pixelsocial/pkg/notify"
	"github.com/umputun/pixelsocial/pkg/session"
)

var profileTabs = []string{"posts", "saved", "tagged"}

// layout collects data shared by all pages
func (s *Server) layout(r *http.Request, sess *session.Session, title, active string) layout {
	res := layout{
		Title:   title,
		Active:  active,
		Theme:   sess.Theme(),
		Version: s.version,
		Unread:  sess.Activity().Unread(),
		Ticker:  tickerData{Items: sess.Ticker().Newest(), Count: sess.Ticker().Len()},
	}
	return res
}

// exploreHandler renders explore page, htmx requests get only the grid for search-as-you-type
func (s *Server) exploreHandler(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	view := r.URL.Query().Get("view")
	if view != "zine" {
		view = "grid"
	}

	sess := s.session(r)
	data := explorePage{
		layout: s.layout(r, sess, "Explore", "explore"),
		Query:  q,
		View:   view,
		Tags:   s.content.TrendingTags(),
		Tiles:  s.content.Explore(q),
	}

	if isHTMX(r) && r.Header.Get("HX-Target") == "explore-grid" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := s.templates.ExecuteTemplate(w, "tile-grid", data); err != nil {
			s.respondWithError(w, http.StatusInternalServerError, "Failed to render explore", err)
		}
		return
	}
	if err := s.renderPage(w, "explore.html", data); err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to render explore", err)
	}
}

// profileHandler renders own profile or the profile of a handle
func (s *Server) profileHandler(w http.ResponseWriter, r *http.Request) {
	handle := strings.TrimPrefix(r.PathValue("handle"), "@")
	tab := r.URL.Query().Get("tab")
	if !lo.Contains(profileTabs, tab) {
		tab = "posts"
	}

	sess := s.session(r)
	profile := s.content.Profile(handle)
	self := handle == "" || handle == s.config.GetFullConfig().Auth.Handle
	data := profilePage{
		layout:    s.layout(r, sess, "@"+profile.Handle, "profile"),
		Handle:    profile.Handle,
		Profile:   profile,
		Self:      self,
		Following: sess.Following(profile.Handle),
		Tab:       tab,
		Tabs:      profileTabs,
		Tiles:     s.content.ProfileTiles(profile.Handle, tab),
	}
	if data.Following {
		data.Profile.Followers++
	}
	if err := s.renderPage(w, "profile.html", data); err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to render profile", err)
	}
}

// followHandler toggles follow and renders the button
func (s *Server) followHandler(w http.ResponseWriter, r *http.Request) {
	handle := strings.TrimPrefix(r.PathValue("handle"), "@")
	following := s.session(r).ToggleFollow(handle)
	lgr.Printf("[DEBUG] follow %s: %v", handle, following)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct {
		Handle    string
		Following bool
	}{Handle: handle, Following: following}
	if err := s.templates.ExecuteTemplate(w, "follow-button", data); err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to render follow button", err)
	}
}

// notificationsHandler renders activity page, htmx tab switches get only the list
func (s *Server) notificationsHandler(w http.ResponseWriter, r *http.Request) {
	sess := s.session(r)
	tab := notify.ParseTab(r.URL.Query().Get("tab"))
	data := notificationsPage{
		layout:     s.layout(r, sess, "Notifications", "notifications"),
		Tab:        tab,
		Tabs:       notify.Tabs,
		Activities: sess.Activity().List(tab),
	}
	if isHTMX(r) && r.Header.Get("HX-Target") == "activity-list" {
		s.renderActivities(w, data)
		return
	}
	if err := s.renderPage(w, "notifications.html", data); err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to render notifications", err)
	}
}

// markReadHandler marks one activity read and renders it with the updated unread counter
func (s *Server) markReadHandler(w http.ResponseWriter, r *http.Request) {
	sess := s.session(r)
	a, err := sess.Activity().MarkRead(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, notify.ErrNotFound) {
			http.Error(w, "Notification not found", http.StatusNotFound)
			return
		}
		s.respondWithError(w, http.StatusInternalServerError, "Failed to mark notification", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "activity-item", a); err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to render notification", err)
		return
	}
	s.writeUnreadBadge(w, sess.Activity().Unread())
}

// markAllReadHandler marks everything read and renders the list of the current tab
func (s *Server) markAllReadHandler(w http.ResponseWriter, r *http.Request) {
	sess := s.session(r)
	sess.Activity().MarkAllRead()
	tab := notify.ParseTab(r.FormValue("tab"))
	s.renderActivities(w, notificationsPage{
		layout:     layout{Unread: 0},
		Tab:        tab,
		Tabs:       notify.Tabs,
		Activities: sess.Activity().List(tab),
	})
	s.writeUnreadBadge(w, 0)
}

func (s *Server) renderActivities(w http.ResponseWriter, data notificationsPage) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "activity-list", data); err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to render notifications", err)
	}
}

// writeUnreadBadge writes out-of-band update of the nav unread counter
func (s *Server) writeUnreadBadge(w io.Writer, unread int) {
	if err := s.templates.ExecuteTemplate(w, "unread-badge", badgeData{Unread: unread, OOB: true}); err != nil {
		lgr.Printf("[WARN] failed to render unread badge: %v", err)
	}
}

// themeHandler toggles or sets the theme and swaps the stylesheet out-of-band
func (s *Server) themeHandler(w http.ResponseWriter, r *http.Request) {
	sess := s.session(r)

	var err error
	if name := r.FormValue("theme"); name != "" {
		err = sess.SetTheme(r.Context(), domain.Theme(name))
	} else {
		_, err = sess.ToggleTheme(r.Context())
	}
	if err != nil {
		// theme stays applied for the session even if it was not saved
		lgr.Printf("[WARN] theme change for %s: %v", sess.ID(), err)
	}

	if !isHTMX(r) {
		back := r.Header.Get("Referer")
		if back == "" {
			back = "/"
		}
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "theme-toggle", struct {
		Theme domain.Theme
		OOB   bool
	}{Theme: sess.Theme(), OOB: true}); err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to render theme", err)
	}
}

// createPageHandler renders post, story or album creation form
func (s *Server) createPageHandler(w http.ResponseWriter, r *http.Request) {
	kind := forms.KindPost
	if k := r.PathValue("kind"); k != "" {
		var ok bool
		if kind, ok = forms.ParseKind(k); !ok {
			http.NotFound(w, r)
			return
		}
	}

	cc := s.config.GetFullConfig().Create
	sess := s.session(r)
	data := createPage{
		layout:    s.layout(r, sess, "Create", "create"),
		Kind:      kind,
		Kinds:     forms.Kinds,
		MaxImages: cc.MaxImages,
		MaxSizeMB: cc.MaxImageSize >> 20,
	}
	if err := s.renderPage(w, "create.html", data); err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to render create page", err)
	}
}

// createSubmitHandler validates an uploaded post, story or album. Valid submissions are
// acknowledged after the submit delay and the client is sent to the feed, nothing is stored.
func (s *Server) createSubmitHandler(w http.ResponseWriter, r *http.Request) {
	kind, ok := forms.ParseKind(r.PathValue("kind"))
	if !ok {
		http.NotFound(w, r)
		return
	}

	cc := s.config.GetFullConfig().Create
	if err := r.ParseMultipartForm(cc.MaxImageSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		s.metrics.Form(string(kind), err)
		s.renderFormResult(w, formResult{Error: "Upload failed, please try again", Field: "image"})
		return
	}

	var images []forms.Image
	if r.MultipartForm != nil {
		for _, fh := range r.MultipartForm.File["image"] {
			img, err := describeUpload(fh)
			if err != nil {
				lgr.Printf("[WARN] can't read upload %s: %v", fh.Filename, err)
				continue
			}
			images = append(images, img)
		}
	}

	draft := forms.NewDraft(kind, r.FormValue("caption"), r.FormValue("tags"), images)
	err := draft.Validate(forms.Limits{MaxImageSize: cc.MaxImageSize, MaxImages: cc.MaxImages})
	s.metrics.Form(string(kind), err)
	if err != nil {
		s.renderFormError(w, err)
		return
	}

	if !s.wait(r, cc.SubmitDelay) {
		return
	}
	lgr.Printf("[INFO] %s created with %d image(s), tags %v", kind, len(draft.Images), draft.Tags)
	redirect(w, r, "/")
}

// describeUpload sniffs content type of an uploaded file instead of trusting the client header
func describeUpload(fh *multipart.FileHeader) (forms.Image, error) {
	f, err := fh.Open()
	if err != nil {
		return forms.Image{}, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return forms.Image{}, fmt.Errorf("read upload: %w", err)
	}
	return forms.Image{Filename: fh.Filename, ContentType: http.DetectContentType(buf[:n]), Size: fh.Size}, nil
}

// authPageHandler renders login or register form, logged in viewers go to the feed
func (s *Server) authPageHandler(w http.ResponseWriter, r *http.Request) {
	if !s.config.GetFullConfig().Auth.Guest {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	mode := r.URL.Query().Get("mode")
	if mode != "register" {
		mode = "login"
	}
	sess := s.session(r)
	data := authPage{layout: s.layout(r, sess, "Sign in", "auth"), Mode: mode}
	if err := s.renderPage(w, "auth.html", data); err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to render auth page", err)
	}
}

// loginHandler validates login form and simulates the sign in
func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	form := forms.Login{Email: r.FormValue("email"), Password: r.FormValue("password")}
	err := form.Validate()
	s.metrics.Form("login", err)
	if err != nil {
		s.renderFormError(w, err)
		return
	}
	if !s.wait(r, s.config.GetFullConfig().Auth.Delay) {
		return
	}
	redirect(w, r, "/")
}

// registerHandler validates registration form and simulates the sign up
func (s *Server) registerHandler(w http.ResponseWriter, r *http.Request) {
	form := forms.Register{
		Email:           r.FormValue("email"),
		Username:        r.FormValue("username"),
		Password:        r.FormValue("password"),
		ConfirmPassword: r.FormValue("confirm_password"),
	}
	err := form.Validate()
	s.metrics.Form("register", err)
	if err != nil {
		s.renderFormError(w, err)
		return
	}
	if !s.wait(r, s.config.GetFullConfig().Auth.Delay) {
		return
	}
	redirect(w, r, "/")
}

// wait simulates processing time, false if the client went away
func (s *Server) wait(r *http.Request, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-r.Context().Done():
		return false
	case <-t.C:
		return true
	}
}

func (s *Server) renderFormError(w http.ResponseWriter, err error) {
	var ferr forms.Errors
	if !errors.As(err, &ferr) || len(ferr) == 0 {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to process form", err)
		return
	}
	s.renderFormResult(w, formResult{Error: ferr.Message(), Field: ferr[0].Field})
}

// renderFormResult renders the flash message into the form's result slot
func (s *Server) renderFormResult(w http.ResponseWriter, res formResult) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "form-result", res); err != nil {
		lgr.Printf("[ERROR] failed to render form result: %v", err)
	}
}
