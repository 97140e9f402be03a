package server

import (
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"time"
	"unicode"

	"github.com/umputun/pixelsocial/pkg/domain"
	"github.com/umputun/pixelsocial/pkg/feed"
	"github.com/umputun/pixelsocial/pkg/forms"
	"github.com/umputun/pixelsocial/pkg/notify"
)

// page templates, each parsed together with base and components
var pageNames = []string{"feed.html", "explore.html", "profile.html", "notifications.html", "create.html", "auth.html"}

// templateFuncs returns helpers shared by all templates
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"timeAgo":   timeAgo,
		"initials":  initials,
		"clock":     func(t time.Time) string { return t.Format("15:04") },
		"reactions": func() []domain.Reaction { return domain.Reactions },
		"lower":     strings.ToLower,
		"sentinel":  feed.SentinelID,
		"badge":     func(n int) badgeData { return badgeData{Unread: n} },
	}
}

// loadTemplates parses component templates and per-page template sets from embedded files
func loadTemplates() (*template.Template, map[string]*template.Template, error) {
	tmpl, err := template.New("").Funcs(templateFuncs()).ParseFS(templatesFS, "templates/components/*.html")
	if err != nil {
		return nil, nil, fmt.Errorf("parse components: %w", err)
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		patterns := []string{path.Join("templates", name), "templates/base.html", "templates/components/*.html"}
		pt, err := template.New(name).Funcs(templateFuncs()).ParseFS(templatesFS, patterns...)
		if err != nil {
			return nil, nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		pages[name] = pt
	}
	return tmpl, pages, nil
}

// templateFiles lists embedded template files, used by tests
func templateFiles() ([]string, error) {
	var res []string
	err := fs.WalkDir(templatesFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(p, ".html") {
			res = append(res, p)
		}
		return nil
	})
	return res, err
}

// timeAgo formats post time relative to now, older than a week shown as a date
func timeAgo(t time.Time) string {
	return relativeTime(t, time.Now())
}

func relativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}

// initials returns first two letters of the handle, upper-cased
func initials(handle string) string {
	res := make([]rune, 0, 2)
	for _, r := range handle {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		res = append(res, unicode.ToUpper(r))
		if len(res) == 2 {
			break
		}
	}
	return string(res)
}

// layout is the data shared by all pages
type layout struct {
	Title   string
	Active  string // nav entry to highlight
	Theme   domain.Theme
	Version string
	Unread  int
	Ticker  tickerData
}

// tickerData feeds the notification ticker panel
type tickerData struct {
	Items []domain.Notification
	Count int
	OOB   bool // render counter as out-of-band swap
}

// badgeData is the nav counter of unread activity
type badgeData struct {
	Unread int
	OOB    bool
}

// postCard is a post view bound to the mount it was rendered for
type postCard struct {
	feed.PostView
	MountID string
}

// batchData is a feed fragment: cards followed by a sentinel, a retry button or the end marker
type batchData struct {
	MountID   string
	Cards     []postCard
	Sentinel  string
	Threshold float64 // visible fraction of the sentinel firing the next load
	Wait      bool    // load in flight, the sentinel reports again after a pause
	Retry     bool
	Error     string
	End       bool
}

type modalData struct {
	Card     postCard
	Comments []domain.Comment
}

type feedPage struct {
	layout
	MountID string
}

type explorePage struct {
	layout
	Query string
	View  string // grid or zine
	Tags  []string
	Tiles []domain.Tile
}

type profilePage struct {
	layout
	Handle    string
	Profile   domain.Profile
	Self      bool
	Following bool
	Tab       string
	Tabs      []string
	Tiles     []domain.Tile
}

type notificationsPage struct {
	layout
	Tab        notify.Tab
	Tabs       []notify.Tab
	Activities []domain.Activity
}

type createPage struct {
	layout
	Kind      forms.Kind
	Kinds     []forms.Kind
	MaxImages int
	MaxSizeMB int64
}

type authPage struct {
	layout
	Mode string // login or register
}

// formResult is the inline flash message after a form submit
type formResult struct {
	Error   string
	Field   string
	Success string
}
