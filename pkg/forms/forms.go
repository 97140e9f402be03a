// Package forms validates login, register and post creation submissions. Nothing is stored,
// a valid submission only gets normalized.
package forms

import (
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/samber/lo"
)

const (
	minPasswordLen = 6
	maxCaptionLen  = 2200
)

var sanitizer = bluemonday.StrictPolicy()

// FieldError is a validation failure of a single field
type FieldError struct {
	Field   string
	Message string
}

// Errors is a list of validation failures in form order, nil means valid
type Errors []FieldError

// Error joins all messages
func (e Errors) Error() string {
	msgs := lo.Map(e, func(fe FieldError, _ int) string { return fe.Field + ": " + fe.Message })
	return strings.Join(msgs, "; ")
}

// Message returns the first message, the one shown to the user
func (e Errors) Message() string {
	if len(e) == 0 {
		return ""
	}
	return e[0].Message
}

// Field returns message for the field, empty if the field is valid
func (e Errors) Field(name string) string {
	fe, ok := lo.Find(e, func(fe FieldError) bool { return fe.Field == name })
	if !ok {
		return ""
	}
	return fe.Message
}

// err returns nil for empty list so callers can compare with nil
func (e Errors) err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Login is a submitted login form
type Login struct {
	Email    string
	Password string
}

// Validate checks required fields
func (l *Login) Validate() error {
	l.Email = strings.TrimSpace(l.Email)
	if l.Email == "" || l.Password == "" {
		return Errors{{Field: "form", Message: "Please fill in all fields"}}
	}
	return nil
}

// Register is a submitted registration form
type Register struct {
	Email           string
	Username        string
	Password        string
	ConfirmPassword string
}

// Validate checks required fields, password confirmation and length
func (r *Register) Validate() error {
	r.Email, r.Username = strings.TrimSpace(r.Email), strings.TrimSpace(r.Username)
	switch {
	case r.Email == "" || r.Username == "" || r.Password == "" || r.ConfirmPassword == "":
		return Errors{{Field: "form", Message: "Please fill in all fields"}}
	case r.Password != r.ConfirmPassword:
		return Errors{{Field: "confirm_password", Message: "Passwords do not match"}}
	case len([]rune(r.Password)) < minPasswordLen:
		return Errors{{Field: "password", Message: fmt.Sprintf("Password must be at least %d characters long", minPasswordLen)}}
	}
	return nil
}

// Kind is a type of created content
type Kind string

// enum of content kinds
const (
	KindPost  Kind = "post"
	KindStory Kind = "story"
	KindAlbum Kind = "album"
)

// Kinds lists content kinds in menu order
var Kinds = []Kind{KindPost, KindStory, KindAlbum}

// ParseKind validates content kind
func ParseKind(s string) (Kind, bool) {
	k := Kind(s)
	return k, lo.Contains(Kinds, k)
}

// Image is an uploaded file summary, content itself is discarded
type Image struct {
	Filename    string
	ContentType string
	Size        int64
}

// Limits bounds uploaded images
type Limits struct {
	MaxImageSize int64
	MaxImages    int
}

// Draft is a submitted post, story or album
type Draft struct {
	Kind    Kind
	Caption string
	Tags    []string
	Images  []Image
}

// NewDraft makes a draft with sanitized caption and tags parsed from the raw tags input
func NewDraft(kind Kind, caption, tags string, images []Image) Draft {
	return Draft{Kind: kind, Caption: Sanitize(caption), Tags: ParseTags(tags), Images: images}
}

// Validate checks images against limits and caption length
func (d Draft) Validate(lim Limits) error {
	var errs Errors
	if len(d.Images) == 0 {
		errs = append(errs, FieldError{Field: "image", Message: fmt.Sprintf("Please select an image for your %s", d.Kind)})
	}
	for _, img := range d.Images {
		if !strings.HasPrefix(img.ContentType, "image/") {
			errs = append(errs, FieldError{Field: "image", Message: "Please select an image file"})
			break
		}
		if lim.MaxImageSize > 0 && img.Size > lim.MaxImageSize {
			errs = append(errs, FieldError{Field: "image",
				Message: fmt.Sprintf("Image size should be less than %dMB", lim.MaxImageSize>>20)})
			break
		}
	}
	switch {
	case d.Kind != KindAlbum && len(d.Images) > 1:
		errs = append(errs, FieldError{Field: "image", Message: fmt.Sprintf("A %s takes a single image", d.Kind)})
	case d.Kind == KindAlbum && lim.MaxImages > 0 && len(d.Images) > lim.MaxImages:
		errs = append(errs, FieldError{Field: "image", Message: fmt.Sprintf("Albums can have at most %d images", lim.MaxImages)})
	}
	if len([]rune(d.Caption)) > maxCaptionLen {
		errs = append(errs, FieldError{Field: "caption", Message: fmt.Sprintf("Caption is limited to %d characters", maxCaptionLen)})
	}
	return errs.err()
}

// Sanitize strips markup from user text, templates escape on output
func Sanitize(s string) string {
	return strings.TrimSpace(html.UnescapeString(sanitizer.Sanitize(s)))
}

// ParseTags splits comma or space separated tags, lower-cases them, adds # and drops duplicates
func ParseTags(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(Sanitize(s)), func(r rune) bool { return r == ',' || r == ' ' || r == '\n' || r == '\t' })
	tags := lo.Map(fields, func(f string, _ int) string { return "#" + strings.TrimLeft(f, "#") })
	return lo.Uniq(lo.Filter(tags, func(t string, _ int) bool { return t != "#" }))
}
