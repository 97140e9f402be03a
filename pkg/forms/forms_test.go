package forms

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_Validate(t *testing.T) {
	tbl := []struct {
		name  string
		form  Login
		valid bool
	}{
		{"ok", Login{Email: "a@b.c", Password: "secret"}, true},
		{"no email", Login{Password: "secret"}, false},
		{"blank email", Login{Email: "   ", Password: "secret"}, false},
		{"no password", Login{Email: "a@b.c"}, false},
	}
	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate()
			if tt.valid {
				require.NoError(t, err)
				return
			}
			var errs Errors
			require.ErrorAs(t, err, &errs)
			assert.Equal(t, "Please fill in all fields", errs.Message())
		})
	}
}

func TestRegister_Validate(t *testing.T) {
	tbl := []struct {
		name  string
		form  Register
		field string
		msg   string
	}{
		{"ok", Register{Email: "a@b.c", Username: "neo", Password: "secret", ConfirmPassword: "secret"}, "", ""},
		{"missing username", Register{Email: "a@b.c", Password: "secret", ConfirmPassword: "secret"}, "form", "Please fill in all fields"},
		{"missing confirm", Register{Email: "a@b.c", Username: "neo", Password: "secret"}, "form", "Please fill in all fields"},
		{"mismatch", Register{Email: "a@b.c", Username: "neo", Password: "secret", ConfirmPassword: "secreT"}, "confirm_password", "Passwords do not match"},
		{"short", Register{Email: "a@b.c", Username: "neo", Password: "12345", ConfirmPassword: "12345"}, "password", "Password must be at least 6 characters long"},
		{"six runes", Register{Email: "a@b.c", Username: "neo", Password: "пароль", ConfirmPassword: "пароль"}, "", ""},
	}
	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate()
			if tt.msg == "" {
				require.NoError(t, err)
				return
			}
			var errs Errors
			require.ErrorAs(t, err, &errs)
			assert.Equal(t, tt.msg, errs.Field(tt.field))
			assert.Equal(t, tt.msg, errs.Message())
		})
	}
}

func TestDraft_Validate(t *testing.T) {
	lim := Limits{MaxImageSize: 5 << 20, MaxImages: 10}
	jpeg := Image{Filename: "a.jpg", ContentType: "image/jpeg", Size: 1024}
	tbl := []struct {
		name  string
		draft Draft
		msg   string
	}{
		{"post ok", Draft{Kind: KindPost, Images: []Image{jpeg}}, ""},
		{"missing image", Draft{Kind: KindPost}, "Please select an image for your post"},
		{"missing story image", Draft{Kind: KindStory}, "Please select an image for your story"},
		{"not an image", Draft{Kind: KindPost, Images: []Image{{Filename: "a.pdf", ContentType: "application/pdf", Size: 10}}}, "Please select an image file"},
		{"too big", Draft{Kind: KindPost, Images: []Image{{Filename: "a.png", ContentType: "image/png", Size: 6 << 20}}}, "Image size should be less than 5MB"},
		{"exactly max", Draft{Kind: KindPost, Images: []Image{{Filename: "a.png", ContentType: "image/png", Size: 5 << 20}}}, ""},
		{"post with two", Draft{Kind: KindPost, Images: []Image{jpeg, jpeg}}, "A post takes a single image"},
		{"album ok", Draft{Kind: KindAlbum, Images: []Image{jpeg, jpeg, jpeg}}, ""},
		{"album too many", Draft{Kind: KindAlbum, Images: make11(jpeg)}, "Albums can have at most 10 images"},
		{"long caption", Draft{Kind: KindPost, Images: []Image{jpeg}, Caption: strings.Repeat("x", 2201)}, "Caption is limited to 2200 characters"},
	}
	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.draft.Validate(lim)
			if tt.msg == "" {
				require.NoError(t, err)
				return
			}
			var errs Errors
			require.True(t, errors.As(err, &errs))
			assert.Equal(t, tt.msg, errs.Message())
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func make11(img Image) []Image {
	res := make([]Image, 11)
	for i := range res {
		res[i] = img
	}
	return res
}

func TestNewDraft(t *testing.T) {
	d := NewDraft(KindPost, ` <script>alert(1)</script>Neon <b>nights</b> & rain `, "Cyberpunk, #neon  neon,#,rain", nil)
	assert.Equal(t, "Neon nights & rain", d.Caption)
	assert.Equal(t, []string{"#cyberpunk", "#neon", "#rain"}, d.Tags)
}

func TestParseKind(t *testing.T) {
	for _, s := range []string{"post", "story", "album"} {
		k, ok := ParseKind(s)
		assert.True(t, ok)
		assert.Equal(t, Kind(s), k)
	}
	_, ok := ParseKind("reel")
	assert.False(t, ok)
}

func TestErrors(t *testing.T) {
	var empty Errors
	assert.Empty(t, empty.Message())
	assert.NoError(t, empty.err())

	errs := Errors{{Field: "a", Message: "first"}, {Field: "b", Message: "second"}}
	assert.Equal(t, "a: first; b: second", errs.Error())
	assert.Equal(t, "second", errs.Field("b"))
	assert.Empty(t, errs.Field("c"))
}
