package app

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/blogicum/core/internal/config"
	"github.com/blogicum/core/internal/middleware"
	"github.com/blogicum/core/internal/models"
	"github.com/blogicum/core/internal/modules/storage/image"
	sessionpkg "github.com/blogicum/core/internal/pkg/session"
	"github.com/blogicum/core/internal/pkg/testdb"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testApp struct {
	t      *testing.T
	router *gin.Engine
	db     *gorm.DB
	images *image.LocalStore
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	cfg, err := config.Parse(nil)
	require.NoError(t, err)
	db := testdb.New(t)
	store, err := image.NewLocalStore(t.TempDir(), image.LocalURLPrefix)
	require.NoError(t, err)

	r, err := NewEngine(Deps{Config: cfg, DB: db, Images: store})
	require.NoError(t, err)
	return &testApp{t: t, router: r, db: db, images: store}
}

func (a *testApp) login(u *models.UserModel) *http.Cookie {
	a.t.Helper()
	token, _, err := sessionpkg.Issue(a.db, u.ID, "", "", time.Hour)
	require.NoError(a.t, err)
	return &http.Cookie{Name: middleware.SessionCookie, Value: token}
}

func (a *testApp) do(req *http.Request, cookie *http.Cookie) *httptest.ResponseRecorder {
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) get(path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	return a.do(httptest.NewRequest(http.MethodGet, path, nil), cookie)
}

func (a *testApp) post(path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(req, cookie)
}

func (a *testApp) count(model any) int64 {
	a.t.Helper()
	var n int64
	require.NoError(a.t, a.db.Model(model).Count(&n).Error)
	return n
}

func postPath(id uint, suffix string) string { return fmt.Sprintf("/posts/%d/%s", id, suffix) }

func requireRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())
	require.Equal(t, location, w.Header().Get("Location"))
}

func TestIndexShowsOnlyVisiblePosts(t *testing.T) {
	a := newTestApp(t)
	alice := testdb.User(t, a.db, "alice")
	open := testdb.Category(t, a.db, "open", true)
	closed := testdb.Category(t, a.db, "closed", false)

	visible := testdb.Post(t, a.db, alice, open, "visible-post")
	testdb.Post(t, a.db, alice, open, "draft-post", testdb.Unpublished())
	testdb.Post(t, a.db, alice, open, "future-post", testdb.PubDate(time.Now().Add(time.Hour)))
	testdb.Post(t, a.db, alice, closed, "closed-post")
	testdb.Comment(t, a.db, visible, alice, "one")
	testdb.Comment(t, a.db, visible, alice, "two")

	w := a.get("/", a.login(alice))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	require.Contains(t, body, "visible-post")
	require.Contains(t, body, "Comments (2)")
	for _, hidden := range []string{"draft-post", "future-post", "closed-post"} {
		require.NotContains(t, body, hidden)
	}
}

func TestIndexPagination(t *testing.T) {
	a := newTestApp(t)
	alice := testdb.User(t, a.db, "alice")
	open := testdb.Category(t, a.db, "open", true)
	base := time.Now().Add(-48 * time.Hour)
	for i := 1; i <= 25; i++ {
		testdb.Post(t, a.db, alice, open, fmt.Sprintf("post-%02d", i), testdb.CreatedAt(base.Add(time.Duration(i)*time.Minute)))
	}

	first := a.get("/", nil).Body.String()
	require.Equal(t, 10, strings.Count(first, `<article class="post">`))
	require.Contains(t, first, "post-25")
	require.Contains(t, first, "post-16")
	require.NotContains(t, first, "post-15")

	third := a.get("/?page=3", nil).Body.String()
	require.Equal(t, 5, strings.Count(third, `<article class="post">`))
	require.Contains(t, third, "post-05")
	require.Contains(t, third, "post-01")
	require.Contains(t, third, "Page 3 of 3")

	beyond := a.get("/?page=4", nil).Body.String()
	require.Contains(t, beyond, "Page 3 of 3")
	require.Contains(t, beyond, "post-01")

	junk := a.get("/?page=abc", nil).Body.String()
	require.Contains(t, junk, "Page 1 of 3")
}

func TestDetailVisibility(t *testing.T) {
	a := newTestApp(t)
	alice := testdb.User(t, a.db, "alice")
	bob := testdb.User(t, a.db, "bob")
	open := testdb.Category(t, a.db, "open", true)
	draft := testdb.Post(t, a.db, alice, open, "secret draft", testdb.Unpublished())

	require.Equal(t, http.StatusOK, a.get(postPath(draft.ID, ""), a.login(alice)).Code)
	require.Equal(t, http.StatusNotFound, a.get(postPath(draft.ID, ""), a.login(bob)).Code)
	require.Equal(t, http.StatusNotFound, a.get(postPath(draft.ID, ""), nil).Code)
	require.Equal(t, http.StatusNotFound, a.get("/posts/999/", nil).Code)
	require.Equal(t, http.StatusNotFound, a.get("/posts/abc/", nil).Code)
}

func TestCreatePost(t *testing.T) {
	a := newTestApp(t)
	alice := testdb.User(t, a.db, "alice")
	open := testdb.Category(t, a.db, "open", true)
	form := url.Values{
		"title":    {"Fresh"},
		"text":     {"Body"},
		"pub_date": {"2024-01-01T10:00"},
		"category": {fmt.Sprint(open.ID)},
	}

	w := a.post("/posts/create/", form, nil)
	requireRedirect(t, w, "/auth/login/?next=%2Fposts%2Fcreate%2F")
	require.Zero(t, a.count(&models.PostModel{}))

	w = a.get("/posts/create/", nil)
	require.Equal(t, http.StatusFound, w.Code)

	cookie := a.login(alice)
	require.Equal(t, http.StatusOK, a.get("/posts/create/", cookie).Code)

	w = a.post("/posts/create/", form, cookie)
	requireRedirect(t, w, "/profile/alice/")

	var p models.PostModel
	require.NoError(t, a.db.First(&p).Error)
	require.Equal(t, "Fresh", p.Title)
	require.Equal(t, alice.ID, p.AuthorID)
	require.True(t, p.IsPublished)
}

func TestCreatePostInvalidForm(t *testing.T) {
	a := newTestApp(t)
	alice := testdb.User(t, a.db, "alice")
	testdb.Category(t, a.db, "open", true)
	cookie := a.login(alice)

	tests := []struct {
		name string
		form url.Values
		want string
	}{
		{name: "missing title", form: url.Values{"text": {"b"}, "category": {"1"}}, want: "This field is required."},
		{name: "unknown category", form: url.Values{"title": {"t"}, "text": {"b"}, "category": {"99"}}, want: "Select a valid choice."},
		{name: "bad date", form: url.Values{"title": {"t"}, "text": {"b"}, "category": {"1"}, "pub_date": {"soon"}}, want: "Enter a valid date/time."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := a.post("/posts/create/", tt.form, cookie)
			require.Equal(t, http.StatusOK, w.Code)
			require.Contains(t, w.Body.String(), tt.want)
			require.Zero(t, a.count(&models.PostModel{}))
		})
	}
}

func TestCreatePostWithImage(t *testing.T) {
	a := newTestApp(t)
	alice := testdb.User(t, a.db, "alice")
	open := testdb.Category(t, a.db, "open", true)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("title", "Pictured"))
	require.NoError(t, mw.WriteField("text", "Body"))
	require.NoError(t, mw.WriteField("category", fmt.Sprint(open.ID)))
	fw, err := mw.CreateFormFile("image", "photo.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("not really a png"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/posts/create/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := a.do(req, a.login(alice))
	requireRedirect(t, w, "/profile/alice/")

	var p models.PostModel
	require.NoError(t, a.db.First(&p).Error)
	require.True(t, strings.HasPrefix(p.Image, "posts_images/"))

	req = httptest.NewRequest(http.MethodGet, a.images.URL(p.Image), nil)
	req.Header.Set("Origin", "https://elsewhere.example")
	media := a.do(req, nil)
	require.Equal(t, http.StatusOK, media.Code)
	require.Equal(t, "not really a png", media.Body.String())
	require.Equal(t, "*", media.Header().Get("Access-Control-Allow-Origin"))
}

func TestEditPostOwnership(t *testing.T) {
	a := newTestApp(t)
	alice := testdb.User(t, a.db, "alice")
	bob := testdb.User(t, a.db, "bob")
	open := testdb.Category(t, a.db, "open", true)
	p := testdb.Post(t, a.db, alice, open, "original")
	form := url.Values{"title": {"changed"}, "text": {"b"}, "category": {fmt.Sprint(open.ID)}}

	requireRedirect(t, a.post(postPath(p.ID, "edit/"), form, nil), postPath(p.ID, ""))
	requireRedirect(t, a.post(postPath(p.ID, "edit/"), form, a.login(bob)), postPath(p.ID, ""))
	requireRedirect(t, a.get(postPath(p.ID, "edit/"), a.login(bob)), postPath(p.ID, ""))

	var stored models.PostModel
	require.NoError(t, a.db.First(&stored, p.ID).Error)
	require.Equal(t, "original", stored.Title)

	cookie := a.login(alice)
	require.Equal(t, http.StatusOK, a.get(postPath(p.ID, "edit/"), cookie).Code)
	requireRedirect(t, a.post(postPath(p.ID, "edit/"), form, cookie), postPath(p.ID, ""))
	require.NoError(t, a.db.First(&stored, p.ID).Error)
	require.Equal(t, "changed", stored.Title)

	require.Equal(t, http.StatusNotFound, a.post("/posts/999/edit/", form, cookie).Code)

	draft := testdb.Post(t, a.db, alice, open, "draft", testdb.Unpublished())
	require.Equal(t, http.StatusOK, a.get(postPath(draft.ID, "edit/"), cookie).Code)
	require.Equal(t, http.StatusOK, a.get(postPath(draft.ID, "delete/"), cookie).Code)
}

func TestDeletePostRemovesComments(t *testing.T) {
	a := newTestApp(t)
	alice := testdb.User(t, a.db, "alice")
	bob := testdb.User(t, a.db, "bob")
	open := testdb.Category(t, a.db, "open", true)
	p := testdb.Post(t, a.db, alice, open, "doomed")
	testdb.Comment(t, a.db, p, bob, "first")
	testdb.Comment(t, a.db, p, alice, "second")

	requireRedirect(t, a.post(postPath(p.ID, "delete/"), nil, a.login(bob)), postPath(p.ID, ""))
	require.Equal(t, int64(1), a.count(&models.PostModel{}))

	cookie := a.login(alice)
	require.Equal(t, http.StatusOK, a.get(postPath(p.ID, "delete/"), cookie).Code)
	requireRedirect(t, a.post(postPath(p.ID, "delete/"), nil, cookie), "/profile/alice/")
	require.Zero(t, a.count(&models.PostModel{}))
	require.Zero(t, a.count(&models.CommentModel{}))
}

func TestComments(t *testing.T) {
	a := newTestApp(t)
	alice := testdb.User(t, a.db, "alice")
	bob := testdb.User(t, a.db, "bob")
	open := testdb.Category(t, a.db, "open", true)
	p := testdb.Post(t, a.db, alice, open, "post")
	draft := testdb.Post(t, a.db, alice, open, "draft", testdb.Unpublished())

	requireRedirect(t, a.post(postPath(p.ID, "comment/"), url.Values{"text": {"hi"}}, nil), postPath(p.ID, ""))
	require.Zero(t, a.count(&models.CommentModel{}))

	bobCookie := a.login(bob)
	requireRedirect(t, a.post(postPath(p.ID, "comment/"), url.Values{"text": {"hi"}}, bobCookie), postPath(p.ID, "#comments"))
	require.Equal(t, int64(1), a.count(&models.CommentModel{}))

	w := a.post(postPath(p.ID, "comment/"), url.Values{"text": {""}}, bobCookie)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "This field is required.")
	require.Equal(t, int64(1), a.count(&models.CommentModel{}))

	require.Equal(t, http.StatusNotFound, a.post(postPath(draft.ID, "comment/"), url.Values{"text": {"hi"}}, bobCookie).Code)
	require.Equal(t, http.StatusNotFound, a.post("/posts/999/comment/", url.Values{"text": {"hi"}}, bobCookie).Code)

	detail := a.get(postPath(p.ID, ""), nil).Body.String()
	require.Contains(t, detail, "hi")
	require.Contains(t, detail, "@bob")
}

func TestCommentOwnership(t *testing.T) {
	a := newTestApp(t)
	alice := testdb.User(t, a.db, "alice")
	bob := testdb.User(t, a.db, "bob")
	open := testdb.Category(t, a.db, "open", true)
	p := testdb.Post(t, a.db, alice, open, "post")
	other := testdb.Post(t, a.db, alice, open, "other")
	c := testdb.Comment(t, a.db, p, bob, "bob says")

	editPath := fmt.Sprintf("/posts/%d/edit_comment/%d/", p.ID, c.ID)
	deletePath := fmt.Sprintf("/posts/%d/delete_comment/%d/", p.ID, c.ID)
	form := url.Values{"text": {"hijacked"}}

	requireRedirect(t, a.post(editPath, form, a.login(alice)), postPath(p.ID, ""))
	requireRedirect(t, a.post(editPath, form, nil), postPath(p.ID, ""))
	requireRedirect(t, a.post(deletePath, nil, a.login(alice)), postPath(p.ID, ""))

	var stored models.CommentModel
	require.NoError(t, a.db.First(&stored, c.ID).Error)
	require.Equal(t, "bob says", stored.Text)

	mismatched := fmt.Sprintf("/posts/%d/edit_comment/%d/", other.ID, c.ID)
	require.Equal(t, http.StatusNotFound, a.post(mismatched, form, a.login(bob)).Code)

	bobCookie := a.login(bob)
	require.Equal(t, http.StatusOK, a.get(editPath, bobCookie).Code)
	requireRedirect(t, a.post(editPath, url.Values{"text": {"bob edits"}}, bobCookie), postPath(p.ID, "#comments"))
	require.NoError(t, a.db.First(&stored, c.ID).Error)
	require.Equal(t, "bob edits", stored.Text)

	require.Equal(t, http.StatusOK, a.get(deletePath, bobCookie).Code)
	requireRedirect(t, a.post(deletePath, nil, bobCookie), postPath(p.ID, "#comments"))
	require.Zero(t, a.count(&models.CommentModel{}))
}

func TestCategoryPage(t *testing.T) {
	a := newTestApp(t)
	alice := testdb.User(t, a.db, "alice")
	travel := testdb.Category(t, a.db, "travel", true)
	testdb.Category(t, a.db, "hidden", false)
	testdb.Post(t, a.db, alice, travel, "trip-post")

	w := a.get("/category/travel/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "trip-post")

	require.Equal(t, http.StatusNotFound, a.get("/category/hidden/", nil).Code)
	require.Equal(t, http.StatusNotFound, a.get("/category/missing/", nil).Code)
}

func TestProfile(t *testing.T) {
	a := newTestApp(t)
	alice := testdb.User(t, a.db, "alice")
	bob := testdb.User(t, a.db, "bob")
	open := testdb.Category(t, a.db, "open", true)
	testdb.Post(t, a.db, alice, open, "public-post")
	testdb.Post(t, a.db, alice, open, "draft-post", testdb.Unpublished())

	own := a.get("/profile/alice/", a.login(alice)).Body.String()
	require.Contains(t, own, "public-post")
	require.Contains(t, own, "draft-post")
	require.Contains(t, own, "Edit profile")

	other := a.get("/profile/alice/", a.login(bob)).Body.String()
	require.Contains(t, other, "public-post")
	require.Contains(t, other, "draft-post")
	require.NotContains(t, other, "Edit profile")

	anon := a.get("/profile/alice/", nil).Body.String()
	require.Contains(t, anon, "draft-post")

	require.Equal(t, http.StatusNotFound, a.get("/profile/nobody/", nil).Code)
}

func TestProfileEdit(t *testing.T) {
	a := newTestApp(t)
	alice := testdb.User(t, a.db, "alice")
	form := url.Values{"first_name": {"Alice"}, "last_name": {"Liddell"}, "email": {"alice@example.com"}}

	requireRedirect(t, a.get("/profile/edit/", nil), "/")
	requireRedirect(t, a.post("/profile/edit/", form, nil), "/")

	cookie := a.login(alice)
	require.Equal(t, http.StatusOK, a.get("/profile/edit/", cookie).Code)

	w := a.post("/profile/edit/", url.Values{"email": {"not-an-email"}}, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Enter a valid email address.")

	requireRedirect(t, a.post("/profile/edit/", form, cookie), "/profile/alice/")
	var stored models.UserModel
	require.NoError(t, a.db.First(&stored, alice.ID).Error)
	require.Equal(t, "Alice Liddell", stored.FullName())
}

func TestRegistrationLoginLogout(t *testing.T) {
	a := newTestApp(t)

	w := a.post("/auth/registration/", url.Values{"username": {"carol"}, "password1": {"long-enough"}, "password2": {"different!"}}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "didn&#39;t match")

	requireRedirect(t, a.post("/auth/registration/", url.Values{
		"username": {"carol"}, "password1": {"long-enough"}, "password2": {"long-enough"},
	}, nil), "/auth/login/")

	w = a.post("/auth/registration/", url.Values{
		"username": {"carol"}, "password1": {"long-enough"}, "password2": {"long-enough"},
	}, nil)
	require.Contains(t, w.Body.String(), "already exists")

	w = a.post("/auth/login/", url.Values{"username": {"carol"}, "password": {"wrong-pass"}}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Please enter a correct username and password.")

	w = a.post("/auth/login/", url.Values{"username": {"carol"}, "password": {"long-enough"}, "next": {"/posts/create/"}}, nil)
	requireRedirect(t, w, "/posts/create/")

	var session *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			session = c
		}
	}
	require.NotNil(t, session)
	require.Equal(t, http.StatusOK, a.get("/posts/create/", session).Code)

	requireRedirect(t, a.post("/auth/logout/", nil, session), "/")
	require.Equal(t, http.StatusFound, a.get("/posts/create/", session).Code)
}

func TestUnknownRoute(t *testing.T) {
	a := newTestApp(t)
	w := a.get("/nowhere/", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "Page not found")
}

func TestMatchOriginPattern(t *testing.T) {
	tests := []struct {
		pattern, host string
		want          bool
	}{
		{"example.com", "example.com", true},
		{"*.example.com", "cdn.example.com", true},
		{"*.example.com", "example.org", false},
		{"localhost:*", "localhost:3000", true},
		{"localhost:*", "otherhost:3000", false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, matchOriginPattern(tt.pattern, tt.host), tt.pattern+" "+tt.host)
	}
	require.Equal(t, "example.com:8080", extractOriginHost("https://example.com:8080"))
}
