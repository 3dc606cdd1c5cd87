package router

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"goblog/internal/middleware"
	"goblog/internal/model"
	"goblog/internal/repository/inmemory"
	"goblog/internal/repository/mysql"
	"goblog/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type mailerStub struct {
	to   string
	body string
	err  error
}

func (m *mailerStub) Send(to, _, body string) error {
	m.to, m.body = to, body
	return m.err
}

type testApp struct {
	engine *gin.Engine
	db     *gorm.DB
	users  *service.UserService
	mailer *mailerStub
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:router_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, mysql.AutoMigrate(db))

	store := inmemory.New()
	mailer := &mailerStub{}

	users := service.NewUserService(&mysql.UserRepository{DB: db}, store, []byte("test-secret"))
	posts := service.NewPostService(&mysql.PostRepository{DB: db}, nil, zap.NewNop())
	comments := service.NewCommentService(&mysql.CommentRepository{DB: db})
	contact := service.NewContactService(mailer, "owner@x.com")

	engine := New(Deps{
		Users:        users,
		Posts:        posts,
		Comments:     comments,
		Contact:      contact,
		Flashes:      store,
		TemplateGlob: "../../web/templates/*.html",
	})
	return &testApp{engine: engine, db: db, users: users, mailer: mailer}
}

func (a *testApp) register(t *testing.T, name, email, password string) *model.User {
	t.Helper()
	user, err := a.users.Register(name, email, password)
	require.NoError(t, err)
	return user
}

func (a *testApp) sessionCookie(t *testing.T, user *model.User) *http.Cookie {
	t.Helper()
	token, err := a.users.StartSession(context.Background(), user)
	require.NoError(t, err)
	return &http.Cookie{Name: middleware.SessionCookieName, Value: token}
}

func (a *testApp) do(method, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func (a *testApp) countRows(t *testing.T, m any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, a.db.Model(m).Count(&n).Error)
	return n
}

func postForm(values map[string]string) url.Values {
	form := url.Values{}
	for k, v := range values {
		form.Set(k, v)
	}
	return form
}

func TestAdminGate(t *testing.T) {
	app := newTestApp(t)
	admin := app.register(t, "Admin", "admin@x.com", "p1")
	reader := app.register(t, "Reader", "reader@x.com", "p2")

	adminRoutes := []struct{ method, path string }{
		{http.MethodGet, "/new_post"},
		{http.MethodPost, "/new_post"},
		{http.MethodGet, "/edit-post/1"},
		{http.MethodPost, "/edit-post/1"},
		{http.MethodGet, "/delete/1"},
		{http.MethodPost, "/delete/1"},
	}

	for _, route := range adminRoutes {
		w := app.do(route.method, route.path, nil)
		assert.Equal(t, http.StatusForbidden, w.Code, "anonymous %s %s", route.method, route.path)

		w = app.do(route.method, route.path, nil, app.sessionCookie(t, reader))
		assert.Equal(t, http.StatusForbidden, w.Code, "reader %s %s", route.method, route.path)
	}

	w := app.do(http.MethodGet, "/new_post", nil, app.sessionCookie(t, admin))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "New Post")
}

func TestRegisterAndDuplicateEmail(t *testing.T) {
	app := newTestApp(t)

	form := postForm(map[string]string{"name": "Alice", "email": "a@x.com", "password": "p1"})
	w := app.do(http.MethodPost, "/register", form)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.EqualValues(t, 1, app.countRows(t, &model.User{}))

	// The response established a session for the new user.
	var sessionSet bool
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookieName && c.Value != "" {
			sessionSet = true
		}
	}
	assert.True(t, sessionSet)

	// Same email again: rejected, redirected to login, no second row.
	form = postForm(map[string]string{"name": "Alice Again", "email": "a@x.com", "password": "p2"})
	w = app.do(http.MethodPost, "/register", form)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.EqualValues(t, 1, app.countRows(t, &model.User{}))
}

func TestLoginRejectionsRerenderForm(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "Alice", "a@x.com", "p1")

	w := app.do(http.MethodPost, "/login", postForm(map[string]string{"email": "nope@x.com", "password": "p1"}))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "The email does not exist, please try again")

	w = app.do(http.MethodPost, "/login", postForm(map[string]string{"email": "a@x.com", "password": "wrong"}))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Password incorrect, please try again")

	w = app.do(http.MethodPost, "/login", postForm(map[string]string{"email": "a@x.com", "password": "p1"}))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestAnonymousCommentRedirectsToLogin(t *testing.T) {
	app := newTestApp(t)
	admin := app.register(t, "Admin", "admin@x.com", "p1")
	require.NoError(t, app.db.Create(&model.Post{
		AuthorID: admin.ID, Title: "Hello", Subtitle: "World",
		Date: "Jan 02, 2006", Body: "<p>hi</p>", ImgURL: "http://x/i.png",
	}).Error)

	w := app.do(http.MethodPost, "/post/1", postForm(map[string]string{"comment_text": "anon says hi"}))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.EqualValues(t, 0, app.countRows(t, &model.Comment{}))
}

func TestAuthenticatedComment(t *testing.T) {
	app := newTestApp(t)
	admin := app.register(t, "Admin", "admin@x.com", "p1")
	reader := app.register(t, "Reader", "reader@x.com", "p2")
	require.NoError(t, app.db.Create(&model.Post{
		AuthorID: admin.ID, Title: "Hello", Subtitle: "World",
		Date: "Jan 02, 2006", Body: "<p>hi</p>", ImgURL: "http://x/i.png",
	}).Error)

	cookie := app.sessionCookie(t, reader)
	w := app.do(http.MethodPost, "/post/1", postForm(map[string]string{"comment_text": "nice post"}), cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/post/1", w.Header().Get("Location"))
	assert.EqualValues(t, 1, app.countRows(t, &model.Comment{}))

	w = app.do(http.MethodGet, "/post/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "nice post")
	assert.Contains(t, w.Body.String(), "Reader")
}

func TestAdminCreatesPost(t *testing.T) {
	app := newTestApp(t)
	admin := app.register(t, "Admin", "admin@x.com", "p1")
	cookie := app.sessionCookie(t, admin)

	form := postForm(map[string]string{
		"title":    "Hello",
		"subtitle": "World",
		"img_url":  "http://x/i.png",
		"body":     "<p>hi</p>",
	})
	w := app.do(http.MethodPost, "/new_post", form, cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	var post model.Post
	require.NoError(t, app.db.First(&post, "title = ?", "Hello").Error)
	assert.Equal(t, "World", post.Subtitle)
	assert.Equal(t, "http://x/i.png", post.ImgURL)
	assert.Equal(t, "<p>hi</p>", post.Body)
	assert.Equal(t, time.Now().Format(service.DateLayout), post.Date)

	w = app.do(http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Hello")
}

func TestAdminEditsPostKeepingDate(t *testing.T) {
	app := newTestApp(t)
	admin := app.register(t, "Admin", "admin@x.com", "p1")
	cookie := app.sessionCookie(t, admin)
	require.NoError(t, app.db.Create(&model.Post{
		AuthorID: admin.ID, Title: "Hello", Subtitle: "World",
		Date: "Jan 02, 2006", Body: "<p>hi</p>", ImgURL: "http://x/i.png",
	}).Error)

	// The edit form comes back pre-filled.
	w := app.do(http.MethodGet, "/edit-post/1", nil, cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Hello")
	assert.Contains(t, w.Body.String(), "World")

	form := postForm(map[string]string{
		"title":    "Hello Again",
		"subtitle": "New World",
		"img_url":  "http://x/j.png",
		"body":     "<p>edited</p>",
	})
	w = app.do(http.MethodPost, "/edit-post/1", form, cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)

	var post model.Post
	require.NoError(t, app.db.First(&post, 1).Error)
	assert.Equal(t, "Hello Again", post.Title)
	assert.Equal(t, "Jan 02, 2006", post.Date)
}

func TestDeleteMissingPostFallsThroughToListing(t *testing.T) {
	app := newTestApp(t)
	admin := app.register(t, "Admin", "admin@x.com", "p1")
	cookie := app.sessionCookie(t, admin)
	require.NoError(t, app.db.Create(&model.Post{
		AuthorID: admin.ID, Title: "Hello", Subtitle: "World",
		Date: "Jan 02, 2006", Body: "<p>hi</p>", ImgURL: "http://x/i.png",
	}).Error)

	w := app.do(http.MethodGet, "/delete/999", nil, cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Hello")
	assert.EqualValues(t, 1, app.countRows(t, &model.Post{}))
}

func TestDeleteExistingPost(t *testing.T) {
	app := newTestApp(t)
	admin := app.register(t, "Admin", "admin@x.com", "p1")
	cookie := app.sessionCookie(t, admin)
	require.NoError(t, app.db.Create(&model.Post{
		AuthorID: admin.ID, Title: "Hello", Subtitle: "World",
		Date: "Jan 02, 2006", Body: "<p>hi</p>", ImgURL: "http://x/i.png",
	}).Error)

	w := app.do(http.MethodGet, "/delete/1", nil, cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.EqualValues(t, 0, app.countRows(t, &model.Post{}))
}

func TestContactRelaysMessage(t *testing.T) {
	app := newTestApp(t)

	form := postForm(map[string]string{
		"name":    "Bob",
		"email":   "bob@x.com",
		"phone":   "555-0100",
		"message": "hello there",
	})
	w := app.do(http.MethodPost, "/contact", form)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Form submission successful!")
	assert.Equal(t, "owner@x.com", app.mailer.to)
	assert.Equal(t, "Bob\nbob@x.com\n555-0100\nhello there", app.mailer.body)
}

func TestContactValidationRerendersForm(t *testing.T) {
	app := newTestApp(t)

	form := postForm(map[string]string{"name": "Bob", "email": "not-an-email", "phone": "1", "message": "x"})
	w := app.do(http.MethodPost, "/contact", form)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "valid email")
	assert.Empty(t, app.mailer.to)
}

func TestLogoutClearsSession(t *testing.T) {
	app := newTestApp(t)
	user := app.register(t, "Alice", "a@x.com", "p1")
	cookie := app.sessionCookie(t, user)

	w := app.do(http.MethodGet, "/logout", nil, cookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	// The old cookie is no longer honoured.
	w = app.do(http.MethodGet, "/", nil, cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Log In")
}

func TestStaticPagesRender(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodGet, "/about", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(http.MethodGet, "/403", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "403")
}

func TestUnknownRouteRendersErrorPage(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodGet, "/no-such-page", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "404")
	assert.Contains(t, w.Body.String(), "Not Found")
}

func TestPostDetailNotFound(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodGet, "/post/42", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
