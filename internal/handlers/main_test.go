package handlers_test

import (
	"fmt"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"askbox/internal/db"
	"askbox/internal/middleware"
	"askbox/internal/models"
	"askbox/internal/router"
	"askbox/internal/utils"
)

// setupApp builds the full engine against a fresh in-memory database.
// Templates are replaced with one-line stubs that echo the data the
// handler passed, so assertions can pin template names and values
// without parsing real markup.
func setupApp(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database, err := gorm.Open(sqlite.Open(":memory:"), db.Config())
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("unwrap test database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.Migrate(database); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	db.DB = database

	r := gin.New()
	r.HTMLRender = stubRenderer()
	r.Use(sessions.Sessions("askbox_session", cookie.NewStore([]byte("test-secret"))))
	r.Use(middleware.LoadUser())
	router.RegisterRoutes(r)
	return r
}

func stubRenderer() multitemplate.Render {
	render := multitemplate.New()
	// raw bypasses html/template escaping so stubs echo handler data
	// verbatim (e.g. apostrophes in flash messages).
	funcs := template.FuncMap{
		"raw": func(v any) template.HTML { return template.HTML(fmt.Sprint(v)) },
	}
	stubs := map[string]string{
		"index.html":           `index`,
		"error.html":           `error:{{raw .Error}}`,
		"confirm_delete.html":  `confirm:{{.Model}}:{{.Content}}`,
		"question/list.html":   `list:{{.Tab}}:{{len .Questions}}`,
		"question/tagged.html": `tagged:{{.Tag.Text}}:{{.Tab}}:{{len .Questions}}`,
		"question/detail.html": `detail:{{.Question.Title}}:answers={{len .Answers}}:votes={{.Question.VoteCount}}:views={{.Question.ViewCount}}`,
		"question/ask.html":    `ask{{if .Error}}:{{raw .Error}}{{end}}`,
		"question/edit.html":   `editq:{{.Question.Title}}{{if .Error}}:{{raw .Error}}{{end}}`,
		"answer/edit.html":     `edita:{{.Answer.ID}}{{if .Error}}:{{raw .Error}}{{end}}`,
		"tag/list.html":        `tags:{{.Tab}}:{{len .Tags}}`,
		"auth/login.html":      `login{{if .Error}}:{{raw .Error}}{{end}}`,
		"auth/signup.html":     `signup{{if .Error}}:{{raw .Error}}{{end}}`,
		"user/profile.html":    `profile:{{.ProfileOwner.Username}}:{{.Tab}}:{{len .Contents}}`,
		"user/settings.html":   `settings{{if .Error}}:{{raw .Error}}{{end}}`,
	}
	for name, tmpl := range stubs {
		render.AddFromStringsFuncs(name, funcs, tmpl)
	}
	return render
}

func seedUser(t *testing.T, username, password string) models.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.User{Username: username, Password: hash}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return user
}

func seedTag(t *testing.T, text string) models.Tag {
	t.Helper()
	tag := models.Tag{Text: text}
	if err := db.DB.Create(&tag).Error; err != nil {
		t.Fatalf("seed tag %s: %v", text, err)
	}
	return tag
}

func seedQuestion(t *testing.T, authorID uint, title string, tags ...models.Tag) models.Question {
	t.Helper()
	question := models.Question{AuthorID: authorID, Title: title, Body: "body", Tags: tags}
	if err := db.DB.Create(&question).Error; err != nil {
		t.Fatalf("seed question %s: %v", title, err)
	}
	return question
}

func seedAnswer(t *testing.T, authorID, questionID uint, text string) models.Answer {
	t.Helper()
	answer := models.Answer{AuthorID: authorID, QuestionID: questionID, Text: text}
	if err := db.DB.Create(&answer).Error; err != nil {
		t.Fatalf("seed answer: %v", err)
	}
	return answer
}

func get(r *gin.Engine, path, sessionCookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if sessionCookie != "" {
		req.Header.Set("Cookie", sessionCookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func postForm(r *gin.Engine, path string, form url.Values, sessionCookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if sessionCookie != "" {
		req.Header.Set("Cookie", sessionCookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// login authenticates through the real login route and returns the
// session cookie for follow-up requests.
func login(t *testing.T, r *gin.Engine, username, password string) string {
	t.Helper()
	w := postForm(r, "/login", url.Values{
		"username": {username},
		"password": {password},
	}, "")
	if w.Code != http.StatusFound {
		t.Fatalf("login %s: status %d, body %q", username, w.Code, w.Body.String())
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == "askbox_session" {
			return c.Name + "=" + c.Value
		}
	}
	t.Fatal("login set no session cookie")
	return ""
}

func assertRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302; body %q", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Location"); got != location {
		t.Errorf("redirect to %q, want %q", got, location)
	}
}

func assertBody(t *testing.T, w *httptest.ResponseRecorder, wantStatus int, wantSubstring string) {
	t.Helper()
	if w.Code != wantStatus {
		t.Errorf("status = %d, want %d", w.Code, wantStatus)
	}
	if !strings.Contains(w.Body.String(), wantSubstring) {
		t.Errorf("body %q does not contain %q", w.Body.String(), wantSubstring)
	}
}
