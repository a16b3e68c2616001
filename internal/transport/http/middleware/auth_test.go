package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ErlanBelekov/pdf-transparency/internal/domain"
	"github.com/ErlanBelekov/pdf-transparency/internal/session"
	"github.com/ErlanBelekov/pdf-transparency/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
)

const testKey = "middleware-test-secret-32-chars!!"

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeValidator struct {
	validate func(raw string) (string, error)
}

func (v *fakeValidator) Validate(raw string) (string, error) {
	return v.validate(raw)
}

// newEngine builds a minimal gin engine with the Session middleware
// protecting GET /protected. The handler writes the userID from context so
// we can assert it was set.
func newEngine(v middleware.SessionValidator) *gin.Engine {
	r := gin.New()
	r.GET("/protected", middleware.Session(v), func(c *gin.Context) {
		c.String(http.StatusOK, "%v", c.GetString("userID"))
	})
	return r
}

func request(cookie string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: cookie})
	}
	return req
}

func TestSession_MissingCookie_Returns401(t *testing.T) {
	v := &fakeValidator{validate: func(string) (string, error) {
		t.Fatal("validator must not run without a cookie")
		return "", nil
	}}

	w := httptest.NewRecorder()
	newEngine(v).ServeHTTP(w, request(""))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestSession_InvalidToken_Returns401(t *testing.T) {
	v := &fakeValidator{validate: func(string) (string, error) {
		return "", domain.ErrUnauthenticated
	}}

	w := httptest.NewRecorder()
	newEngine(v).ServeHTTP(w, request("not-a-token"))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestSession_ValidatorError_IsOpaque(t *testing.T) {
	v := &fakeValidator{validate: func(string) (string, error) {
		return "", errors.New("internal detail")
	}}

	w := httptest.NewRecorder()
	newEngine(v).ServeHTTP(w, request("whatever"))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if body := w.Body.String(); body != `{"error":"unauthenticated","ok":false}` {
		t.Errorf("body %q leaks failure detail", body)
	}
}

func TestSession_ValidCookie_PassesAndSetsUserID(t *testing.T) {
	issuer := session.NewIssuer([]byte(testKey))
	tok, err := issuer.Issue("user-abc")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	w := httptest.NewRecorder()
	newEngine(issuer).ServeHTTP(w, request(tok))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if got := w.Body.String(); got != "user-abc" {
		t.Errorf("body = %q, want %q", got, "user-abc")
	}
}
