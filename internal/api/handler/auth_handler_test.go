package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pulsefeed/content-service/internal/api/middleware"
	"github.com/pulsefeed/content-service/internal/core/domain"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, username, password, confirm string) (*domain.User, error)
	loginFn    func(ctx context.Context, username, password string) (string, *domain.User, error)
	logoutFn   func(ctx context.Context, username string) error
}

func (s *stubAuthService) Register(ctx context.Context, username, password, confirm string) (*domain.User, error) {
	return s.registerFn(ctx, username, password, confirm)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Resolve(context.Context, string) (*domain.User, error) {
	panic("not used")
}

func (s *stubAuthService) Logout(ctx context.Context, username string) error {
	return s.logoutFn(ctx, username)
}

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, username, password, confirm string) (*domain.User, error) {
			if username != "alice" || password != "Sup3rb-pass" || confirm != "Sup3rb-pass" {
				t.Fatalf("unexpected args: %s %s %s", username, password, confirm)
			}
			return &domain.User{ID: "1", Username: username}, nil
		},
	}
	h := NewAuthHandler(stub, time.Hour)

	c, rec := newTestContext(t, http.MethodPost, "/auth/register",
		`{"username":"alice","password":"Sup3rb-pass","confirm_password":"Sup3rb-pass"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp registerResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.User.Username != "alice" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_Register_ServiceErrorsPropagate(t *testing.T) {
	for _, want := range []error{
		domain.ErrWeakPassword,
		domain.ErrPasswordMismatch,
		domain.ErrUsernameTaken,
	} {
		stub := &stubAuthService{
			registerFn: func(context.Context, string, string, string) (*domain.User, error) {
				return nil, want
			},
		}
		h := NewAuthHandler(stub, time.Hour)

		c, _ := newTestContext(t, http.MethodPost, "/auth/register",
			`{"username":"alice","password":"x","confirm_password":"y"}`)
		if err := h.Register(c); !errors.Is(err, want) {
			t.Fatalf("expected %v, got %v", want, err)
		}
	}
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, string, string, string) (*domain.User, error) {
			t.Fatalf("service must not be called on invalid payload")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub, time.Hour)

	c, _ := newTestContext(t, http.MethodPost, "/auth/register", `{"username":"alice"}`)
	err := h.Register(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Login_SetsSessionCookie(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, username, password string) (string, *domain.User, error) {
			return "raw-token", &domain.User{ID: "1", Username: username}, nil
		},
	}
	h := NewAuthHandler(stub, time.Hour)

	c, rec := newTestContext(t, http.MethodPost, "/auth/login",
		`{"username":"alice","password":"Sup3rb-pass"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var cookie *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.SessionCookie {
			cookie = ck
		}
	}
	if cookie == nil {
		t.Fatalf("expected session cookie to be set")
	}
	if cookie.Value != "raw-token" {
		t.Fatalf("cookie must carry the raw token, got %q", cookie.Value)
	}
	if !cookie.HttpOnly {
		t.Fatalf("session cookie must be http-only")
	}
	if cookie.MaxAge != 3600 {
		t.Fatalf("expected 1h lifetime, got %d", cookie.MaxAge)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub, time.Hour)

	c, rec := newTestContext(t, http.MethodPost, "/auth/login",
		`{"username":"alice","password":"wrong"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.SessionCookie {
			t.Fatalf("no cookie may be set on failed login")
		}
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	loggedOut := ""
	stub := &stubAuthService{
		logoutFn: func(_ context.Context, username string) error {
			loggedOut = username
			return nil
		},
	}
	h := NewAuthHandler(stub, time.Hour)

	c, rec := newTestContext(t, http.MethodPost, "/auth/logout", "")
	c.Set("username", "alice")
	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if loggedOut != "alice" {
		t.Fatalf("expected logout for alice, got %q", loggedOut)
	}

	expired := false
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.SessionCookie && ck.MaxAge < 0 {
			expired = true
		}
	}
	if !expired {
		t.Fatalf("expected session cookie to be expired")
	}
}

func TestAuthHandler_Logout_NoIdentity(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, time.Hour)

	c, _ := newTestContext(t, http.MethodPost, "/auth/logout", "")
	err := h.Logout(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403 HTTPError, got %v", err)
	}
}
