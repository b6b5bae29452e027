package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"blogify/errors"
	"blogify/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

type stubAuthService struct {
	user *models.User
	err  error
}

func (s *stubAuthService) Signup(ctx context.Context, req *models.SignupRequest) (*models.User, error) {
	return s.user, s.err
}

func (s *stubAuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, error) {
	return s.user, s.err
}

func newAuthTestApp(svc *stubAuthService) *fiber.App {
	store := session.New()
	handler := NewAuthHandler(svc, store)

	app := fiber.New(fiber.Config{
		ErrorHandler: NewErrorHandler(quietLogger()),
	})
	app.Post("/api/signup", handler.Signup)
	app.Post("/api/login", handler.Login)
	app.Post("/api/logout", handler.Logout)

	app.Get("/api/whoami", handler.RequireAuth, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": currentUserID(c)})
	})

	return app
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == "session_id" {
			return c
		}
	}
	t.Fatal("expected a session cookie")
	return nil
}

func TestLoginStartsSession(t *testing.T) {
	svc := &stubAuthService{user: &models.User{ID: 7, Username: "alice"}}
	app := newAuthTestApp(svc)

	req := httptest.NewRequest("POST", "/api/login",
		strings.NewReader(`{"username": "alice", "password": "hunter22"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to test request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	cookie := sessionCookie(t, resp)

	// The cookie should authenticate subsequent requests.
	authed := httptest.NewRequest("GET", "/api/whoami", nil)
	authed.AddCookie(cookie)

	resp, err = app.Test(authed)
	if err != nil {
		t.Fatalf("Failed to test request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected status 200 with session, got %d", resp.StatusCode)
	}

	var response struct {
		UserID int64 `json:"user_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response body: %v", err)
	}
	if response.UserID != 7 {
		t.Errorf("Expected user 7 from session, got %d", response.UserID)
	}
}

func TestSignupCreatedStatus(t *testing.T) {
	svc := &stubAuthService{user: &models.User{ID: 1, Username: "alice"}}
	app := newAuthTestApp(svc)

	req := httptest.NewRequest("POST", "/api/signup",
		strings.NewReader(`{"username": "alice", "email": "a@example.com", "password": "x", "repeatPassword": "x"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to test request: %v", err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Errorf("Expected status 201, got %d", resp.StatusCode)
	}
	sessionCookie(t, resp)
}

func TestLoginRejected(t *testing.T) {
	svc := &stubAuthService{
		err: errors.Unauthorized("AuthService.Login", nil, "Invalid username or password"),
	}
	app := newAuthTestApp(svc)

	req := httptest.NewRequest("POST", "/api/login",
		strings.NewReader(`{"username": "alice", "password": "wrong"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to test request: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", resp.StatusCode)
	}
	for _, c := range resp.Cookies() {
		if c.Name == "session_id" && c.Value != "" {
			t.Error("No session must be issued on failed login")
		}
	}
}

func TestRequireAuthWithoutSession(t *testing.T) {
	app := newAuthTestApp(&stubAuthService{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/whoami", nil))
	if err != nil {
		t.Fatalf("Failed to test request: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", resp.StatusCode)
	}
}

func TestLogoutEndsSession(t *testing.T) {
	svc := &stubAuthService{user: &models.User{ID: 3, Username: "bob"}}
	app := newAuthTestApp(svc)

	login := httptest.NewRequest("POST", "/api/login",
		strings.NewReader(`{"username": "bob", "password": "pw"}`))
	login.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(login)
	if err != nil {
		t.Fatalf("Failed to test request: %v", err)
	}
	cookie := sessionCookie(t, resp)

	logout := httptest.NewRequest("POST", "/api/logout", nil)
	logout.AddCookie(cookie)
	if _, err := app.Test(logout); err != nil {
		t.Fatalf("Failed to test request: %v", err)
	}

	authed := httptest.NewRequest("GET", "/api/whoami", nil)
	authed.AddCookie(cookie)
	resp, err = app.Test(authed)
	if err != nil {
		t.Fatalf("Failed to test request: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("Expected status 401 after logout, got %d", resp.StatusCode)
	}
}
