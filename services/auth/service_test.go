package auth

import (
	"context"
	"testing"

	"blogify/errors"
	"blogify/models"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users  map[string]*models.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if _, exists := f.users[user.Username]; exists {
		return errors.Conflict("fakeUserRepo.Create", nil, "Username already taken")
	}
	f.nextID++
	user.ID = f.nextID
	f.users[user.Username] = user
	return nil
}

func (f *fakeUserRepo) FindUser(ctx context.Context, id int64) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, errors.NotFound("fakeUserRepo.FindUser", nil, "User not found")
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if u, ok := f.users[username]; ok {
		return u, nil
	}
	return nil, errors.NotFound("fakeUserRepo.FindByUsername", nil, "User not found")
}

func newTestService(repo *fakeUserRepo) Service {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewService(repo, logger)
}

func validSignup() *models.SignupRequest {
	return &models.SignupRequest{
		Username:       "alice",
		Email:          "alice@example.com",
		Password:       "hunter22",
		RepeatPassword: "hunter22",
	}
}

func TestSignup(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	user, err := svc.Signup(context.Background(), validSignup())
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}

	if user.ID == 0 {
		t.Error("expected assigned user id")
	}
	if user.PasswordHash == "hunter22" {
		t.Error("password must not be stored in the clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter22")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
}

func TestSignupValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.SignupRequest)
	}{
		{"missing username", func(r *models.SignupRequest) { r.Username = "" }},
		{"missing email", func(r *models.SignupRequest) { r.Email = "" }},
		{"missing password", func(r *models.SignupRequest) { r.Password = "" }},
		{"password mismatch", func(r *models.SignupRequest) { r.RepeatPassword = "other" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(newFakeUserRepo())
			req := validSignup()
			tt.mutate(req)

			_, err := svc.Signup(context.Background(), req)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if appErr := err.(*errors.AppError); appErr.Code != 400 {
				t.Errorf("expected 400, got %d", appErr.Code)
			}
		})
	}
}

func TestSignupDuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, validSignup()); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}

	_, err := svc.Signup(ctx, validSignup())
	if err == nil {
		t.Fatal("expected error for duplicate username")
	}
	if appErr := err.(*errors.AppError); appErr.Code != 409 {
		t.Errorf("expected 409, got %d", appErr.Code)
	}
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	created, err := svc.Signup(ctx, validSignup())
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}

	user, err := svc.Login(ctx, &models.LoginRequest{Username: "alice", Password: "hunter22"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.ID != created.ID {
		t.Errorf("expected user %d, got %d", created.ID, user.ID)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, validSignup()); err != nil {
		t.Fatalf("Signup failed: %v", err)
	}

	tests := []struct {
		name string
		req  *models.LoginRequest
	}{
		{"wrong password", &models.LoginRequest{Username: "alice", Password: "wrong"}},
		{"unknown user", &models.LoginRequest{Username: "mallory", Password: "hunter22"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tt.req)
			if err == nil {
				t.Fatal("expected authentication error")
			}
			appErr := err.(*errors.AppError)
			if appErr.Code != 401 {
				t.Errorf("expected 401, got %d", appErr.Code)
			}
			if appErr.Message != "Invalid username or password" {
				t.Errorf("unexpected message %q", appErr.Message)
			}
		})
	}
}
