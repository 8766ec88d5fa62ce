package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/atinyakov/kotodex/internal/middleware"
	"github.com/atinyakov/kotodex/internal/models"
	"github.com/atinyakov/kotodex/internal/service"
	"github.com/atinyakov/kotodex/internal/token"
	"go.uber.org/zap"
)

// fakeAuthService implements AuthService for testing.
type fakeAuthService struct {
	registerUser *models.User
	registerErr  error
	authUser     *models.User
	authErr      error
	getUser      *models.User
	getErr       error
}

func (f *fakeAuthService) Register(ctx context.Context, fullName, email, password string) (*models.User, error) {
	return f.registerUser, f.registerErr
}

func (f *fakeAuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	return f.authUser, f.authErr
}

func (f *fakeAuthService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return f.getUser, f.getErr
}

// fakeIssuer implements TokenIssuer for testing.
type fakeIssuer struct {
	token string
	err   error
}

func (f *fakeIssuer) Issue(userID string) (string, error) { return f.token, f.err }

func TestAuthHandler_CreateAccount(t *testing.T) {
	ana := &models.User{ID: "u1", FullName: "Ana", Email: "a@x.com", PasswordHash: "$2a$10$hash"}

	tests := []struct {
		name           string
		body           string
		service        *fakeAuthService
		expectedCode   int
		expectedSubstr string
	}{
		{
			name:           "invalid JSON",
			body:           `not a json`,
			service:        &fakeAuthService{},
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: "invalid request body",
		},
		{
			name:           "missing field",
			body:           `{"email":"a@x.com","password":"pw1"}`,
			service:        &fakeAuthService{registerErr: &service.ValidationError{Message: "full name is required"}},
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: "full name is required",
		},
		{
			name:           "duplicate email",
			body:           `{"fullName":"Ana","email":"a@x.com","password":"pw1"}`,
			service:        &fakeAuthService{registerErr: service.ErrDuplicateEmail},
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: "user already exists",
		},
		{
			name:           "store failure",
			body:           `{"fullName":"Ana","email":"a@x.com","password":"pw1"}`,
			service:        &fakeAuthService{registerErr: errors.New("db down")},
			expectedCode:   http.StatusInternalServerError,
			expectedSubstr: "internal server error",
		},
		{
			name:           "success",
			body:           `{"fullName":"Ana","email":"a@x.com","password":"pw1"}`,
			service:        &fakeAuthService{registerUser: ana},
			expectedCode:   http.StatusCreated,
			expectedSubstr: `"accessToken":"tok-1"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/create-account", bytes.NewBufferString(tt.body))
			h := &AuthHandler{AuthService: tt.service, Tokens: &fakeIssuer{token: "tok-1"}}
			h.CreateAccount(rec, req)

			if rec.Code != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, rec.Code)
			}
			if !bytes.Contains(rec.Body.Bytes(), []byte(tt.expectedSubstr)) {
				t.Errorf("expected body to contain %q, got %q", tt.expectedSubstr, rec.Body.String())
			}
		})
	}
}

func TestAuthHandler_CreateAccount_NeverLeaksHash(t *testing.T) {
	ana := &models.User{ID: "u1", FullName: "Ana", Email: "a@x.com", PasswordHash: "$2a$10$sekret"}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/create-account", bytes.NewBufferString(`{"fullName":"Ana","email":"a@x.com","password":"pw1"}`))
	h := &AuthHandler{AuthService: &fakeAuthService{registerUser: ana}, Tokens: &fakeIssuer{token: "tok-1"}}
	h.CreateAccount(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if bytes.Contains(rec.Body.Bytes(), []byte("sekret")) {
		t.Errorf("response leaked the password hash: %s", rec.Body.String())
	}
}

func TestAuthHandler_Login(t *testing.T) {
	ana := &models.User{ID: "u1", FullName: "Ana", Email: "a@x.com"}

	tests := []struct {
		name           string
		body           string
		service        *fakeAuthService
		expectedCode   int
		expectedSubstr string
	}{
		{
			name:           "missing fields",
			body:           `{"email":"a@x.com"}`,
			service:        &fakeAuthService{authErr: &service.ValidationError{Message: "email and password are required"}},
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: "email and password are required",
		},
		{
			name:           "unknown user",
			body:           `{"email":"ghost@x.com","password":"pw"}`,
			service:        &fakeAuthService{authErr: service.ErrUserNotFound},
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: "user not found",
		},
		{
			name:           "wrong password",
			body:           `{"email":"a@x.com","password":"nope"}`,
			service:        &fakeAuthService{authErr: service.ErrInvalidCredential},
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: "invalid credentials",
		},
		{
			name:           "store failure",
			body:           `{"email":"a@x.com","password":"pw1"}`,
			service:        &fakeAuthService{authErr: errors.New("db down")},
			expectedCode:   http.StatusInternalServerError,
			expectedSubstr: "internal server error",
		},
		{
			name:           "success",
			body:           `{"email":"a@x.com","password":"pw1"}`,
			service:        &fakeAuthService{authUser: ana},
			expectedCode:   http.StatusOK,
			expectedSubstr: `"accessToken":"tok-1"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/login", bytes.NewBufferString(tt.body))
			h := &AuthHandler{AuthService: tt.service, Tokens: &fakeIssuer{token: "tok-1"}}
			h.Login(rec, req)

			if rec.Code != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, rec.Code)
			}
			if !bytes.Contains(rec.Body.Bytes(), []byte(tt.expectedSubstr)) {
				t.Errorf("expected body to contain %q, got %q", tt.expectedSubstr, rec.Body.String())
			}
		})
	}
}

func TestAuthHandler_GetUser_Vanished(t *testing.T) {
	// A valid token whose subject no longer resolves yields a bare 401.
	rec := httptest.NewRecorder()
	req := withUser(httptest.NewRequest("GET", "/get-user", nil), "gone")
	h := &AuthHandler{AuthService: &fakeAuthService{getErr: service.ErrUserNotFound}}
	h.GetUser(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_GetUser_Success(t *testing.T) {
	ana := &models.User{ID: "u1", FullName: "Ana", Email: "a@x.com", CreatedAt: time.Now()}
	rec := httptest.NewRecorder()
	req := withUser(httptest.NewRequest("GET", "/get-user", nil), "u1")
	h := &AuthHandler{AuthService: &fakeAuthService{getUser: ana}}
	h.GetUser(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		User struct {
			FullName string `json:"fullName"`
			ID       string `json:"_id"`
		} `json:"user"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if resp.User.ID != "u1" || resp.User.FullName != "Ana" {
		t.Errorf("unexpected user payload: %+v", resp.User)
	}
	if resp.Message != "" {
		t.Errorf("expected empty message, got %q", resp.Message)
	}
}

// withUser routes the request through the auth middleware with a verifier
// that always resolves userID, so the handler sees a realistic context.
func withUser(req *http.Request, userID string) *http.Request {
	var out *http.Request
	capture := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { out = r })
	middleware.Auth(staticVerifier(userID), zap.NewNop())(capture).
		ServeHTTP(httptest.NewRecorder(), withBearer(req))
	return out
}

type staticVerifier string

func (s staticVerifier) Verify(string) (string, error) {
	if s == "" {
		return "", token.ErrInvalid
	}
	return string(s), nil
}

func withBearer(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer test-token")
	return req
}
