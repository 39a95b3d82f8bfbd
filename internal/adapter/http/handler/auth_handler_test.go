package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/xiri/xiri-api/internal/adapter/http/dto"
	"github.com/xiri/xiri-api/internal/adapter/http/middleware"
	"github.com/xiri/xiri-api/internal/domain"
	"github.com/xiri/xiri-api/internal/infrastructure/auth"
)

type sessionServiceStub struct {
	loginFn      func(ctx context.Context, email, password string) (*domain.Identity, error)
	switchViewFn func(ctx context.Context, identity *domain.Identity, mode domain.ViewMode) (*domain.Identity, error)
	signOutFn    func(ctx context.Context, sessionID string) error
}

func (s *sessionServiceStub) Login(ctx context.Context, email, password string) (*domain.Identity, error) {
	return s.loginFn(ctx, email, password)
}

func (s *sessionServiceStub) SwitchView(ctx context.Context, identity *domain.Identity, mode domain.ViewMode) (*domain.Identity, error) {
	return s.switchViewFn(ctx, identity, mode)
}

func (s *sessionServiceStub) SignOut(ctx context.Context, sessionID string) error {
	if s.signOutFn != nil {
		return s.signOutFn(ctx, sessionID)
	}
	return nil
}

func identityRequest(method, path string, identity *domain.Identity, body []byte) *http.Request {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if identity != nil {
		ctx := context.WithValue(req.Context(), middleware.IdentityContextKey, identity)
		req = req.WithContext(ctx)
	}
	return req
}

func TestAuthHandler_Login_Success(t *testing.T) {
	identity := &domain.Identity{
		ID:        "u-1",
		Email:     "sales@xiri.io",
		Role:      domain.RoleSales,
		ViewMode:  domain.ViewModeSales,
		SessionID: "sess-1",
	}
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	h := NewAuthHandler(&sessionServiceStub{
		loginFn: func(ctx context.Context, email, password string) (*domain.Identity, error) {
			if email != "sales@xiri.io" || password != "password123" {
				t.Fatalf("unexpected credentials: %s", email)
			}
			return identity, nil
		},
	}, jwtManager, nil)

	body, _ := json.Marshal(dto.LoginRequest{Email: "sales@xiri.io", Password: "password123"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/session", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Identity.EffectiveRole != domain.RoleSales {
		t.Fatalf("expected effective role sales, got %s", resp.Identity.EffectiveRole)
	}

	claims, err := jwtManager.Verify(resp.Token)
	if err != nil {
		t.Fatalf("expected verifiable token: %v", err)
	}
	if claims.SessionID != "sess-1" {
		t.Fatalf("expected token to carry session ID, got %s", claims.SessionID)
	}

	cookieSet := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.CredentialCookie && c.Value == resp.Token && c.HttpOnly {
			cookieSet = true
		}
	}
	if !cookieSet {
		t.Fatal("expected credential cookie to be set")
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&sessionServiceStub{
		loginFn: func(ctx context.Context, email, password string) (*domain.Identity, error) {
			return nil, domain.ErrUnauthorized
		},
	}, auth.NewJWTManager("test-secret", time.Hour), nil)

	body, _ := json.Marshal(dto.LoginRequest{Email: "who@xiri.io", Password: "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/session", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_SwitchView(t *testing.T) {
	identity := &domain.Identity{
		ID:        "u-1",
		Role:      domain.RoleSuperAdmin,
		SessionID: "sess-1",
	}

	var gotMode domain.ViewMode
	h := NewAuthHandler(&sessionServiceStub{
		switchViewFn: func(ctx context.Context, id *domain.Identity, mode domain.ViewMode) (*domain.Identity, error) {
			gotMode = mode
			updated := *id
			updated.ViewMode = mode
			return &updated, nil
		},
	}, auth.NewJWTManager("test-secret", time.Hour), nil)

	body, _ := json.Marshal(dto.SwitchViewRequest{Mode: "recruiter"})
	rec := httptest.NewRecorder()

	h.SwitchView(rec, identityRequest(http.MethodPost, "/api/v1/session/view", identity, body))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotMode != domain.ViewModeRecruiter {
		t.Fatalf("expected recruiter mode, got %s", gotMode)
	}

	var resp dto.IdentityResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.EffectiveRole != domain.RoleRecruiter {
		t.Fatalf("expected effective role recruiter, got %s", resp.EffectiveRole)
	}
}

func TestAuthHandler_SwitchView_InvalidMode(t *testing.T) {
	h := NewAuthHandler(&sessionServiceStub{
		switchViewFn: func(ctx context.Context, id *domain.Identity, mode domain.ViewMode) (*domain.Identity, error) {
			return nil, domain.ErrInvalidViewMode
		},
	}, auth.NewJWTManager("test-secret", time.Hour), nil)

	body, _ := json.Marshal(dto.SwitchViewRequest{Mode: "owner"})
	rec := httptest.NewRecorder()

	h.SwitchView(rec, identityRequest(http.MethodPost, "/api/v1/session/view", &domain.Identity{Role: domain.RoleSuperAdmin}, body))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	signedOut := ""
	h := NewAuthHandler(&sessionServiceStub{
		signOutFn: func(ctx context.Context, sessionID string) error {
			signedOut = sessionID
			return nil
		},
	}, auth.NewJWTManager("test-secret", time.Hour), nil)

	rec := httptest.NewRecorder()
	h.Logout(rec, identityRequest(http.MethodDelete, "/api/v1/session", &domain.Identity{SessionID: "sess-9"}, nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if signedOut != "sess-9" {
		t.Fatalf("expected sign-out of sess-9, got %q", signedOut)
	}

	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.CredentialCookie && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("expected credential cookie to be cleared")
	}
}

func TestAuthHandler_Logout_WithoutIdentity(t *testing.T) {
	h := NewAuthHandler(&sessionServiceStub{
		signOutFn: func(ctx context.Context, sessionID string) error {
			t.Fatal("sign-out should not be called without an identity")
			return nil
		},
	}, auth.NewJWTManager("test-secret", time.Hour), nil)

	rec := httptest.NewRecorder()
	h.Logout(rec, identityRequest(http.MethodDelete, "/api/v1/session", nil, nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
