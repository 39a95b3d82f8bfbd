package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/xiri/xiri-api/internal/domain"
)

type fakeIdempotencyStore struct {
	checkAndSetFn func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	updateFn      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func (f *fakeIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if f.checkAndSetFn != nil {
		return f.checkAndSetFn(ctx, key, response, ttl)
	}
	return false, nil, nil
}

func (f *fakeIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, key, response, ttl)
	}
	return nil
}

func idempotentRequest(method, path, userID string) *http.Request {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(`{}`))
	if userID != "" {
		identity := &domain.Identity{ID: userID, Role: domain.RoleAuditor}
		req = req.WithContext(withIdentity(req.Context(), identity))
	}
	return req
}

func cachedEnvelope(t *testing.T, status int, body string) []byte {
	t.Helper()
	payload, err := json.Marshal(storedResponse{Status: status, Body: []byte(body)})
	if err != nil {
		t.Fatalf("failed to marshal envelope: %v", err)
	}
	return payload
}

func TestIdempotencyMiddleware_IgnoresStoreErrors(t *testing.T) {
	var called bool
	store := &fakeIdempotencyStore{
		checkAndSetFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
			return false, nil, context.DeadlineExceeded
		},
	}
	mw := NewIdempotencyMiddleware(store)

	req := idempotentRequest(http.MethodPost, "/api/v1/audits", "u-1")
	req.Header.Set(IdempotencyKeyHeader, "key-err")
	rr := httptest.NewRecorder()

	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})).ServeHTTP(rr, req)

	if called {
		t.Fatalf("handler should not be called when store errors")
	}

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rr.Code)
	}
}

func TestIdempotencyMiddleware_DoesNotCacheFailedResponses(t *testing.T) {
	var updated bool
	store := &fakeIdempotencyStore{
		checkAndSetFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
			return false, nil, nil
		},
		updateFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) error {
			updated = true
			return nil
		},
	}
	mw := NewIdempotencyMiddleware(store)

	req := idempotentRequest(http.MethodPost, "/api/v1/audits", "u-1")
	req.Header.Set(IdempotencyKeyHeader, "key-fail")
	rr := httptest.NewRecorder()

	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})).ServeHTTP(rr, req)

	if updated {
		t.Fatalf("expected error responses not to be cached")
	}
}

func TestIdempotencyMiddleware_SkipsNonMutatingRequests(t *testing.T) {
	store := &fakeIdempotencyStore{
		checkAndSetFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
			t.Fatalf("store should not be consulted for GET requests")
			return false, nil, nil
		},
	}
	mw := NewIdempotencyMiddleware(store)

	req := idempotentRequest(http.MethodGet, "/api/v1/vendors", "u-1")
	rr := httptest.NewRecorder()

	called := false
	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})).ServeHTTP(rr, req)

	if !called {
		t.Fatalf("expected next handler to be called")
	}
}

func TestIdempotencyMiddleware_SkipsWithoutIdentity(t *testing.T) {
	store := &fakeIdempotencyStore{
		checkAndSetFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
			t.Fatalf("store should not be consulted without an identity to scope by")
			return false, nil, nil
		},
	}
	mw := NewIdempotencyMiddleware(store)

	req := idempotentRequest(http.MethodPost, "/api/v1/audits", "")
	req.Header.Set(IdempotencyKeyHeader, "key-anon")
	rr := httptest.NewRecorder()

	called := false
	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})).ServeHTTP(rr, req)

	if !called {
		t.Fatalf("expected next handler to be called")
	}
}

func TestIdempotencyMiddleware_ScopesKeysByIdentity(t *testing.T) {
	var seenKeys []string
	store := &fakeIdempotencyStore{
		checkAndSetFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
			seenKeys = append(seenKeys, key)
			return false, nil, nil
		},
	}
	mw := NewIdempotencyMiddleware(store)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	for _, userID := range []string{"u-admin", "u-sales"} {
		req := idempotentRequest(http.MethodPost, "/api/v1/users", userID)
		req.Header.Set(IdempotencyKeyHeader, "shared-key")
		mw.Wrap(next).ServeHTTP(httptest.NewRecorder(), req)
	}

	if len(seenKeys) != 2 || seenKeys[0] != "u-admin:shared-key" || seenKeys[1] != "u-sales:shared-key" {
		t.Fatalf("expected per-identity keys, got %v", seenKeys)
	}
}

func TestIdempotencyMiddleware_ReturnsCachedResponse(t *testing.T) {
	store := &fakeIdempotencyStore{
		checkAndSetFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
			return true, cachedEnvelope(t, http.StatusCreated, `{"cached":true}`), nil
		},
	}
	mw := NewIdempotencyMiddleware(store)

	req := idempotentRequest(http.MethodPost, "/api/v1/audits", "u-1")
	req.Header.Set(IdempotencyKeyHeader, "key-123")
	rr := httptest.NewRecorder()

	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler should not be called when cached response exists")
	})).ServeHTTP(rr, req)

	if rr.Header().Get("X-Idempotency-Replay") != "true" {
		t.Fatalf("expected X-Idempotency-Replay header to be set")
	}

	// The original status code replays with the body.
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected replayed status 201, got %d", rr.Code)
	}

	if got := rr.Body.String(); got != `{"cached":true}` {
		t.Fatalf("unexpected cached body: %s", got)
	}
}

func TestIdempotencyMiddleware_StoresSuccessfulResponse(t *testing.T) {
	var updatedKey string
	var updatedPayload []byte
	store := &fakeIdempotencyStore{
		checkAndSetFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
			return false, nil, nil
		},
		updateFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) error {
			updatedKey = key
			updatedPayload = append([]byte(nil), response...)
			return nil
		},
	}
	mw := NewIdempotencyMiddleware(store)

	req := idempotentRequest(http.MethodPost, "/api/v1/audits", "u-1")
	req.Header.Set(IdempotencyKeyHeader, "key-456")
	rr := httptest.NewRecorder()

	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("unexpected status code: %d", rr.Code)
	}

	if updatedKey != "u-1:key-456" {
		t.Fatalf("expected identity-scoped key, got %s", updatedKey)
	}

	var stored storedResponse
	if err := json.Unmarshal(updatedPayload, &stored); err != nil {
		t.Fatalf("failed to parse stored payload: %v", err)
	}
	if stored.Status != http.StatusCreated {
		t.Fatalf("expected stored status 201, got %d", stored.Status)
	}
	if string(stored.Body) != `{"ok":true}` {
		t.Fatalf("expected cached body to be stored, got %s", string(stored.Body))
	}
}
