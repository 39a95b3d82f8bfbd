package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	adaptershttp "github.com/xiri/xiri-api/internal/adapter/http"
	"github.com/xiri/xiri-api/internal/adapter/http/dto"
	"github.com/xiri/xiri-api/internal/adapter/http/handler"
	"github.com/xiri/xiri-api/internal/adapter/http/middleware"
	"github.com/xiri/xiri-api/internal/adapter/repository/postgres"
	redisrepo "github.com/xiri/xiri-api/internal/adapter/repository/redis"
	"github.com/xiri/xiri-api/internal/infrastructure/auth"
	infraredis "github.com/xiri/xiri-api/internal/infrastructure/redis"
	"github.com/xiri/xiri-api/internal/usecase"
	"github.com/xiri/xiri-api/tests/testutil"
)

// testEnv wires the full HTTP stack against real Postgres and Redis.
type testEnv struct {
	DB     *testutil.TestDB
	Redis  *goredis.Client
	Router http.Handler

	Outbox usecase.OutboxRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	t.Cleanup(testDB.Cleanup)
	testDB.TruncateAll(ctx)

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}
	redisClient, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { _ = redisClient.Close() })

	pool := testDB.Pool
	logger := zerolog.New(io.Discard)

	txManager := postgres.NewTxManager(pool)
	userRepo := postgres.NewUserRepository(pool)
	vendorRepo := postgres.NewVendorRepository(pool)
	jobRepo := postgres.NewJobRepository(pool)
	reportRepo := postgres.NewAuditReportRepository(pool)
	accountRepo := postgres.NewAccountRepository(pool)
	territoryRepo := postgres.NewTerritoryRepository(pool)
	outboxRepo := postgres.NewOutboxRepository(pool)
	retrier := postgres.NewRetrier()
	idGen := postgres.NewULIDGenerator()
	sessionStore := redisrepo.NewSessionStore(redisClient, time.Hour)
	cache := redisrepo.NewCache(redisClient)
	idempotencyStore := redisrepo.NewIdempotencyStore(redisClient)

	sessionUC := usecase.NewSessionUseCase(userRepo, sessionStore, cache, outboxRepo, idGen, retrier, logger, time.Minute)
	userUC := usecase.NewUserUseCase(userRepo, idGen)
	vendorUC := usecase.NewVendorUseCase(vendorRepo, territoryRepo, nil, outboxRepo, idGen, logger)
	jobUC := usecase.NewJobUseCase(txManager, jobRepo, vendorRepo, reportRepo, outboxRepo, idGen)
	accountUC := usecase.NewAccountUseCase(accountRepo, outboxRepo, idGen, logger)

	jwtManager := auth.NewJWTManager("integration-test-secret", time.Hour)
	authenticator := middleware.NewAuthenticator(jwtManager, sessionUC, nil, logger)

	router := adaptershttp.NewRouter(adaptershttp.RouterConfig{
		AuthHandler:      handler.NewAuthHandler(sessionUC, jwtManager, nil),
		PageHandler:      handler.NewPageHandler(userUC, vendorUC, jobUC, accountUC),
		UserHandler:      handler.NewUserHandler(userUC),
		VendorHandler:    handler.NewVendorHandler(vendorUC, nil),
		JobHandler:       handler.NewJobHandler(jobUC, nil),
		AuditHandler:     handler.NewAuditHandler(jobUC, nil),
		AccountHandler:   handler.NewAccountHandler(accountUC, nil),
		TerritoryHandler: handler.NewTerritoryHandler(territoryRepo),
		HealthHandler:    handler.NewHealthHandler(pool, redisClient),
		Authenticator:    authenticator,
		IdempotencyStore: idempotencyStore,
		Logger:           logger,
	})

	return &testEnv{
		DB:     testDB,
		Redis:  redisClient,
		Router: router,
		Outbox: outboxRepo,
	}
}

// login signs in through the API and returns the bearer token.
func (env *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()

	body, _ := json.Marshal(dto.LoginRequest{Email: email, Password: password})
	r := httptest.NewRequest(http.MethodPost, "/api/v1/session", bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	env.Router.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("login failed with status %d: %s", w.Code, w.Body.String())
	}

	var resp dto.LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse login response: %v", err)
	}
	return resp.Token
}

// do performs a request with an optional bearer token and JSON payload.
func (env *testEnv) do(t *testing.T, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	}

	r := httptest.NewRequest(method, path, body)
	if payload != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.Router.ServeHTTP(w, r)
	return w
}
