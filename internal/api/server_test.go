package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/lumbrapp/lumbr-server/internal/auth"
	"github.com/lumbrapp/lumbr-server/internal/domain"
	"github.com/lumbrapp/lumbr-server/internal/id"
	"github.com/lumbrapp/lumbr-server/internal/search"
	"github.com/lumbrapp/lumbr-server/internal/service"
	"github.com/lumbrapp/lumbr-server/internal/store/sqlite"
)

// testEnvelope mirrors the response envelope for unmarshaling in tests.
type testEnvelope[T any] struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// testServer wraps the API server for handler testing.
type testServer struct {
	*Server
	api          humatest.TestAPI
	tokenService *auth.TokenService
}

// setupTestServer creates a test server backed by a throwaway store and
// search index.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	tmpDir := t.TempDir()
	logger := slog.New(slog.DiscardHandler)

	st, err := sqlite.Open(tmpDir+"/test.db", logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	authKey, err := auth.LoadOrGenerateKey(tmpDir)
	require.NoError(t, err)

	tokenService, err := auth.NewTokenService(authKey, 15*time.Minute, 30*24*time.Hour)
	require.NoError(t, err)

	index, err := search.NewIndex(search.Options{DataPath: tmpDir, Logger: logger})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	searchService := service.NewSearchService(st, index, logger)
	sessionService := service.NewSessionService(st, tokenService, logger)
	authService := service.NewAuthService(st, tokenService, sessionService, logger)
	tagService := service.NewTagService(st, logger)
	logService := service.NewLogService(st, tagService, searchService, logger)
	postService := service.NewPostService(st, searchService, logger)
	commentService := service.NewCommentService(st, searchService, logger)
	socialService := service.NewSocialService(st, logger)
	userService := service.NewUserService(st, searchService, logger)
	reportService := service.NewReportService(st, logger)
	moderationService := service.NewModerationService(st, searchService, logger)

	services := &Services{
		Auth:       authService,
		Session:    sessionService,
		User:       userService,
		Tag:        tagService,
		Log:        logService,
		Post:       postService,
		Comment:    commentService,
		Social:     socialService,
		Report:     reportService,
		Moderation: moderationService,
		Search:     searchService,
	}

	router := chi.NewRouter()
	router.Use(authMiddleware(services.Auth))

	humaConfig := huma.DefaultConfig("Lumbr API Test", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	api := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		store:           st,
		services:        services,
		router:          router,
		api:             api,
		logger:          logger,
		authRateLimiter: NewRateLimiter(100, time.Minute, 50),
	}

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerUserRoutes()
	s.registerTagRoutes()
	s.registerLogRoutes()
	s.registerPostRoutes()
	s.registerCommentRoutes()
	s.registerSocialRoutes()
	s.registerReportRoutes()
	s.registerSearchRoutes()
	s.registerAdminRoutes()

	return &testServer{
		Server:       s,
		api:          humatest.Wrap(t, api),
		tokenService: tokenService,
	}
}

// createTestUser registers a user through the API and returns the access
// token and user ID.
func (ts *testServer) createTestUser(t *testing.T, username string) (token string, userID string) {
	t.Helper()

	resp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"email":    username + "@test.com",
		"username": username,
		"name":     "Test " + username,
		"password": "TestPassword123!",
	})
	require.Equal(t, http.StatusOK, resp.Code, "Register failed: %s", resp.Body.String())

	var envelope testEnvelope[AuthResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	return envelope.Data.AccessToken, envelope.Data.User.ID
}

// createTestAdmin registers a user and promotes it to admin in the store.
func (ts *testServer) createTestAdmin(t *testing.T, username string) (token string, userID string) {
	t.Helper()

	token, userID = ts.createTestUser(t, username)

	ctx := context.Background()
	u, err := ts.store.GetUser(ctx, userID)
	require.NoError(t, err)
	u.Role = domain.RoleAdmin
	require.NoError(t, ts.store.UpdateUser(ctx, u))

	return token, userID
}

// seedTestTag inserts a catalog tag directly into the store.
func (ts *testServer) seedTestTag(t *testing.T, slug string) *domain.Tag {
	t.Helper()

	tag := &domain.Tag{
		ID:        id.MustGenerate("tag"),
		Slug:      slug,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, ts.store.CreateTag(context.Background(), tag))
	return tag
}

// createTestLog creates a log through the API and returns its ID.
func (ts *testServer) createTestLog(t *testing.T, token, title string) string {
	t.Helper()

	resp := ts.api.Post("/api/v1/logs",
		map[string]any{"title": title},
		"Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code, "Create log failed: %s", resp.Body.String())

	var envelope testEnvelope[LogResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	return envelope.Data.ID
}
