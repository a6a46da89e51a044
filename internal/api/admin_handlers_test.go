package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fileTestReport files a report through the API and returns its ID.
func (ts *testServer) fileTestReport(t *testing.T, token, logID string) string {
	t.Helper()

	resp := ts.api.Post("/api/v1/reports",
		map[string]any{"log_id": logID, "reason": "spam"},
		"Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var envelope testEnvelope[ReportResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	return envelope.Data.ID
}

func TestAdminSuspendUser_Flow(t *testing.T) {
	ts := setupTestServer(t)

	adminToken, _ := ts.createTestAdmin(t, "admin")
	targetToken, targetID := ts.createTestUser(t, "alice")
	reporterToken, _ := ts.createTestUser(t, "bob")

	offendingLog := ts.createTestLog(t, targetToken, "bad content")
	otherLog := ts.createTestLog(t, targetToken, "fine content")
	ts.fileTestReport(t, reporterToken, offendingLog)

	resp := ts.api.Post("/api/v1/admin/suspensions",
		map[string]any{
			"user_id": targetID,
			"log_id":  offendingLog,
			"reason":  "spam",
			"days":    7,
		},
		"Authorization: Bearer "+adminToken)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var envelope testEnvelope[UserResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.True(t, envelope.Data.Suspended)
	require.NotNil(t, envelope.Data.SuspendDate)

	// The offending log is gone, the other survives.
	resp = ts.api.Get("/api/v1/logs/" + offendingLog)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = ts.api.Get("/api/v1/logs/" + otherLog)
	assert.Equal(t, http.StatusOK, resp.Code)

	// All reports against the user are cleared.
	resp = ts.api.Get("/api/v1/admin/reports", "Authorization: Bearer "+adminToken)
	require.Equal(t, http.StatusOK, resp.Code)

	var reports testEnvelope[ReportListResponse]
	err = json.Unmarshal(resp.Body.Bytes(), &reports)
	require.NoError(t, err)
	assert.Empty(t, reports.Data.Reports)
}

func TestAdminSuspendUser_NonAdmin(t *testing.T) {
	ts := setupTestServer(t)

	memberToken, _ := ts.createTestUser(t, "bob")
	targetToken, targetID := ts.createTestUser(t, "alice")
	logID := ts.createTestLog(t, targetToken, "some log")

	resp := ts.api.Post("/api/v1/admin/suspensions",
		map[string]any{
			"user_id": targetID,
			"log_id":  logID,
			"reason":  "spam",
			"days":    7,
		},
		"Authorization: Bearer "+memberToken)
	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestAdminIgnoreReport(t *testing.T) {
	ts := setupTestServer(t)

	adminToken, _ := ts.createTestAdmin(t, "admin")
	targetToken, _ := ts.createTestUser(t, "alice")
	reporterToken, _ := ts.createTestUser(t, "bob")

	logID := ts.createTestLog(t, targetToken, "reported log")
	reportID := ts.fileTestReport(t, reporterToken, logID)

	resp := ts.api.Delete("/api/v1/admin/reports/"+reportID,
		"Authorization: Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, resp.Code)

	// The log itself is untouched.
	resp = ts.api.Get("/api/v1/logs/" + logID)
	assert.Equal(t, http.StatusOK, resp.Code)

	// A second ignore finds nothing.
	resp = ts.api.Delete("/api/v1/admin/reports/"+reportID,
		"Authorization: Bearer "+adminToken)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestAdminSweepSuspensions(t *testing.T) {
	ts := setupTestServer(t)

	adminToken, _ := ts.createTestAdmin(t, "admin")
	targetToken, targetID := ts.createTestUser(t, "alice")
	logID := ts.createTestLog(t, targetToken, "old log")

	ctx := context.Background()
	err := ts.store.SuspendUser(ctx, targetID, logID, "spam", time.Now().UTC().AddDate(0, 0, -1))
	require.NoError(t, err)

	resp := ts.api.Post("/api/v1/admin/suspensions/sweep",
		"Authorization: Bearer "+adminToken)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var envelope testEnvelope[SweepResponse]
	err = json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)
	assert.Equal(t, 1, envelope.Data.Cleared)

	// Second sweep is a no-op.
	resp = ts.api.Post("/api/v1/admin/suspensions/sweep",
		"Authorization: Bearer "+adminToken)
	require.Equal(t, http.StatusOK, resp.Code)

	err = json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)
	assert.Equal(t, 0, envelope.Data.Cleared)
}

func TestAdminListUsers(t *testing.T) {
	ts := setupTestServer(t)

	adminToken, _ := ts.createTestAdmin(t, "admin")
	ts.createTestUser(t, "alice")
	ts.createTestUser(t, "bob")

	resp := ts.api.Get("/api/v1/admin/users", "Authorization: Bearer "+adminToken)
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[UserListResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)
	assert.Len(t, envelope.Data.Users, 3)
}

func TestAdminRoutes_Unauthenticated(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/admin/users")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
