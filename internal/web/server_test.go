package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/dblibsync/internal/config"
	"github.com/JonMunkholm/dblibsync/internal/core"
	"github.com/JonMunkholm/dblibsync/internal/schema"
)

type fakeService struct {
	syncRes     *core.Result
	syncErr     error
	syncCtx     context.Context
	summaries   []core.CategorySummary
	validateErr error
	last        *core.Result
	lastErr     error
	dblib       []byte
	limiter     core.SyncLimiterStatus
}

func (f *fakeService) Sync(ctx context.Context) (*core.Result, error) {
	f.syncCtx = ctx
	return f.syncRes, f.syncErr
}

func (f *fakeService) Validate(context.Context) ([]core.CategorySummary, error) {
	return f.summaries, f.validateErr
}

func (f *fakeService) LastResult() (*core.Result, error)     { return f.last, f.lastErr }
func (f *fakeService) LastDbLib() []byte                     { return f.dblib }
func (f *fakeService) LimiterStatus() core.SyncLimiterStatus { return f.limiter }

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 8080},
		DbLib:  config.DbLibConfig{File: "/srv/lib/Parts.DbLib"},
	}
}

func do(t *testing.T, s *Server, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHealth(t *testing.T) {
	rec := do(t, NewServer(&fakeService{}, testConfig()), http.MethodGet, "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestSync_Success(t *testing.T) {
	svc := &fakeService{syncRes: &core.Result{Categories: 3, Components: 42, NewIDs: 2}}
	rec := do(t, NewServer(svc, testConfig()), http.MethodPost, "/api/sync")

	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[core.Result](t, rec)
	assert.Equal(t, 42, res.Components)
	assert.Equal(t, 2, res.NewIDs)

	// Request ID survives, cancellation does not.
	require.NotNil(t, svc.syncCtx)
	assert.NotEmpty(t, middleware.GetReqID(svc.syncCtx))
	assert.Nil(t, svc.syncCtx.Done())
}

func TestSync_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "busy",
			err:      core.ErrSyncInProgress,
			wantCode: http.StatusConflict,
			wantBody: "SYNC001",
		},
		{
			name:     "schema",
			err:      errors.Join(&schema.ValidationError{Category: "Caps", Missing: []string{"Description"}}),
			wantCode: http.StatusUnprocessableEntity,
			wantBody: "SCH001",
		},
		{
			name:     "timeout",
			err:      context.DeadlineExceeded,
			wantCode: http.StatusGatewayTimeout,
			wantBody: "SYNC003",
		},
		{
			name:     "unexpected",
			err:      errors.New("boom at 0xdeadbeef"),
			wantCode: http.StatusInternalServerError,
			wantBody: "ERR000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, NewServer(&fakeService{syncErr: tt.err}, testConfig()), http.MethodPost, "/api/sync")
			assert.Equal(t, tt.wantCode, rec.Code)
			body := decode[ErrorBody](t, rec)
			assert.Equal(t, tt.wantBody, body.Code)
		})
	}
}

func TestSync_HidesUnmappedErrors(t *testing.T) {
	rec := do(t, NewServer(&fakeService{syncErr: errors.New("boom at 0xdeadbeef")}, testConfig()), http.MethodPost, "/api/sync")
	assert.NotContains(t, rec.Body.String(), "deadbeef")

	rec = do(t, NewServer(&fakeService{syncErr: &schema.CollisionError{
		Category: "Caps", StorageName: "foo_bar", DisplayNames: []string{"Foo Bar", "foo_bar"},
	}}, testConfig()), http.MethodPost, "/api/sync")
	body := decode[ErrorBody](t, rec)
	assert.Contains(t, body.Error, `category "Caps"`)
}

func TestSync_RequiresMethodAndKey(t *testing.T) {
	cfg := testConfig()
	cfg.Security = config.SecurityConfig{RequireAPIKey: true, APIKeys: []string{"secret"}}
	s := NewServer(&fakeService{syncRes: &core.Result{}}, cfg)

	// Auth runs before routing on /api, so a keyless GET is rejected first.
	assert.Equal(t, http.StatusUnauthorized, do(t, s, http.MethodGet, "/api/sync").Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, s, http.MethodPost, "/api/sync").Code)

	withKey := func(method string) int {
		req := httptest.NewRequest(method, "/api/sync", nil)
		req.Header.Set("X-API-Key", "secret")
		rec := httptest.NewRecorder()
		s.Router().ServeHTTP(rec, req)
		return rec.Code
	}
	assert.Equal(t, http.StatusMethodNotAllowed, withKey(http.MethodGet))
	assert.Equal(t, http.StatusOK, withKey(http.MethodPost))

	// Health checks stay open.
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/healthz").Code)
}

func TestSyncStatus(t *testing.T) {
	started := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	svc := &fakeService{
		limiter: core.SyncLimiterStatus{Running: true, StartedAt: &started},
		last:    &core.Result{Components: 7, Error: "drop library tables: access denied"},
		lastErr: errors.New("drop library tables: access denied"),
	}

	rec := do(t, NewServer(svc, testConfig()), http.MethodGet, "/api/sync/status")
	require.Equal(t, http.StatusOK, rec.Code)

	st := decode[SyncStatus](t, rec)
	assert.True(t, st.Running)
	require.NotNil(t, st.StartedAt)
	assert.True(t, started.Equal(*st.StartedAt))
	require.NotNil(t, st.Last)
	assert.Equal(t, 7, st.Last.Components)
	require.NotNil(t, st.LastError)
	assert.Equal(t, "DB001", st.LastError.Code)
}

func TestSyncStatus_Idle(t *testing.T) {
	rec := do(t, NewServer(&fakeService{}, testConfig()), http.MethodGet, "/api/sync/status")
	assert.JSONEq(t, `{"running":false}`, rec.Body.String())
}

func TestValidate(t *testing.T) {
	summaries := []core.CategorySummary{
		{Name: "Resistors", Rows: 9, Fields: 7, Links: 1},
		{Name: "Bad", Problems: []string{`category "Bad": missing required field(s): Description`}},
	}

	rec := do(t, NewServer(&fakeService{summaries: summaries[:1]}, testConfig()), http.MethodGet, "/api/validate")
	require.Equal(t, http.StatusOK, rec.Code)
	ok := decode[ValidateResponse](t, rec)
	assert.True(t, ok.Valid)
	assert.Len(t, ok.Categories, 1)

	rec = do(t, NewServer(&fakeService{summaries: summaries, validateErr: errors.New("invalid")}, testConfig()), http.MethodGet, "/api/validate")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	bad := decode[ValidateResponse](t, rec)
	assert.False(t, bad.Valid)
	assert.Equal(t, summaries, bad.Categories)

	rec = do(t, NewServer(&fakeService{validateErr: errors.New("read spreadsheet: googleapi: Error 404: notFound")}, testConfig()), http.MethodGet, "/api/validate")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "SHEET002", decode[ErrorBody](t, rec).Code)
}

func TestDownloadDbLib(t *testing.T) {
	rec := do(t, NewServer(&fakeService{}, testConfig()), http.MethodGet, "/api/dblib")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	content := []byte("[OutputDatabaseLinkFile]\nVersion=1.1\n\n")
	rec = do(t, NewServer(&fakeService{dblib: content}, testConfig()), http.MethodGet, "/api/dblib")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, string(content), rec.Body.String())
	assert.Equal(t, `attachment; filename="Parts.DbLib"`, rec.Header().Get("Content-Disposition"))
}
