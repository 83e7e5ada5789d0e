package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/routine/internal/config"
	"github.com/JonMunkholm/routine/internal/core"
)

// fakeStore is an in-memory core.TaskStore.
type fakeStore struct {
	mu       sync.Mutex
	seq      int
	tasks    []core.CustomTask
	progress map[string]core.ActivityProgress
}

func newFakeStore() *fakeStore {
	return &fakeStore{progress: make(map[string]core.ActivityProgress)}
}

func (f *fakeStore) CreateTask(_ context.Context, userID string, d core.TaskDraft) (core.CustomTask, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	t := core.CustomTask{
		ID:          fmt.Sprintf("task-%d", f.seq),
		UserID:      userID,
		Title:       d.Title,
		Description: d.Description,
		Category:    d.Category,
		StartTime:   d.StartTime,
		EndTime:     d.EndTime,
		CreatedAt:   time.Now(),
	}
	f.tasks = append(f.tasks, t)
	return t, nil
}

func (f *fakeStore) ListTasks(_ context.Context, userID string) ([]core.CustomTask, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []core.CustomTask
	for _, t := range f.tasks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeStore) ToggleTask(_ context.Context, userID, taskID string) (core.CustomTask, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == taskID && f.tasks[i].UserID == userID {
			f.tasks[i].Completed = !f.tasks[i].Completed
			return f.tasks[i], nil
		}
	}
	return core.CustomTask{}, core.ErrTaskNotFound
}

func (f *fakeStore) DeleteTask(_ context.Context, userID, taskID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == taskID && f.tasks[i].UserID == userID {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return core.ErrTaskNotFound
}

func (f *fakeStore) ListProgress(_ context.Context, userID, date string) ([]core.ActivityProgress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []core.ActivityProgress
	for _, p := range f.progress {
		if p.UserID == userID && p.Date == date {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) UpsertProgress(_ context.Context, userID, activityID, date string, completed bool) (core.ActivityProgress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	p := core.ActivityProgress{UserID: userID, ActivityID: activityID, Date: date, Completed: completed, UpdatedAt: now}
	if completed {
		p.CompletedAt = &now
	}
	f.progress[userID+"|"+activityID+"|"+date] = p
	return p, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{RequestTimeout: 10 * time.Second},
		Import: config.ImportConfig{
			MaxFileSize:    1 << 16,
			MaxConcurrent:  2,
			MaxWaitTime:    time.Second,
			Timeout:        10 * time.Second,
			SessionIdleTTL: time.Hour,
		},
		Security: config.SecurityConfig{UserHeader: "X-User-ID"},
		Locale:   config.LocaleConfig{DefaultLanguage: "en"},
	}
}

func newTestServer(t *testing.T, cfg *config.Config) (*Server, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	svc := core.NewService(store, core.ServiceConfig{
		MaxFileSize:          cfg.Import.MaxFileSize,
		MaxConcurrentImports: cfg.Import.MaxConcurrent,
		ImportWait:           cfg.Import.MaxWaitTime,
		ImportTimeout:        cfg.Import.Timeout,
		SessionIdleTTL:       cfg.Import.SessionIdleTTL,
	})
	s := NewServer(svc, cfg)
	t.Cleanup(func() { s.Shutdown(context.Background()) })
	return s, store
}

func do(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func jsonRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func fileRequest(t *testing.T, fileName, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mpw := multipart.NewWriter(&buf)
	part, err := mpw.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mpw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/import/file", &buf)
	req.Header.Set("Content-Type", mpw.FormDataContentType())
	return req
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestImportText_PreviewAndCommit(t *testing.T) {
	s, store := newTestServer(t, testConfig())

	rec := do(s, jsonRequest(http.MethodPost, "/api/import/text", map[string]string{
		"text": "Read | personal | 09:00 | 10:00\nGym | Leg day | health | 18:00 | 19:00\nbad line",
	}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	preview := decode[PreviewResponse](t, rec)
	require.Len(t, preview.Drafts, 2)
	assert.Equal(t, "Gym", preview.Drafts[1].Title)
	assert.Equal(t, "Leg day", preview.Drafts[1].Description)
	assert.Equal(t, core.CategoryHealth, preview.Drafts[1].Category)
	assert.Equal(t, 1, preview.Report.SkippedLines)
	assert.Nil(t, preview.Error)

	rec = do(s, httptest.NewRequest(http.MethodGet, "/api/import", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[PreviewResponse](t, rec).Drafts, 2)

	rec = do(s, httptest.NewRequest(http.MethodPost, "/api/import/commit", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	result := decode[core.CommitResult](t, rec)
	assert.Equal(t, 2, result.Committed)
	assert.Equal(t, 0, result.Remaining)

	tasks, _ := store.ListTasks(context.Background(), core.DefaultUserID)
	assert.Len(t, tasks, 2)

	// Pending is empty after a commit.
	rec = do(s, httptest.NewRequest(http.MethodPost, "/api/import/commit", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "IMP006", decode[ErrorResponse](t, rec).Code)
}

func TestImportText_FormField(t *testing.T) {
	s, _ := newTestServer(t, testConfig())

	req := httptest.NewRequest(http.MethodPost, "/api/import/text",
		strings.NewReader("text="+strings.ReplaceAll("Walk | other | 07:00 | 07:30", " ", "+")))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := do(s, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Len(t, decode[PreviewResponse](t, rec).Drafts, 1)
}

func TestImportText_OversizedBody(t *testing.T) {
	// Past the MaxBytesReader cap, not just the service limit.
	big := strings.Repeat("a", 1<<16+multipartOverhead+10)

	form := httptest.NewRequest(http.MethodPost, "/api/import/text", strings.NewReader("text="+big))
	form.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, err := json.Marshal(map[string]string{"text": big})
	require.NoError(t, err)
	js := httptest.NewRequest(http.MethodPost, "/api/import/text", bytes.NewReader(body))
	js.Header.Set("Content-Type", "application/json")

	for name, req := range map[string]*http.Request{"form": form, "json": js} {
		t.Run(name, func(t *testing.T) {
			s, _ := newTestServer(t, testConfig())
			rec := do(s, req)
			assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code, rec.Body.String())
			assert.Equal(t, "FILE001", decode[ErrorResponse](t, rec).Code)
		})
	}
}

func TestImportFile_CSV(t *testing.T) {
	s, _ := newTestServer(t, testConfig())

	csv := "Title,Category,Start Time,End Time\n" +
		"Standup,work,09:00,09:15\n" +
		"Broken,work,25:00,26:00\n" +
		"Lunch,,12:00,13:00\n"

	rec := do(s, fileRequest(t, "tasks.CSV", csv))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	preview := decode[PreviewResponse](t, rec)
	require.Len(t, preview.Drafts, 2)
	assert.Equal(t, "Standup", preview.Drafts[0].Title)
	assert.Equal(t, core.CategoryPersonal, preview.Drafts[1].Category)
	assert.Equal(t, 3, preview.Report.TotalRows)
	assert.Equal(t, 1, preview.Report.Rejected)
}

func TestImportFile_Errors(t *testing.T) {
	tests := []struct {
		name     string
		req      func(t *testing.T) *http.Request
		wantCode int
		wantErr  string
	}{
		{
			name:     "unsupported extension",
			req:      func(t *testing.T) *http.Request { return fileRequest(t, "tasks.pdf", "x") },
			wantCode: http.StatusBadRequest,
			wantErr:  "IMP001",
		},
		{
			name:     "no valid rows",
			req:      func(t *testing.T) *http.Request { return fileRequest(t, "tasks.csv", "title,startTime\nA,09:00\n") },
			wantCode: http.StatusUnprocessableEntity,
			wantErr:  "IMP004",
		},
		{
			name: "missing file field",
			req: func(t *testing.T) *http.Request {
				var buf bytes.Buffer
				mpw := multipart.NewWriter(&buf)
				mpw.WriteField("note", "nothing here")
				mpw.Close()
				req := httptest.NewRequest(http.MethodPost, "/api/import/file", &buf)
				req.Header.Set("Content-Type", mpw.FormDataContentType())
				return req
			},
			wantCode: http.StatusBadRequest,
			wantErr:  "FILE004",
		},
		{
			name: "file too large",
			req: func(t *testing.T) *http.Request {
				return fileRequest(t, "tasks.csv", strings.Repeat("a", 1<<16+10))
			},
			wantCode: http.StatusRequestEntityTooLarge,
			wantErr:  "FILE001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestServer(t, testConfig())
			rec := do(s, tt.req(t))
			assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			assert.Equal(t, tt.wantErr, decode[ErrorResponse](t, rec).Code)
		})
	}
}

func TestImport_FailureKeepsPendingAndRecordsError(t *testing.T) {
	s, _ := newTestServer(t, testConfig())

	rec := do(s, jsonRequest(http.MethodPost, "/api/import/text", map[string]string{"text": "A | work | 09:00 | 10:00"}))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(s, jsonRequest(http.MethodPost, "/api/import/text", map[string]string{"text": "   "}))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "IMP003", decode[ErrorResponse](t, rec).Code)

	rec = do(s, httptest.NewRequest(http.MethodGet, "/api/import", nil))
	preview := decode[PreviewResponse](t, rec)
	assert.Len(t, preview.Drafts, 1)
	assert.True(t, preview.Stale)
	require.NotNil(t, preview.Error)
	assert.Equal(t, "IMP003", preview.Error.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/import", nil)
	req.Header.Set("HX-Request", "true")
	rec = do(s, req)
	assert.Contains(t, rec.Body.String(), `class="import-stale"`)
}

func TestImport_ClearAndClose(t *testing.T) {
	s, _ := newTestServer(t, testConfig())

	do(s, jsonRequest(http.MethodPost, "/api/import/text", map[string]string{"text": "A | work | 09:00 | 10:00"}))

	rec := do(s, httptest.NewRequest(http.MethodPost, "/api/import/clear", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[PreviewResponse](t, rec).Drafts)
	assert.Equal(t, 1, s.service.SessionCount())

	rec = do(s, httptest.NewRequest(http.MethodDelete, "/api/import", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 0, s.service.SessionCount())
}

func TestImport_SessionsPerUser(t *testing.T) {
	s, store := newTestServer(t, testConfig())

	req := jsonRequest(http.MethodPost, "/api/import/text", map[string]string{"text": "A | work | 09:00 | 10:00"})
	req.Header.Set("X-User-ID", "alice")
	require.Equal(t, http.StatusOK, do(s, req).Code)

	rec := do(s, httptest.NewRequest(http.MethodGet, "/api/import", nil))
	assert.Empty(t, decode[PreviewResponse](t, rec).Drafts)

	req = httptest.NewRequest(http.MethodPost, "/api/import/commit", nil)
	req.Header.Set("X-User-ID", "alice")
	require.Equal(t, http.StatusOK, do(s, req).Code)

	tasks, _ := store.ListTasks(context.Background(), "alice")
	assert.Len(t, tasks, 1)
}

func TestRespondError_Localized(t *testing.T) {
	s, _ := newTestServer(t, testConfig())

	req := jsonRequest(http.MethodPost, "/api/import/text", map[string]string{"text": ""})
	req.Header.Set("Accept-Language", "fr-CA,fr;q=0.9,en;q=0.5")

	rec := do(s, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode[ErrorResponse](t, rec)
	assert.Equal(t, "IMP003", resp.Code)
	assert.Equal(t, "Veuillez saisir des tâches", resp.Message)
	assert.Equal(t, "import.empty_text", resp.Key)
}

func TestRespondError_DefaultLanguage(t *testing.T) {
	cfg := testConfig()
	cfg.Locale.DefaultLanguage = "ar"
	s, _ := newTestServer(t, cfg)

	rec := do(s, httptest.NewRequest(http.MethodPost, "/api/import/commit", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "لا توجد مهام للاستيراد", decode[ErrorResponse](t, rec).Message)
}

func TestHTMX_Fragments(t *testing.T) {
	s, _ := newTestServer(t, testConfig())

	req := jsonRequest(http.MethodPost, "/api/import/text", map[string]string{"text": "<b>Bold</b> | work | 09:00 | 10:00"})
	req.Header.Set("HX-Request", "true")
	rec := do(s, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), `id="import-preview"`)
	assert.Contains(t, rec.Body.String(), "&lt;b&gt;Bold&lt;/b&gt;")
	assert.NotContains(t, rec.Body.String(), "<b>Bold</b>")

	req = httptest.NewRequest(http.MethodPost, "/api/import/commit", nil)
	req.Header.Set("HX-Request", "true")
	rec = do(s, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "tasksChanged", rec.Header().Get("HX-Trigger"))
	assert.Contains(t, rec.Body.String(), "<strong>1</strong>")

	req = httptest.NewRequest(http.MethodPost, "/api/import/commit", nil)
	req.Header.Set("HX-Request", "true")
	req.Header.Set("Accept-Language", "ar")
	rec = do(s, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `dir="rtl"`)
	assert.Contains(t, rec.Body.String(), "IMP006")
}

func TestTasks_CRUD(t *testing.T) {
	s, _ := newTestServer(t, testConfig())

	rec := do(s, jsonRequest(http.MethodPost, "/api/tasks", map[string]any{
		"Title":      "Meditate",
		"category":   "HEALTH",
		"start_time": "06:00",
		"End Time":   "06:20",
	}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	task := decode[core.CustomTask](t, rec)
	assert.Equal(t, "Meditate", task.Title)
	assert.Equal(t, core.CategoryHealth, task.Category)

	rec = do(s, jsonRequest(http.MethodPost, "/api/tasks", map[string]any{
		"title": "Backwards", "startTime": "10:00", "endTime": "09:00",
	}))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "TSK002", decode[ErrorResponse](t, rec).Code)

	rec = do(s, httptest.NewRequest(http.MethodPost, "/api/tasks/"+task.ID+"/toggle", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[core.CustomTask](t, rec).Completed)

	rec = do(s, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[core.TaskStats](t, rec)
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 100, stats.Percent)
	assert.Equal(t, core.MotivationPerfect, stats.Motivation)

	rec = do(s, httptest.NewRequest(http.MethodDelete, "/api/tasks/"+task.ID, nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(s, httptest.NewRequest(http.MethodPost, "/api/tasks/"+task.ID+"/toggle", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "TSK001", decode[ErrorResponse](t, rec).Code)

	rec = do(s, httptest.NewRequest(http.MethodGet, "/api/tasks", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestProgress(t *testing.T) {
	s, _ := newTestServer(t, testConfig())

	rec := do(s, jsonRequest(http.MethodPost, "/api/progress", map[string]any{
		"activityId": "morning-run", "date": "2026-03-01", "completed": true,
	}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	p := decode[core.ActivityProgress](t, rec)
	assert.True(t, p.Completed)
	assert.NotNil(t, p.CompletedAt)

	rec = do(s, httptest.NewRequest(http.MethodGet, "/api/progress?date=2026-03-01", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]core.ActivityProgress](t, rec), 1)

	rec = do(s, httptest.NewRequest(http.MethodGet, "/api/progress?date=03/01/2026", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "TSK003", decode[ErrorResponse](t, rec).Code)

	req := httptest.NewRequest(http.MethodPost, "/api/progress", strings.NewReader("activityId=x&completed=maybe"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = do(s, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTemplateAndCategories(t *testing.T) {
	s, _ := newTestServer(t, testConfig())

	rec := do(s, httptest.NewRequest(http.MethodGet, "/api/import/template", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), core.TemplateFileName)
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))

	rec = do(s, httptest.NewRequest(http.MethodGet, "/api/categories", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	cats := decode[categoryResponse](t, rec)
	assert.Len(t, cats.Categories, 7)
	assert.Equal(t, core.CategoryPersonal, cats.Default)
}

func TestImportFormat(t *testing.T) {
	s, _ := newTestServer(t, testConfig())

	rec := do(s, httptest.NewRequest(http.MethodGet, "/api/import/format", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	f := decode[formatResponse](t, rec)
	assert.ElementsMatch(t, []string{".xlsx", ".xls", ".csv"}, f.Extensions)
	require.Len(t, f.Columns, 5)
	assert.Equal(t, []string{"startTime", "start_time", "Start Time"}, f.Columns[3].Accepts)
	assert.True(t, f.Columns[3].Required)
	assert.False(t, f.Columns[1].Required)
	assert.Equal(t, int64(1<<16), f.MaxBytes)
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, testConfig())

	rec := do(s, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	h := decode[healthResponse](t, rec)
	assert.Equal(t, "ok", h.Status)
	assert.Equal(t, 2, h.Imports.MaxConcurrent)
}

func TestAPIKeyRequired(t *testing.T) {
	cfg := testConfig()
	cfg.Security.RequireAPIKey = true
	cfg.Security.APIKeys = []string{"secret"}
	s, _ := newTestServer(t, cfg)

	rec := do(s, httptest.NewRequest(http.MethodGet, "/api/tasks", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("X-API-Key", "secret")
	assert.Equal(t, http.StatusOK, do(s, req).Code)

	// Health stays open for load balancers.
	assert.Equal(t, http.StatusOK, do(s, httptest.NewRequest(http.MethodGet, "/api/health", nil)).Code)
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Rate = config.RateLimitConfig{Enabled: true, RequestsPerMinute: 100, ImportLimit: 2}
	s, _ := newTestServer(t, cfg)

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, do(s, httptest.NewRequest(http.MethodGet, "/api/import", nil)).Code)
	}
	rec := do(s, httptest.NewRequest(http.MethodGet, "/api/import", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))

	// Other routes use the general budget.
	assert.Equal(t, http.StatusOK, do(s, httptest.NewRequest(http.MethodGet, "/api/tasks", nil)).Code)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{core.ErrUnsupportedFileType, http.StatusBadRequest},
		{fmt.Errorf("wrap: %w", core.ErrFileParse), http.StatusBadRequest},
		{core.ErrNoValidRows, http.StatusUnprocessableEntity},
		{core.ValidationError{Field: "title"}, http.StatusUnprocessableEntity},
		{core.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{core.ErrTooManyImports, http.StatusServiceUnavailable},
		{core.ErrTaskNotFound, http.StatusNotFound},
		{context.DeadlineExceeded, http.StatusRequestTimeout},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}
