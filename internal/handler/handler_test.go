package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jobtrack/jobtrack/internal/data/repository"
	"github.com/jobtrack/jobtrack/internal/notify"
	"github.com/jobtrack/jobtrack/internal/realtime"
	"github.com/jobtrack/jobtrack/internal/service"
	"github.com/jobtrack/jobtrack/pkg/jwt"
	"github.com/jobtrack/jobtrack/pkg/logger"
	"github.com/jobtrack/jobtrack/pkg/nanoid"
)

// In-memory repositories backing the HTTP tests.

type memUserRepo struct {
	users map[string]*repository.User
}

func (r *memUserRepo) Create(_ context.Context, user *repository.User) (*repository.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, repository.ErrDuplicateEmail
		}
	}
	if user.ID == "" {
		user.ID = nanoid.PrimaryKey()
	}
	if user.Role == "" {
		user.Role = repository.RoleUser
	}
	r.users[user.ID] = user
	return user, nil
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*repository.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*repository.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

type memJobRepo struct {
	jobs map[string]*repository.Job
}

func (r *memJobRepo) Create(_ context.Context, job *repository.Job) (*repository.Job, error) {
	now := time.Now()
	if job.ID == "" {
		job.ID = nanoid.PrimaryKey()
	}
	if job.Status == "" {
		job.Status = repository.StatusApplied
	}
	if job.AppliedDate.IsZero() {
		job.AppliedDate = now
	}
	job.LastUpdated = now
	job.CreatedAt = now
	job.UpdatedAt = now
	r.jobs[job.ID] = job
	return job, nil
}

func (r *memJobRepo) FindByID(_ context.Context, owner, id string) (*repository.Job, error) {
	job, ok := r.jobs[id]
	if !ok || job.Owner != owner {
		return nil, repository.ErrNotFound
	}
	return job, nil
}

func (r *memJobRepo) List(_ context.Context, q repository.ListQuery) ([]*repository.Job, error) {
	out := make([]*repository.Job, 0)
	for _, job := range r.jobs {
		if q.Owner != "" && job.Owner != q.Owner {
			continue
		}
		if q.Status != "" && job.Status != q.Status {
			continue
		}
		out = append(out, job)
	}
	return out, nil
}

func (r *memJobRepo) Update(_ context.Context, owner, id string, patch *repository.JobPatch) (*repository.Job, error) {
	job, ok := r.jobs[id]
	if !ok || job.Owner != owner {
		return nil, repository.ErrNotFound
	}
	if patch.Status != nil {
		job.Status = *patch.Status
	}
	if patch.Notes != nil {
		job.Notes = *patch.Notes
	}
	job.LastUpdated = time.Now()
	return job, nil
}

func (r *memJobRepo) Delete(_ context.Context, owner, id string) error {
	job, ok := r.jobs[id]
	if !ok || job.Owner != owner {
		return repository.ErrNotFound
	}
	delete(r.jobs, id)
	return nil
}

func (r *memJobRepo) Stats(_ context.Context, owner string) (*repository.Stats, error) {
	stats := &repository.Stats{}
	for _, job := range r.jobs {
		if job.Owner == owner {
			stats.Total++
		}
	}
	return stats, nil
}

type noopNotifier struct{ count int }

func (n *noopNotifier) Notify(_ context.Context, _ *notify.Event) { n.count++ }

func newTestServer(t *testing.T) (*gin.Engine, *noopNotifier) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.StandardLogger()
	tokens := jwt.NewTokenManager("test-secret")
	notifier := &noopNotifier{}

	svc := &service.Service{
		Auth: service.NewAuthService(&memUserRepo{users: map[string]*repository.User{}}, tokens, log),
		Jobs: service.NewJobService(&memJobRepo{jobs: map[string]*repository.Job{}}, notifier, log),
	}

	e := gin.New()
	h := New(svc, realtime.NewHub(log), log)
	h.RegisterRoutes(e, Health(func(c *gin.Context) error { return nil }))

	return e, notifier
}

func doJSON(t *testing.T, e *gin.Engine, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, e *gin.Engine, email string) string {
	t.Helper()

	w := doJSON(t, e, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Test User",
		"email":    email,
		"password": "correct-horse",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", w.Code, w.Body.String())
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid register response: %v", err)
	}
	return body.Token
}

// TestHealth verifies the health endpoint.
func TestHealth(t *testing.T) {
	e, _ := newTestServer(t)

	w := doJSON(t, e, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

// TestRegisterValidation rejects malformed registration payloads.
func TestRegisterValidation(t *testing.T) {
	e, _ := newTestServer(t)

	w := doJSON(t, e, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "X",
		"email":    "not-an-email",
		"password": "short",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

// TestRegisterDuplicateConflict maps duplicate emails to 409.
func TestRegisterDuplicateConflict(t *testing.T) {
	e, _ := newTestServer(t)
	registerUser(t, e, "alice@example.com")

	w := doJSON(t, e, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Alice Again",
		"email":    "alice@example.com",
		"password": "correct-horse",
	})
	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", w.Code, http.StatusConflict)
	}
}

// TestJobLifecycle walks create, get, patch and delete over HTTP.
func TestJobLifecycle(t *testing.T) {
	e, notifier := newTestServer(t)
	token := registerUser(t, e, "alice@example.com")

	w := doJSON(t, e, http.MethodPost, "/api/jobs", token, map[string]string{
		"company": "Acme",
		"role":    "Backend Engineer",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", w.Code, w.Body.String())
	}
	var job repository.Job
	if err := json.Unmarshal(w.Body.Bytes(), &job); err != nil {
		t.Fatalf("invalid create response: %v", err)
	}
	if notifier.count != 1 {
		t.Errorf("notifications after create = %d, want 1", notifier.count)
	}

	w = doJSON(t, e, http.MethodGet, "/api/jobs/"+job.ID, token, nil)
	if w.Code != http.StatusOK {
		t.Errorf("get status = %d", w.Code)
	}

	w = doJSON(t, e, http.MethodPatch, "/api/jobs/"+job.ID, token, map[string]string{"status": "Interview"})
	if w.Code != http.StatusOK {
		t.Fatalf("patch status = %d, body %s", w.Code, w.Body.String())
	}
	if notifier.count != 2 {
		t.Errorf("notifications after status change = %d, want 2", notifier.count)
	}

	w = doJSON(t, e, http.MethodDelete, "/api/jobs/"+job.ID, token, nil)
	if w.Code != http.StatusOK {
		t.Errorf("delete status = %d", w.Code)
	}

	w = doJSON(t, e, http.MethodGet, "/api/jobs/"+job.ID, token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

// TestCreateJobInvalidStatus exercises the jobstatus binding validator.
func TestCreateJobInvalidStatus(t *testing.T) {
	e, _ := newTestServer(t)
	token := registerUser(t, e, "alice@example.com")

	w := doJSON(t, e, http.MethodPost, "/api/jobs", token, map[string]string{
		"company": "Acme",
		"role":    "Backend Engineer",
		"status":  "Ghosted",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d, body %s", w.Code, http.StatusBadRequest, w.Body.String())
	}
}

// TestJobsRequireAuth rejects unauthenticated access to job routes.
func TestJobsRequireAuth(t *testing.T) {
	e, _ := newTestServer(t)

	w := doJSON(t, e, http.MethodGet, "/api/jobs", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

// TestAdminRouteForbidden rejects plain users on the admin listing.
func TestAdminRouteForbidden(t *testing.T) {
	e, _ := newTestServer(t)
	token := registerUser(t, e, "alice@example.com")

	w := doJSON(t, e, http.MethodGet, "/api/jobs/admin/all", token, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", w.Code, http.StatusForbidden)
	}
}

// TestMe returns the authenticated account.
func TestMe(t *testing.T) {
	e, _ := newTestServer(t)
	token := registerUser(t, e, "alice@example.com")

	w := doJSON(t, e, http.MethodGet, "/api/auth/me", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var user repository.User
	if err := json.Unmarshal(w.Body.Bytes(), &user); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("email = %q, want %q", user.Email, "alice@example.com")
	}
}

// TestWebsocketRequiresToken rejects upgrade attempts without a token.
func TestWebsocketRequiresToken(t *testing.T) {
	e, _ := newTestServer(t)

	w := doJSON(t, e, http.MethodGet, "/ws", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

// TestWebsocketStatsRequiresAdmin keeps hub statistics off-limits to plain
// users.
func TestWebsocketStatsRequiresAdmin(t *testing.T) {
	e, _ := newTestServer(t)
	token := registerUser(t, e, "alice@example.com")

	w := doJSON(t, e, http.MethodGet, "/ws/stats", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated status = %d, want %d", w.Code, http.StatusUnauthorized)
	}

	w = doJSON(t, e, http.MethodGet, "/ws/stats", token, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("plain user status = %d, want %d", w.Code, http.StatusForbidden)
	}
}
