package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/savansr/task-management-app/internal/auth"
	dom "github.com/savansr/task-management-app/internal/domain"
	"github.com/savansr/task-management-app/internal/dto"
	"github.com/savansr/task-management-app/internal/errs"
	"github.com/savansr/task-management-app/internal/service"
)

// In-memory repos so the full register -> login -> tasks flow runs
// against the real services, middleware and routing.

type memUserRepo struct {
	nextID  int64
	byEmail map[string]dom.User
}

func (m *memUserRepo) Create(_ context.Context, name, email, hash string) (dom.User, error) {
	if _, exists := m.byEmail[email]; exists {
		return dom.User{}, errs.ErrEmailTaken
	}
	m.nextID++
	u := dom.User{ID: m.nextID, Name: name, Email: email, PasswordHash: hash, CreatedAt: time.Now()}
	m.byEmail[email] = u
	return u, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (dom.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return dom.User{}, errs.ErrNotFound
	}
	return u, nil
}

func (m *memUserRepo) GetByID(_ context.Context, id int64) (dom.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return dom.User{}, errs.ErrNotFound
}

type memTaskRepo struct {
	nextID int64
	byID   map[int64]dom.Task
	clock  time.Time
}

func (m *memTaskRepo) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memTaskRepo) Create(_ context.Context, t dom.Task) (dom.Task, error) {
	m.nextID++
	t.ID = m.nextID
	t.CreatedAt = m.tick()
	t.UpdatedAt = t.CreatedAt
	m.byID[t.ID] = t
	return t, nil
}

func (m *memTaskRepo) GetByID(_ context.Context, id int64) (dom.Task, error) {
	t, ok := m.byID[id]
	if !ok {
		return dom.Task{}, errs.ErrNotFound
	}
	return t, nil
}

func (m *memTaskRepo) ListByOwner(_ context.Context, ownerID int64) ([]dom.Task, error) {
	var list []dom.Task
	for _, t := range m.byID {
		if t.OwnerID == ownerID {
			list = append(list, t)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		// Equal timestamps keep insertion order.
		return list[i].ID < list[j].ID
	})
	return list, nil
}

func (m *memTaskRepo) Update(_ context.Context, id int64, patch dom.Task) (dom.Task, error) {
	t, ok := m.byID[id]
	if !ok {
		return dom.Task{}, errs.ErrNotFound
	}
	t.Title = patch.Title
	t.Description = patch.Description
	t.Priority = patch.Priority
	t.Status = patch.Status
	t.UpdatedAt = m.tick()
	m.byID[id] = t
	return t, nil
}

func (m *memTaskRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.byID[id]; !ok {
		return errs.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := auth.NewTokenService([]byte("test-secret"), time.Hour)
	userSvc := service.NewUserService(&memUserRepo{byEmail: map[string]dom.User{}})
	taskSvc := service.NewTaskService(&memTaskRepo{byID: map[int64]dom.Task{}, clock: time.Unix(1700000000, 0)}, nil)

	authHandler := NewAuthHandler(tokens, userSvc)
	taskHandler := NewTaskHandler(taskSvc)

	r := gin.New()
	api := r.Group("/api/v1")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("", auth.RequireAuth(tokens, userSvc, zap.NewNop()))
	protected.GET("/auth/me", authHandler.Me)
	protected.POST("/tasks", taskHandler.Create)
	protected.GET("/tasks", taskHandler.List)
	protected.PUT("/tasks/:id", taskHandler.Update)
	protected.DELETE("/tasks/:id", taskHandler.Delete)

	return r
}

func do(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func register(t *testing.T, r *gin.Engine, name, email, password string) dto.AuthResponse {
	t.Helper()
	w := do(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[dto.AuthResponse](t, w)
}

func TestRegisterLoginMe(t *testing.T) {
	r := newTestServer(t)

	reg := register(t, r, "A", "a@x.com", "pw1234")
	require.NotEmpty(t, reg.Token)
	require.Equal(t, "a@x.com", reg.Email)

	// Duplicate email is a conflict.
	w := do(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name": "A2", "email": "a@x.com", "password": "pw5678",
	})
	require.Equal(t, http.StatusConflict, w.Code)

	// Login with the same credentials returns a working token.
	w = do(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "a@x.com", "password": "pw1234",
	})
	require.Equal(t, http.StatusOK, w.Code)
	login := decode[dto.AuthResponse](t, w)
	require.Equal(t, reg.ID, login.ID)

	w = do(t, r, http.MethodGet, "/api/v1/auth/me", login.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[dto.UserResponse](t, w)
	require.Equal(t, reg.ID, me.ID)
	require.Equal(t, "a@x.com", me.Email)

	// Wrong password.
	w = do(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "a@x.com", "password": "nope",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTasksRequireAuth(t *testing.T) {
	r := newTestServer(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/tasks"},
		{http.MethodPost, "/api/v1/tasks"},
		{http.MethodPut, "/api/v1/tasks/1"},
		{http.MethodDelete, "/api/v1/tasks/1"},
		{http.MethodGet, "/api/v1/auth/me"},
	} {
		w := do(t, r, tc.method, tc.path, "", nil)
		require.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestTaskLifecycle(t *testing.T) {
	r := newTestServer(t)

	a := register(t, r, "A", "a@x.com", "pw1234")

	// Create a task; owner is forced to A, status defaults to incomplete.
	w := do(t, r, http.MethodPost, "/api/v1/tasks", a.Token, gin.H{
		"title": "t1", "priority": "low",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[dto.TaskResponse](t, w)
	require.Equal(t, a.ID, created.OwnerID)
	require.Equal(t, "incomplete", created.Status)
	require.Equal(t, "low", created.Priority)

	// List returns exactly that task.
	w = do(t, r, http.MethodGet, "/api/v1/tasks", a.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[dto.ListTasksResponse](t, w)
	require.Len(t, list.Items, 1)
	require.Equal(t, created.ID, list.Items[0].ID)

	// A second user can neither see nor touch A's task.
	b := register(t, r, "B", "b@x.com", "pw5678")

	w = do(t, r, http.MethodGet, "/api/v1/tasks", b.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, decode[dto.ListTasksResponse](t, w).Items)

	w = do(t, r, http.MethodPut, fmt.Sprintf("/api/v1/tasks/%d", created.ID), b.Token, gin.H{
		"title": "hijacked",
	})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = do(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/tasks/%d", created.ID), b.Token, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	// Owner updates: merged partially, owner unchanged.
	w = do(t, r, http.MethodPut, fmt.Sprintf("/api/v1/tasks/%d", created.ID), a.Token, gin.H{
		"status": "complete",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[dto.TaskResponse](t, w)
	require.Equal(t, "t1", updated.Title)
	require.Equal(t, "complete", updated.Status)
	require.Equal(t, a.ID, updated.OwnerID)

	// Owner deletes; list goes empty; second delete is 404.
	w = do(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/tasks/%d", created.ID), a.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "task removed", decode[dto.DeleteTaskResponse](t, w).Message)

	w = do(t, r, http.MethodGet, "/api/v1/tasks", a.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, decode[dto.ListTasksResponse](t, w).Items)

	w = do(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/tasks/%d", created.ID), a.Token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestTaskValidation(t *testing.T) {
	r := newTestServer(t)
	a := register(t, r, "A", "a@x.com", "pw1234")

	// Missing title.
	w := do(t, r, http.MethodPost, "/api/v1/tasks", a.Token, gin.H{"description": "d"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown priority.
	w = do(t, r, http.MethodPost, "/api/v1/tasks", a.Token, gin.H{"title": "t", "priority": "urgent"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Bad path id.
	w = do(t, r, http.MethodPut, "/api/v1/tasks/abc", a.Token, gin.H{"title": "t"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown task id.
	w = do(t, r, http.MethodPut, "/api/v1/tasks/999", a.Token, gin.H{"title": "t"})
	require.Equal(t, http.StatusNotFound, w.Code)

	// Default priority.
	w = do(t, r, http.MethodPost, "/api/v1/tasks", a.Token, gin.H{"title": "t"})
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "medium", decode[dto.TaskResponse](t, w).Priority)
}
