package handlers

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"devboard/internal/domain"
	"devboard/internal/http/middleware"
	"devboard/internal/secrets"

	"github.com/gin-gonic/gin"
)

// fakeUserStore is an in-memory UserStore with the same error contract as
// the Postgres repository.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*domain.User)}
}

func (s *fakeUserStore) Get(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *fakeUserStore) Create(_ context.Context, email, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[email]; ok {
		return domain.ErrConflict
	}
	s.users[email] = &domain.User{Email: email, PasswordHash: passwordHash, CreatedAt: time.Now()}
	return nil
}

func (s *fakeUserStore) GetByToken(_ context.Context, token string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.AuthToken != "" && u.AuthToken == token {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *fakeUserStore) SetToken(_ context.Context, email, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return domain.ErrNotFound
	}
	u.AuthToken = token
	return nil
}

func (s *fakeUserStore) UpdateCredentials(_ context.Context, email string, fields map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return domain.ErrNotFound
	}
	for col, val := range fields {
		switch col {
		case "jira_user":
			u.JiraUser = val
		case "jira_url":
			u.JiraURL = val
		case "jira_project":
			u.JiraProject = val
		case "jira_token":
			u.JiraToken = val
		case "bitbucket_user":
			u.BitbucketUser = val
		case "bitbucket_workspace":
			u.BitbucketWorkspace = val
		case "bitbucket_repo":
			u.BitbucketRepo = val
		case "bitbucket_pass":
			u.BitbucketPass = val
		}
	}
	return nil
}

// fakeTaskStore mirrors the repository's filtering semantics, including the
// maximal-suffix end bound.
type fakeTaskStore struct {
	mu    sync.Mutex
	tasks map[string][]domain.Task
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: make(map[string][]domain.Task)}
}

func (s *fakeTaskStore) List(_ context.Context, email, status, startDate, endDate string) ([]domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := []domain.Task{}
	for _, t := range s.tasks[email] {
		if status == domain.StatusCompleted && !t.Completed {
			continue
		}
		if status == domain.StatusPending && t.Completed {
			continue
		}
		if startDate != "" && t.Date < startDate {
			continue
		}
		if endDate != "" && t.Date > endDate+"\uf8ff" {
			continue
		}
		res = append(res, t)
	}
	return res, nil
}

func (s *fakeTaskStore) Create(_ context.Context, email string, t *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[email] = append(s.tasks[email], *t)
	return nil
}

func (s *fakeTaskStore) Toggle(_ context.Context, email, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tasks[email] {
		if t.ID == id {
			s.tasks[email][i].Completed = !t.Completed
			return s.tasks[email][i].Completed, nil
		}
	}
	return false, domain.ErrNotFound
}

type fakeSummarizer struct {
	summary string
	err     error
	gotText string
	gotFmt  string
}

func (s *fakeSummarizer) Summarize(_ context.Context, text, format string) (string, error) {
	s.gotText = text
	s.gotFmt = format
	if s.err != nil {
		return "", s.err
	}
	return s.summary, nil
}

func testCipher(t *testing.T) *secrets.Cipher {
	t.Helper()
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		t.Fatalf("generate key: %v", err)
	}
	c, err := secrets.NewCipher(base64.StdEncoding.EncodeToString(key))
	if err != nil {
		t.Fatalf("NewCipher: %v", err)
	}
	return c
}

type testEnv struct {
	router     *gin.Engine
	handler    *Handler
	users      *fakeUserStore
	tasks      *fakeTaskStore
	summarizer *fakeSummarizer
}

// newTestEnv wires the handler behind the same middleware chain the real
// router uses.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := newFakeUserStore()
	tasks := newFakeTaskStore()
	summarizer := &fakeSummarizer{summary: "ok"}
	h := New(users, tasks, testCipher(t), summarizer)

	r := gin.New()
	r.Use(middleware.CORS())

	r.POST("/signup", h.Signup)
	r.POST("/login", h.Login)

	guard := middleware.Auth(users)
	r.POST("/api/authorizations", guard, h.SaveAuthorizations)
	r.GET("/api/authorizations", guard, h.GetAuthorizations)
	r.GET("/tasks", guard, h.ListTasks)
	r.POST("/tasks", guard, h.CreateTask)
	r.PUT("/tasks/:id/complete", guard, h.CompleteTask)
	r.GET("/bitbucket_commits", guard, h.BitbucketCommits)
	r.GET("/jira_issues", guard, h.JiraIssues)
	r.GET("/jira_users", guard, h.JiraUsers)
	r.GET("/jira_statuses", guard, h.JiraStatuses)
	r.GET("/bitbucket_users", guard, h.BitbucketUsers)
	r.POST("/summarize", guard, h.Summarize)

	return &testEnv{router: r, handler: h, users: users, tasks: tasks, summarizer: summarizer}
}

// do performs one request against the test router. body may be nil; token
// adds a bearer Authorization header.
func (e *testEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// signupAndLogin creates an account and returns a live token.
func (e *testEnv) signupAndLogin(t *testing.T, email, password string) string {
	t.Helper()
	if w := e.do("POST", "/signup", "", gin.H{"email": email, "password": password}); w.Code != 201 {
		t.Fatalf("signup: status %d, body %s", w.Code, w.Body.String())
	}
	w := e.do("POST", "/login", "", gin.H{"email": email, "password": password})
	if w.Code != 200 {
		t.Fatalf("login: status %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Token == "" {
		t.Fatalf("login response %q: %v", w.Body.String(), err)
	}
	return resp.Token
}

func bodyContains(w *httptest.ResponseRecorder, substr string) bool {
	return strings.Contains(w.Body.String(), substr)
}
