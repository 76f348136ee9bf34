package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/refhub/referral-tracker/internal/middleware"
	"github.com/refhub/referral-tracker/internal/models"
	"github.com/refhub/referral-tracker/internal/repositories"
	"github.com/refhub/referral-tracker/internal/services"
	"github.com/refhub/referral-tracker/internal/storage"
)

const testSecret = "handler-test-secret"

// --- MOCKS ---

type memUserStore struct {
	users  map[uint]*models.User
	nextID uint
}

func (s *memUserStore) Create(user *models.User) error {
	s.nextID++
	user.ID = s.nextID
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *memUserStore) FindByID(id uint) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (s *memUserStore) FindByEmail(email string) (*models.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

type memCandidateStore struct {
	items  map[uint]*models.Candidate
	nextID uint
	clock  time.Time
}

func (s *memCandidateStore) Create(candidate *models.Candidate) error {
	s.nextID++
	s.clock = s.clock.Add(time.Second)
	candidate.ID = s.nextID
	candidate.CreatedAt = s.clock
	copied := *candidate
	s.items[candidate.ID] = &copied
	return nil
}

func (s *memCandidateStore) Update(candidate *models.Candidate) error {
	copied := *candidate
	s.items[candidate.ID] = &copied
	return nil
}

func (s *memCandidateStore) Delete(id uint) error {
	delete(s.items, id)
	return nil
}

func (s *memCandidateStore) FindByID(id uint) (*models.Candidate, error) {
	candidate, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	copied := *candidate
	return &copied, nil
}

func (s *memCandidateStore) FindByOwnerAndEmail(ownerID uint, email string) (*models.Candidate, error) {
	for _, candidate := range s.items {
		if candidate.ReferredBy == ownerID && candidate.Email == email {
			copied := *candidate
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *memCandidateStore) List(q repositories.CandidateQuery) ([]models.Candidate, error) {
	var out []models.Candidate
	for _, candidate := range s.items {
		if candidate.ReferredBy != q.OwnerID {
			continue
		}
		if q.Search != "" {
			term := strings.ToLower(q.Search)
			if !strings.Contains(strings.ToLower(candidate.Name), term) &&
				!strings.Contains(strings.ToLower(candidate.JobTitle), term) {
				continue
			}
		}
		if q.Status != "" && candidate.Status != q.Status {
			continue
		}
		out = append(out, *candidate)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *memCandidateStore) CountTotal() (int64, error) {
	return int64(len(s.items)), nil
}

func (s *memCandidateStore) CountByStatus() (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, candidate := range s.items {
		counts[candidate.Status]++
	}
	return counts, nil
}

// --- TEST WIRING ---

type testEnv struct {
	router     *gin.Engine
	resumeDir  string
	candidates *memCandidateStore
}

// setupRouter wires the real services and handlers over in-memory stores
// and a real on-disk resume store, matching the route layout of main.
func setupRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	userStore := &memUserStore{users: make(map[uint]*models.User)}
	candidateStore := &memCandidateStore{
		items: make(map[uint]*models.Candidate),
		clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	dir := t.TempDir()
	resumeStore, err := storage.NewDiskStore(dir)
	if err != nil {
		t.Fatalf("disk store: %v", err)
	}

	authService := services.NewAuthService(userStore, testSecret, 1)
	candidateService := services.NewCandidateService(candidateStore, resumeStore)

	authHandler := NewAuthHandler(authService)
	candidateHandler := NewCandidateHandler(candidateService)

	r := gin.New()
	api := r.Group("/api")
	{
		api.GET("/health", HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)

			protected := auth.Group("")
			protected.Use(middleware.JWTAuth(testSecret))
			protected.GET("/me", authHandler.Me)
			protected.POST("/logout", authHandler.Logout)
		}

		candidates := api.Group("/candidates")
		candidates.Use(middleware.JWTAuth(testSecret))
		{
			candidates.GET("", candidateHandler.List)
			candidates.POST("", candidateHandler.Create)
			candidates.GET("/stats", candidateHandler.Stats)
			candidates.PUT("/:id/status", candidateHandler.UpdateStatus)
			candidates.DELETE("/:id", candidateHandler.Delete)
		}
	}

	return &testEnv{router: r, resumeDir: dir, candidates: candidateStore}
}

func (e *testEnv) doJSON(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

type candidateForm struct {
	name, email, phone, jobTitle string
	resumeName, resumeType       string
	resumeContent                []byte
}

func (e *testEnv) postCandidate(t *testing.T, token string, form candidateForm) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := map[string]string{
		"name":     form.name,
		"email":    form.email,
		"phone":    form.phone,
		"jobTitle": form.jobTitle,
	}
	for key, value := range fields {
		if err := w.WriteField(key, value); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if form.resumeName != "" {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="resume"; filename="%s"`, form.resumeName))
		header.Set("Content-Type", form.resumeType)
		part, err := w.CreatePart(header)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		if _, err := part.Write(form.resumeContent); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest("POST", "/api/candidates", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// registerUser creates an account and returns its token and id.
func (e *testEnv) registerUser(t *testing.T, name, email, password string) (string, uint) {
	t.Helper()

	w := e.doJSON(t, "POST", "/api/auth/register", "", map[string]string{
		"name": name, "email": email, "password": password,
	})
	if w.Code != 201 {
		t.Fatalf("register returned %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID uint `json:"id"`
		} `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	return resp.Token, resp.User.ID
}
