package services

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/refhub/referral-tracker/internal/models"
	"github.com/refhub/referral-tracker/internal/repositories"
)

// --- MOCKS ---

type fakeUserStore struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uint]*models.User)}
}

func (s *fakeUserStore) Create(user *models.User) error {
	s.nextID++
	user.ID = s.nextID
	user.CreatedAt = time.Now()
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *fakeUserStore) FindByID(id uint) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (s *fakeUserStore) FindByEmail(email string) (*models.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

type fakeCandidateStore struct {
	items     map[uint]*models.Candidate
	nextID    uint
	clock     time.Time
	createErr error
}

func newFakeCandidateStore() *fakeCandidateStore {
	return &fakeCandidateStore{
		items: make(map[uint]*models.Candidate),
		clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *fakeCandidateStore) Create(candidate *models.Candidate) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.nextID++
	s.clock = s.clock.Add(time.Second)
	candidate.ID = s.nextID
	candidate.CreatedAt = s.clock
	copied := *candidate
	s.items[candidate.ID] = &copied
	return nil
}

func (s *fakeCandidateStore) Update(candidate *models.Candidate) error {
	copied := *candidate
	s.items[candidate.ID] = &copied
	return nil
}

func (s *fakeCandidateStore) Delete(id uint) error {
	delete(s.items, id)
	return nil
}

func (s *fakeCandidateStore) FindByID(id uint) (*models.Candidate, error) {
	candidate, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	copied := *candidate
	return &copied, nil
}

func (s *fakeCandidateStore) FindByOwnerAndEmail(ownerID uint, email string) (*models.Candidate, error) {
	for _, candidate := range s.items {
		if candidate.ReferredBy == ownerID && candidate.Email == email {
			copied := *candidate
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeCandidateStore) List(q repositories.CandidateQuery) ([]models.Candidate, error) {
	var out []models.Candidate
	for _, candidate := range s.items {
		if candidate.ReferredBy != q.OwnerID {
			continue
		}
		if q.Search != "" {
			term := strings.ToLower(q.Search)
			name := strings.ToLower(candidate.Name)
			title := strings.ToLower(candidate.JobTitle)
			if !strings.Contains(name, term) && !strings.Contains(title, term) {
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

func (s *fakeCandidateStore) CountTotal() (int64, error) {
	return int64(len(s.items)), nil
}

func (s *fakeCandidateStore) CountByStatus() (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, candidate := range s.items {
		counts[candidate.Status]++
	}
	return counts, nil
}

type fakeResumeStore struct {
	saved   []string
	deleted []string
	saveErr error
}

func (s *fakeResumeStore) Save(src io.Reader) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	io.Copy(io.Discard, src)
	url := fmt.Sprintf("/uploads/resume-fake-%d.pdf", len(s.saved)+1)
	s.saved = append(s.saved, url)
	return url, nil
}

func (s *fakeResumeStore) Delete(resumeURL string) error {
	s.deleted = append(s.deleted, resumeURL)
	return nil
}

// fileHeader builds a real multipart.FileHeader the way gin would hand one
// to the service.
func fileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="resume"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["resume"][0]
}
