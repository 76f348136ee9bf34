package services

import (
	"io"
	"log"
	"mime/multipart"
	"regexp"
	"strings"

	"github.com/refhub/referral-tracker/internal/apperrors"
	"github.com/refhub/referral-tracker/internal/dtos"
	"github.com/refhub/referral-tracker/internal/models"
	"github.com/refhub/referral-tracker/internal/repositories"
)

// MaxResumeSize caps resume uploads at 5MB.
const MaxResumeSize = 5 << 20

var phonePattern = regexp.MustCompile(`^\+?[0-9\s\-()]{10,}$`)

// ResumeStore is the slice of the file store the candidate flow needs.
type ResumeStore interface {
	Save(src io.Reader) (string, error)
	Delete(resumeURL string) error
}

type CandidateService struct {
	candidates repositories.CandidateStore
	resumes    ResumeStore
}

func NewCandidateService(candidates repositories.CandidateStore, resumes ResumeStore) *CandidateService {
	return &CandidateService{candidates: candidates, resumes: resumes}
}

// List returns the caller's referrals newest-first, optionally narrowed by
// a case-insensitive name/job-title search and an exact status match.
func (s *CandidateService) List(ownerID uint, search, status string) ([]models.Candidate, error) {
	candidates, err := s.candidates.List(repositories.CandidateQuery{
		OwnerID: ownerID,
		Search:  strings.TrimSpace(search),
		Status:  status,
	})
	if err != nil {
		return nil, err
	}
	if candidates == nil {
		candidates = []models.Candidate{}
	}
	return candidates, nil
}

// Create validates the referral, rejects duplicates for the same owner and
// persists it with status Pending. The resume file is only written after
// all validation passes; if the row insert then fails, the staged file is
// removed so no orphaned upload survives a failed create.
func (s *CandidateService) Create(ownerID uint, req *dtos.CreateCandidateRequest, resume *multipart.FileHeader) (*models.Candidate, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	phone := strings.TrimSpace(req.Phone)
	jobTitle := strings.TrimSpace(req.JobTitle)

	ve := &apperrors.ValidationError{}
	if name == "" {
		ve.Add("name", "Name is required")
	}
	if !emailPattern.MatchString(email) {
		ve.Add("email", "Valid email is required")
	}
	if !phonePattern.MatchString(phone) {
		ve.Add("phone", "Valid phone number is required")
	}
	if jobTitle == "" {
		ve.Add("jobTitle", "Job title is required")
	}
	if resume != nil {
		if resume.Header.Get("Content-Type") != "application/pdf" {
			ve.Add("resume", "Only PDF files are allowed")
		} else if resume.Size > MaxResumeSize {
			ve.Add("resume", "Resume must be under 5MB")
		}
	}
	if ve.HasErrors() {
		return nil, ve
	}

	existing, err := s.candidates.FindByOwnerAndEmail(ownerID, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Conflict("Candidate with this email already exists")
	}

	var resumeURL *string
	if resume != nil {
		src, err := resume.Open()
		if err != nil {
			return nil, err
		}
		url, err := s.resumes.Save(src)
		src.Close()
		if err != nil {
			return nil, err
		}
		resumeURL = &url
	}

	candidate := &models.Candidate{
		Name:       name,
		Email:      email,
		Phone:      phone,
		JobTitle:   jobTitle,
		Status:     models.StatusPending,
		ResumeURL:  resumeURL,
		ReferredBy: ownerID,
	}
	if err := s.candidates.Create(candidate); err != nil {
		if resumeURL != nil {
			if delErr := s.resumes.Delete(*resumeURL); delErr != nil {
				log.Printf("Failed to clean up staged resume %s: %v", *resumeURL, delErr)
			}
		}
		return nil, err
	}
	return candidate, nil
}

// UpdateStatus moves a candidate to any stage in the enum. Transitions are
// not required to be monotonic; Hired may legally go back to Pending.
func (s *CandidateService) UpdateStatus(id uint, status string) (*models.Candidate, error) {
	if !models.ValidStatus(status) {
		return nil, apperrors.Validation("status", "Invalid status")
	}

	candidate, err := s.candidates.FindByID(id)
	if err != nil {
		return nil, err
	}
	if candidate == nil {
		return nil, apperrors.ErrNotFound
	}

	candidate.Status = status
	if err := s.candidates.Update(candidate); err != nil {
		return nil, err
	}
	return candidate, nil
}

// Delete removes the record, then the resume file. The file delete is best
// effort: a leftover file is an accepted inconsistency, a missing record
// is not.
func (s *CandidateService) Delete(id uint) error {
	candidate, err := s.candidates.FindByID(id)
	if err != nil {
		return err
	}
	if candidate == nil {
		return apperrors.ErrNotFound
	}

	if err := s.candidates.Delete(id); err != nil {
		return err
	}

	if candidate.ResumeURL != nil {
		if err := s.resumes.Delete(*candidate.ResumeURL); err != nil {
			log.Printf("Failed to delete resume %s: %v", *candidate.ResumeURL, err)
		}
	}
	return nil
}

// Stats aggregates counts per status. Every enum value appears in the
// result, zero when absent from the data.
func (s *CandidateService) Stats() (*models.Stats, error) {
	total, err := s.candidates.CountTotal()
	if err != nil {
		return nil, err
	}
	counts, err := s.candidates.CountByStatus()
	if err != nil {
		return nil, err
	}

	byStatus := map[string]int64{
		models.StatusPending:  0,
		models.StatusReviewed: 0,
		models.StatusHired:    0,
	}
	for status, count := range counts {
		byStatus[status] = count
	}
	return &models.Stats{Total: total, ByStatus: byStatus}, nil
}
