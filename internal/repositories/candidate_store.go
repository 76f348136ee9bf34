package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/refhub/referral-tracker/internal/models"
)

// CandidateQuery is the List filter. Search matches name OR job title
// case-insensitively; Status is an exact match; both compose with AND.
type CandidateQuery struct {
	OwnerID uint
	Search  string
	Status  string
}

type CandidateStore interface {
	Create(candidate *models.Candidate) error
	Update(candidate *models.Candidate) error
	Delete(id uint) error
	FindByID(id uint) (*models.Candidate, error)
	FindByOwnerAndEmail(ownerID uint, email string) (*models.Candidate, error)
	List(q CandidateQuery) ([]models.Candidate, error)
	CountTotal() (int64, error)
	CountByStatus() (map[string]int64, error)
}

type GormCandidateStore struct {
	db *gorm.DB
}

func NewGormCandidateStore(db *gorm.DB) *GormCandidateStore {
	return &GormCandidateStore{db: db}
}

func (s *GormCandidateStore) Create(candidate *models.Candidate) error {
	return s.db.Create(candidate).Error
}

func (s *GormCandidateStore) Update(candidate *models.Candidate) error {
	return s.db.Save(candidate).Error
}

func (s *GormCandidateStore) Delete(id uint) error {
	return s.db.Delete(&models.Candidate{}, id).Error
}

func (s *GormCandidateStore) FindByID(id uint) (*models.Candidate, error) {
	var candidate models.Candidate
	err := s.db.First(&candidate, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &candidate, nil
}

func (s *GormCandidateStore) FindByOwnerAndEmail(ownerID uint, email string) (*models.Candidate, error) {
	var candidate models.Candidate
	err := s.db.Where("referred_by = ? AND email = ?", ownerID, email).First(&candidate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &candidate, nil
}

func (s *GormCandidateStore) List(q CandidateQuery) ([]models.Candidate, error) {
	tx := s.db.Where("referred_by = ?", q.OwnerID)

	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		tx = tx.Where("name ILIKE ? OR job_title ILIKE ?", pattern, pattern)
	}
	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}

	var candidates []models.Candidate
	if err := tx.Order("created_at DESC").Find(&candidates).Error; err != nil {
		return nil, err
	}
	return candidates, nil
}

func (s *GormCandidateStore) CountTotal() (int64, error) {
	var total int64
	err := s.db.Model(&models.Candidate{}).Count(&total).Error
	return total, err
}

func (s *GormCandidateStore) CountByStatus() (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := s.db.Model(&models.Candidate{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}
