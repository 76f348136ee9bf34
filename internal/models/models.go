package models

import (
	"time"
)

// Candidate lifecycle stages. A new referral always starts as Pending.
const (
	StatusPending  = "Pending"
	StatusReviewed = "Reviewed"
	StatusHired    = "Hired"
)

// ValidStatus reports whether s is one of the three lifecycle stages.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusReviewed || s == StatusHired
}

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
}

type Candidate struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"not null;uniqueIndex:idx_owner_email" json:"email"`
	Phone    string `gorm:"not null" json:"phone"`
	JobTitle string `gorm:"not null" json:"job_title"`
	Status   string `gorm:"not null;default:'Pending'" json:"status"`

	// Relative URL of the uploaded resume, nil when none was attached.
	ResumeURL *string `json:"resume_url"`

	// Foreign Key: the referring user. Part of the unique index so two
	// different users may each refer the same email address.
	ReferredBy uint `gorm:"not null;uniqueIndex:idx_owner_email" json:"referred_by"`
	Referrer   User `gorm:"foreignKey:ReferredBy" json:"-"`
}

// Stats is the aggregate view for the dashboard. All three statuses are
// always present in ByStatus, zero when no candidate has that status.
type Stats struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"byStatus"`
}
