package services

import (
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/refhub/referral-tracker/internal/apperrors"
	"github.com/refhub/referral-tracker/internal/auth"
	"github.com/refhub/referral-tracker/internal/dtos"
	"github.com/refhub/referral-tracker/internal/models"
	"github.com/refhub/referral-tracker/internal/repositories"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type AuthService struct {
	users       repositories.UserStore
	secret      string
	expireHours int
}

func NewAuthService(users repositories.UserStore, secret string, expireHours int) *AuthService {
	return &AuthService{users: users, secret: secret, expireHours: expireHours}
}

// Register validates input, rejects duplicate emails, stores the user with
// a bcrypt hash and issues an access token.
func (s *AuthService) Register(req *dtos.RegisterRequest) (string, *models.User, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	// Collect every violated field before touching storage.
	ve := &apperrors.ValidationError{}
	if len(name) < 2 {
		ve.Add("name", "Name must be at least 2 characters")
	}
	if !emailPattern.MatchString(email) {
		ve.Add("email", "Please include a valid email")
	}
	if len(req.Password) < 6 {
		ve.Add("password", "Password must be at least 6 characters")
	}
	if ve.HasErrors() {
		return "", nil, ve
	}

	existing, err := s.users.FindByEmail(email)
	if err != nil {
		return "", nil, err
	}
	if existing != nil {
		return "", nil, apperrors.Conflict("User already exists with this email")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
	}
	if err := s.users.Create(user); err != nil {
		return "", nil, err
	}

	token, err := auth.CreateAccessToken(user, s.secret, s.expireHours)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Login checks credentials and issues a token. Unknown email and wrong
// password both surface as ErrInvalidCredentials.
func (s *AuthService) Login(req *dtos.LoginRequest) (string, *models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.FindByEmail(email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := auth.CreateAccessToken(user, s.secret, s.expireHours)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// CurrentUser resolves the authenticated user id from a verified token.
func (s *AuthService) CurrentUser(id uint) (*models.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}
