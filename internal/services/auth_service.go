package services

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/coursehaven/backend/internal/models"
	"github.com/coursehaven/backend/internal/repository"
)

// TokenTTL is the fixed token lifetime. There is no refresh flow and no
// revocation list; a leaked token stays valid until expiry.
const TokenTTL = 24 * time.Hour

// AuthService handles signup and login for one credential collection. Two
// instances exist, one per role, each signing with its own secret so a user
// token can never pass the admin gate.
type AuthService struct {
	accounts  repository.AccountRepository
	secret    []byte
	role      string
	createdBy string
}

func NewAuthService(accounts repository.AccountRepository, secret, role, createdBy string) *AuthService {
	return &AuthService{
		accounts:  accounts,
		secret:    []byte(secret),
		role:      role,
		createdBy: createdBy,
	}
}

type SignupInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Signup creates a new account with a bcrypt-hashed password. The unique
// email index backs the duplicate check, so a concurrent duplicate signup
// surfaces as ErrEmailTaken rather than a second record.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*models.Account, error) {
	email := normalizeEmail(input.Email)

	if _, err := s.accounts.FindByEmail(ctx, email); err == nil {
		return nil, models.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	account := &models.Account{
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Email:     email,
		Password:  string(hash),
		CreatedBy: s.createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.accounts.Insert(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Login verifies credentials and returns a signed token alongside the
// account. Unknown email and wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.Account, error) {
	account, err := s.accounts.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", nil, models.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)) != nil {
		return "", nil, models.ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"id":   account.ID.Hex(),
		"role": s.role,
		"exp":  time.Now().Add(TokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, err
	}
	return token, account, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
