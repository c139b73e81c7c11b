package usecase

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/luminawell/luminawell-api/auth"
	"github.com/luminawell/luminawell-api/common"
	"github.com/luminawell/luminawell-api/schema"
)

var (
	errorEmailTaken       = common.DetailedError{Status: http.StatusBadRequest, Code: "email_taken", Message: "an account with this email already exists"}
	errorEmailNotFound    = common.DetailedError{Status: http.StatusBadRequest, Code: "email_not_found", Message: "Email not found"}
	errorInvalidPassword  = common.DetailedError{Status: http.StatusUnauthorized, Code: "invalid_credentials", Message: "Invalid email or password"}
	errorPasswordMismatch = common.DetailedError{Status: http.StatusBadRequest, Code: "password_mismatch", Message: "Passwords do not match"}
	errorAccountNotFound  = common.DetailedError{Status: http.StatusNotFound, Code: "account_not_found", Message: "Account not found"}
	errorMissingField     = common.DetailedError{Status: http.StatusBadRequest, Code: "missing_field", Message: "email and password are required"}
	errorAccountStore     = common.DetailedError{Status: http.StatusInternalServerError, Code: "account_store_error", Message: "internal server error"}
	errorTokenSigning     = common.DetailedError{Status: http.StatusInternalServerError, Code: "token_error", Message: "internal server error"}
)

// AuthResult is what register and login hand back to the controller.
type AuthResult struct {
	ID       string `json:"_id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Token    string `json:"token"`
}

// AccountUseCase implements register/login/reset-password for one role.
// User and admin accounts are structurally identical; each role gets its
// own instance bound to its own repository collection.
type AccountUseCase struct {
	logger *log.Logger
	repo   AccountRepository
	tokens *auth.Client
	role   string
}

func NewAccountUseCase(logger *log.Logger, repo AccountRepository, tokens *auth.Client, role string) *AccountUseCase {
	return &AccountUseCase{
		logger: logger,
		repo:   repo,
		tokens: tokens,
		role:   role,
	}
}

func (uc *AccountUseCase) Role() string {
	return uc.role
}

// Register creates an account and returns a signed 30-day token.
func (uc *AccountUseCase) Register(ctx context.Context, fullName, email, password string) (*AuthResult, *common.DetailedError) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		detailed := errorMissingField
		return nil, &detailed
	}

	existing, err := uc.repo.FindByEmail(ctx, email)
	if err != nil {
		detailed := errorAccountStore.SetInternalMessage(err)
		return nil, &detailed
	}
	if existing != nil {
		detailed := errorEmailTaken
		return nil, &detailed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		detailed := errorAccountStore.SetInternalMessage(err)
		return nil, &detailed
	}

	account := &schema.Account{
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hash),
		Role:         uc.role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := uc.repo.Create(ctx, account); err != nil {
		detailed := errorAccountStore.SetInternalMessage(err)
		return nil, &detailed
	}

	return uc.authResult(account)
}

// Login verifies the password and returns a signed 30-day token.
func (uc *AccountUseCase) Login(ctx context.Context, email, password string) (*AuthResult, *common.DetailedError) {
	email = normalizeEmail(email)
	account, err := uc.repo.FindByEmail(ctx, email)
	if err != nil {
		detailed := errorAccountStore.SetInternalMessage(err)
		return nil, &detailed
	}
	if account == nil {
		detailed := errorEmailNotFound
		return nil, &detailed
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		uc.logger.Printf("failed login attempt for %s account %s", uc.role, email)
		detailed := errorInvalidPassword
		return nil, &detailed
	}
	return uc.authResult(account)
}

// ResetPassword rehashes and stores a new password for the account.
func (uc *AccountUseCase) ResetPassword(ctx context.Context, email, password, confirmPassword string) *common.DetailedError {
	email = normalizeEmail(email)
	if password != confirmPassword {
		detailed := errorPasswordMismatch
		return &detailed
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		detailed := errorAccountStore.SetInternalMessage(err)
		return &detailed
	}
	updated, err := uc.repo.UpdatePassword(ctx, email, string(hash))
	if err != nil {
		detailed := errorAccountStore.SetInternalMessage(err)
		return &detailed
	}
	if !updated {
		detailed := errorAccountNotFound
		return &detailed
	}
	return nil
}

func (uc *AccountUseCase) authResult(account *schema.Account) (*AuthResult, *common.DetailedError) {
	token, err := uc.tokens.SignToken(account.ID.Hex(), account.Role)
	if err != nil {
		detailed := errorTokenSigning.SetInternalMessage(err)
		return nil, &detailed
	}
	return &AuthResult{
		ID:       account.ID.Hex(),
		FullName: account.FullName,
		Email:    account.Email,
		Role:     account.Role,
		Token:    token,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}
