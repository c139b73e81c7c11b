package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminawell/luminawell-api/auth"
	"github.com/luminawell/luminawell-api/infrastructure"
	"github.com/luminawell/luminawell-api/schema"
)

func newAccountUseCaseTest(t *testing.T) (*AccountUseCase, *infrastructure.MockAccountRepository) {
	tokens, err := auth.NewClient("test-secret")
	require.NoError(t, err)
	repo := infrastructure.NewMockAccountRepository()
	return NewAccountUseCase(testLogger, repo, tokens, schema.RoleUser), repo
}

func TestAccountRegister(t *testing.T) {
	uc, repo := newAccountUseCaseTest(t)

	result, detailed := uc.Register(context.Background(), "Ada Lovelace", "Ada@Example.com", "secret123")
	require.Nil(t, detailed)

	assert.Equal(t, "ada@example.com", result.Email)
	assert.Equal(t, schema.RoleUser, result.Role)
	assert.NotEmpty(t, result.Token)
	assert.NotEmpty(t, result.ID)

	// the stored hash is never the clear password
	stored := repo.Accounts["ada@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
}

func TestAccountRegisterDuplicateEmail(t *testing.T) {
	uc, _ := newAccountUseCaseTest(t)
	ctx := context.Background()

	_, detailed := uc.Register(ctx, "Ada", "ada@example.com", "secret123")
	require.Nil(t, detailed)

	_, detailed = uc.Register(ctx, "Imposter", "ada@example.com", "other")
	require.NotNil(t, detailed)
	assert.Equal(t, 400, detailed.Status)
	assert.Equal(t, "email_taken", detailed.Code)
}

func TestAccountRegisterMissingFields(t *testing.T) {
	uc, _ := newAccountUseCaseTest(t)

	_, detailed := uc.Register(context.Background(), "Ada", "", "secret123")
	require.NotNil(t, detailed)
	assert.Equal(t, "missing_field", detailed.Code)

	_, detailed = uc.Register(context.Background(), "Ada", "ada@example.com", "")
	require.NotNil(t, detailed)
	assert.Equal(t, "missing_field", detailed.Code)
}

func TestAccountLogin(t *testing.T) {
	uc, _ := newAccountUseCaseTest(t)
	ctx := context.Background()

	_, detailed := uc.Register(ctx, "Ada", "ada@example.com", "secret123")
	require.Nil(t, detailed)

	result, detailed := uc.Login(ctx, "ADA@example.com", "secret123")
	require.Nil(t, detailed)
	assert.NotEmpty(t, result.Token)
}

func TestAccountLoginUnknownEmail(t *testing.T) {
	uc, _ := newAccountUseCaseTest(t)

	_, detailed := uc.Login(context.Background(), "nobody@example.com", "secret123")
	require.NotNil(t, detailed)
	assert.Equal(t, 400, detailed.Status)
	assert.Equal(t, "Email not found", detailed.Message)
}

func TestAccountLoginWrongPassword(t *testing.T) {
	uc, _ := newAccountUseCaseTest(t)
	ctx := context.Background()

	_, detailed := uc.Register(ctx, "Ada", "ada@example.com", "secret123")
	require.Nil(t, detailed)

	_, detailed = uc.Login(ctx, "ada@example.com", "wrong")
	require.NotNil(t, detailed)
	assert.Equal(t, 401, detailed.Status)
	assert.Equal(t, "Invalid email or password", detailed.Message)
}

func TestAccountResetPassword(t *testing.T) {
	uc, _ := newAccountUseCaseTest(t)
	ctx := context.Background()

	_, detailed := uc.Register(ctx, "Ada", "ada@example.com", "secret123")
	require.Nil(t, detailed)

	detailed = uc.ResetPassword(ctx, "ada@example.com", "newsecret", "newsecret")
	require.Nil(t, detailed)

	_, detailed = uc.Login(ctx, "ada@example.com", "secret123")
	require.NotNil(t, detailed)

	_, detailed = uc.Login(ctx, "ada@example.com", "newsecret")
	assert.Nil(t, detailed)
}

func TestAccountResetPasswordMismatch(t *testing.T) {
	uc, _ := newAccountUseCaseTest(t)

	detailed := uc.ResetPassword(context.Background(), "ada@example.com", "one", "two")
	require.NotNil(t, detailed)
	assert.Equal(t, "Passwords do not match", detailed.Message)
}

func TestAccountResetPasswordUnknownEmail(t *testing.T) {
	uc, _ := newAccountUseCaseTest(t)

	detailed := uc.ResetPassword(context.Background(), "nobody@example.com", "new", "new")
	require.NotNil(t, detailed)
	assert.Equal(t, 404, detailed.Status)
}
