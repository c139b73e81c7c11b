package infrastructure

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/luminawell/luminawell-api/schema"
)

// MockAccountRepository is an in-memory stand-in for an account collection.
type MockAccountRepository struct {
	Accounts   map[string]*schema.Account
	QueryError bool
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{Accounts: map[string]*schema.Account{}}
}

func (m *MockAccountRepository) EnableQueryError() {
	m.QueryError = true
}

func (m *MockAccountRepository) FindByEmail(ctx context.Context, email string) (*schema.Account, error) {
	if m.QueryError {
		return nil, errMockStore
	}
	account, ok := m.Accounts[email]
	if !ok {
		return nil, nil
	}
	copied := *account
	return &copied, nil
}

func (m *MockAccountRepository) Create(ctx context.Context, account *schema.Account) error {
	if m.QueryError {
		return errMockStore
	}
	if account.ID.IsZero() {
		account.ID = primitive.NewObjectID()
	}
	copied := *account
	m.Accounts[account.Email] = &copied
	return nil
}

func (m *MockAccountRepository) UpdatePassword(ctx context.Context, email string, passwordHash string) (bool, error) {
	if m.QueryError {
		return false, errMockStore
	}
	account, ok := m.Accounts[email]
	if !ok {
		return false, nil
	}
	account.PasswordHash = passwordHash
	account.UpdatedAt = time.Now()
	return true, nil
}
