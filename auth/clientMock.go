package auth

import (
	"errors"
	"net/http"
)

// ClientMock use for unit tests
type ClientMock struct {
	Unauthorized bool
	UserID       string
	Role         string
}

func NewMock() *ClientMock {
	return &ClientMock{
		Unauthorized: false,
		UserID:       "123456789012345678901234",
		Role:         "user",
	}
}

func (client *ClientMock) VerifyToken(token string) (*TokenData, error) {
	if client.Unauthorized || token == "" {
		return nil, errors.New("invalid token")
	}
	return &TokenData{UserID: client.UserID, Role: client.Role}, nil
}

func (client *ClientMock) Authenticate(req *http.Request) *TokenData {
	if client.Unauthorized {
		return nil
	}
	if req.Header.Get("Authorization") != "" {
		return &TokenData{UserID: client.UserID, Role: client.Role}
	}
	return nil
}
