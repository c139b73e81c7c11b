package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenData is the identity carried by a verified bearer token.
type TokenData struct {
	UserID string
	Role   string
}

// ClientInterface interface that we will implement and mock
type ClientInterface interface {
	// VerifyToken checks the raw token and returns its identity.
	VerifyToken(token string) (*TokenData, error)
	// Authenticate extracts and verifies the bearer token of a request,
	// returning nil when the request carries no valid identity.
	Authenticate(req *http.Request) *TokenData
}

// Client signs and verifies the service's own bearer tokens (HS256).
type Client struct {
	secret []byte
	expiry time.Duration
}

// TokenExpiry is how long issued tokens stay valid.
const TokenExpiry = 30 * 24 * time.Hour

type claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// NewClient creates a new Auth Client
func NewClient(authSecret string) (*Client, error) {
	if authSecret == "" {
		return nil, errors.New("auth secret cannot be empty")
	}
	return &Client{
		secret: []byte(authSecret),
		expiry: TokenExpiry,
	}, nil
}

// SignToken issues a token for the given account id and role.
func (client *Client) SignToken(userID, role string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(client.expiry)),
		},
	})
	return token.SignedString(client.secret)
}

// VerifyToken checks signature and expiry and returns the token identity.
func (client *Client) VerifyToken(rawToken string) (*TokenData, error) {
	token, err := jwt.ParseWithClaims(rawToken, &claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return client.secret, nil
	})
	if err != nil {
		return nil, err
	}
	tokenClaims, ok := token.Claims.(*claims)
	if !ok || !token.Valid || tokenClaims.Subject == "" {
		return nil, errors.New("invalid token")
	}
	return &TokenData{UserID: tokenClaims.Subject, Role: tokenClaims.Role}, nil
}

// Authenticate the incoming request using the authorization Bearer token
func (client *Client) Authenticate(req *http.Request) *TokenData {
	rawToken, err := ExtractToken(req.Header.Get("Authorization"))
	if err != nil {
		return nil
	}
	tokenData, err := client.VerifyToken(rawToken)
	if err != nil {
		return nil
	}
	return tokenData
}

// ExtractToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func ExtractToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", errors.New("empty authorization header")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header format")
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", errors.New("empty token")
	}
	return token, nil
}
