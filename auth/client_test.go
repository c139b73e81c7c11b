package auth

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndVerifyToken(t *testing.T) {
	client, err := NewClient("test-secret")
	require.NoError(t, err)

	token, err := client.SignToken("123456789012345678901234", "user")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	tokenData, err := client.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "123456789012345678901234", tokenData.UserID)
	assert.Equal(t, "user", tokenData.Role)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	signer, err := NewClient("secret-one")
	require.NoError(t, err)
	verifier, err := NewClient("secret-two")
	require.NoError(t, err)

	token, err := signer.SignToken("123456789012345678901234", "user")
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyTokenGarbage(t *testing.T) {
	client, err := NewClient("test-secret")
	require.NoError(t, err)

	_, err = client.VerifyToken("not.a.token")
	assert.Error(t, err)
}

func TestNewClientEmptySecret(t *testing.T) {
	_, err := NewClient("")
	assert.Error(t, err)
}

func TestExtractToken(t *testing.T) {
	token, err := ExtractToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	token, err = ExtractToken("bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ExtractToken("")
	assert.Error(t, err)

	_, err = ExtractToken("Basic dXNlcjpwYXNz")
	assert.Error(t, err)

	_, err = ExtractToken("Bearer ")
	assert.Error(t, err)
}

func TestAuthenticateRequest(t *testing.T) {
	client, err := NewClient("test-secret")
	require.NoError(t, err)

	token, err := client.SignToken("123456789012345678901234", "admin")
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodGet, "/api/metrics/sleep", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	tokenData := client.Authenticate(req)
	require.NotNil(t, tokenData)
	assert.Equal(t, "admin", tokenData.Role)

	req.Header.Del("Authorization")
	assert.Nil(t, client.Authenticate(req))
}
