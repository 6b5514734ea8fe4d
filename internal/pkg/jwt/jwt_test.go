package jwt

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

func contextWithToken(t *testing.T, svc Service, tokenString string) context.Context {
	t.Helper()
	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestGenerateAccessToken_RoundTrip(t *testing.T) {
	svc := NewJWTService(testSecret, "1h")

	tokenString, expiresAt, err := svc.GenerateAccessToken("u-1", "E1", "c-1", user.RoleManager)
	require.NoError(t, err)
	assert.NotEmpty(t, tokenString)
	assert.Greater(t, expiresAt, int64(0))

	claims, err := ClaimsFromContext(contextWithToken(t, svc, tokenString))
	require.NoError(t, err)
	assert.Equal(t, Claims{UserID: "u-1", EmployeeID: "E1", CompanyID: "c-1", Role: user.RoleManager}, claims)
}

func TestGenerateAccessToken_InvalidDuration(t *testing.T) {
	svc := NewJWTService(testSecret, "forever")

	_, _, err := svc.GenerateAccessToken("u-1", "E1", "c-1", user.RoleEmployee)
	assert.Error(t, err)
}

func TestClaimsFromContext_MissingCompany(t *testing.T) {
	svc := NewJWTService(testSecret, "1h")

	tokenString, _, err := svc.GenerateAccessToken("u-1", "E1", "", user.RoleEmployee)
	require.NoError(t, err)

	_, err = ClaimsFromContext(contextWithToken(t, svc, tokenString))
	assert.ErrorIs(t, err, ErrMissingClaims)
}

func TestClaimsFromContext_NoToken(t *testing.T) {
	_, err := ClaimsFromContext(context.Background())
	assert.Error(t, err)
}
