package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewin_backend/internal/model"
)

const testSecret = "test-secret-key-for-jwt-signing!"

func testUser() *model.User {
	return &model.User{
		BaseModel: model.BaseModel{ID: 42},
		Name:      "Alice",
		Email:     "alice@example.com",
		Role:      model.RoleTeacher,
	}
}

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT(testUser(), TokenTypeAccess, testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, model.RoleTeacher, claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.NotEmpty(t, claims.ID)
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT(testUser(), TokenTypeAccess, testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, "some-other-secret")
	assert.Error(t, err)
}

func TestParseJWTExpired(t *testing.T) {
	token, err := GenerateJWT(testUser(), TokenTypeAccess, testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, testSecret)
	assert.Error(t, err)
}

func TestJTIUniquePerToken(t *testing.T) {
	user := testUser()

	first, err := GenerateJWT(user, TokenTypeRefresh, testSecret, time.Hour)
	require.NoError(t, err)
	second, err := GenerateJWT(user, TokenTypeRefresh, testSecret, time.Hour)
	require.NoError(t, err)

	firstClaims, err := ParseJWT(first, testSecret)
	require.NoError(t, err)
	secondClaims, err := ParseJWT(second, testSecret)
	require.NoError(t, err)

	assert.NotEqual(t, firstClaims.ID, secondClaims.ID)
}
