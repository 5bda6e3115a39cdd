package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestJWTRoundTrip(t *testing.T) {
	user := &User{
		ID:        primitive.NewObjectID(),
		FirstName: "Mary",
		LastName:  "Major",
		Email:     "mary@example.com",
		Role:      RoleAdministrator,
	}

	token, err := GenerateJWT(user, time.Hour)
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, "Mary Major", claims.Name)
	assert.Equal(t, "mary@example.com", claims.Email)
	assert.Equal(t, RoleAdministrator, claims.Role)
}

func TestValidateJWTRejectsExpiredToken(t *testing.T) {
	user := &User{ID: primitive.NewObjectID(), FirstName: "Mary", LastName: "Major"}

	token, err := GenerateJWT(user, -time.Minute)
	require.NoError(t, err)

	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	_, err := ValidateJWT("not.a.token")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong-pass", hash))
}
