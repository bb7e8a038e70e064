package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	m := NewManager(TokenConfig{Secret: []byte("secret")})

	token, err := m.Generate("ops", RoleAdmin)
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, "ops", claims.Subject)
}

func TestValidateRejectsForeignSecret(t *testing.T) {
	token, err := NewManager(TokenConfig{Secret: []byte("other")}).Generate("ops", RoleAdmin)
	require.NoError(t, err)

	_, err = NewManager(TokenConfig{Secret: []byte("secret")}).Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateExpired(t *testing.T) {
	m := NewManager(TokenConfig{Secret: []byte("secret"), TTL: -time.Minute})

	token, err := m.Generate("ops", RoleAdmin)
	require.NoError(t, err)

	_, err = m.Validate(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateGarbage(t *testing.T) {
	_, err := NewManager(TokenConfig{Secret: []byte("secret")}).Validate("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
