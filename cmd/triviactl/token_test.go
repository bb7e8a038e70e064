package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/auth/jwt"
)

func TestTokenCommand(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("ADMIN_JWT_SECRET", "secret")
	t.Setenv("APP_NAME", "trivia-api")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"token", "--subject", "ops"})
	require.NoError(t, root.Execute())

	claims, err := jwt.NewManager(jwt.TokenConfig{Secret: []byte("secret"), Issuer: "trivia-api"}).
		Validate(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.Subject)
	assert.Equal(t, jwt.RoleAdmin, claims.Role)
}

func TestTokenCommandRequiresSecret(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("ADMIN_JWT_SECRET", "")

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"token"})
	assert.ErrorContains(t, root.Execute(), "ADMIN_JWT_SECRET")
}

func TestMigrateRequiresPostgres(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")

	root := newRootCmd()
	root.SetArgs([]string{"migrate", "status"})
	assert.ErrorContains(t, root.Execute(), "STORE_DRIVER=postgres")
}
