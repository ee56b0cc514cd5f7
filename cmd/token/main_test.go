package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nearbite/pkg/utils"
)

func TestTokenCommandIssuesValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "shh")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--subject", "kiosk-7", "--role", "client", "--ttl", "10m"})
	require.NoError(t, cmd.Execute())

	claims, err := utils.ValidateToken([]byte("shh"), strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, "kiosk-7", claims.Subject)
	assert.Equal(t, "client", claims.Role)
}

func TestTokenCommandRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	assert.True(t, errors.Is(err, errMissingSecret))
}
