package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opine-io/opine-client/internal/auth"
)

func TestStaticTokenManager(t *testing.T) {
	t.Parallel()

	manager := auth.NewStaticTokenManager("secret")

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "secret", token)
}

func TestStaticTokenManagerEmpty(t *testing.T) {
	t.Parallel()

	manager := auth.NewStaticTokenManager("")

	_, err := manager.GetToken(context.Background())
	require.ErrorIs(t, err, auth.ErrNoToken)
}

func TestStaticTokenManagerSetToken(t *testing.T) {
	t.Parallel()

	manager := auth.NewStaticTokenManager("old")
	manager.SetToken("new", time.Time{})

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "new", token)
}

func TestConfigTokenManagerLoadsOnEveryCall(t *testing.T) {
	t.Parallel()

	current := "first"
	manager := auth.NewConfigTokenManager(func() string { return current })

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "first", token)

	current = "second"

	token, err = manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "second", token)
}

func TestConfigTokenManagerOverride(t *testing.T) {
	t.Parallel()

	manager := auth.NewConfigTokenManager(func() string { return "loaded" })
	manager.SetToken("override", time.Time{})

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "override", token)
}

func TestConfigTokenManagerEmpty(t *testing.T) {
	t.Parallel()

	manager := auth.NewConfigTokenManager(func() string { return "" })

	_, err := manager.GetToken(context.Background())
	require.ErrorIs(t, err, auth.ErrNoToken)
}
