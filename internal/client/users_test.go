package client_test

import (
	"context"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opine-io/opine-client/internal/client"
	"github.com/opine-io/opine-client/pkg/opine"
)

func TestUsersCreate(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, nethttp.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/users", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.JSONEq(t, `{
			"user": {"username": "jsmith", "email": "jsmith@example.com", "global_permissions": ["view"]}
		}`, string(body))

		w.WriteHeader(nethttp.StatusOK)
		_, _ = w.Write([]byte(`{
			"status": "ok",
			"user": {"id": "u-1", "username": "jsmith", "email": "jsmith@example.com", "global_permissions": ["view"]}
		}`))
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)

	user, err := c.Users().Create(context.Background(), &opine.UserCreateRequest{
		Username:          "jsmith",
		Email:             "jsmith@example.com",
		GlobalPermissions: []string{"view"},
	})
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)
}

func TestUsersGetByID(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "/api/v1/users/id:u-1", r.URL.Path)

		w.WriteHeader(nethttp.StatusOK)
		_, _ = w.Write([]byte(`{"status": "ok", "user": {"id": "u-1", "username": "jsmith"}}`))
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)

	user, err := c.Users().Get(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "jsmith", user.Username)
}

func TestUsersGetByUsername(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "/api/v1/users/jsmith", r.URL.Path)

		w.WriteHeader(nethttp.StatusOK)
		_, _ = w.Write([]byte(`{"status": "ok", "user": {"id": "u-1", "username": "jsmith"}}`))
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)

	user, err := c.Users().GetByUsername(context.Background(), "jsmith")
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)
}

func TestUsersList(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "/api/v1/users", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("limit"))

		w.WriteHeader(nethttp.StatusOK)
		_, _ = w.Write([]byte(`{
			"status": "ok",
			"users": [{"id": "u-1", "username": "jsmith"}, {"id": "u-2", "username": "akumar"}],
			"continuation": "tok-1"
		}`))
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)

	page, err := c.Users().List(context.Background(), opine.NewQueryParams().WithLimit(2))
	require.NoError(t, err)

	require.Len(t, page.Users, 2)
	assert.Equal(t, "akumar", page.Users[1].Username)
	assert.Equal(t, "tok-1", page.Continuation)
}

func TestUsersUpdatePermissions(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, nethttp.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/users/id:u-1/permissions", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.JSONEq(t, `{
			"permissions": {
				"global_permissions": ["view"],
				"project_permissions": {"support": ["review", "label"]}
			}
		}`, string(body))

		w.WriteHeader(nethttp.StatusOK)
		_, _ = w.Write([]byte(`{
			"status": "ok",
			"user": {
				"id": "u-1",
				"username": "jsmith",
				"global_permissions": ["view"],
				"project_permissions": {"support": ["review", "label"]}
			}
		}`))
	}))
	defer server.Close()

	c := client.NewTestClient(server.URL)

	user, err := c.Users().UpdatePermissions(context.Background(), "u-1", &opine.UserPermissionsUpdateRequest{
		GlobalPermissions:  []string{"view"},
		ProjectPermissions: map[string][]string{"support": {"review", "label"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"review", "label"}, user.ProjectPermissions["support"])
}
