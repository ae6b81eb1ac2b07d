package taskme_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/taskme/pkg/taskmesdk"
)

func TestRegistrationRequiresVerification(t *testing.T) {
	client := setupContainer(t, relaxedLimits)
	ctx := context.Background()

	req := taskmesdk.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "Sup3rSecret"}
	msg, err := client.Register(ctx, req)
	require.NoError(t, err)
	require.Contains(t, msg.Message, "verify")

	_, err = client.Register(ctx, req)
	apiErr := requireAPIError(t, err, http.StatusConflict)
	require.Equal(t, "Username already taken", apiErr.Description)

	_, err = client.Login(ctx, "alice", req.Password)
	requireAPIError(t, err, http.StatusForbidden)

	_, err = client.Login(ctx, "alice", "Wrong-pass1")
	requireAPIError(t, err, http.StatusUnauthorized)

	// The same answer for known and unknown addresses.
	a, err := client.ResendVerification(ctx, "alice@example.com")
	require.NoError(t, err)
	b, err := client.ResendVerification(ctx, "nobody@example.com")
	require.NoError(t, err)
	require.Equal(t, a.Message, b.Message)
}

func TestWeakPasswordRejected(t *testing.T) {
	client := setupContainer(t, relaxedLimits)

	_, err := client.Register(context.Background(), taskmesdk.RegisterRequest{
		Username: "bob", Email: "bob@example.com", Password: "short",
	})
	requireAPIError(t, err, http.StatusBadRequest)
}

func TestProtectedRoutesWithoutToken(t *testing.T) {
	client := setupContainer(t, nil)
	ctx := context.Background()

	_, err := client.ListTasks(ctx, taskmesdk.TaskListParams{})
	requireAPIError(t, err, http.StatusUnauthorized)

	client.SetToken("not-a-jwt")
	_, err = client.Me(ctx)
	requireAPIError(t, err, http.StatusUnauthorized)
}

func TestUnknownShareToken(t *testing.T) {
	client := setupContainer(t, nil)

	_, err := client.GetShared(context.Background(), "does-not-exist")
	apiErr := requireAPIError(t, err, http.StatusNotFound)
	require.Equal(t, "Share link not found", apiErr.Description)
}
