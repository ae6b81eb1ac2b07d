package events

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/taskme/pkg/slogx"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()

	h := NewHub(slogx.Discard(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)
	t.Cleanup(cancel)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, _ := strconv.ParseInt(r.URL.Query().Get("uid"), 10, 64)
		_ = h.Serve(w, r, uid)
	}))
	t.Cleanup(srv.Close)
	return h, srv
}

func dial(t *testing.T, srv *httptest.Server, uid int) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?uid=" + strconv.Itoa(uid)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestHubDeliversToOwnerOnly(t *testing.T) {
	h, srv := startHub(t)

	alice := dial(t, srv, 1)
	bob := dial(t, srv, 2)
	require.Eventually(t, func() bool { return h.Connected() == 2 }, time.Second, 10*time.Millisecond)

	h.Publish(Event{Type: TaskCreated, UserID: 1, TaskIDs: []int64{7}})

	_ = alice.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := alice.ReadMessage()
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	require.Equal(t, "task.created", got["type"])
	require.Equal(t, []any{float64(7)}, got["task_ids"])
	require.NotContains(t, got, "UserID")
	require.NotEmpty(t, got["at"])

	_ = bob.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err = bob.ReadMessage()
	require.Error(t, err, "bob must not see alice's events")
}

func TestHubUnregistersOnClose(t *testing.T) {
	h, srv := startHub(t)

	conn := dial(t, srv, 1)
	require.Eventually(t, func() bool { return h.Connected() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return h.Connected() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestPublishWithoutRunDoesNotBlock(t *testing.T) {
	h := NewHub(slogx.Discard(), nil)
	for i := 0; i < publishBuffer+10; i++ {
		h.Publish(Event{Type: TaskDeleted, UserID: 1})
	}
}

func TestCheckOrigin(t *testing.T) {
	h := NewHub(slogx.Discard(), []string{"http://localhost:5173"})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	require.True(t, h.upgrader.CheckOrigin(r))

	r.Header.Set("Origin", "http://localhost:5173")
	require.True(t, h.upgrader.CheckOrigin(r))

	r.Header.Set("Origin", "https://evil.example")
	require.False(t, h.upgrader.CheckOrigin(r))
}
