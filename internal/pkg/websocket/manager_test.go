package websocket

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Value int `json:"value"`
}

func startServer(t *testing.T, m *Manager) (*httptest.Server, string) {
	t.Helper()
	e := echo.New()
	e.GET("/ws", func(c echo.Context) error {
		return m.HandleConnection(c, "dispatcher-1", func(client *Client) error {
			return m.Send(client, "hello", payload{Value: 1})
		})
	})
	srv := httptest.NewServer(e)
	return srv, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestManager_ConnectAndBroadcast(t *testing.T) {
	// Arrange
	m := NewManager()
	srv, url := startServer(t, m)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Act
	hello := readMessage(t, conn)
	require.Eventually(t, func() bool { return m.ClientCount() == 1 }, time.Second, 10*time.Millisecond)
	require.NoError(t, m.Broadcast("tick", payload{Value: 2}))
	tick := readMessage(t, conn)

	// Assert
	assert.Equal(t, "hello", hello.Event)
	assert.Equal(t, "tick", tick.Event)
	var p payload
	require.NoError(t, json.Unmarshal(tick.Data, &p))
	assert.Equal(t, 2, p.Value)
}

func TestManager_DisconnectRemovesClient(t *testing.T) {
	m := NewManager()
	srv, url := startServer(t, m)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	readMessage(t, conn)
	require.Eventually(t, func() bool { return m.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())

	assert.Eventually(t, func() bool { return m.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestManager_BroadcastWithoutClients(t *testing.T) {
	m := NewManager()
	assert.NoError(t, m.Broadcast("tick", payload{Value: 1}))
	assert.Error(t, m.Broadcast("tick", make(chan int)))
}
