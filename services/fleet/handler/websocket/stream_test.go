package websocket

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gorilla "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/piresc/shuttlefleet/internal/pkg/constants"
	"github.com/piresc/shuttlefleet/internal/pkg/models"
	wspkg "github.com/piresc/shuttlefleet/internal/pkg/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	uatomic "go.uber.org/atomic"
)

type fakeSource struct {
	remaining uatomic.Int64
}

func (f *fakeSource) State() models.SimulationState {
	return models.SimulationState{IsActive: true, TimeRemaining: int(f.remaining.Load())}
}

func dialStream(t *testing.T, h *StreamHandler) *gorilla.Conn {
	t.Helper()
	e := echo.New()
	e.GET("/ws/simulation", h.Subscribe)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/simulation"
	conn, _, err := gorilla.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readState(t *testing.T, conn *gorilla.Conn) models.SimulationState {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg wspkg.Message
	require.NoError(t, json.Unmarshal(payload, &msg))
	assert.Equal(t, constants.StreamEventState, msg.Event)

	var state models.SimulationState
	require.NoError(t, json.Unmarshal(msg.Data, &state))
	return state
}

func TestNewStreamHandler_DefaultInterval(t *testing.T) {
	h := NewStreamHandler(wspkg.NewManager(), &fakeSource{}, 0)
	assert.Equal(t, DefaultBroadcastInterval, h.interval)
}

func TestStreamHandler_SendsStateOnConnect(t *testing.T) {
	source := &fakeSource{}
	source.remaining.Store(3600)
	h := NewStreamHandler(wspkg.NewManager(), source, time.Hour)

	conn := dialStream(t, h)

	state := readState(t, conn)
	assert.True(t, state.IsActive)
	assert.Equal(t, 3600, state.TimeRemaining)
}

func TestStreamHandler_RunBroadcasts(t *testing.T) {
	source := &fakeSource{}
	source.remaining.Store(3600)
	manager := wspkg.NewManager()
	h := NewStreamHandler(manager, source, 20*time.Millisecond)

	conn := dialStream(t, h)
	readState(t, conn)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(done)
	}()

	source.remaining.Store(3599)
	var got models.SimulationState
	for i := 0; i < 10 && got.TimeRemaining != 3599; i++ {
		got = readState(t, conn)
	}
	assert.Equal(t, 3599, got.TimeRemaining)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stream loop did not stop")
	}
	assert.Equal(t, 0, manager.ClientCount())
}

func TestStreamHandler_NoClientsNoBroadcast(t *testing.T) {
	h := NewStreamHandler(wspkg.NewManager(), &fakeSource{}, time.Hour)
	// must not panic or block with nobody listening
	h.broadcast()
}
