package websocket

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/piresc/shuttlefleet/internal/pkg/constants"
	"github.com/piresc/shuttlefleet/internal/pkg/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 16
)

// Message is the envelope written to stream subscribers
type Message struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// ErrorMessage is the payload of an error message
type ErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Client is one connected subscriber
type Client struct {
	ID      string
	ActorID string
	conn    *websocket.Conn
	send    chan []byte
}

// Manager manages WebSocket connections and fans out broadcasts
type Manager struct {
	sync.RWMutex
	clients  map[string]*Client
	upgrader websocket.Upgrader
}

// NewManager creates a new WebSocket manager
func NewManager() *Manager {
	return &Manager{
		clients: make(map[string]*Client),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleConnection upgrades the request and serves the client until it disconnects.
// onConnect runs once after registration, typically to send the current state.
func (m *Manager) HandleConnection(c echo.Context, actorID string, onConnect func(*Client) error) error {
	ws, err := m.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := &Client{
		ID:      uuid.New().String(),
		ActorID: actorID,
		conn:    ws,
		send:    make(chan []byte, sendBuffer),
	}
	m.addClient(client)
	logger.Info("Stream client connected",
		logger.String("client_id", client.ID),
		logger.String(logger.ActorIDKey, actorID))

	go m.writePump(client)

	if onConnect != nil {
		if err := onConnect(client); err != nil {
			logger.Warn("Stream client initial message failed",
				logger.String("client_id", client.ID),
				logger.Err(err))
		}
	}

	m.readPump(client)
	return nil
}

// Broadcast sends an event to every connected client.
// Clients whose buffer is full miss the message.
func (m *Manager) Broadcast(event string, data interface{}) error {
	payload, err := encode(event, data)
	if err != nil {
		return err
	}

	m.RLock()
	defer m.RUnlock()
	for _, client := range m.clients {
		select {
		case client.send <- payload:
		default:
			logger.Debug("Dropping stream message for slow client",
				logger.String("client_id", client.ID),
				logger.String("event", event))
		}
	}
	return nil
}

// Send queues an event for a single client
func (m *Manager) Send(client *Client, event string, data interface{}) error {
	payload, err := encode(event, data)
	if err != nil {
		return err
	}

	m.RLock()
	defer m.RUnlock()
	if _, ok := m.clients[client.ID]; !ok {
		return fmt.Errorf("client %s is not connected", client.ID)
	}
	select {
	case client.send <- payload:
		return nil
	default:
		return fmt.Errorf("client %s send buffer is full", client.ID)
	}
}

// SendError queues an error message for a single client
func (m *Manager) SendError(client *Client, code, message string) error {
	return m.Send(client, constants.StreamEventError, ErrorMessage{Code: code, Message: message})
}

// ClientCount returns the number of connected clients
func (m *Manager) ClientCount() int {
	m.RLock()
	defer m.RUnlock()
	return len(m.clients)
}

// CloseAll disconnects every client
func (m *Manager) CloseAll() {
	m.Lock()
	defer m.Unlock()
	for id, client := range m.clients {
		close(client.send)
		delete(m.clients, id)
	}
}

func (m *Manager) addClient(client *Client) {
	m.Lock()
	defer m.Unlock()
	m.clients[client.ID] = client
}

func (m *Manager) removeClient(client *Client) {
	m.Lock()
	defer m.Unlock()
	if _, ok := m.clients[client.ID]; ok {
		close(client.send)
		delete(m.clients, client.ID)
	}
}

// readPump discards inbound messages and detects disconnects
func (m *Manager) readPump(client *Client) {
	defer func() {
		m.removeClient(client)
		client.conn.Close()
		logger.Info("Stream client disconnected", logger.String("client_id", client.ID))
	}()

	client.conn.SetReadLimit(512)
	_ = client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		return client.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("Stream client read failed",
					logger.String("client_id", client.ID),
					logger.Err(err))
			}
			return
		}
	}
}

func (m *Manager) writePump(client *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-client.send:
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = client.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func encode(event string, data interface{}) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("error marshaling message data: %w", err)
	}
	return json.Marshal(Message{Event: event, Data: raw})
}
