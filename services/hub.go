package services

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/quinbingo/quinbingo-backend/models"
	"github.com/quinbingo/quinbingo-backend/utils/logger"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// event is the wire frame pushed to every viewer.
type event struct {
	Event string            `json:"event"`
	Data  *models.GameState `json:"data"`
}

// Hub fans game state out to all connected websocket viewers. It
// implements the game.Broadcaster interface; sends are non-blocking,
// so a stalled client drops frames instead of stalling the draw loop.
type Hub struct {
	mu      sync.RWMutex
	clients map[uint64]*Client
	nextID  uint64

	// snapshot supplies the current state for on-connect replay.
	snapshot func() *models.GameState
}

func NewHub() *Hub {
	return &Hub{clients: make(map[uint64]*Client)}
}

// SetSnapshot wires the state accessor used to replay the current game
// to newly connected viewers. Must be called before serving.
func (h *Hub) SetSnapshot(fn func() *models.GameState) {
	h.snapshot = fn
}

// HandleWebSocket upgrades the connection and registers the viewer.
func (h *Hub) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Errorf("[ws] upgrade error: %v", err)
		return
	}

	h.mu.Lock()
	h.nextID++
	client := &Client{
		id:   h.nextID,
		conn: conn,
		hub:  h,
		send: make(chan []byte, 32),
	}
	h.clients[client.id] = client
	total := len(h.clients)
	h.mu.Unlock()

	go client.writePump()
	go client.readPump()

	logger.Infof("[ws] viewer %d connected (total=%d)", client.id, total)

	// Replay the current state so the new viewer renders immediately
	// instead of waiting for the next mutation.
	if h.snapshot != nil {
		h.sendTo(client, EventName, h.snapshot())
	}
}

// EventName is the single event type pushed to viewers.
const EventName = "game_update"

// Publish pushes a snapshot to every connected viewer.
func (h *Hub) Publish(eventName string, state *models.GameState) {
	b, err := json.Marshal(event{Event: eventName, Data: state})
	if err != nil {
		logger.Errorf("[ws] marshal state: %v", err)
		return
	}

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		h.trySend(c, b)
	}
}

func (h *Hub) sendTo(c *Client, eventName string, state *models.GameState) {
	b, err := json.Marshal(event{Event: eventName, Data: state})
	if err != nil {
		logger.Errorf("[ws] marshal state: %v", err)
		return
	}
	h.trySend(c, b)
}

func (h *Hub) trySend(c *Client, b []byte) {
	defer func() {
		if r := recover(); r != nil {
			// send channel closed while we held a stale reference
			logger.Debugf("[ws] recovered send to viewer %d: %v", c.id, r)
		}
	}()
	select {
	case c.send <- b:
	default:
		logger.Debugf("[ws] dropping frame for viewer %d", c.id)
	}
}

func (h *Hub) removeClient(id uint64) {
	h.mu.Lock()
	client, ok := h.clients[id]
	if ok {
		delete(h.clients, id)
	}
	total := len(h.clients)
	h.mu.Unlock()

	if ok {
		client.Close()
		logger.Infof("[ws] viewer %d disconnected (total=%d)", id, total)
	}
}
