package services

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quinbingo/quinbingo-backend/models"
)

func dialHub(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws", hub.HandleWebSocket)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) (string, *models.GameState) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var ev struct {
		Event string            `json:"event"`
		Data  *models.GameState `json:"data"`
	}
	require.NoError(t, json.Unmarshal(msg, &ev))
	return ev.Event, ev.Data
}

func TestHubReplaysSnapshotOnConnect(t *testing.T) {
	hub := NewHub()
	state := models.NewGameState()
	state.CardCount = 3
	hub.SetSnapshot(func() *models.GameState { return state.Clone() })

	conn := dialHub(t, hub)

	event, data := readEvent(t, conn)
	assert.Equal(t, EventName, event)
	require.NotNil(t, data)
	assert.Equal(t, 3, data.CardCount)
	assert.Equal(t, models.StatusWaiting, data.Status)
}

func TestHubPublishReachesViewer(t *testing.T) {
	hub := NewHub()
	hub.SetSnapshot(func() *models.GameState { return models.NewGameState() })
	conn := dialHub(t, hub)

	// Drain the on-connect replay first.
	readEvent(t, conn)

	state := models.NewGameState()
	state.Status = models.StatusDrawing
	state.DrawnBalls = []int{7}
	hub.Publish(EventName, state)

	event, data := readEvent(t, conn)
	assert.Equal(t, EventName, event)
	assert.Equal(t, models.StatusDrawing, data.Status)
	assert.Equal(t, []int{7}, data.DrawnBalls)
}
