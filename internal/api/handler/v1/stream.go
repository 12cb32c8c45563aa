package v1

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/nexuspump/nexuspump-api/internal/domain"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust this for production!
	},
}

type streamClient struct {
	conn *websocket.Conn
	send chan []byte
	// token filters the stream to one token's events; empty means all.
	token string
}

type streamEvent struct {
	token string
	data  []byte
}

// StreamHandler fans protocol events out to websocket subscribers. It is the
// event publisher the registry service emits into after each commit.
type StreamHandler struct {
	clients      map[*streamClient]struct{}
	clientsMutex sync.RWMutex
	broadcast    chan streamEvent
	register     chan *streamClient
	unregister   chan *streamClient
}

func NewStreamHandler() *StreamHandler {
	return &StreamHandler{
		clients:    make(map[*streamClient]struct{}),
		broadcast:  make(chan streamEvent, 64),
		register:   make(chan *streamClient),
		unregister: make(chan *streamClient),
	}
}

func (h *StreamHandler) Run() {
	for {
		select {
		case client := <-h.register:
			h.clientsMutex.Lock()
			h.clients[client] = struct{}{}
			h.clientsMutex.Unlock()
		case client := <-h.unregister:
			h.clientsMutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.clientsMutex.Unlock()
		case event := <-h.broadcast:
			h.clientsMutex.Lock()
			for client := range h.clients {
				if client.token != "" && client.token != event.token {
					continue
				}
				select {
				case client.send <- event.data:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.clientsMutex.Unlock()
		}
	}
}

// Publish queues a protocol event for broadcast. Slow subscribers are dropped
// rather than allowed to stall trading.
func (h *StreamHandler) Publish(event domain.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		zap.L().Error("marshaling stream event", zap.Error(err))
		return
	}

	envelope, err := json.Marshal(map[string]json.RawMessage{
		"type":    json.RawMessage(`"` + event.EventType() + `"`),
		"payload": payload,
	})
	if err != nil {
		zap.L().Error("marshaling stream envelope", zap.Error(err))
		return
	}

	h.broadcast <- streamEvent{token: event.Token(), data: envelope}
}

// HandleEventStream godoc
// @Summary      Subscribe to protocol events
// @Description  Streams token lifecycle, trade and comment events over a WebSocket
// @Tags         events
// @Produce      json
// @Param        token  query     string  false  "only stream events for this token address"
// @Success      101    {string}  string  "Switching Protocols to WebSocket"
// @Failure      400    {object}  response.Err
// @Router       /events/stream [get]
func (h *StreamHandler) HandleEventStream(ctx *gin.Context) {
	token := ctx.Query("token")
	if token != "" {
		if err := domain.ValidateAddress(token); err != nil {
			ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		zap.L().Warn("upgrading event stream connection", zap.Error(err))
		return
	}

	client := &streamClient{
		conn:  conn,
		send:  make(chan []byte, 256),
		token: token,
	}
	h.register <- client

	go client.writePump()
	go client.readPump(h)
}

func (c *streamClient) writePump() {
	defer func() {
		c.conn.Close()
	}()
	for {
		message, ok := <-c.send
		if !ok {
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
		w, err := c.conn.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		w.Write(message)
		if err := w.Close(); err != nil {
			return
		}
	}
}

// readPump drains the connection so pings and close frames are processed.
// The stream is one-way; anything the client sends is ignored.
func (c *streamClient) readPump(h *StreamHandler) {
	defer func() {
		h.unregister <- c
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				zap.L().Debug("event stream closed", zap.Error(err))
			}
			break
		}
	}
}
