package notify

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Handler upgrades admin dashboards onto the event feed.
type Handler struct {
	hub    *Hub
	logger interface {
		Printf(string, ...interface{})
	}
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{
		hub:    hub,
		logger: log.New(log.Writer(), "[notify] ", log.LstdFlags),
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Admin key is checked by the route group middleware.
		return true
	},
}

// HandleEventsGin upgrades the connection and streams events until the
// dashboard disconnects.
func (h *Handler) HandleEventsGin(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Printf("websocket upgrade error: %v", err)
		return
	}

	sub := h.hub.add(uuid.NewString(), conn)
	h.logger.Printf("dashboard %s connected", sub.id)

	go h.readLoop(sub)
	go h.writeLoop(sub)
}

// readLoop discards inbound frames; it exists to notice the close.
func (h *Handler) readLoop(sub *subscriber) {
	defer func() {
		h.hub.remove(sub.id)
		sub.conn.Close()
		h.logger.Printf("dashboard %s disconnected", sub.id)
	}()

	sub.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	sub.conn.SetPongHandler(func(string) error {
		sub.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := sub.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Printf("websocket error for dashboard %s: %v", sub.id, err)
			}
			return
		}
	}
}

func (h *Handler) writeLoop(sub *subscriber) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-sub.done:
			return

		case event := <-sub.send:
			sub.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := sub.conn.WriteJSON(event); err != nil {
				h.logger.Printf("write error for dashboard %s: %v", sub.id, err)
				return
			}

		case <-ticker.C:
			sub.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := sub.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.logger.Printf("ping error for dashboard %s: %v", sub.id, err)
				return
			}
		}
	}
}
