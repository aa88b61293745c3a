package server

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/ayusman/handcount/internal/app"
)

const (
	writeWait       = 5 * time.Second
	frameBufferSize = 8
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// FrameSource publishes processed frames.
type FrameSource interface {
	Subscribe(buffer int) (<-chan app.Frame, func())
}

// FramesHandler pushes every counted frame to WebSocket clients as JSON.
type FramesHandler struct {
	source FrameSource
}

// NewFramesHandler creates a new FramesHandler reading from source.
func NewFramesHandler(source FrameSource) *FramesHandler {
	return &FramesHandler{source: source}
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *FramesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	clientID := uuid.New().String()
	log.Printf("frames client %s connected from %s", clientID, r.RemoteAddr)
	defer log.Printf("frames client %s disconnected", clientID)

	frames, cancel := h.source.Subscribe(frameBufferSize)
	defer cancel()

	// Clients never send anything meaningful; reading detects the close.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case frame, ok := <-frames:
			if !ok {
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
					time.Now().Add(writeWait))
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(frame); err != nil {
				log.Printf("frames client %s write error: %v", clientID, err)
				return
			}
		}
	}
}
