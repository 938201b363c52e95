package config

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

type WebSocket struct {
	Upgrader     websocket.Upgrader
	ReadLimit    int64
	WriteTimeout time.Duration
}

// NewWebSocket accepts any origin in development and only same-origin
// upgrades otherwise.
func NewWebSocket() (*WebSocket, error) {
	upgrader := websocket.Upgrader{}
	if Development() {
		upgrader.CheckOrigin = func(r *http.Request) bool {
			return true
		}
	}

	writeTimeout, err := lookupDuration("WS_WRITE_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	ws := &WebSocket{
		Upgrader:     upgrader,
		ReadLimit:    4096,
		WriteTimeout: writeTimeout,
	}

	return ws, nil
}
