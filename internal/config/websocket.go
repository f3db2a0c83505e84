package config

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

type WebSocket struct {
	Upgrader     websocket.Upgrader
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func NewWebSocket() (*WebSocket, error) {
	idle, err := durationEnv("WS_IDLE_TIMEOUT", 5*time.Minute)
	if err != nil {
		return nil, err
	}
	return &WebSocket{
		Upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		ReadTimeout:  idle,
		WriteTimeout: 10 * time.Second,
	}, nil
}
