package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/halftime-club/paddock-predict/realtime"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// В продакшене здесь должна быть проверка Origin.
		return true
	},
}

type WebSocketHandler struct {
	hub *realtime.Hub
}

func NewWebSocketHandler(hub *realtime.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// ServeWs подписывает клиента на события сезона: смену статусов этапов и
// обновления календаря. Клиент подключается к /ws/seasons/{seasonYear}.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	seasonStr := chi.URLParam(r, "seasonYear")
	seasonYear, err := strconv.Atoi(seasonStr)
	if err != nil || seasonYear <= 0 {
		http.Error(w, "Invalid seasonYear", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection for season %d: %v", seasonYear, err)
		return
	}

	client := &realtime.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: realtime.SeasonRoom(seasonYear),
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
