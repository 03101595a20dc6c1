package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/ignatzorin/contract-ledger/internal/goroutine"
	"github.com/ignatzorin/contract-ledger/internal/logger"
)

// ErrHubBusy возвращается, когда очередь рассылки переполнена и событие отброшено.
var ErrHubBusy = errors.New("ws: очередь рассылки переполнена")

// Hub управляет всеми WebSocket клиентами и рассылает им события об оплатах и пополнениях.
type Hub struct {
	mu        sync.RWMutex
	clients   map[uuid.UUID]map[*Client]struct{}
	broadcast chan message
}

type message struct {
	profileID uuid.UUID
	payload   []byte
}

// NewHub создаёт новый хаб.
func NewHub() *Hub {
	return &Hub{
		clients:   make(map[uuid.UUID]map[*Client]struct{}),
		broadcast: make(chan message, 64),
	}
}

// Run запускает главный цикл хаба до отмены ctx.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case msg := <-h.broadcast:
			h.send(msg.profileID, msg.payload)
		}
	}
}

// Register добавляет клиента.
func (h *Hub) Register(client *Client) {
	h.addClient(client)
}

// Unregister удаляет клиента.
func (h *Hub) Unregister(client *Client) {
	h.removeClient(client)
}

// Publish ставит событие в очередь для всех подключений профиля.
// Не блокирует вызывающего: при переполненной очереди событие отбрасывается.
func (h *Hub) Publish(profileID uuid.UUID, event string, data any) error {
	raw, err := json.Marshal(map[string]any{
		"type": event,
		"data": data,
	})
	if err != nil {
		return fmt.Errorf("ws: не удалось сериализовать сообщение: %w", err)
	}

	select {
	case h.broadcast <- message{profileID: profileID, payload: raw}:
		return nil
	default:
		return ErrHubBusy
	}
}

// Connections возвращает число активных подключений профиля.
func (h *Hub) Connections(profileID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[profileID])
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.profileID]; !ok {
		h.clients[client.profileID] = make(map[*Client]struct{})
	}
	h.clients[client.profileID][client] = struct{}{}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.clients[client.profileID]; ok {
		if _, ok := clients[client]; !ok {
			return
		}
		delete(clients, client)
		close(client.send)
		if len(clients) == 0 {
			delete(h.clients, client.profileID)
		}
	}
}

func (h *Hub) send(profileID uuid.UUID, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[profileID] {
		select {
		case client.send <- payload:
		default:
			logger.Log.WithField("profile_id", profileID).Warn("ws: клиент не успевает читать, соединение закрывается")
			c := client
			goroutine.SafeGo("ws-close", c.Close)
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for profileID, clients := range h.clients {
		for client := range clients {
			close(client.send)
		}
		delete(h.clients, profileID)
	}
}
