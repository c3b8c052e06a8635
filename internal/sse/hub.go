// internal/sse/hub.go
package sse

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Event string

const (
	// EventAccountUpdated は管理者の付与などでアカウントが変わったときに送る
	EventAccountUpdated Event = "AccountUpdated"
)

const defaultHeartbeat = 15 * time.Second

type Message struct {
	Channel string `json:"channel"`
	Event   Event  `json:"event"`
	Data    any    `json:"data,omitempty"`
}

// AccountChannel はアカウントごとのチャンネル名
func AccountChannel(accountID uuid.UUID) string {
	return "account:" + accountID.String()
}

type Client struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	Channels  map[string]bool
	Outbound  chan Message
	done      chan struct{}
	closeOnce sync.Once
}

// Hub はチャンネル単位で購読クライアントを管理し、メッセージを配る
type Hub struct {
	mu            sync.RWMutex
	logger        *slog.Logger
	heartbeat     time.Duration
	subscriptions map[string]map[*Client]bool
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:        logger.With("component", "SSEHub"),
		heartbeat:     defaultHeartbeat,
		subscriptions: make(map[string]map[*Client]bool),
	}
}

// SetHeartbeat はコメント行 (": ping") を送る間隔を変える
func (hub *Hub) SetHeartbeat(d time.Duration) {
	if d > 0 {
		hub.heartbeat = d
	}
}

func (hub *Hub) NewClient(accountID uuid.UUID) *Client {
	return &Client{
		ID:        uuid.New(),
		AccountID: accountID,
		Channels:  make(map[string]bool),
		Outbound:  make(chan Message, 10),
		done:      make(chan struct{}),
	}
}

// Subscribe はアカウントのチャンネルを購読したクライアントを返す。終わったら CloseClient を呼ぶ
func (hub *Hub) Subscribe(accountID uuid.UUID) *Client {
	c := hub.NewClient(accountID)
	hub.AddChannel(c, AccountChannel(accountID))
	return c
}

func (hub *Hub) AddChannel(client *Client, channel string) {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	channel = strings.TrimSpace(channel)
	if channel == "" {
		return
	}

	client.Channels[channel] = true

	clients, exists := hub.subscriptions[channel]
	if !exists {
		clients = make(map[*Client]bool)
		hub.subscriptions[channel] = clients
	}
	clients[client] = true

	hub.logger.Debug("SSE client subscribed", "client_id", client.ID, "channel", channel)
}

func (hub *Hub) RemoveClient(client *Client) {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	for ch := range client.Channels {
		if subMap, ok := hub.subscriptions[ch]; ok {
			delete(subMap, client)
			if len(subMap) == 0 {
				delete(hub.subscriptions, ch)
			}
		}
	}
	client.Channels = make(map[string]bool)
	hub.logger.Debug("SSE client unsubscribed from all channels", "client_id", client.ID)
}

// Subscribers はチャンネルの購読数 (テスト・監視用)
func (hub *Hub) Subscribers(channel string) int {
	hub.mu.RLock()
	defer hub.mu.RUnlock()
	return len(hub.subscriptions[channel])
}

// Broadcast は購読者に配る。バッファが埋まっているクライアントには捨てる (送信側はブロックしない)
func (hub *Hub) Broadcast(msg Message) {
	hub.mu.RLock()
	defer hub.mu.RUnlock()

	if msg.Channel == "" {
		return
	}
	clientsMap, ok := hub.subscriptions[msg.Channel]
	if !ok {
		return
	}
	for c := range clientsMap {
		select {
		case c.Outbound <- msg:
		default:
			hub.logger.Warn("Dropping SSE message; outbound buffer full", "client_id", c.ID)
		}
	}
}

// PublishAccount はアカウントのチャンネルに AccountUpdated を送る
func (hub *Hub) PublishAccount(accountID uuid.UUID, data any) {
	hub.Broadcast(Message{Channel: AccountChannel(accountID), Event: EventAccountUpdated, Data: data})
}

// ServeHTTP はクライアントが切断するまでイベントを書き続ける。initial があれば最初に送る
func (hub *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request, client *Client, initial *Message) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported!", http.StatusInternalServerError)
		return
	}

	// サーバーの WriteTimeout で切られないようにする
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	if initial != nil {
		hub.write(w, *initial)
		flusher.Flush()
	}

	ctx := r.Context()
	heartbeat := time.NewTicker(hub.heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			hub.logger.Debug("SSE client context done", "client_id", client.ID, "err", ctx.Err())
			return
		case <-client.done:
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case msg, ok := <-client.Outbound:
			if !ok {
				return
			}
			hub.write(w, msg)
			flusher.Flush()
		}
	}
}

func (hub *Hub) write(w http.ResponseWriter, msg Message) {
	jsonBytes, err := json.Marshal(msg)
	if err != nil {
		hub.logger.Warn("Failed to marshal SSE message", "error", err)
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Event, jsonBytes)
}

// CloseClient は購読を解除してチャンネルを閉じる。複数回呼んでもよい
func (hub *Hub) CloseClient(client *Client) {
	client.closeOnce.Do(func() {
		close(client.done)
		hub.RemoveClient(client)
		close(client.Outbound)
	})
}
