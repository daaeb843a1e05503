package stay_site

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	// Time 写入超时时间
	writeWait = 10 * time.Second

	// Time pong超时时间
	pongWait = 60 * time.Second

	// Send 对应的ping 必须小于pong
	pingPeriod = (pongWait * 9) / 10

	// Maximum 对等端允许消息大小（订阅端只收不发）
	maxMessageSize = 512

	// 单连接发送缓冲，满了视为慢订阅者直接断开
	sendBufferSize = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Event 推送给订阅者的消息
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Client ws和hub的连接
type Client struct {
	hub *WsServer

	// 🔗链接
	conn *websocket.Conn

	// 消息缓冲区
	send chan []byte

	// UserID 已登录订阅者的外部 id，匿名为空
	UserID string
}

// WsServer 站点事件广播中心：预约人数、公告变更。
// clients 只在 Run 协程内读写。
type WsServer struct {
	clients map[*Client]bool

	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	closeOnce  sync.Once

	mu    sync.RWMutex
	count int

	log *zap.Logger
}

func NewWsServer(log *zap.Logger) *WsServer {
	if log == nil {
		log = zap.NewNop()
	}
	return &WsServer{
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[*Client]bool),
		log:        log,
	}
}

func (h *WsServer) Run() {
	for {
		select {
		case <-h.done:
			for client := range h.clients {
				h.remove(client)
			}
			return

		case client := <-h.register:
			h.clients[client] = true
			h.setCount(len(h.clients))

		case client := <-h.unregister:
			h.remove(client)

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// 缓冲已满：慢订阅者，断开而不是阻塞广播
					h.log.Info("drop slow ws subscriber", zap.String("user_id", client.UserID))
					h.remove(client)
				}
			}
		}
	}
}

func (h *WsServer) remove(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)
	h.setCount(len(h.clients))
}

func (h *WsServer) setCount(n int) {
	h.mu.Lock()
	h.count = n
	h.mu.Unlock()
}

// ClientCount 当前在线订阅数
func (h *WsServer) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}

// Close 停止 Run 并断开所有订阅者
func (h *WsServer) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// Broadcast 向所有订阅者推送 {"type":..., "data":...}。不阻塞调用方。
func (h *WsServer) Broadcast(eventType string, payload any) {
	b, err := json.Marshal(Event{Type: eventType, Data: payload})
	if err != nil {
		h.log.Warn("marshal ws event failed", zap.String("type", eventType), zap.Error(err))
		return
	}
	select {
	case h.broadcast <- b:
	case <-h.done:
	default:
		h.log.Warn("ws broadcast queue full, event dropped", zap.String("type", eventType))
	}
}

// ServeWS 处理ws的请求。userID 为空表示匿名订阅。
func (h *WsServer) ServeWS(w http.ResponseWriter, r *http.Request, userID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		UserID: userID,
	}
	select {
	case h.register <- client:
	case <-h.done:
		_ = conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// readPump 只处理 pong/close，订阅端发来的内容直接丢弃。
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { _ = c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Debug("ws read error", zap.Error(err))
			}
			break
		}
	}
}

// writePump 将消息从hub写到具体的client；每条事件单独一帧。
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
