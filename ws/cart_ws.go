package ws

import (
	"context"
	"net/http"
	"sync"
	"time"

	"foodly/pkg/cart"
	"foodly/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const writeWait = 5 * time.Second

// CartHub pushes a user's cart to every socket that user has open.
type CartHub struct {
	clients    map[uint]map[*websocket.Conn]bool // userID -> connections
	broadcast  chan CartMessage
	register   chan Subscription
	unregister chan Subscription
	done       chan struct{}
	mu         sync.Mutex
	log        *zap.Logger

	// Loader returns the current cart, sent right after a socket connects.
	Loader func(ctx context.Context, userID uint) cart.Cart
}

type Subscription struct {
	Conn   *websocket.Conn
	UserID uint
}

type CartMessage struct {
	UserID uint
	Cart   cart.Cart
}

// payload is the frame written to the socket.
type payload struct {
	Type      string    `json:"type"`
	Cart      cart.Cart `json:"cart"`
	ItemCount int       `json:"itemCount"`
	Total     string    `json:"total"`
}

func NewCartHub(log *zap.Logger) *CartHub {
	return &CartHub{
		clients:    make(map[uint]map[*websocket.Conn]bool),
		broadcast:  make(chan CartMessage, 64),
		register:   make(chan Subscription),
		unregister: make(chan Subscription),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run owns the connection map until ctx is done.
func (h *CartHub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for uid, conns := range h.clients {
				for conn := range conns {
					conn.Close()
				}
				delete(h.clients, uid)
			}
			h.mu.Unlock()
			return

		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.UserID] == nil {
				h.clients[sub.UserID] = make(map[*websocket.Conn]bool)
			}
			h.clients[sub.UserID][sub.Conn] = true
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			h.drop(sub.UserID, sub.Conn)
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients[msg.UserID] {
				if err := write(conn, msg.Cart); err != nil {
					h.log.Debug("ws write failed", zap.Uint("user_id", msg.UserID), zap.Error(err))
					h.drop(msg.UserID, conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// drop closes one connection. Caller holds h.mu.
func (h *CartHub) drop(userID uint, conn *websocket.Conn) {
	if _, ok := h.clients[userID][conn]; !ok {
		return
	}
	delete(h.clients[userID], conn)
	if len(h.clients[userID]) == 0 {
		delete(h.clients, userID)
	}
	conn.Close()
}

// Broadcast queues the cart for the user's sockets. It never blocks the
// caller; when the queue is full the update is dropped.
func (h *CartHub) Broadcast(userID uint, c cart.Cart) {
	select {
	case h.broadcast <- CartMessage{UserID: userID, Cart: c}:
	default:
		h.log.Warn("ws broadcast queue full, dropping cart update", zap.Uint("user_id", userID))
	}
}

// Connections reports how many sockets a user has open.
func (h *CartHub) Connections(userID uint) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[userID])
}

func write(conn *websocket.Conn, c cart.Cart) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(payload{
		Type:      "cart",
		Cart:      c,
		ItemCount: c.ItemCount(),
		Total:     c.Total().StringFixed(2),
	})
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/cart
func (h *CartHub) HandleWebSocket(c *gin.Context) {
	userID := utils.CurrentUserID(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}

	if h.Loader != nil {
		if err := write(conn, h.Loader(c.Request.Context(), userID)); err != nil {
			conn.Close()
			return
		}
	}

	sub := Subscription{Conn: conn, UserID: userID}
	select {
	case h.register <- sub:
	case <-h.done:
		conn.Close()
		return
	}
	go h.listen(sub)
}

// listen only waits for the client to go away; incoming frames are ignored.
func (h *CartHub) listen(sub Subscription) {
	defer func() {
		select {
		case h.unregister <- sub:
		case <-h.done:
		}
	}()
	for {
		if _, _, err := sub.Conn.ReadMessage(); err != nil {
			return
		}
	}
}
