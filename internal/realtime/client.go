package realtime

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"auction-engine/utils"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
	sendBuffer     = 256
)

// ErrSlowClient is returned by Deliver when the client's buffer is full
var ErrSlowClient = errors.New("realtime client send buffer full")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ClientMessage is a control frame sent by a browser
type ClientMessage struct {
	Action string `json:"action"`
	Topic  string `json:"topic"`
}

// Client is one websocket session. It is a Sink for every channel it joined.
type Client struct {
	id     string
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID int64

	mu     sync.Mutex
	closed bool
	topics map[string]func()
}

// Deliver queues e for the write pump without blocking
func (c *Client) Deliver(e Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return websocket.ErrCloseSent
	}
	select {
	case c.send <- payload:
		return nil
	default:
		return ErrSlowClient
	}
}

// ServeWs upgrades the request and joins the caller's own user channel.
// The user is identified by the user_id query parameter.
func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil || userID <= 0 {
		http.Error(w, "user_id query parameter is required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		utils.Warn("Websocket upgrade failed", map[string]any{"error": err.Error()})
		return
	}

	c := &Client{
		id:     utils.GenerateID(),
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		userID: userID,
		topics: make(map[string]func()),
	}
	c.join(UserTopic(userID))
	h.metrics.ClientConnected(1)
	utils.Info("Realtime client connected", map[string]any{"session_id": c.id, "user_id": userID})

	go c.writePump()
	go c.readPump()
}

// join subscribes to topic; it reports false when the topic is not allowed
func (c *Client) join(topic string) bool {
	kind, id, err := ParseTopic(topic)
	if err != nil {
		return false
	}
	if kind == "user" && id != c.userID {
		return false
	}

	c.mu.Lock()
	_, joined := c.topics[topic]
	c.mu.Unlock()
	if joined {
		return true
	}

	// the hub lock is taken while delivering to c, so never subscribe under c.mu
	var unsubscribe func()
	if kind == "auction" {
		unsubscribe = c.hub.SubscribeAuction(id, c)
	} else {
		unsubscribe = c.hub.SubscribeUser(id, c)
	}

	c.mu.Lock()
	_, joined = c.topics[topic]
	if c.closed || joined {
		c.mu.Unlock()
		unsubscribe()
		return true
	}
	c.topics[topic] = unsubscribe
	c.mu.Unlock()
	return true
}

func (c *Client) leave(topic string) {
	c.mu.Lock()
	unsubscribe, ok := c.topics[topic]
	delete(c.topics, topic)
	c.mu.Unlock()
	if ok {
		unsubscribe()
	}
}

// close leaves every channel and stops the write pump
func (c *Client) close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	topics := c.topics
	c.topics = map[string]func(){}
	close(c.send)
	c.mu.Unlock()

	for _, unsubscribe := range topics {
		unsubscribe()
	}
	c.hub.metrics.ClientConnected(-1)
	utils.Info("Realtime client disconnected", map[string]any{"session_id": c.id, "user_id": c.userID})
}

func (c *Client) reply(kind, topic string, data any) {
	_ = c.Deliver(Event{Type: kind, Topic: topic, Data: data, Timestamp: time.Now().UTC()})
}

func (c *Client) readPump() {
	defer func() {
		c.close()
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				utils.Warn("Websocket read failed", map[string]any{"session_id": c.id, "error": err.Error()})
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			c.reply(EventError, "", "malformed message")
			continue
		}

		switch msg.Action {
		case "subscribe":
			if !c.join(msg.Topic) {
				c.reply(EventError, msg.Topic, "topic not allowed")
				continue
			}
			c.reply(EventSubscribed, msg.Topic, nil)
		case "unsubscribe":
			c.leave(msg.Topic)
			c.reply(EventUnsubscribed, msg.Topic, nil)
		default:
			c.reply(EventError, msg.Topic, "unknown action")
		}
	}
}

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
