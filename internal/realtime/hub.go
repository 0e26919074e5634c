package realtime

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"auction-engine/internal/metrics"
	"auction-engine/utils"
)

// Event types pushed to subscribers
const (
	EventBidAccepted         = "bid_accepted"
	EventNotificationCreated = "notification_created"
	EventAuctionStatus       = "auction_status_changed"
	EventSubscribed          = "subscription_confirmed"
	EventUnsubscribed        = "unsubscription_confirmed"
	EventError               = "error"
)

// Event is one realtime message. Seq orders events within an auction channel;
// zero means the event is not sequenced.
type Event struct {
	Type      string    `json:"type"`
	Topic     string    `json:"topic,omitempty"`
	AuctionID int64     `json:"auction_id,omitempty"`
	Seq       int64     `json:"seq,omitempty"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Sink receives events for the channels it joined. Deliver must not block.
type Sink interface {
	Deliver(Event) error
}

// SinkFunc adapts a function to Sink
type SinkFunc func(Event) error

// Deliver calls f
func (f SinkFunc) Deliver(e Event) error { return f(e) }

// AuctionTopic names the channel of an auction
func AuctionTopic(auctionID int64) string {
	return fmt.Sprintf("auction:%d", auctionID)
}

// UserTopic names the private channel of a user
func UserTopic(userID int64) string {
	return fmt.Sprintf("user:%d", userID)
}

// ParseTopic splits "auction:<id>" or "user:<id>"
func ParseTopic(topic string) (kind string, id int64, err error) {
	kind, raw, ok := strings.Cut(topic, ":")
	if !ok || (kind != "auction" && kind != "user") {
		return "", 0, fmt.Errorf("unknown topic %q", topic)
	}
	id, err = strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return "", 0, fmt.Errorf("invalid id in topic %q", topic)
	}
	return kind, id, nil
}

// Hub routes events to the sinks subscribed to an auction or a user channel.
// Within one auction, events carrying a sequence number at or below the last
// one delivered are dropped, so subscribers see commits in order and at most once.
type Hub struct {
	mu      sync.Mutex
	nextID  uint64
	auction map[int64]map[uint64]Sink
	user    map[int64]map[uint64]Sink
	lastSeq map[int64]int64
	metrics *metrics.Registry
}

// NewHub creates an empty hub. reg may be nil.
func NewHub(reg *metrics.Registry) *Hub {
	return &Hub{
		auction: make(map[int64]map[uint64]Sink),
		user:    make(map[int64]map[uint64]Sink),
		lastSeq: make(map[int64]int64),
		metrics: reg,
	}
}

// SubscribeAuction joins sink to the auction's channel and returns its unsubscribe function
func (h *Hub) SubscribeAuction(auctionID int64, sink Sink) func() {
	return h.subscribe(h.auction, auctionID, sink)
}

// SubscribeUser joins sink to the user's channel and returns its unsubscribe function
func (h *Hub) SubscribeUser(userID int64, sink Sink) func() {
	return h.subscribe(h.user, userID, sink)
}

func (h *Hub) subscribe(channels map[int64]map[uint64]Sink, key int64, sink Sink) func() {
	h.mu.Lock()
	h.nextID++
	id := h.nextID
	subs, ok := channels[key]
	if !ok {
		subs = make(map[uint64]Sink)
		channels[key] = subs
	}
	subs[id] = sink
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(subs, id)
			if cur, ok := channels[key]; ok && len(cur) == 0 {
				delete(channels, key)
			}
		})
	}
}

// PublishAuction delivers e to every subscriber of its auction
func (h *Hub) PublishAuction(e Event) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	e.Topic = AuctionTopic(e.AuctionID)

	h.mu.Lock()
	defer h.mu.Unlock()

	if e.Seq > 0 {
		if e.Seq <= h.lastSeq[e.AuctionID] {
			h.metrics.EventDropped()
			utils.Debug("Dropped stale auction event", map[string]any{
				"auction_id": e.AuctionID,
				"seq":        e.Seq,
				"last_seq":   h.lastSeq[e.AuctionID],
			})
			return
		}
		h.lastSeq[e.AuctionID] = e.Seq
	}
	h.deliverLocked(h.auction[e.AuctionID], e)
}

// PublishUser delivers e to every session of userID
func (h *Hub) PublishUser(userID int64, e Event) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	e.Topic = UserTopic(userID)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.deliverLocked(h.user[userID], e)
}

func (h *Hub) deliverLocked(subs map[uint64]Sink, e Event) {
	for _, sink := range subs {
		if err := sink.Deliver(e); err != nil {
			h.metrics.EventDropped()
			utils.Debug("Realtime delivery failed", map[string]any{
				"topic": e.Topic,
				"type":  e.Type,
				"error": err.Error(),
			})
		}
	}
}

// Subscribers reports how many sinks joined the auction channel
func (h *Hub) Subscribers(auctionID int64) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.auction[auctionID])
}
