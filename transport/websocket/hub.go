package websocket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wricardo/tile-painter/game/engine"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// Render events queued for the hub loop before new ones are dropped.
	broadcastBuffer = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development
		// TODO: Configure this for production
		return true
	},
}

// Render event names
const (
	EventTile  = "tile"
	EventActor = "actor"
	EventMap   = "map"
	EventError = "error"
)

// Message is one outgoing render event
type Message struct {
	SessionID string            `json:"session_id"`
	Event     string            `json:"event"`
	Tile      *engine.TileView  `json:"tile,omitempty"`
	Actor     *engine.ActorView `json:"actor,omitempty"`
	Map       *engine.MapState  `json:"map,omitempty"`
	Data      interface{}       `json:"data,omitempty"`
}

// InputMessage is one input event sent by the browser
type InputMessage struct {
	Action    string `json:"action"` // pointer, move or select
	Event     string `json:"event,omitempty"`
	Col       int    `json:"col"`
	Row       int    `json:"row"`
	Direction string `json:"direction,omitempty"`
	Type      string `json:"type,omitempty"`
}

// InputHandler applies browser input to a session
type InputHandler interface {
	HandleInput(ctx context.Context, sessionID string, msg *InputMessage) error
}

// Client represents a WebSocket client
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	sessionID string
}

// Hub maintains the set of active clients and fans render events out to them
type Hub struct {
	// Registered clients by session ID
	sessions map[string]map[*Client]bool

	// Outbound render events
	broadcast chan *Message

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Replies meant for a single client
	reply chan clientReply

	// Sessions that lost an event to a full queue
	staleMu sync.Mutex
	stale   map[string]bool

	snapshot SnapshotFunc

	input InputHandler
}

// SnapshotFunc returns the current map of a session
type SnapshotFunc func(sessionID string) (*engine.MapState, error)

type clientReply struct {
	client *Client
	data   []byte
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		sessions:   make(map[string]map[*Client]bool),
		broadcast:  make(chan *Message, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		reply:      make(chan clientReply),
		stale:      make(map[string]bool),
	}
}

// SetSnapshotSource lets the hub resend a full map to sessions whose render
// events were dropped. Call before Run.
func (h *Hub) SetSnapshotSource(source SnapshotFunc) {
	h.snapshot = source
}

// SetInputHandler routes incoming client messages to h. Call before Run.
func (h *Hub) SetInputHandler(handler InputHandler) {
	h.input = handler
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)
			if len(h.broadcast) == 0 {
				h.resync()
			}

		case r := <-h.reply:
			// send is closed once the client is unregistered
			if h.sessions[r.client.sessionID][r.client] {
				select {
				case r.client.send <- r.data:
				default:
				}
			}
		}
	}
}

// ServeWS handles WebSocket requests from clients
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, sessionID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:       h,
		conn:      conn,
		send:      make(chan []byte, 256),
		sessionID: sessionID,
	}

	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// Publish queues a message for the session's clients. It never blocks:
// when the queue is full the message is dropped.
func (h *Hub) Publish(message *Message) {
	select {
	case h.broadcast <- message:
	default:
		h.staleMu.Lock()
		h.stale[message.SessionID] = true
		h.staleMu.Unlock()
		log.Printf("WebSocket queue full, dropping %s event for session %s", message.Event, message.SessionID)
	}
}

// resync sends a map snapshot to every session that dropped an event.
// Runs on the hub loop once the queue has drained, so the snapshot is at
// least as new as anything the clients already received.
func (h *Hub) resync() {
	h.staleMu.Lock()
	if len(h.stale) == 0 {
		h.staleMu.Unlock()
		return
	}
	stale := h.stale
	h.stale = make(map[string]bool)
	h.staleMu.Unlock()

	if h.snapshot == nil {
		return
	}
	for sessionID := range stale {
		if _, ok := h.sessions[sessionID]; !ok {
			continue
		}
		state, err := h.snapshot(sessionID)
		if err != nil {
			log.Printf("WebSocket resync failed for session %s: %v", sessionID, err)
			continue
		}
		h.broadcastMessage(&Message{SessionID: sessionID, Event: EventMap, Map: state})
	}
}

// BroadcastMap sends a full map snapshot to all clients in a session
func (h *Hub) BroadcastMap(sessionID string, state *engine.MapState) {
	h.Publish(&Message{SessionID: sessionID, Event: EventMap, Map: state})
}

// BroadcastEvent sends a custom event to all clients in a session
func (h *Hub) BroadcastEvent(sessionID string, event string, data interface{}) {
	h.Publish(&Message{SessionID: sessionID, Event: event, Data: data})
}

// SessionRenderer returns an engine.Renderer that publishes every render
// call of sessionID's engine to the session's clients
func (h *Hub) SessionRenderer(sessionID string) engine.Renderer {
	return &sessionRenderer{hub: h, sessionID: sessionID}
}

type sessionRenderer struct {
	hub       *Hub
	sessionID string
}

func (r *sessionRenderer) RenderTile(tile engine.TileView) {
	r.hub.Publish(&Message{SessionID: r.sessionID, Event: EventTile, Tile: &tile})
}

func (r *sessionRenderer) RenderActor(actor engine.ActorView) {
	r.hub.Publish(&Message{SessionID: r.sessionID, Event: EventActor, Actor: &actor})
}

// registerClient adds a client to a session
func (h *Hub) registerClient(client *Client) {
	if h.sessions[client.sessionID] == nil {
		h.sessions[client.sessionID] = make(map[*Client]bool)
	}
	h.sessions[client.sessionID][client] = true

	log.Printf("Client registered for session %s (total clients: %d)",
		client.sessionID, len(h.sessions[client.sessionID]))
}

// unregisterClient removes a client from a session
func (h *Hub) unregisterClient(client *Client) {
	if clients, ok := h.sessions[client.sessionID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client.send)

			// Clean up empty sessions
			if len(clients) == 0 {
				delete(h.sessions, client.sessionID)
			}

			log.Printf("Client unregistered from session %s (remaining clients: %d)",
				client.sessionID, len(clients))
		}
	}
}

// broadcastMessage sends a message to all clients in a session
func (h *Hub) broadcastMessage(message *Message) {
	clients, ok := h.sessions[message.SessionID]
	if !ok {
		return
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Failed to marshal broadcast message: %v", err)
		return
	}

	for client := range clients {
		select {
		case client.send <- data:
		default:
			// Client's send channel is full, drop it
			h.unregisterClient(client)
		}
	}
}

// reply queues a message for this client only. The hub loop delivers it,
// since only the hub knows whether send is still open.
func (c *Client) reply(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		return
	}
	c.hub.reply <- clientReply{client: c, data: data}
}

// handleInput decodes one client message and hands it to the input handler
func (c *Client) handleInput(raw []byte) {
	if c.hub.input == nil {
		return
	}

	var msg InputMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.reply(&Message{SessionID: c.sessionID, Event: EventError, Data: "invalid message"})
		return
	}

	if err := c.hub.input.HandleInput(context.Background(), c.sessionID, &msg); err != nil {
		c.reply(&Message{SessionID: c.sessionID, Event: EventError, Data: err.Error()})
	}
}

// readPump pumps input messages from the WebSocket connection to the input handler
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
		c.handleInput(raw)
	}
}

// writePump pumps messages from the hub to the WebSocket connection.
// Each render event goes out as its own frame.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
