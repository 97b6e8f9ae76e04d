package websocket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"lingochat/models"
	"lingochat/utils"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024

	// CloseUnauthorized is sent before any protocol exchange when the
	// handshake credential is missing or invalid.
	CloseUnauthorized = 4001

	// Inbound send_message rate per connection.
	sendRate  = rate.Limit(5)
	sendBurst = 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// SendHandler routes one inbound chat message end to end and returns the
// ack payload for the sender. Implemented by chat.Router.
type SendHandler interface {
	HandleSend(ctx context.Context, senderID, receiverID, content string) (*ChatMessageEvent, error)
}

// UserResolver confirms the authenticated subject still exists.
type UserResolver interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

var (
	sendHandler  SendHandler
	userResolver UserResolver
)

// Init starts the hub and wires the collaborators the connection layer
// needs.
func Init(handler SendHandler, resolver UserResolver) {
	sendHandler = handler
	userResolver = resolver
	InitHub()
}

type Client struct {
	ID      string
	UserID  string
	Hub     *Hub
	Conn    *websocket.Conn
	Send    chan []byte
	limiter *rate.Limiter
}

type ClientMessage struct {
	Action     string `json:"action"`
	ReceiverID string `json:"receiver_id,omitempty"`
	Content    string `json:"content,omitempty"`
}

func (c *Client) ReadPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket error: %v", err)
			}
			break
		}

		c.handleMessage(message)
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleMessage(message []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		c.sendEvent(&ErrorEvent{Error: "Invalid JSON"})
		return
	}

	switch msg.Action {
	case "ping":
		c.sendEvent(NewPongEvent())
	case "send_message":
		c.handleSendMessage(&msg)
	}
}

func (c *Client) handleSendMessage(msg *ClientMessage) {
	if !c.limiter.Allow() {
		c.sendEvent(&ErrorEvent{Error: "Too many messages, slow down"})
		return
	}

	if msg.ReceiverID == "" || msg.Content == "" {
		c.sendEvent(&ErrorEvent{Error: "Missing receiver_id or content"})
		return
	}

	ack, err := sendHandler.HandleSend(context.Background(), c.UserID, msg.ReceiverID, msg.Content)
	if err != nil {
		c.sendEvent(&ErrorEvent{Error: err.Error()})
		return
	}

	c.sendEvent(ack)
}

func (c *Client) sendEvent(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	select {
	case c.Send <- data:
	default:
	}
}

// HandleWebSocket upgrades the connection and authenticates the handshake
// token. A missing or invalid credential closes the socket with
// CloseUnauthorized before any other frame is exchanged.
func HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	userID, ok := authenticate(c)
	if !ok {
		msg := websocket.FormatCloseMessage(CloseUnauthorized, "unauthorized")
		conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		conn.Close()
		return
	}

	client := &Client{
		ID:      uuid.New().String(),
		UserID:  userID,
		Hub:     HubInstance,
		Conn:    conn,
		Send:    make(chan []byte, 256),
		limiter: rate.NewLimiter(sendRate, sendBurst),
	}

	client.Hub.register <- client

	go client.WritePump()
	go client.ReadPump()
}

func authenticate(c *gin.Context) (string, bool) {
	token := c.Query("token")
	if token == "" {
		return "", false
	}

	claims, err := utils.ParseToken(token)
	if err != nil {
		return "", false
	}

	// The token subject must still resolve to a stored user.
	if _, err := userResolver.GetByID(c.Request.Context(), claims.UserID); err != nil {
		return "", false
	}

	return claims.UserID, true
}
