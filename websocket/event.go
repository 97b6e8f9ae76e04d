package websocket

import (
	"time"

	"lingochat/models"
)

// Event is the closed set of frames the server pushes over a live
// channel. Each kind has one payload shape; there is no generic
// type-string dispatch.
type Event interface {
	event()
}

// ChatMessageEvent is both the push to the receiver and the ack to the
// sender.
type ChatMessageEvent struct {
	ID                string `json:"id"`
	Sender            string `json:"sender"`
	Receiver          string `json:"receiver"`
	Content           string `json:"content"`
	TranslatedContent string `json:"translated_content"`
	OriginalLanguage  string `json:"original_language"`
	Timestamp         string `json:"timestamp"`
}

func (ChatMessageEvent) event() {}

func NewChatMessageEvent(m *models.Message) *ChatMessageEvent {
	return &ChatMessageEvent{
		ID:                m.ID,
		Sender:            m.SenderID,
		Receiver:          m.ReceiverID,
		Content:           m.Content,
		TranslatedContent: m.TranslatedContent,
		OriginalLanguage:  m.OriginalLanguage,
		Timestamp:         m.CreatedAt.Format(time.RFC3339),
	}
}

// FriendRequestEvent notifies a user that someone sent them a friend
// request.
type FriendRequestEvent struct {
	Type         string              `json:"type"`
	FromUser     models.UserResponse `json:"from_user"`
	FriendshipID string              `json:"friendship_id"`
}

func (FriendRequestEvent) event() {}

func NewFriendRequestEvent(from *models.UserResponse, friendshipID string) *FriendRequestEvent {
	return &FriendRequestEvent{
		Type:         "friend_request",
		FromUser:     *from,
		FriendshipID: friendshipID,
	}
}

// ErrorEvent reports a per-request failure to the peer; the connection
// stays open.
type ErrorEvent struct {
	Error string `json:"error"`
}

func (ErrorEvent) event() {}

// PongEvent answers an inbound ping.
type PongEvent struct {
	Type string `json:"type"`
}

func (PongEvent) event() {}

func NewPongEvent() *PongEvent {
	return &PongEvent{Type: "pong"}
}
