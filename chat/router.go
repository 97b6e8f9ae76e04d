// Package chat orchestrates one inbound message end to end:
// authorization, translation, persistence, fan-out, acknowledgement.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log"

	"lingochat/models"
	"lingochat/store"
	"lingochat/websocket"
)

// Error text doubles as the wire-level error payload, so these read like
// messages to the end user.
var (
	ErrReceiverNotFound = errors.New("Receiver not found")
	ErrNotFriends       = errors.New("Users are not friends")
)

type UserFinder interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

type FriendChecker interface {
	AreFriends(ctx context.Context, a, b string) (bool, error)
}

type TranslationGateway interface {
	Translate(ctx context.Context, text, targetLang string) (translated, sourceLang string)
}

type MessageWriter interface {
	Create(ctx context.Context, m *models.Message) error
	MarkDelivered(ctx context.Context, id string) error
}

type Pusher interface {
	SendToUser(userID string, event websocket.Event) bool
}

type Router struct {
	users    UserFinder
	friends  FriendChecker
	gateway  TranslationGateway
	messages MessageWriter
	hub      Pusher
}

func NewRouter(users UserFinder, friends FriendChecker, gateway TranslationGateway, messages MessageWriter, hub Pusher) *Router {
	return &Router{
		users:    users,
		friends:  friends,
		gateway:  gateway,
		messages: messages,
		hub:      hub,
	}
}

// HandleSend validates, translates, persists, and fans out one message,
// returning the ack payload for the sender. Translation degradation never
// fails the send; an offline receiver only means no live push, the
// message is already stored.
func (r *Router) HandleSend(ctx context.Context, senderID, receiverID, content string) (*websocket.ChatMessageEvent, error) {
	receiver, err := r.users.GetByID(ctx, receiverID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrReceiverNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("look up receiver: %w", err)
	}

	friends, err := r.friends.AreFriends(ctx, senderID, receiverID)
	if err != nil {
		return nil, fmt.Errorf("check friendship: %w", err)
	}
	if !friends {
		return nil, ErrNotFriends
	}

	translated, sourceLang := r.gateway.Translate(ctx, content, receiver.PreferredLanguage)

	msg := &models.Message{
		SenderID:          senderID,
		ReceiverID:        receiverID,
		Content:           content,
		TranslatedContent: translated,
		OriginalLanguage:  sourceLang,
		Status:            models.MessageStatusSent,
	}
	if err := r.messages.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("save message: %w", err)
	}

	event := websocket.NewChatMessageEvent(msg)
	if r.hub.SendToUser(receiverID, event) {
		if err := r.messages.MarkDelivered(ctx, msg.ID); err != nil {
			log.Printf("chat: mark message %s delivered: %v", msg.ID, err)
		}
	}

	return event, nil
}
