package models

import "time"

const (
	MessageStatusSent      = "sent"
	MessageStatusDelivered = "delivered"
	MessageStatusRead      = "read"
)

// Message stores both the text the sender wrote and the translation into
// the receiver's preferred language. Immutable after creation except for
// status transitions.
type Message struct {
	ID                string    `json:"id"`
	SenderID          string    `json:"sender"`
	ReceiverID        string    `json:"receiver"`
	Content           string    `json:"content"`
	TranslatedContent string    `json:"translated_content"`
	OriginalLanguage  string    `json:"original_language"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"timestamp"`
}

// DisplayContentFor returns the text a participant should see: senders see
// what they wrote, receivers see the translation.
func (m *Message) DisplayContentFor(viewerID string) string {
	if m.SenderID == viewerID {
		return m.Content
	}
	return m.TranslatedContent
}

type MessageResponse struct {
	ID                string    `json:"id"`
	Sender            string    `json:"sender"`
	Receiver          string    `json:"receiver"`
	Content           string    `json:"content"`
	TranslatedContent string    `json:"translated_content"`
	OriginalLanguage  string    `json:"original_language"`
	Status            string    `json:"status"`
	Timestamp         time.Time `json:"timestamp"`
	DisplayContent    string    `json:"display_content"`
}

func (m *Message) ToResponseFor(viewerID string) *MessageResponse {
	return &MessageResponse{
		ID:                m.ID,
		Sender:            m.SenderID,
		Receiver:          m.ReceiverID,
		Content:           m.Content,
		TranslatedContent: m.TranslatedContent,
		OriginalLanguage:  m.OriginalLanguage,
		Status:            m.Status,
		Timestamp:         m.CreatedAt,
		DisplayContent:    m.DisplayContentFor(viewerID),
	}
}
