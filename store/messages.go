package store

import (
	"context"
	"database/sql"
	"time"

	"lingochat/models"
	"lingochat/utils"
)

type MessageStore struct {
	db *sql.DB
}

func NewMessageStore(db *sql.DB) *MessageStore {
	return &MessageStore{db: db}
}

func (s *MessageStore) Create(ctx context.Context, m *models.Message) error {
	if m.ID == "" {
		m.ID = utils.GenerateUUID()
	}
	if m.Status == "" {
		m.Status = models.MessageStatusSent
	}
	m.CreatedAt = time.Now()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO messages (id, sender_id, receiver_id, content, translated_content, original_language, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.SenderID, m.ReceiverID, m.Content, m.TranslatedContent, m.OriginalLanguage, m.Status, m.CreatedAt,
	)
	return err
}

// ListBetween returns the conversation between two users in chronological
// order.
func (s *MessageStore) ListBetween(ctx context.Context, a, b string) ([]models.Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, sender_id, receiver_id, content, translated_content, original_language, status, created_at
		FROM messages
		WHERE (sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)
		ORDER BY created_at`,
		a, b, b, a,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Content,
			&m.TranslatedContent, &m.OriginalLanguage, &m.Status, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// MarkDelivered records that the receiver's live channel accepted the push.
func (s *MessageStore) MarkDelivered(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE messages SET status = ? WHERE id = ? AND status = ?",
		models.MessageStatusDelivered, id, models.MessageStatusSent,
	)
	return err
}
