package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"lingochat/models"
)

func TestMessageCreateAssignsIDAndStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	s := NewMessageStore(db)

	mock.ExpectExec("INSERT INTO messages").
		WithArgs(sqlmock.AnyArg(), "alice", "bob", "Hello", "Bonjour", "en", models.MessageStatusSent, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	msg := &models.Message{
		SenderID:          "alice",
		ReceiverID:        "bob",
		Content:           "Hello",
		TranslatedContent: "Bonjour",
		OriginalLanguage:  "en",
	}
	if err := s.Create(context.Background(), msg); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if msg.ID == "" {
		t.Fatal("message id not assigned")
	}
	if msg.Status != models.MessageStatusSent {
		t.Fatalf("expected status sent, got %q", msg.Status)
	}
	if msg.CreatedAt.IsZero() {
		t.Fatal("timestamp not assigned")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestListBetweenBothDirections(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	s := NewMessageStore(db)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "sender_id", "receiver_id", "content", "translated_content", "original_language", "status", "created_at"}).
		AddRow("m1", "alice", "bob", "Hello", "Bonjour", "en", "read", now.Add(-time.Minute)).
		AddRow("m2", "bob", "alice", "Salut", "Hi", "fr", "sent", now)

	mock.ExpectQuery("SELECT .+ FROM messages").
		WithArgs("alice", "bob", "bob", "alice").
		WillReturnRows(rows)

	messages, err := s.ListBetween(context.Background(), "alice", "bob")
	if err != nil {
		t.Fatalf("ListBetween: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].ID != "m1" || messages[1].ID != "m2" {
		t.Fatalf("unexpected order: %+v", messages)
	}
}
