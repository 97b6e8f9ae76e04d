package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func TestFindBetweenNormalizesPairOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	s := NewFriendshipStore(db)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "from_user_id", "to_user_id", "accepted", "created_at", "updated_at"}).
		AddRow("f1", "bob", "alice", true, now, now)

	// Arguments must be the sorted pair regardless of call order.
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, from_user_id, to_user_id, accepted, created_at, updated_at FROM friendships WHERE pair_lo = ? AND pair_hi = ?",
	)).WithArgs("alice", "bob").WillReturnRows(rows)

	edge, err := s.FindBetween(context.Background(), "bob", "alice")
	if err != nil {
		t.Fatalf("FindBetween: %v", err)
	}
	if edge.ID != "f1" || !edge.Accepted {
		t.Fatalf("unexpected edge: %+v", edge)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestFindBetweenNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	s := NewFriendshipStore(db)

	mock.ExpectQuery("SELECT .+ FROM friendships").
		WillReturnRows(sqlmock.NewRows([]string{"id", "from_user_id", "to_user_id", "accepted", "created_at", "updated_at"}))

	_, err = s.FindBetween(context.Background(), "alice", "bob")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreatePendingDuplicateKey(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	s := NewFriendshipStore(db)

	mock.ExpectExec("INSERT INTO friendships").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	_, err = s.CreatePending(context.Background(), "alice", "bob")
	if !errors.Is(err, ErrDuplicateEdge) {
		t.Fatalf("expected ErrDuplicateEdge, got %v", err)
	}
}

func TestCreatePendingInsertsSortedPairColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	s := NewFriendshipStore(db)

	mock.ExpectExec("INSERT INTO friendships").
		WithArgs(sqlmock.AnyArg(), "bob", "alice", "alice", "bob", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	edge, err := s.CreatePending(context.Background(), "bob", "alice")
	if err != nil {
		t.Fatalf("CreatePending: %v", err)
	}
	if edge.FromUserID != "bob" || edge.ToUserID != "alice" || edge.Accepted {
		t.Fatalf("unexpected edge: %+v", edge)
	}
	if edge.ID == "" {
		t.Fatal("edge id not assigned")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestAcceptAlreadyAccepted(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	s := NewFriendshipStore(db)

	mock.ExpectExec("UPDATE friendships SET accepted = TRUE").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := s.Accept(context.Background(), "f1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for already-accepted edge, got %v", err)
	}
}

func TestAcceptPendingEdge(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	s := NewFriendshipStore(db)

	mock.ExpectExec("UPDATE friendships SET accepted = TRUE").
		WithArgs(sqlmock.AnyArg(), "f1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.Accept(context.Background(), "f1"); err != nil {
		t.Fatalf("Accept: %v", err)
	}
}
