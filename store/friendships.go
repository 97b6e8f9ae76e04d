package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"

	"lingochat/models"
	"lingochat/utils"
)

// mysqlDuplicateEntry is the server error number for a unique key violation.
const mysqlDuplicateEntry = 1062

type FriendshipStore struct {
	db *sql.DB
}

func NewFriendshipStore(db *sql.DB) *FriendshipStore {
	return &FriendshipStore{db: db}
}

const friendshipColumns = "id, from_user_id, to_user_id, accepted, created_at, updated_at"

func scanFriendship(row interface{ Scan(...interface{}) error }) (*models.Friendship, error) {
	var f models.Friendship
	err := row.Scan(&f.ID, &f.FromUserID, &f.ToUserID, &f.Accepted, &f.CreatedAt, &f.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// FindBetween returns the single row for the unordered pair {a, b} in
// whichever direction it was created, or ErrNotFound.
func (s *FriendshipStore) FindBetween(ctx context.Context, a, b string) (*models.Friendship, error) {
	lo, hi := orderPair(a, b)
	row := s.db.QueryRowContext(ctx,
		"SELECT "+friendshipColumns+" FROM friendships WHERE pair_lo = ? AND pair_hi = ?", lo, hi)
	return scanFriendship(row)
}

// CreatePending inserts a pending edge from requester to target. The unique
// key on (pair_lo, pair_hi) makes concurrent inserts for the same pair
// collapse to one row; the loser gets ErrDuplicateEdge.
func (s *FriendshipStore) CreatePending(ctx context.Context, from, to string) (*models.Friendship, error) {
	lo, hi := orderPair(from, to)
	f := &models.Friendship{
		ID:         utils.GenerateUUID(),
		FromUserID: from,
		ToUserID:   to,
		Accepted:   false,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO friendships (id, from_user_id, to_user_id, pair_lo, pair_hi, accepted, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, FALSE, ?, ?)`,
		f.ID, from, to, lo, hi, f.CreatedAt, f.UpdatedAt,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return nil, ErrDuplicateEdge
		}
		return nil, err
	}
	return f, nil
}

// Accept flips a pending edge to accepted. ErrNotFound if the row is gone
// or was already accepted.
func (s *FriendshipStore) Accept(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE friendships SET accepted = TRUE, updated_at = ? WHERE id = ? AND accepted = FALSE",
		time.Now(), id,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAccepted returns every accepted edge. The recommendation engine
// rebuilds its adjacency view from this on each call.
func (s *FriendshipStore) ListAccepted(ctx context.Context) ([]models.Friendship, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+friendshipColumns+" FROM friendships WHERE accepted = TRUE")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectFriendships(rows)
}

// ListAcceptedFor returns the accepted edges involving userID.
func (s *FriendshipStore) ListAcceptedFor(ctx context.Context, userID string) ([]models.Friendship, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+friendshipColumns+` FROM friendships
		WHERE accepted = TRUE AND (from_user_id = ? OR to_user_id = ?)`,
		userID, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectFriendships(rows)
}

// ListPendingTo returns pending requests addressed to userID, newest first.
func (s *FriendshipStore) ListPendingTo(ctx context.Context, userID string) ([]models.Friendship, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+friendshipColumns+` FROM friendships
		WHERE accepted = FALSE AND to_user_id = ?
		ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectFriendships(rows)
}

// ListPendingInvolving returns pending edges where userID is on either side.
func (s *FriendshipStore) ListPendingInvolving(ctx context.Context, userID string) ([]models.Friendship, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+friendshipColumns+` FROM friendships
		WHERE accepted = FALSE AND (from_user_id = ? OR to_user_id = ?)`,
		userID, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectFriendships(rows)
}

func collectFriendships(rows *sql.Rows) ([]models.Friendship, error) {
	var edges []models.Friendship
	for rows.Next() {
		var f models.Friendship
		if err := rows.Scan(&f.ID, &f.FromUserID, &f.ToUserID, &f.Accepted, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		edges = append(edges, f)
	}
	return edges, rows.Err()
}

func orderPair(a, b string) (string, string) {
	if a > b {
		return b, a
	}
	return a, b
}
