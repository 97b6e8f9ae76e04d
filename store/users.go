package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"lingochat/models"
	"lingochat/utils"
)

type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

const userColumns = "id, username, email, nickname, avatar, password, preferred_language, created_at, updated_at"

func scanUser(row interface{ Scan(...interface{}) error }) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.Nickname, &u.Avatar,
		&u.Password, &u.PreferredLanguage, &u.CreatedAt, &u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ?", id)
	return scanUser(row)
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username = ?", username)
	return scanUser(row)
}

func (s *UserStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)", username).Scan(&exists)
	return exists, err
}

func (s *UserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)", email).Scan(&exists)
	return exists, err
}

func (s *UserStore) Create(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = utils.GenerateUUID()
	}
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, username, email, nickname, avatar, password, preferred_language, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Email, u.Nickname, u.Avatar, u.Password, u.PreferredLanguage, now, now,
	)
	return err
}

func (s *UserStore) UpdateProfile(ctx context.Context, id, nickname, avatar, preferredLanguage string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE users SET
			nickname = COALESCE(NULLIF(?, ''), nickname),
			avatar = COALESCE(NULLIF(?, ''), avatar),
			preferred_language = COALESCE(NULLIF(?, ''), preferred_language),
			updated_at = ?
		WHERE id = ?`,
		nickname, avatar, preferredLanguage, time.Now(), id,
	)
	return err
}

// Search returns users other than selfID ordered by relevance: exact
// username/email match first, then prefix, then substring, then username.
// An empty query returns everyone but the caller, by username.
func (s *UserStore) Search(ctx context.Context, selfID, query string) ([]models.User, error) {
	var rows *sql.Rows
	var err error

	if query == "" {
		rows, err = s.db.QueryContext(ctx,
			"SELECT "+userColumns+" FROM users WHERE id != ? ORDER BY username", selfID)
	} else {
		pattern := "%" + escapeLikePattern(query) + "%"
		prefix := escapeLikePattern(query) + "%"
		rows, err = s.db.QueryContext(ctx, `
			SELECT `+userColumns+`,
				CASE
					WHEN username = ? OR email = ? THEN 100
					WHEN username LIKE ? OR email LIKE ? THEN 80
					WHEN username LIKE ? OR email LIKE ? THEN 50
					ELSE 0
				END AS relevance
			FROM users
			WHERE id != ? AND (username LIKE ? OR email LIKE ?)
			ORDER BY relevance DESC, username`,
			query, query, prefix, prefix, pattern, pattern, selfID, pattern, pattern,
		)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		dest := []interface{}{
			&u.ID, &u.Username, &u.Email, &u.Nickname, &u.Avatar,
			&u.Password, &u.PreferredLanguage, &u.CreatedAt, &u.UpdatedAt,
		}
		if query != "" {
			var relevance int
			dest = append(dest, &relevance)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// ListByIDs returns the users whose ids are in ids, ordered by username.
func (s *UserStore) ListByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id IN ("+placeholders+") ORDER BY username", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(
			&u.ID, &u.Username, &u.Email, &u.Nickname, &u.Avatar,
			&u.Password, &u.PreferredLanguage, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func escapeLikePattern(pattern string) string {
	pattern = strings.ReplaceAll(pattern, "\\", "\\\\")
	pattern = strings.ReplaceAll(pattern, "%", "\\%")
	pattern = strings.ReplaceAll(pattern, "_", "\\_")
	return pattern
}
