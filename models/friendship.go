package models

import "time"

// Friendship is one directional row per unordered user pair. The direction
// records who asked; accepted=false is a pending request, accepted=true is
// a mutual friendship.
type Friendship struct {
	ID         string    `json:"id"`
	FromUserID string    `json:"from_user_id"`
	ToUserID   string    `json:"to_user_id"`
	Accepted   bool      `json:"accepted"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Other returns the participant that is not userID.
func (f *Friendship) Other(userID string) string {
	if f.FromUserID == userID {
		return f.ToUserID
	}
	return f.FromUserID
}

// FriendRequestInfo is a pending request addressed to the caller, with the
// sender's profile attached.
type FriendRequestInfo struct {
	ID        string       `json:"id"`
	FromUser  UserResponse `json:"from_user"`
	CreatedAt time.Time    `json:"created_at"`
}
