package models

import "time"

// SupportedLanguages lists the preferred-language codes the service
// translates between. Anything else normalizes to "en".
var SupportedLanguages = map[string]bool{
	"en": true,
	"fr": true,
	"es": true,
}

type User struct {
	ID                string    `json:"id"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	Nickname          string    `json:"nickname"`
	Avatar            string    `json:"avatar"`
	Password          string    `json:"-"`
	PreferredLanguage string    `json:"preferred_language"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type UserResponse struct {
	ID                string    `json:"id"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	Nickname          string    `json:"nickname"`
	Avatar            string    `json:"avatar"`
	PreferredLanguage string    `json:"preferred_language"`
	CreatedAt         time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:                u.ID,
		Username:          u.Username,
		Email:             u.Email,
		Nickname:          u.Nickname,
		Avatar:            u.Avatar,
		PreferredLanguage: u.PreferredLanguage,
		CreatedAt:         u.CreatedAt,
	}
}

// UserSearchResult is a user row annotated with the caller's relationship
// to it, as returned by the user search endpoint.
type UserSearchResult struct {
	UserResponse
	IsFriend          bool `json:"is_friend"`
	HasPendingRequest bool `json:"has_pending_request"`
	RequestSentByMe   bool `json:"request_sent_by_me"`
}
