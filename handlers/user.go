package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"lingochat/middleware"
	"lingochat/models"
	"lingochat/store"
	"lingochat/utils"
)

type UpdateUserRequest struct {
	Nickname          string `json:"nickname"`
	Avatar            string `json:"avatar"`
	PreferredLanguage string `json:"preferred_language"`
}

func GetCurrentUser(c *gin.Context) {
	userID := middleware.GetUserID(c)

	user, err := users.GetByID(c.Request.Context(), userID)
	if errors.Is(err, store.ErrNotFound) {
		utils.NotFound(c, "user not found")
		return
	}
	if err != nil {
		utils.InternalError(c, "database error")
		return
	}

	utils.Success(c, user.ToResponse())
}

func UpdateCurrentUser(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if req.PreferredLanguage != "" && !models.SupportedLanguages[req.PreferredLanguage] {
		utils.BadRequest(c, "unsupported language")
		return
	}

	err := users.UpdateProfile(c.Request.Context(), userID, req.Nickname, req.Avatar, req.PreferredLanguage)
	if err != nil {
		utils.InternalError(c, "failed to update user")
		return
	}

	GetCurrentUser(c)
}

// SearchUsers lists everyone but the caller, relevance-ranked when a
// search term is given, with the caller's relationship to each user
// attached.
func SearchUsers(c *gin.Context) {
	userID := middleware.GetUserID(c)
	query := strings.TrimSpace(c.Query("search"))

	found, err := users.Search(c.Request.Context(), userID, query)
	if err != nil {
		utils.InternalError(c, "database error")
		return
	}

	friendIDs, err := graph.FriendIDs(c.Request.Context(), userID)
	if err != nil {
		utils.InternalError(c, "database error")
		return
	}
	friendSet := make(map[string]bool, len(friendIDs))
	for _, id := range friendIDs {
		friendSet[id] = true
	}

	pending, err := graph.PendingInvolving(c.Request.Context(), userID)
	if err != nil {
		utils.InternalError(c, "database error")
		return
	}
	pendingByUser := make(map[string]bool, len(pending))
	sentByMe := make(map[string]bool, len(pending))
	for i := range pending {
		other := pending[i].Other(userID)
		pendingByUser[other] = true
		if pending[i].FromUserID == userID {
			sentByMe[other] = true
		}
	}

	results := make([]models.UserSearchResult, 0, len(found))
	for i := range found {
		results = append(results, models.UserSearchResult{
			UserResponse:      *found[i].ToResponse(),
			IsFriend:          friendSet[found[i].ID],
			HasPendingRequest: pendingByUser[found[i].ID],
			RequestSentByMe:   sentByMe[found[i].ID],
		})
	}

	utils.Success(c, results)
}
