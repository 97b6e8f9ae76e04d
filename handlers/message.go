package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"lingochat/middleware"
	"lingochat/models"
	"lingochat/store"
	"lingochat/utils"
)

// GetMessages returns the conversation with a friend in chronological
// order. Each message carries a display_content projection: the caller's
// own messages show what they wrote, the friend's show the translation.
func GetMessages(c *gin.Context) {
	userID := middleware.GetUserID(c)
	friendID := c.Param("friend_id")

	if _, err := users.GetByID(c.Request.Context(), friendID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c, "friend not found")
			return
		}
		utils.InternalError(c, "database error")
		return
	}

	areFriends, err := graph.AreFriends(c.Request.Context(), userID, friendID)
	if err != nil {
		utils.InternalError(c, "database error")
		return
	}
	if !areFriends {
		utils.Forbidden(c, "users are not friends")
		return
	}

	history, err := messages.ListBetween(c.Request.Context(), userID, friendID)
	if err != nil {
		utils.InternalError(c, "database error")
		return
	}

	list := make([]models.MessageResponse, 0, len(history))
	for i := range history {
		list = append(list, *history[i].ToResponseFor(userID))
	}

	utils.Success(c, list)
}
