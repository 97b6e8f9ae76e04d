package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"lingochat/friends"
	"lingochat/middleware"
	"lingochat/utils"
)

// GetRecommendations returns friends-of-friends ranked by mutual-friend
// count.
func GetRecommendations(c *gin.Context) {
	userID := middleware.GetUserID(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit <= 0 || limit > 50 {
		limit = friends.DefaultRecommendResults
	}

	recs, err := recommender.Recommend(c.Request.Context(), userID, friends.DefaultRecommendDepth, limit)
	if err != nil {
		utils.InternalError(c, "database error")
		return
	}

	utils.Success(c, recs)
}
