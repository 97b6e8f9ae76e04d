package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"lingochat/friends"
	"lingochat/middleware"
	"lingochat/models"
	"lingochat/store"
	"lingochat/utils"
	"lingochat/websocket"
)

func GetFriends(c *gin.Context) {
	userID := middleware.GetUserID(c)

	ids, err := graph.FriendIDs(c.Request.Context(), userID)
	if err != nil {
		utils.InternalError(c, "database error")
		return
	}

	found, err := users.ListByIDs(c.Request.Context(), ids)
	if err != nil {
		utils.InternalError(c, "database error")
		return
	}

	list := make([]models.UserResponse, 0, len(found))
	for i := range found {
		list = append(list, *found[i].ToResponse())
	}

	utils.Success(c, list)
}

func GetFriendRequests(c *gin.Context) {
	userID := middleware.GetUserID(c)

	pending, err := graph.PendingTo(c.Request.Context(), userID)
	if err != nil {
		utils.InternalError(c, "database error")
		return
	}

	requests := make([]models.FriendRequestInfo, 0, len(pending))
	for i := range pending {
		from, err := users.GetByID(c.Request.Context(), pending[i].FromUserID)
		if err != nil {
			continue
		}
		requests = append(requests, models.FriendRequestInfo{
			ID:        pending[i].ID,
			FromUser:  *from.ToResponse(),
			CreatedAt: pending[i].CreatedAt,
		})
	}

	utils.Success(c, requests)
}

// SendFriendRequest runs the friend-request state machine and, when a new
// pending edge is created, pushes a live friend_request notification to
// the target.
func SendFriendRequest(c *gin.Context) {
	userID := middleware.GetUserID(c)
	targetID := c.Param("user_id")

	target, err := users.GetByID(c.Request.Context(), targetID)
	if errors.Is(err, store.ErrNotFound) {
		utils.NotFound(c, "user not found")
		return
	}
	if err != nil {
		utils.InternalError(c, "database error")
		return
	}

	outcome, edge, err := graph.Request(c.Request.Context(), userID, targetID)
	if errors.Is(err, friends.ErrSelfRequest) {
		utils.BadRequest(c, "cannot send friend request to yourself")
		return
	}
	if err != nil {
		utils.InternalError(c, "failed to send friend request")
		return
	}

	switch outcome {
	case friends.OutcomeCreated:
		notifyFriendRequest(c, target.ID, userID, edge.ID)
		utils.Created(c, gin.H{"message": "friend request sent", "friendship_id": edge.ID})
	case friends.OutcomeAccepted:
		utils.Success(c, gin.H{"message": "friend request accepted"})
	case friends.OutcomeAlreadyFriends:
		utils.BadRequest(c, "already friends")
	case friends.OutcomeDuplicateRequest:
		utils.BadRequest(c, "friend request already sent")
	}
}

func notifyFriendRequest(c *gin.Context, targetID, fromID, friendshipID string) {
	from, err := users.GetByID(c.Request.Context(), fromID)
	if err != nil {
		return
	}
	websocket.HubInstance.SendToUser(targetID, websocket.NewFriendRequestEvent(from.ToResponse(), friendshipID))
}

// AcceptFriendRequest accepts the pending request the path user sent to
// the caller.
func AcceptFriendRequest(c *gin.Context) {
	userID := middleware.GetUserID(c)
	fromID := c.Param("user_id")

	_, err := graph.AcceptFrom(c.Request.Context(), userID, fromID)
	if errors.Is(err, store.ErrNotFound) {
		utils.NotFound(c, "friend request not found")
		return
	}
	if err != nil {
		utils.InternalError(c, "failed to accept request")
		return
	}

	utils.Success(c, gin.H{"message": "friend request accepted"})
}
