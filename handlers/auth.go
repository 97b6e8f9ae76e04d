package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"lingochat/middleware"
	"lingochat/models"
	"lingochat/store"
	"lingochat/utils"
)

type RegisterRequest struct {
	Username          string `json:"username" binding:"required,min=3,max=50"`
	Email             string `json:"email" binding:"required,email"`
	Password          string `json:"password" binding:"required,min=6"`
	Nickname          string `json:"nickname"`
	PreferredLanguage string `json:"preferred_language"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string              `json:"token"`
	User  models.UserResponse `json:"user"`
}

func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	exists, err := users.UsernameExists(c.Request.Context(), req.Username)
	if err != nil {
		utils.InternalError(c, "database error")
		return
	}
	if exists {
		utils.BadRequest(c, "username already exists")
		return
	}

	exists, err = users.EmailExists(c.Request.Context(), req.Email)
	if err != nil {
		utils.InternalError(c, "database error")
		return
	}
	if exists {
		utils.BadRequest(c, "email already exists")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.InternalError(c, "failed to hash password")
		return
	}

	nickname := req.Nickname
	if nickname == "" {
		nickname = req.Username
	}
	language := req.PreferredLanguage
	if !models.SupportedLanguages[language] {
		language = "en"
	}

	user := &models.User{
		Username:          req.Username,
		Email:             req.Email,
		Nickname:          nickname,
		Password:          string(hashedPassword),
		PreferredLanguage: language,
	}
	if err := users.Create(c.Request.Context(), user); err != nil {
		utils.InternalError(c, "failed to create user")
		return
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		utils.InternalError(c, "failed to generate token")
		return
	}

	utils.Created(c, AuthResponse{Token: token, User: *user.ToResponse()})
}

func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	user, err := users.GetByUsername(c.Request.Context(), req.Username)
	if errors.Is(err, store.ErrNotFound) {
		utils.Unauthorized(c, "invalid username or password")
		return
	}
	if err != nil {
		utils.InternalError(c, "database error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.Unauthorized(c, "invalid username or password")
		return
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		utils.InternalError(c, "failed to generate token")
		return
	}

	utils.Success(c, AuthResponse{Token: token, User: *user.ToResponse()})
}

func RefreshToken(c *gin.Context) {
	userID := middleware.GetUserID(c)

	token, err := utils.GenerateToken(userID)
	if err != nil {
		utils.InternalError(c, "failed to generate token")
		return
	}

	utils.Success(c, gin.H{"token": token})
}
