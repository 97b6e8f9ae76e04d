package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"lingochat/chat"
	"lingochat/config"
	"lingochat/database"
	"lingochat/friends"
	"lingochat/handlers"
	"lingochat/middleware"
	"lingochat/models"
	"lingochat/store"
	"lingochat/translate"
	"lingochat/websocket"
)

func main() {
	config.Load()

	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := database.CreateTables(); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}

	userStore := store.NewUserStore(database.DB)
	friendshipStore := store.NewFriendshipStore(database.DB)
	messageStore := store.NewMessageStore(database.DB)

	graph := friends.NewGraph(friendshipStore)
	recommender := friends.NewRecommender(graph)

	gateway := translate.NewGateway(
		translate.NewOpenAIFactory(config.Cfg.TranslatorURL, config.Cfg.TranslatorAPIKey),
		models.SupportedLanguages,
		time.Duration(config.Cfg.TranslateTimeout)*time.Second,
	)

	handlers.Init(userStore, messageStore, graph, recommender)

	router := chat.NewRouter(userStore, graph, gateway, messageStore, hubPusher{})
	websocket.Init(router, userStore)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/login", handlers.Login)
		auth.POST("/refresh", middleware.AuthMiddleware(), handlers.RefreshToken)
	}

	users := r.Group("/api/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("", handlers.SearchUsers)
		users.GET("/me", handlers.GetCurrentUser)
		users.PUT("/me", handlers.UpdateCurrentUser)
	}

	friendRoutes := r.Group("/api/friends")
	friendRoutes.Use(middleware.AuthMiddleware())
	{
		friendRoutes.GET("", handlers.GetFriends)
		friendRoutes.GET("/requests", handlers.GetFriendRequests)
		friendRoutes.GET("/recommendations", handlers.GetRecommendations)
		friendRoutes.POST("/request/:user_id", handlers.SendFriendRequest)
		friendRoutes.POST("/accept/:user_id", handlers.AcceptFriendRequest)
	}

	messages := r.Group("/api/messages")
	messages.Use(middleware.AuthMiddleware())
	{
		messages.GET("/:friend_id", handlers.GetMessages)
	}

	r.GET("/ws", websocket.HandleWebSocket)

	log.Printf("Server starting on %s", config.Cfg.ServerAddr)
	if err := r.Run(config.Cfg.ServerAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// hubPusher defers to the process-wide hub, which Init creates after the
// router is constructed.
type hubPusher struct{}

func (hubPusher) SendToUser(userID string, event websocket.Event) bool {
	return websocket.HubInstance.SendToUser(userID, event)
}
