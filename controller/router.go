package controller

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"assistantia/service"
)

// RouterDependencies holds everything route setup needs.
type RouterDependencies struct {
	Tokens        *service.TokenService
	Users         *service.UserService
	Auth          *AuthController
	UserAdmin     *UserController
	Conversations *ConversationController
	History       *HistoryController
	Chat          *ChatController
	Logger        *logrus.Logger
}

// RequestIDMiddleware ...
// Generate a unique ID and attach it to each request for future reference or use
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.New().String()
		c.Writer.Header().Set("X-Request-Id", id)
		c.Set("requestId", id)
		c.Next()
	}
}

// LogMiddleware writes one access-log line per request via the standard
// logrus logger.
func LogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery
		if raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		latency := time.Since(start)
		logrus.Infof(
			" [%s] %d | %v | %s | %s | %s | %s ",
			c.GetString("requestId"),
			c.Writer.Status(),
			latency,
			c.ClientIP(),
			c.Request.Method,
			path,
			c.Request.UserAgent(),
		)
	}
}

// NewRouter wires middleware and routes.
func NewRouter(deps RouterDependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))
	r.Use(RequestIDMiddleware())
	r.Use(LogMiddleware())

	authRequired := TokenAuthMiddleware(deps.Tokens, deps.Users, deps.Logger)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "online"})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/register", deps.Auth.Register)
		auth.POST("/login", deps.Auth.Login)
		auth.GET("/me", authRequired, deps.Auth.Me)
		auth.DELETE("/me", authRequired, deps.Auth.DeleteMe)
	}

	users := r.Group("/users", authRequired)
	{
		users.GET("", RequireAdmin(), deps.UserAdmin.List)
		// "me" and admin targets share the wildcard; the handler dispatches
		users.DELETE("/:id", deps.UserAdmin.Delete)
	}

	conversations := r.Group("/conversations", authRequired)
	{
		conversations.POST("", deps.Conversations.Create)
		conversations.GET("", deps.Conversations.List)
		conversations.PATCH("/:id", deps.Conversations.Rename)
		conversations.DELETE("/:id", deps.Conversations.Delete)
	}

	history := r.Group("/history", authRequired)
	{
		history.GET("/:id", deps.History.Page)
		history.DELETE("/:id", deps.History.ClearConversation)
		history.DELETE("", deps.History.ClearAll)
	}

	ai := r.Group("/ai", authRequired)
	{
		ai.POST("/chat", deps.Chat.Chat)
	}

	return r
}
