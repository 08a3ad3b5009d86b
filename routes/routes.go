package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"symptom-chatbot-backend/config"
	"symptom-chatbot-backend/controllers"
	"symptom-chatbot-backend/database"
	"symptom-chatbot-backend/middleware"
	"symptom-chatbot-backend/services"
	"symptom-chatbot-backend/utils"
)

func SetupRoutes(router *gin.Engine, cfg *config.Config) error {
	// Initialize services
	dict, err := utils.NewMedicalDictionary()
	if err != nil {
		return fmt.Errorf("failed to load medical dictionary: %w", err)
	}

	db := database.GetMongoDB()
	sessionStore := database.NewMongoSessionStore(db)
	messageStore := database.NewMongoMessageStore(db)

	var backend services.AnalysisBackend
	if cfg.Analysis.Enabled && cfg.Analysis.BaseURL != "" {
		backend = services.NewAnalysisClient(cfg.Analysis.BaseURL, cfg.Analysis.APIKey)
	}

	chatbotService := services.NewChatbotService(dict, sessionStore, messageStore, backend)
	chatbotService.SetSessionTTL(cfg.Session.TTL)

	// Initialize controllers
	chatbotController := controllers.NewChatbotController(chatbotService)
	wsController := controllers.NewWebSocketController(chatbotService)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		// Chatbot (basic access)
		public.POST("/chat", chatbotController.HandleChat)
		public.GET("/chat/history/:session_id", chatbotController.GetChatHistory)
		public.GET("/intents", chatbotController.GetSupportedIntents)

		// WebSocket for real-time chat
		public.GET("/ws", wsController.HandleWebSocket)
	}

	// Webhook routes for server-to-server callers, HMAC-verified when
	// a secret is configured
	webhook := router.Group("/api/webhook")
	webhook.Use(middleware.VerifySignature(cfg.Security.WebhookSecret))
	{
		webhook.POST("/chat", chatbotController.HandleChat)
	}

	// 404 handler
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error": "Route not found",
			"path":  c.Request.URL.Path,
		})
	})

	return nil
}
