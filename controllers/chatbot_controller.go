package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"symptom-chatbot-backend/models"
	"symptom-chatbot-backend/services"
)

type ChatbotController struct {
	chatbotService *services.ChatbotService
}

func NewChatbotController(chatbotService *services.ChatbotService) *ChatbotController {
	return &ChatbotController{
		chatbotService: chatbotService,
	}
}

// HandleChat processes chat messages
func (cc *ChatbotController) HandleChat(c *gin.Context) {
	var req models.ChatRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	// Get user ID from context if authenticated
	userID, _ := c.Get("userID")
	if userID != nil {
		req.UserID = userID.(string)
	}
	if req.Channel == "" {
		req.Channel = models.ChannelWeb
	}

	response, err := cc.chatbotService.ProcessMessage(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to process message",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetChatHistory retrieves the stored turns for a session
func (cc *ChatbotController) GetChatHistory(c *gin.Context) {
	sessionID := c.Param("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "session_id is required",
		})
		return
	}

	limit := int64(50)
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.ParseInt(limitStr, 10, 64); err == nil && l > 0 {
			limit = l
		}
	}

	history, err := cc.chatbotService.History(c.Request.Context(), sessionID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve chat history",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"history": history,
		"count":   len(history),
	})
}

// GetSupportedIntents returns list of supported intents
func (cc *ChatbotController) GetSupportedIntents(c *gin.Context) {
	intents := []map[string]interface{}{
		{
			"intent":      "report_symptom",
			"description": "Describe symptoms for a preliminary assessment",
			"examples": []string{
				"I have fever and headache",
				"mujhe bukhar hai",
				"Suffering from joint pain since 2 days",
			},
		},
		{
			"intent":      "update_profile",
			"description": "Update profile details used for the analysis",
			"examples": []string{
				"Update my profile",
				"Change my height",
				"My weight is wrong",
			},
		},
		{
			"intent":      "book_appointment",
			"description": "Find and book a specialist",
			"examples": []string{
				"Book an appointment",
				"Find a dermatologist",
				"I want to see a doctor",
			},
		},
		{
			"intent":      "emergency",
			"description": "Emergency assistance",
			"examples": []string{
				"Severe chest pain",
				"Can't breathe properly",
				"Heart attack",
			},
		},
	}

	c.JSON(http.StatusOK, gin.H{
		"intents": intents,
	})
}
