package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"symptom-chatbot-backend/models"
	"symptom-chatbot-backend/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Configure properly for production
	},
}

type WebSocketController struct {
	chatbotService *services.ChatbotService
}

func NewWebSocketController(chatbotService *services.ChatbotService) *WebSocketController {
	return &WebSocketController{
		chatbotService: chatbotService,
	}
}

func (wc *WebSocketController) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	sessionID := c.Query("session_id")

	for {
		var msg map[string]string
		err := conn.ReadJSON(&msg)
		if err != nil {
			log.Println("Read error:", err)
			break
		}

		req := models.ChatRequest{
			Message:   msg["message"],
			SessionID: sessionID,
			UserID:    msg["user_id"],
			Channel:   models.ChannelWebSocket,
		}

		response, err := wc.chatbotService.ProcessMessage(c.Request.Context(), req)
		if err != nil {
			conn.WriteJSON(map[string]interface{}{
				"error": "Failed to process message",
			})
			continue
		}

		// Reuse the session the service created so the conversation
		// survives across frames on the same connection.
		if sessionID == "" {
			sessionID = response.SessionID
		}

		conn.WriteJSON(response)
	}
}
