package controllers

import (
	"net/http"

	"github.com/mkessler/squares-backend/config"
	"github.com/mkessler/squares-backend/models"
	"github.com/mkessler/squares-backend/services"
	"github.com/mkessler/squares-backend/utils/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict this in production to your domains
		return true
	},
}

// Hub is wired by main.
var Hub *services.Hub

// GameWebSocket subscribes a viewer to a game's live board events.
// Delivery is best effort; the client re-fetches the board after any
// reconnect.
func GameWebSocket(c *gin.Context) {
	gameID, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, aerr := currentUser(c)
	if aerr != nil {
		respondError(c, aerr)
		return
	}

	var game models.Game
	if err := config.DB.First(&game, gameID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Errorf("[WS] upgrade error: %v", err)
		return
	}

	client := services.NewClient(Hub, conn, gameID, user.ID)
	Hub.Subscribe(client)
}
