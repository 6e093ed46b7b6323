package routes

import (
	"github.com/mkessler/squares-backend/controllers"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	api := r.Group("/api")

	// ----------------------
	// User routes
	// ----------------------
	api.POST("/users", controllers.RegisterUser) // Register profile
	api.GET("/me", controllers.GetMe)            // Current profile

	// ----------------------
	// Group routes
	// ----------------------
	api.POST("/groups", controllers.CreateGroup)
	api.GET("/groups", controllers.ListGroups)
	api.GET("/groups/:id", controllers.GetGroup)
	api.DELETE("/groups/:id", controllers.DeleteGroup)
	api.POST("/groups/join", controllers.JoinGroup) // by invite code
	api.POST("/groups/:id/members", controllers.AddPlaceholderMember)
	api.POST("/groups/:id/members/:memberId/claim", controllers.ClaimPlaceholder)

	// ----------------------
	// Game routes
	// ----------------------
	api.POST("/groups/:id/games", controllers.CreateGame)
	api.GET("/groups/:id/games", controllers.ListGroupGames)
	api.GET("/games/:id", controllers.GetBoard)
	api.POST("/games/:id/open", controllers.OpenGame)
	api.POST("/games/:id/lock", controllers.LockGame)
	api.POST("/games/:id/numbers/randomize", controllers.RandomizeNumbers)
	api.PUT("/games/:id/numbers", controllers.SetNumbers)
	api.GET("/games/:id/winners", controllers.ListWinners)
	api.POST("/games/:id/heartbeat", controllers.Heartbeat)

	// ----------------------
	// Square routes
	// ----------------------
	api.POST("/games/:id/squares/:squareId/claim", controllers.ClaimSquare)
	api.POST("/games/:id/squares/:squareId/unclaim", controllers.UnclaimSquare)
	api.POST("/games/:id/squares/:squareId/assign", controllers.AdminAssignSquare)

	// ----------------------
	// Score routes
	// ----------------------
	api.PUT("/games/:id/score", controllers.UpdateScore)        // manual entry
	api.POST("/games/:id/score/refresh", controllers.RefreshScore) // pull feed once
	api.POST("/cron/update-scores", controllers.CronUpdateScores)
}
