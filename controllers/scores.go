package controllers

import (
	"net/http"
	"time"

	"github.com/mkessler/squares-backend/config"
	"github.com/mkessler/squares-backend/models"
	"github.com/mkessler/squares-backend/services"

	"github.com/gin-gonic/gin"
)

// ScoreClient is wired by main; the cron endpoint and manual refresh share
// it with the background poller.
var ScoreClient *services.ScoreClient

// CronSecret guards the cron endpoint when set.
var CronSecret string

// UpdateScore lets a group admin push a score manually, e.g. when the
// feed is down or the game has no external key.
func UpdateScore(c *gin.Context) {
	user, aerr := currentUser(c)
	if aerr != nil {
		respondError(c, aerr)
		return
	}
	gameID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req struct {
		HomeScore      *int   `json:"home_score" binding:"required"`
		AwayScore      *int   `json:"away_score" binding:"required"`
		CurrentQuarter string `json:"current_quarter" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validQuarter(req.CurrentQuarter) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid current_quarter"})
		return
	}
	if *req.HomeScore < 0 || *req.AwayScore < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scores must be non-negative"})
		return
	}

	var game models.Game
	if err := config.DB.First(&game, gameID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}
	if err := services.Default.RequireGroupAdmin(user.ID, game.GroupID); err != nil {
		respondError(c, err)
		return
	}

	upd := &services.ScoreUpdate{
		HomeScore: *req.HomeScore,
		AwayScore: *req.AwayScore,
		Quarter:   req.CurrentQuarter,
		FetchedAt: time.Now(),
	}

	updated, err := services.Default.ApplyScoreUpdate(gameID, upd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// RefreshScore pulls the live feed for one game on demand.
func RefreshScore(c *gin.Context) {
	user, aerr := currentUser(c)
	if aerr != nil {
		respondError(c, aerr)
		return
	}
	gameID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var game models.Game
	if err := config.DB.First(&game, gameID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}
	if err := services.Default.RequireGroupAdmin(user.ID, game.GroupID); err != nil {
		respondError(c, err)
		return
	}
	if game.ExternalGameKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "game has no external game key"})
		return
	}

	upd, ferr := ScoreClient.FetchGame(c.Request.Context(), game.ExternalGameKey)
	if ferr != nil {
		respondError(c, ferr)
		return
	}

	updated, err := services.Default.ApplyScoreUpdate(gameID, upd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// CronUpdateScores refreshes every active game. Meant to be hit by an
// external scheduler; protected by a bearer secret instead of a user
// identity.
func CronUpdateScores(c *gin.Context) {
	if CronSecret != "" && c.GetHeader("Authorization") != "Bearer "+CronSecret {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	updated, failed := services.Default.UpdateActiveGameScores(c.Request.Context(), ScoreClient)
	c.JSON(http.StatusOK, gin.H{"updated": updated, "failed": failed})
}

func validQuarter(q string) bool {
	switch q {
	case models.QuarterPregame, models.QuarterQ1, models.QuarterQ2,
		models.QuarterQ3, models.QuarterQ4, models.QuarterFinal:
		return true
	}
	return false
}
