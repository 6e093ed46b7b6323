package controllers

import (
	"net/http"

	"github.com/mkessler/squares-backend/services"

	"github.com/gin-gonic/gin"
)

func CreateGame(c *gin.Context) {
	user, aerr := currentUser(c)
	if aerr != nil {
		respondError(c, aerr)
		return
	}
	groupID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var in services.CreateGameInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game, err := services.Default.CreateGame(user, groupID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, game)
}

func ListGroupGames(c *gin.Context) {
	if _, aerr := currentUser(c); aerr != nil {
		respondError(c, aerr)
		return
	}
	groupID, ok := pathID(c, "id")
	if !ok {
		return
	}

	games, err := services.Default.ListGroupGames(groupID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, games)
}

// GetBoard returns the authoritative game view: game, all 100 squares,
// recorded winners and the live viewer count.
func GetBoard(c *gin.Context) {
	user, aerr := currentUser(c)
	if aerr != nil {
		respondError(c, aerr)
		return
	}
	gameID, ok := pathID(c, "id")
	if !ok {
		return
	}

	board, err := services.Default.GetBoard(user, gameID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

func OpenGame(c *gin.Context) {
	user, aerr := currentUser(c)
	if aerr != nil {
		respondError(c, aerr)
		return
	}
	gameID, ok := pathID(c, "id")
	if !ok {
		return
	}

	game, err := services.Default.OpenGame(user, gameID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, game)
}

func LockGame(c *gin.Context) {
	user, aerr := currentUser(c)
	if aerr != nil {
		respondError(c, aerr)
		return
	}
	gameID, ok := pathID(c, "id")
	if !ok {
		return
	}

	game, err := services.Default.LockGame(user, gameID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, game)
}

func RandomizeNumbers(c *gin.Context) {
	user, aerr := currentUser(c)
	if aerr != nil {
		respondError(c, aerr)
		return
	}
	gameID, ok := pathID(c, "id")
	if !ok {
		return
	}

	game, err := services.Default.RandomizeGameNumbers(user, gameID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, game)
}

// SetNumbers accepts hand-entered axis assignments. Rejections carry the
// exact duplicate/missing digits so the editor can highlight them.
func SetNumbers(c *gin.Context) {
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
		HomeNumbers []int `json:"home_numbers" binding:"required"`
		AwayNumbers []int `json:"away_numbers" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game, err := services.Default.SetGameNumbers(user, gameID, req.HomeNumbers, req.AwayNumbers)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, game)
}

func ListWinners(c *gin.Context) {
	if _, aerr := currentUser(c); aerr != nil {
		respondError(c, aerr)
		return
	}
	gameID, ok := pathID(c, "id")
	if !ok {
		return
	}

	winners, err := services.Default.ListQuarterWinners(gameID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, winners)
}

func Heartbeat(c *gin.Context) {
	user, aerr := currentUser(c)
	if aerr != nil {
		respondError(c, aerr)
		return
	}
	gameID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := services.Default.Heartbeat(user, gameID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
