package controllers

import (
	"net/http"

	"github.com/mkessler/squares-backend/models"
	"github.com/mkessler/squares-backend/services"

	"github.com/gin-gonic/gin"
)

// Claim, unclaim and admin-assign all answer with the same shape the
// board UI consumes: success flag, human-readable message, and the new
// version to use for the next mutation.

func ClaimSquare(c *gin.Context) {
	user, aerr := currentUser(c)
	if aerr != nil {
		respondError(c, aerr)
		return
	}
	gameID, ok := pathID(c, "id")
	if !ok {
		return
	}
	squareID, ok := pathID(c, "squareId")
	if !ok {
		return
	}

	var req struct {
		ExpectedVersion *int `json:"expected_version" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	newVersion, err := services.Default.ClaimSquare(user, gameID, squareID, *req.ExpectedVersion)
	if err != nil {
		c.JSON(statusFor(err.Code), gin.H{"success": false, "message": err.Message, "code": err.Code})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "square claimed", "new_version": newVersion})
}

func UnclaimSquare(c *gin.Context) {
	user, aerr := currentUser(c)
	if aerr != nil {
		respondError(c, aerr)
		return
	}
	gameID, ok := pathID(c, "id")
	if !ok {
		return
	}
	squareID, ok := pathID(c, "squareId")
	if !ok {
		return
	}

	newVersion, err := services.Default.UnclaimSquare(user, gameID, squareID)
	if err != nil {
		c.JSON(statusFor(err.Code), gin.H{"success": false, "message": err.Message, "code": err.Code})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "square released", "new_version": newVersion})
}

// AdminAssignSquare forces ownership of a square. The target is either a
// registered user id, a free-text display name, or neither to clear the
// square.
func AdminAssignSquare(c *gin.Context) {
	user, aerr := currentUser(c)
	if aerr != nil {
		respondError(c, aerr)
		return
	}
	gameID, ok := pathID(c, "id")
	if !ok {
		return
	}
	squareID, ok := pathID(c, "squareId")
	if !ok {
		return
	}

	var req struct {
		ExpectedVersion *int    `json:"expected_version" binding:"required"`
		UserID          *uint   `json:"user_id"`
		DisplayName     *string `json:"display_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var target models.Owner
	switch {
	case req.UserID != nil:
		target = models.RegisteredOwner(*req.UserID)
	case req.DisplayName != nil && *req.DisplayName != "":
		target = models.PlaceholderOwner(*req.DisplayName)
	default:
		target = models.NoOwner()
	}

	newVersion, err := services.Default.AdminAssignSquare(user, gameID, squareID, target, *req.ExpectedVersion)
	if err != nil {
		c.JSON(statusFor(err.Code), gin.H{"success": false, "message": err.Message, "code": err.Code})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "square assigned", "new_version": newVersion})
}
