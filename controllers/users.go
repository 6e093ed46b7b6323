package controllers

import (
	"net/http"

	"github.com/mkessler/squares-backend/config"
	"github.com/mkessler/squares-backend/models"

	"github.com/gin-gonic/gin"
)

// RegisterUser creates or returns the profile for an auth subject.
func RegisterUser(c *gin.Context) {
	var req struct {
		AuthSubject string `json:"auth_subject" binding:"required"`
		Email       string `json:"email" binding:"required"`
		FullName    string `json:"full_name"`
		AvatarURL   string `json:"avatar_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.User
	if err := config.DB.Where("auth_subject = ?", req.AuthSubject).First(&existing).Error; err == nil {
		c.JSON(http.StatusOK, existing)
		return
	}

	user := models.User{
		AuthSubject: req.AuthSubject,
		Email:       req.Email,
		FullName:    req.FullName,
		AvatarURL:   req.AvatarURL,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, user)
}

// GetMe returns the caller's profile.
func GetMe(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
