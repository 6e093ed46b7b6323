package controllers

import (
	"net/http"
	"strconv"

	"github.com/mkessler/squares-backend/config"
	"github.com/mkessler/squares-backend/models"
	"github.com/mkessler/squares-backend/services"

	"github.com/gin-gonic/gin"
)

// currentUser resolves the caller from the X-User-ID header set by the
// auth proxy in front of this service. Provider integration itself lives
// outside this codebase.
func currentUser(c *gin.Context) (*models.User, *services.Error) {
	raw := c.GetHeader("X-User-ID")
	if raw == "" {
		// browsers cannot set headers on websocket upgrades
		raw = c.Query("user")
	}
	if raw == "" {
		return nil, services.Errf(services.CodeNotAuthenticated, "missing X-User-ID header")
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, services.Errf(services.CodeNotAuthenticated, "invalid X-User-ID header")
	}

	var user models.User
	if err := config.DB.First(&user, uint(id)).Error; err != nil {
		return nil, services.Errf(services.CodeNotAuthenticated, "unknown user")
	}
	return &user, nil
}

func statusFor(code services.Code) int {
	switch code {
	case services.CodeNotAuthenticated:
		return http.StatusUnauthorized
	case services.CodeNotAuthorized, services.CodeNotOwner:
		return http.StatusForbidden
	case services.CodeNotFound:
		return http.StatusNotFound
	case services.CodeConflict, services.CodeNotOpen:
		return http.StatusConflict
	case services.CodeValidationFailed:
		return http.StatusBadRequest
	case services.CodeUpstreamUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err *services.Error) {
	c.JSON(statusFor(err.Code), gin.H{"error": err.Message, "code": err.Code})
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}
