package controllers

import (
	"net/http"

	"github.com/mkessler/squares-backend/services"

	"github.com/gin-gonic/gin"
)

func CreateGroup(c *gin.Context) {
	user, aerr := currentUser(c)
	if aerr != nil {
		respondError(c, aerr)
		return
	}

	var in services.CreateGroupInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group, err := services.Default.CreateGroup(user, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, group)
}

func ListGroups(c *gin.Context) {
	user, aerr := currentUser(c)
	if aerr != nil {
		respondError(c, aerr)
		return
	}

	groups, err := services.Default.ListGroupsForUser(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

func GetGroup(c *gin.Context) {
	if _, aerr := currentUser(c); aerr != nil {
		respondError(c, aerr)
		return
	}
	groupID, ok := pathID(c, "id")
	if !ok {
		return
	}

	group, members, err := services.Default.GetGroup(groupID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"group": group, "members": members})
}

func JoinGroup(c *gin.Context) {
	user, aerr := currentUser(c)
	if aerr != nil {
		respondError(c, aerr)
		return
	}

	var req struct {
		InviteCode string `json:"invite_code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group, err := services.Default.JoinGroup(user, req.InviteCode)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, group)
}

func AddPlaceholderMember(c *gin.Context) {
	user, aerr := currentUser(c)
	if aerr != nil {
		respondError(c, aerr)
		return
	}
	groupID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req struct {
		DisplayName string `json:"display_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := services.Default.AddPlaceholderMember(user, groupID, req.DisplayName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, member)
}

func ClaimPlaceholder(c *gin.Context) {
	user, aerr := currentUser(c)
	if aerr != nil {
		respondError(c, aerr)
		return
	}
	groupID, ok := pathID(c, "id")
	if !ok {
		return
	}
	memberID, ok := pathID(c, "memberId")
	if !ok {
		return
	}

	member, err := services.Default.ClaimPlaceholder(user, groupID, memberID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

func DeleteGroup(c *gin.Context) {
	user, aerr := currentUser(c)
	if aerr != nil {
		respondError(c, aerr)
		return
	}
	groupID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := services.Default.DeleteGroup(user, groupID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
