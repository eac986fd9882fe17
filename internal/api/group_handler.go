package api

import (
	"errors"
	"net/http"
	"strconv"

	"go-favor-exchange/internal/service"
	"go-favor-exchange/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type GroupHandler struct {
	groupService *service.GroupService
}

func NewGroupHandler(groupService *service.GroupService) *GroupHandler {
	return &GroupHandler{
		groupService: groupService,
	}
}

// GET /api/groups — 公开群组
func (h *GroupHandler) ListGroups(c *gin.Context) {
	groups, err := h.groupService.ListPublic()
	if err != nil {
		logger.L.Error("Error listing groups", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve groups"})
		return
	}

	c.JSON(http.StatusOK, groups)
}

// GET /api/groups/user/:userId
func (h *GroupHandler) ListUserGroups(c *gin.Context) {
	userID, ok := parseUintParam(c, "userId")
	if !ok {
		return
	}

	groups, err := h.groupService.ListByUser(userID)
	if err != nil {
		logger.L.Error("Error getting user groups", zap.Error(err), zap.Uint("userID", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve groups"})
		return
	}

	c.JSON(http.StatusOK, groups)
}

// POST /api/groups
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	var req service.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.L.Warn("Failed to bind CreateGroup request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	group, err := h.groupService.CreateGroup(userID, req)
	if err != nil {
		logger.L.Error("Error creating group", zap.Error(err), zap.Uint("founderID", userID))
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create group"})
		}
		return
	}

	c.JSON(http.StatusCreated, group)
}

// GET /api/groups/:id/members
func (h *GroupHandler) ListGroupMembers(c *gin.Context) {
	groupID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	members, err := h.groupService.ListMembers(groupID)
	if err != nil {
		if errors.Is(err, service.ErrGroupNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
			return
		}
		logger.L.Error("Error listing group members", zap.Error(err), zap.Uint("groupID", groupID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve members"})
		return
	}

	c.JSON(http.StatusOK, members)
}

// POST /api/groups/:id/join
func (h *GroupHandler) JoinGroup(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	groupID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	member, err := h.groupService.Join(groupID, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGroupNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, service.ErrAlreadyMember):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.L.Error("Error joining group", zap.Error(err), zap.Uint("groupID", groupID), zap.Uint("userID", userID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join group"})
		}
		return
	}

	c.JSON(http.StatusCreated, member)
}

// DELETE /api/groups/:id/members/:userId
func (h *GroupHandler) RemoveGroupMember(c *gin.Context) {
	groupID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	targetUserID, ok := parseUintParam(c, "userId")
	if !ok {
		return
	}

	err := h.groupService.RemoveMember(groupID, targetUserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMemberNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrCannotRemoveFounder):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			logger.L.Error("Error removing group member", zap.Error(err), zap.Uint("groupID", groupID), zap.Uint("targetUserID", targetUserID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove member"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User removed from group successfully"})
}

func getUserIDFromContext(c *gin.Context) (uint, bool) {
	userIDValue, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return 0, false
	}
	userID, ok := userIDValue.(uint)
	if !ok {
		logger.L.Error("Invalid userID type in context", zap.Any("userIDValue", userIDValue))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID in context"})
		return 0, false
	}
	return userID, true
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	value64, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " parameter"})
		return 0, false
	}
	return uint(value64), true
}
