package api

import (
	"errors"
	"net/http"

	"go-favor-exchange/internal/model"
	"go-favor-exchange/internal/service"
	"go-favor-exchange/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// GET /api/notifications/user/:userId
func (h *NotificationHandler) ListUserNotifications(c *gin.Context) {
	userID, ok := parseUintParam(c, "userId")
	if !ok {
		return
	}

	notifications, err := h.notificationService.ListByUser(userID)
	if err != nil {
		logger.L.Error("Error listing notifications", zap.Error(err), zap.Uint("userID", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve notifications"})
		return
	}

	c.JSON(http.StatusOK, notifications)
}

type createNotificationBody struct {
	service.CreateNotificationRequest
	UserID uint `json:"user_id" binding:"required"`
}

// POST /api/notifications
func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	var body createNotificationBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	notification, err := h.notificationService.Notify(body.UserID, body.CreateNotificationRequest)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		logger.L.Error("Error creating notification", zap.Error(err), zap.Uint("userID", body.UserID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create notification"})
		return
	}

	c.JSON(http.StatusCreated, notification)
}

type updateNotificationBody struct {
	Status string `json:"status" binding:"required,oneof=read accepted rejected"`
}

// PATCH /api/notifications/:id
// 状态只能从unread向前转移
func (h *NotificationHandler) UpdateNotificationStatus(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var body updateNotificationBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	notification, err := h.notificationService.UpdateStatus(id, model.NotificationStatus(body.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotificationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		case errors.Is(err, service.ErrInvalidStatusChange):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.L.Error("Error updating notification status", zap.Error(err), zap.Uint("notificationID", id))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		}
		return
	}

	c.JSON(http.StatusOK, notification)
}
