package api

import (
	"errors"
	"net/http"

	"go-favor-exchange/internal/service"
	"go-favor-exchange/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type FavorHandler struct {
	favorService  *service.FavorService
	ledgerService *service.LedgerService
}

func NewFavorHandler(favorService *service.FavorService, ledgerService *service.LedgerService) *FavorHandler {
	return &FavorHandler{
		favorService:  favorService,
		ledgerService: ledgerService,
	}
}

// GET /api/favors
// ?public=true 时排除请求者自己发布的favor
func (h *FavorHandler) ListFavors(c *gin.Context) {
	var err error
	var favors interface{}

	if c.Query("public") == "true" {
		userID, ok := getUserIDFromContext(c)
		if !ok {
			return
		}
		favors, err = h.favorService.ListPublic(userID)
	} else {
		favors, err = h.favorService.ListAll()
	}
	if err != nil {
		logger.L.Error("Error listing favors", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve favors"})
		return
	}

	c.JSON(http.StatusOK, favors)
}

// GET /api/favors/user/:userId
func (h *FavorHandler) ListUserFavors(c *gin.Context) {
	userID, ok := parseUintParam(c, "userId")
	if !ok {
		return
	}

	favors, err := h.favorService.ListByUser(userID)
	if err != nil {
		logger.L.Error("Error listing user favors", zap.Error(err), zap.Uint("userID", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve favors"})
		return
	}

	c.JSON(http.StatusOK, favors)
}

// POST /api/favors
// 通过积分账本发布: 扣减1积分，余额降到0时挂起其他active的favor
func (h *FavorHandler) CreateFavor(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	var req service.PublishFavorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	favor, err := h.ledgerService.Publish(userID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInsufficientCredits):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			logger.L.Error("Error publishing favor", zap.Error(err), zap.Uint("userID", userID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create favor"})
		}
		return
	}

	c.JSON(http.StatusCreated, favor)
}

// PATCH /api/favors/:id/accept
func (h *FavorHandler) AcceptFavor(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	favorID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	favor, err := h.favorService.Accept(favorID, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFavorNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Favor not found"})
		case errors.Is(err, service.ErrSelfAccept):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrFavorNotActive):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			logger.L.Error("Error accepting favor", zap.Error(err), zap.Uint("favorID", favorID), zap.Uint("userID", userID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accept favor"})
		}
		return
	}

	c.JSON(http.StatusOK, favor)
}

// PATCH /api/favors/:id/complete
// 完成favor并奖励发布者1积分
func (h *FavorHandler) CompleteFavor(c *gin.Context) {
	favorID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	favor, err := h.favorService.Complete(favorID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFavorNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Favor not found"})
		case errors.Is(err, service.ErrFavorNotAccepted):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.L.Error("Error completing favor", zap.Error(err), zap.Uint("favorID", favorID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete favor"})
		}
		return
	}

	c.JSON(http.StatusOK, favor)
}
