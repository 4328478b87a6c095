package dashboard

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hallward-systems/secure-access/internal/auth"
)

type Handler struct {
	service *Service
	guard   *auth.Guard
	log     *zap.Logger
}

func NewHandler(service *Service, guard *auth.Guard, log *zap.Logger) *Handler {
	return &Handler{
		service: service,
		guard:   guard,
		log:     log,
	}
}

func (h *Handler) Stats(c *gin.Context) {
	if !h.authorize(c) {
		return
	}

	stats, err := h.service.Stats()
	if err != nil {
		h.log.Error("failed to aggregate dashboard stats", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service unavailable"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) RecentUsers(c *gin.Context) {
	if !h.authorize(c) {
		return
	}

	users, err := h.service.RecentUsers()
	if err != nil {
		h.log.Error("failed to list recent users", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *Handler) authorize(c *gin.Context) bool {
	_, err := h.guard.Authorize(auth.TokenFromContext(c), auth.CapViewDashboard)
	if errors.Is(err, auth.ErrForbidden) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return false
	}
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return false
	}
	return true
}
