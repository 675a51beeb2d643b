package handlers

import (
	"net/http"
	"strings"

	"SiteWatch/internal/notify"
	"SiteWatch/pkg/validator"

	"github.com/gin-gonic/gin"
)

// CheckAllSites запускает полный цикл проверки
func (h *Handlers) CheckAllSites(c *gin.Context) {
	if err := h.runner.RunAll(c.Request.Context()); err != nil {
		h.logger.Error("manual check cycle failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Check cycle failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// CheckSiteNow проверяет один сайт по запросу
func (h *Handlers) CheckSiteNow(c *gin.Context) {
	var req struct {
		URL string `json:"url" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "URL is required",
		})
		return
	}

	result := h.runner.RunOne(c.Request.Context(), strings.TrimSpace(req.URL))

	code := http.StatusOK
	if !result.Success {
		code = http.StatusNotFound
	}
	c.JSON(code, result)
}

// NotifySiteAdded пробрасывает уведомление от UI
func (h *Handlers) NotifySiteAdded(c *gin.Context) {
	var req struct {
		Hostname string `json:"hostname" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse("invalid_request", "Hostname is required"))
		return
	}

	hostname := validator.Hostname(req.Hostname)
	if hostname == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse("invalid_hostname", "Hostname is empty"))
		return
	}

	if err := h.notifier.Notify(c.Request.Context(), notify.SiteAdded(hostname)); err != nil {
		h.logger.Error("failed to send site-added notification", "hostname", hostname, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse("notify_failed", "Failed to send notification"))
		return
	}

	c.JSON(http.StatusOK, SuccessResponse("notification_sent", nil))
}
