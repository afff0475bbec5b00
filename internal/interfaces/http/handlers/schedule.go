// internal/interfaces/http/handlers/schedule.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/domain/schedule"
)

// ScheduleHandler handles store availability endpoints
type ScheduleHandler struct {
	scheduleService *schedule.Service
}

// NewScheduleHandler creates a new schedule handler
func NewScheduleHandler(scheduleService *schedule.Service) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// GetSchedule handles GET /schedule
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	s, err := h.scheduleService.GetSchedule(ownerID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve schedule",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Schedule retrieved successfully",
		"data":    s,
	})
}

// UpdateSchedule handles PUT /schedule
func (h *ScheduleHandler) UpdateSchedule(c *gin.Context) {
	var req schedule.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	s, err := h.scheduleService.UpdateSchedule(ownerID(c), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Schedule updated successfully",
		"data":    s,
	})
}

// CloseUntil handles POST /schedule/close-until
func (h *ScheduleHandler) CloseUntil(c *gin.Context) {
	var req struct {
		ReopenAt time.Time `json:"reopen_at" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Reopen time required",
		})
		return
	}

	s, err := h.scheduleService.CloseUntil(ownerID(c), req.ReopenAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Store closed until reopen time",
		"data":    s,
	})
}

// GetAvailability handles GET /schedule/availability and reports the
// merchant's current open state the same way the storefront sees it.
func (h *ScheduleHandler) GetAvailability(c *gin.Context) {
	status, err := h.scheduleService.Evaluate(ownerID(c), time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to evaluate availability",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Availability evaluated successfully",
		"data":    status,
	})
}
