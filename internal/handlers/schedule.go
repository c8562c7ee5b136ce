package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/suppstack/suppstack-backend/internal/apierr"
	"github.com/suppstack/suppstack-backend/internal/logger"
	"github.com/suppstack/suppstack-backend/internal/planner"
	"github.com/suppstack/suppstack-backend/internal/requestdata"
	"github.com/suppstack/suppstack-backend/internal/services"
)

type ScheduleHandler struct {
	log         *logger.Logger
	scheduleSvc services.ScheduleService
}

func NewScheduleHandler(log *logger.Logger, scheduleSvc services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{
		log:         log.With("handler", "ScheduleHandler"),
		scheduleSvc: scheduleSvc,
	}
}

// GET /api/schedule?from=2026-09-01&to=2026-09-15
// Planned events in [from, to), ascending. Defaults to the rolling horizon.
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())

	from, to, err := parseRange(c.Query("from"), c.Query("to"))
	if err != nil {
		RespondAppError(c, err)
		return
	}

	events, err := h.scheduleSvc.GetSchedule(c.Request.Context(), userID, from, to)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"events": events, "from": from, "to": to})
}

// POST /api/schedule/regenerate
// Manual resync of the caller's rolling horizon.
func (h *ScheduleHandler) Regenerate(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())

	n, err := h.scheduleSvc.RegenerateUser(c.Request.Context(), userID)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"events_planned": n})
}

// POST /api/schedule/:id/taken
func (h *ScheduleHandler) MarkTaken(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())

	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "validation", err)
		return
	}
	if err := h.scheduleSvc.MarkTaken(c.Request.Context(), userID, eventID); err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": "taken"})
}

type snoozeRequest struct {
	Minutes int `json:"minutes" binding:"required"`
}

// POST /api/schedule/:id/snooze
func (h *ScheduleHandler) Snooze(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())

	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "validation", err)
		return
	}
	var req snoozeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation", err)
		return
	}
	if err := h.scheduleSvc.Snooze(c.Request.Context(), userID, eventID, req.Minutes); err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": "snoozed", "minutes": req.Minutes})
}

func parseRange(fromRaw, toRaw string) (time.Time, time.Time, error) {
	if fromRaw == "" && toRaw == "" {
		from, to := planner.HorizonFrom(time.Now(), planner.DefaultHorizonDays)
		return from, to, nil
	}
	from, err := time.Parse("2006-01-02", fromRaw)
	if err != nil {
		return time.Time{}, time.Time{}, apierr.Validation("invalid from date %q", fromRaw)
	}
	to, err := time.Parse("2006-01-02", toRaw)
	if err != nil {
		return time.Time{}, time.Time{}, apierr.Validation("invalid to date %q", toRaw)
	}
	if !to.After(from) {
		return time.Time{}, time.Time{}, apierr.Validation("to must be after from")
	}
	return from, to, nil
}
