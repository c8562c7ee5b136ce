package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/suppstack/suppstack-backend/internal/logger"
	"github.com/suppstack/suppstack-backend/internal/requestdata"
	"github.com/suppstack/suppstack-backend/internal/services"
)

type RecommendationHandler struct {
	log    *logger.Logger
	recSvc services.RecommendationService
}

func NewRecommendationHandler(log *logger.Logger, recSvc services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		log:    log.With("handler", "RecommendationHandler"),
		recSvc: recSvc,
	}
}

// GET /api/recommendations?match=all|any
// Ranked, enriched shortlist for the caller's profile. match=all requires
// items to cover every selected objective group; the service falls back to
// any-match when that leaves nothing.
func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())

	matchAll := c.DefaultQuery("match", "all") != "any"
	list, err := h.recSvc.Recommend(c.Request.Context(), userID, matchAll)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, list)
}

type materializeRequest struct {
	ItemID     uuid.UUID `json:"item_id" binding:"required"`
	Anchors    []string  `json:"anchors"`
	Frequency  string    `json:"frequency"`
	DaysOfWeek []int     `json:"days_of_week"`
	Dose       string    `json:"dose"`
}

// POST /api/planning
// "Add to planning": persist the rule for (user, item) and generate its
// events over the rolling horizon. Responds 201 even when generation
// failed — the rule survives and the payload carries generation_error.
func (h *RecommendationHandler) MaterializeRule(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())

	var req materializeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation", err)
		return
	}

	outcome, err := h.recSvc.MaterializeRule(c.Request.Context(), userID, req.ItemID, req.Anchors, req.Frequency, req.DaysOfWeek, req.Dose)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, outcome)
}
