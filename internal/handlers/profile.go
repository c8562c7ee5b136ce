package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/suppstack/suppstack-backend/internal/logger"
	"github.com/suppstack/suppstack-backend/internal/requestdata"
	"github.com/suppstack/suppstack-backend/internal/services"
	"github.com/suppstack/suppstack-backend/internal/types"
)

type ProfileHandler struct {
	log        *logger.Logger
	profileSvc services.ProfileService
}

func NewProfileHandler(log *logger.Logger, profileSvc services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		log:        log.With("handler", "ProfileHandler"),
		profileSvc: profileSvc,
	}
}

// GET /api/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())

	profile, err := h.profileSvc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, profile)
}

// PUT /api/profile
func (h *ProfileHandler) SaveProfile(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())

	var profile types.UserProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		RespondError(c, http.StatusBadRequest, "validation", err)
		return
	}
	profile.UserID = userID
	if err := h.profileSvc.SaveProfile(c.Request.Context(), &profile); err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, profile)
}

// GET /api/training-slots
func (h *ProfileHandler) GetTrainingSlots(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())

	slots, err := h.profileSvc.GetTrainingSlots(c.Request.Context(), userID)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"slots": slots})
}

type saveSlotsRequest struct {
	Slots []types.TrainingSlot `json:"slots"`
}

// PUT /api/training-slots
// Replaces the whole weekly calendar.
func (h *ProfileHandler) SaveTrainingSlots(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())

	var req saveSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation", err)
		return
	}
	if err := h.profileSvc.SaveTrainingSlots(c.Request.Context(), userID, req.Slots); err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"saved": len(req.Slots)})
}
