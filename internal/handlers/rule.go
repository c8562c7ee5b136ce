package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/suppstack/suppstack-backend/internal/logger"
	"github.com/suppstack/suppstack-backend/internal/requestdata"
	"github.com/suppstack/suppstack-backend/internal/repos"
)

type RuleHandler struct {
	log      *logger.Logger
	ruleRepo repos.RuleRepo
}

func NewRuleHandler(log *logger.Logger, ruleRepo repos.RuleRepo) *RuleHandler {
	return &RuleHandler{
		log:      log.With("handler", "RuleHandler"),
		ruleRepo: ruleRepo,
	}
}

// GET /api/rules
func (h *RuleHandler) ListRules(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())

	rules, err := h.ruleRepo.ListByUser(c.Request.Context(), nil, userID)
	if err != nil {
		RespondError(c, http.StatusBadGateway, "upstream", err)
		return
	}
	RespondOK(c, gin.H{"rules": rules})
}

// DELETE /api/rules/:id
// Removes the standing rule; its generated events go with it through the
// store's cascade.
func (h *RuleHandler) DeleteRule(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())

	ruleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "validation", err)
		return
	}
	if err := h.ruleRepo.Delete(c.Request.Context(), nil, userID, ruleID); err != nil {
		RespondError(c, http.StatusBadGateway, "upstream", err)
		return
	}
	RespondOK(c, gin.H{"status": "deleted"})
}
