package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/suppstack/suppstack-backend/internal/logger"
	"github.com/suppstack/suppstack-backend/internal/services"
)

type CatalogHandler struct {
	log        *logger.Logger
	catalogSvc services.CatalogService
}

func NewCatalogHandler(log *logger.Logger, catalogSvc services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		log:        log.With("handler", "CatalogHandler"),
		catalogSvc: catalogSvc,
	}
}

// GET /api/catalog
func (h *CatalogHandler) ListItems(c *gin.Context) {
	items, err := h.catalogSvc.ListItems(c.Request.Context())
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"items": items})
}
