// internal/handlers/catalog/catalog_handler.go
package catalog

import (
	"context"
	"net/http"

	catalogdom "almatiq-service/internal/domain/catalog"
	"almatiq-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Refresher exposes the catalog snapshot and its rebuild trigger.
type Refresher interface {
	Services() []catalogdom.Variation
	Refresh(ctx context.Context) error
}

type CatalogHandler struct {
	refresher Refresher
}

func NewCatalogHandler(refresher Refresher) *CatalogHandler {
	return &CatalogHandler{refresher: refresher}
}

// ListServices returns the sorted selection list for the booking form.
func (h *CatalogHandler) ListServices(c *gin.Context) {
	response.Success(c, http.StatusOK, "services retrieved", h.refresher.Services())
}

// RefreshCatalog rebuilds the catalog snapshot on demand.
func (h *CatalogHandler) RefreshCatalog(c *gin.Context) {
	if err := h.refresher.Refresh(c.Request.Context()); err != nil {
		response.UpstreamError(c, "catalog refresh failed", err)
		return
	}
	response.Success(c, http.StatusOK, "catalog refreshed", nil)
}
