package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"stylegrid/internal/api/models"
	"stylegrid/internal/stylebox"
)

// StylesHandler exposes the canonical-label catalog for introspection.
type StylesHandler struct {
	catalog stylebox.Catalog
}

// NewStylesHandler creates a styles handler over the default catalog.
func NewStylesHandler() *StylesHandler {
	return &StylesHandler{catalog: stylebox.DefaultCatalog()}
}

// ListStyles handles GET /api/v1/styles.
func (h *StylesHandler) ListStyles(c *gin.Context) {
	styles := make([]models.StyleInfo, 0, len(h.catalog.Grid)+2)
	for _, m := range h.catalog.Grid {
		styles = append(styles, models.StyleInfo{
			Label:      m.Label,
			Candidates: m.Candidates,
		})
	}
	styles = append(styles, models.StyleInfo{
		Label:      stylebox.LabelMomentum,
		Candidates: h.catalog.MomentumAliases,
	})
	styles = append(styles, models.StyleInfo{
		Label:    stylebox.LabelMarket,
		Computed: fmt.Sprintf("%s + %s", h.catalog.ExcessMarketColumn, h.catalog.RiskFreeColumn),
	})

	c.JSON(http.StatusOK, gin.H{"styles": styles})
}
