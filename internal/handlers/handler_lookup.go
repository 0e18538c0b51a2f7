package handlers

import (
	"net/http"

	"github.com/SscSPs/invoice_management_app/internal/core/domain"
	portssvc "github.com/SscSPs/invoice_management_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_management_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type lookupHandler struct {
	lookupService portssvc.LookupSvc
}

// RegisterLookupRoutes registers the reference data routes used by invoice forms.
func RegisterLookupRoutes(rg *gin.RouterGroup, lookupService portssvc.LookupSvc) {
	h := &lookupHandler{lookupService: lookupService}

	rg.GET("/entities", h.searchEntities)
	rg.GET("/catalog/:kind", h.listCatalog)
}

// searchEntities godoc
// @Summary Search customers or suppliers
// @Tags lookups
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   kind query string true "customer or supplier"
// @Param   q query string false "Name contains"
// @Param   limit query int false "Maximum results" default(20)
// @Success 200 {object} dto.EntitiesResponse
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Security BearerAuth
// @Router /tenants/{tenantID}/entities [get]
func (h *lookupHandler) searchEntities(c *gin.Context) {
	var params dto.SearchEntitiesParams
	if !bindQuery(c, &params) {
		return
	}
	entities, err := h.lookupService.SearchEntities(c.Request.Context(), c.Param("tenantID"), params)
	if err != nil {
		respondError(c, err, "search entities")
		return
	}
	if entities == nil {
		entities = []domain.EntityRef{}
	}
	c.JSON(http.StatusOK, dto.EntitiesResponse{Entities: entities})
}

// listCatalog godoc
// @Summary List a reference catalog
// @Tags lookups
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   kind path string true "category, store or unit"
// @Success 200 {object} dto.CatalogResponse
// @Failure 400 {object} ErrorResponse "Unknown catalog"
// @Security BearerAuth
// @Router /tenants/{tenantID}/catalog/{kind} [get]
func (h *lookupHandler) listCatalog(c *gin.Context) {
	kind := domain.CatalogKind(c.Param("kind"))
	entries, err := h.lookupService.ListCatalog(c.Request.Context(), c.Param("tenantID"), kind)
	if err != nil {
		respondError(c, err, "list catalog")
		return
	}
	if entries == nil {
		entries = []domain.CatalogEntry{}
	}
	c.JSON(http.StatusOK, dto.CatalogResponse{Kind: kind, Entries: entries})
}
