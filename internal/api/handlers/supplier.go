package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"steel-procurement/internal/api/models"
	"steel-procurement/internal/config"
	"steel-procurement/internal/supplier"
)

// SupplierHandler prices the manufacturer catalog at a project site.
type SupplierHandler struct {
	catalog       *supplier.Catalog
	cfg           config.SuppliersConfig
	defaultDemand float64
}

func NewSupplierHandler(catalog *supplier.Catalog, cfg config.SuppliersConfig, defaultDemand float64) *SupplierHandler {
	return &SupplierHandler{catalog: catalog, cfg: cfg, defaultDemand: defaultDemand}
}

// ListManufacturers handles GET /api/v1/suppliers
func (h *SupplierHandler) ListManufacturers(c *gin.Context) {
	c.JSON(http.StatusOK, models.ManufacturersResponse{Manufacturers: h.catalog.Manufacturers()})
}

// LandedCosts handles POST /api/v1/suppliers/landed-cost
func (h *SupplierHandler) LandedCosts(c *gin.Context) {
	var req models.SiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	site, offers, err := h.offers(req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewLandedCostResponse(site, offers))
}

// Menu handles POST /api/v1/suppliers/menu
func (h *SupplierHandler) Menu(c *gin.Context) {
	var req models.SupplierMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	site, offers, err := h.offers(req.SiteRequest)
	if err != nil {
		writeError(c, err)
		return
	}

	menuReq := supplier.MenuRequest{
		DemandTons:   h.defaultDemand,
		BudgetUSD:    req.BudgetUSD,
		MaxSuppliers: h.cfg.DefaultMaxSuppliers,
		Points:       h.cfg.DefaultMenuPoints,
	}
	if req.DemandTons != nil {
		menuReq.DemandTons = *req.DemandTons
	}
	if req.MaxSuppliers != nil {
		menuReq.MaxSuppliers = *req.MaxSuppliers
	}
	if req.Points != nil {
		menuReq.Points = *req.Points
	}

	plans, err := supplier.Menu(offers, menuReq)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewSupplierMenuResponse(site, menuReq, plans))
}

func (h *SupplierHandler) offers(req models.SiteRequest) (supplier.Coord, []supplier.Offer, error) {
	site, err := supplier.ResolveSite(req.City, req.State, req.Latitude, req.Longitude)
	if err != nil {
		return supplier.Coord{}, nil, err
	}
	offers, err := h.catalog.LandedCosts(site)
	if err != nil {
		return supplier.Coord{}, nil, err
	}
	return site, offers, nil
}
