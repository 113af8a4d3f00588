package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/magnatehq/magnate-server/internal/engine/medical"
	"github.com/magnatehq/magnate-server/internal/models"
	"github.com/magnatehq/magnate-server/internal/services"
)

// ComplianceHandler handles emissions reporting and drug-program operations
type ComplianceHandler struct {
	complianceService services.ComplianceService
}

// NewComplianceHandler creates a new compliance handler with service injection
func NewComplianceHandler(complianceService services.ComplianceService) *ComplianceHandler {
	return &ComplianceHandler{
		complianceService: complianceService,
	}
}

// RegisterAsset registers an emitting facility for a company
func (h *ComplianceHandler) RegisterAsset(c *gin.Context) {
	companyID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req models.RegisterAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	asset, err := h.complianceService.RegisterAsset(companyID, &req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Asset registered successfully",
		"asset":   asset,
	})
}

// GetAssets returns a company's registered emitting assets
func (h *ComplianceHandler) GetAssets(c *gin.Context) {
	companyID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	assets, err := h.complianceService.GetAssets(companyID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"assets": assets,
		"count":  len(assets),
	})
}

// RemoveAsset removes a registered asset
func (h *ComplianceHandler) RemoveAsset(c *gin.Context) {
	assetID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.complianceService.RemoveAsset(assetID); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Asset removed"})
}

// GetEmissionsInventory rolls a company's assets into a scoped inventory
func (h *ComplianceHandler) GetEmissionsInventory(c *gin.Context) {
	companyID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	inventory, err := h.complianceService.EmissionsInventory(companyID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"inventory": inventory})
}

// TrialOutlookRequest identifies a drug program
type TrialOutlookRequest struct {
	Area  string `json:"area" binding:"required"`
	Phase string `json:"phase" binding:"required,oneof=preclinical phase1 phase2 phase3 approval"`
}

// GetTrialOutlook reports a drug program's timeline, odds, and risk
func (h *ComplianceHandler) GetTrialOutlook(c *gin.Context) {
	var req TrialOutlookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	outlook := h.complianceService.TrialOutlook(req.Area, medical.TrialPhase(req.Phase))
	c.JSON(http.StatusOK, gin.H{"outlook": outlook})
}

// PatentValuationRequest carries a patent portfolio to price
type PatentValuationRequest struct {
	Portfolio []medical.Patent `json:"portfolio" binding:"required"`
}

// GetPatentValuation prices a patent portfolio
func (h *ComplianceHandler) GetPatentValuation(c *gin.Context) {
	var req PatentValuationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valuation": h.complianceService.PatentValuation(req.Portfolio),
	})
}
