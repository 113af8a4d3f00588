package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/magnatehq/magnate-server/internal/models"
	"github.com/magnatehq/magnate-server/internal/services"
)

// MarketHandler handles compute rental and model marketplace operations
type MarketHandler struct {
	marketService services.MarketService
}

// NewMarketHandler creates a new market handler with service injection
func NewMarketHandler(marketService services.MarketService) *MarketHandler {
	return &MarketHandler{
		marketService: marketService,
	}
}

// QuoteRequest carries the inputs for a compute pricing quote
type QuoteRequest struct {
	SellerID      string  `json:"seller_id" binding:"required,uuid"`
	Capacity      float64 `json:"capacity" binding:"required,gt=0"`
	DurationHours float64 `json:"duration_hours" binding:"required,gt=0"`
	SLATier       string  `json:"sla_tier" binding:"required,oneof=Bronze Silver Gold Platinum"`
}

// QuoteCompute prices a compute rental without creating a contract
func (h *MarketHandler) QuoteCompute(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	sellerID, err := uuid.Parse(req.SellerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid seller_id"})
		return
	}

	quote, err := h.marketService.QuoteCompute(sellerID, req.Capacity, req.DurationHours, req.SLATier)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"quote": quote})
}

// CreateContract opens a compute rental, escrowing the full price
func (h *MarketHandler) CreateContract(c *gin.Context) {
	buyerID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req models.CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	contract, err := h.marketService.CreateContract(buyerID, &req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Contract created successfully",
		"contract": contract,
	})
}

// PerformanceRequest carries a delivered-performance observation
type PerformanceRequest struct {
	Score float64 `json:"score" binding:"gte=0,lte=100"`
}

// RecordPerformance updates a contract's delivered performance score
func (h *MarketHandler) RecordPerformance(c *gin.Context) {
	contractID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req PerformanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	contract, err := h.marketService.RecordPerformance(contractID, req.Score)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"contract": contract})
}

// ReportBreach files an SLA breach claim and settles the refund
func (h *MarketHandler) ReportBreach(c *gin.Context) {
	contractID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req models.ReportBreachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	refund, err := h.marketService.ReportBreach(contractID, &req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Breach recorded and refund settled",
		"refund":  refund,
	})
}

// ReleaseEscrow pays out any escrow tranches the contract has earned
func (h *MarketHandler) ReleaseEscrow(c *gin.Context) {
	contractID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	status, err := h.marketService.ReleaseEscrow(contractID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"escrow": status})
}

// CreateListing publishes a model for sale at engine-derived prices
func (h *MarketHandler) CreateListing(c *gin.Context) {
	sellerID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req models.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	listing, err := h.marketService.CreateListing(sellerID, &req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Listing created successfully",
		"listing": listing,
	})
}

// GetListings returns active model listings, paginated
func (h *MarketHandler) GetListings(c *gin.Context) {
	limit := 50
	offset := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit parameter"})
			return
		}
		limit = n
	}
	if v := c.Query("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid offset parameter"})
			return
		}
		offset = n
	}

	listings, err := h.marketService.GetListings(limit, offset)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"listings": listings,
		"count":    len(listings),
	})
}

// RecordSale books one sale against a listing and reprices it
func (h *MarketHandler) RecordSale(c *gin.Context) {
	listingID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	listing, err := h.marketService.RecordSale(listingID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Sale recorded",
		"listing": listing,
	})
}

// GetSellerStanding returns a seller's reputation and market position
func (h *MarketHandler) GetSellerStanding(c *gin.Context) {
	sellerID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	standing, err := h.marketService.SellerStanding(sellerID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"standing": standing})
}
