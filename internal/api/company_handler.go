package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/magnatehq/magnate-server/internal/auth"
	"github.com/magnatehq/magnate-server/internal/models"
	"github.com/magnatehq/magnate-server/internal/repository"
	"github.com/magnatehq/magnate-server/internal/services"
)

// CompanyHandler handles company lifecycle operations
type CompanyHandler struct {
	companyService services.CompanyService
}

// NewCompanyHandler creates a new company handler with service injection
func NewCompanyHandler(companyService services.CompanyService) *CompanyHandler {
	return &CompanyHandler{
		companyService: companyService,
	}
}

// CreateCompany founds a new company owned by the authenticated player
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	playerID, ok := auth.PlayerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Player not authenticated"})
		return
	}

	var req models.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	company, err := h.companyService.Create(playerID, &req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Company created successfully",
		"company": company,
	})
}

// GetCompany returns a single company by id
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	company, err := h.companyService.GetByID(id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"company": company})
}

// GetMyCompanies returns the authenticated player's companies
func (h *CompanyHandler) GetMyCompanies(c *gin.Context) {
	playerID, ok := auth.PlayerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Player not authenticated"})
		return
	}

	companies, err := h.companyService.GetByOwner(playerID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"companies": companies,
		"count":     len(companies),
	})
}

// GetCompanies returns companies matching the query filters
func (h *CompanyHandler) GetCompanies(c *gin.Context) {
	filters := repository.CompanyFilters{
		Limit:  50,
		Offset: 0,
	}

	if v := c.Query("industry"); v != "" {
		filters.Industry = strings.Split(v, ",")
	}
	if v := c.Query("status"); v != "" {
		filters.Status = strings.Split(v, ",")
	}
	if v := c.Query("min_cash"); v != "" {
		minCash, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_cash parameter"})
			return
		}
		filters.MinCash = &minCash
	}
	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit parameter"})
			return
		}
		filters.Limit = limit
	}
	if v := c.Query("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid offset parameter"})
			return
		}
		filters.Offset = offset
	}

	companies, err := h.companyService.GetAll(filters)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"companies": companies,
		"count":     len(companies),
	})
}

// DeleteCompany removes a company the authenticated player owns
func (h *CompanyHandler) DeleteCompany(c *gin.Context) {
	playerID, ok := auth.PlayerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Player not authenticated"})
		return
	}

	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	company, err := h.companyService.GetByID(id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if company.OwnerID != playerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not own this company"})
		return
	}

	if err := h.companyService.Delete(id); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Company deleted successfully"})
}
