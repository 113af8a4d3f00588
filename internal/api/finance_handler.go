package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/magnatehq/magnate-server/internal/models"
	"github.com/magnatehq/magnate-server/internal/services"
)

// FinanceHandler handles credit, loan, and investment operations
type FinanceHandler struct {
	financeService services.FinanceService
}

// NewFinanceHandler creates a new finance handler with service injection
func NewFinanceHandler(financeService services.FinanceService) *FinanceHandler {
	return &FinanceHandler{
		financeService: financeService,
	}
}

// GetCreditScore returns a company's score and its factor breakdown
func (h *FinanceHandler) GetCreditScore(c *gin.Context) {
	companyID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	score, breakdown, err := h.financeService.CreditScore(companyID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"score":     score,
		"breakdown": breakdown,
	})
}

// ApplyForLoan underwrites a loan application. A rejection is a 200 with the
// decision body, not an error.
func (h *FinanceHandler) ApplyForLoan(c *gin.Context) {
	companyID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req models.LoanApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	decision, loan, err := h.financeService.ApplyForLoan(companyID, &req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	if !decision.Approved {
		c.JSON(http.StatusOK, gin.H{"decision": decision})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"decision": decision,
		"loan":     loan,
	})
}

// GetLoans returns a company's loan book
func (h *FinanceHandler) GetLoans(c *gin.Context) {
	companyID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	loans, err := h.financeService.GetLoans(companyID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"loans": loans,
		"count": len(loans),
	})
}

// MakeLoanPayment applies one scheduled payment to a loan
func (h *FinanceHandler) MakeLoanPayment(c *gin.Context) {
	loanID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	loan, err := h.financeService.MakeLoanPayment(loanID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment applied",
		"loan":    loan,
	})
}

// GetAmortizationSchedule returns a loan's full payment schedule
func (h *FinanceHandler) GetAmortizationSchedule(c *gin.Context) {
	loanID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	schedule, err := h.financeService.AmortizationSchedule(loanID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"schedule": schedule,
		"count":    len(schedule),
	})
}

// CreateInvestment opens an investment position for a company
func (h *FinanceHandler) CreateInvestment(c *gin.Context) {
	companyID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req models.CreateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	investment, err := h.financeService.CreateInvestment(companyID, &req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Investment created successfully",
		"investment": investment,
	})
}

// GetPortfolio returns a company's revalued investment positions
func (h *FinanceHandler) GetPortfolio(c *gin.Context) {
	companyID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	investments, total, err := h.financeService.GetPortfolio(companyID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"investments": investments,
		"total_value": total,
		"count":       len(investments),
	})
}

// LiquidateInvestment sells an investment position at its current value
func (h *FinanceHandler) LiquidateInvestment(c *gin.Context) {
	investmentID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	investment, err := h.financeService.LiquidateInvestment(investmentID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Investment liquidated",
		"investment": investment,
	})
}
