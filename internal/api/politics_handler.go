package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/magnatehq/magnate-server/internal/engine/politics"
	"github.com/magnatehq/magnate-server/internal/services"
)

// PoliticsHandler handles election, legislation, and campaign operations
type PoliticsHandler struct {
	politicsService services.PoliticsService
}

// NewPoliticsHandler creates a new politics handler with service injection
func NewPoliticsHandler(politicsService services.PoliticsService) *PoliticsHandler {
	return &PoliticsHandler{
		politicsService: politicsService,
	}
}

// CreateElectionRequest carries a new race's parameters
type CreateElectionRequest struct {
	Office           string `json:"office" binding:"required,min=2,max=80"`
	RegisteredVoters int    `json:"registered_voters" binding:"required,gt=0"`
}

// CreateElection opens a new race
func (h *PoliticsHandler) CreateElection(c *gin.Context) {
	var req CreateElectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	election, err := h.politicsService.CreateElection(req.Office, req.RegisteredVoters)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Election created successfully",
		"election": election,
	})
}

// AddCandidateRequest enters a company's candidate into a race
type AddCandidateRequest struct {
	CompanyID string `json:"company_id" binding:"required,uuid"`
	Name      string `json:"name" binding:"required,min=2,max=80"`
}

// AddCandidate enters a candidate into an open race
func (h *PoliticsHandler) AddCandidate(c *gin.Context) {
	electionID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req AddCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company_id"})
		return
	}

	candidate, err := h.politicsService.AddCandidate(electionID, companyID, req.Name)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Candidate added successfully",
		"candidate": candidate,
	})
}

// CastVotesRequest adds votes to a candidate's total
type CastVotesRequest struct {
	Votes int `json:"votes" binding:"required,gt=0"`
}

// CastVotes records votes for a candidate in an open race
func (h *PoliticsHandler) CastVotes(c *gin.Context) {
	candidateID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req CastVotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	candidate, err := h.politicsService.CastVotes(candidateID, req.Votes)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"candidate": candidate})
}

// DecideElection closes a race and reports the results. A race nobody voted
// in comes back voided with no results.
func (h *PoliticsHandler) DecideElection(c *gin.Context) {
	electionID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	results, err := h.politicsService.DecideElection(electionID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	if results == nil {
		c.JSON(http.StatusOK, gin.H{
			"message": "Election voided: no votes were cast",
			"results": nil,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

// CreateBillRequest registers a bill for a floor vote
type CreateBillRequest struct {
	Title string `json:"title" binding:"required,min=2,max=200"`
}

// CreateBill registers a bill
func (h *PoliticsHandler) CreateBill(c *gin.Context) {
	var req CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	bill, err := h.politicsService.CreateBill(req.Title)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Bill created successfully",
		"bill":    bill,
	})
}

// RecordBillVotes stores a bill's floor vote tally
func (h *PoliticsHandler) RecordBillVotes(c *gin.Context) {
	billID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var tally politics.VoteTally
	if err := c.ShouldBindJSON(&tally); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	bill, err := h.politicsService.RecordBillVotes(billID, tally)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bill": bill})
}

// GetBillSupport reports the yea share of a bill's cast votes
func (h *PoliticsHandler) GetBillSupport(c *gin.Context) {
	billID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	support, err := h.politicsService.BillSupport(billID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"support_pct": support})
}

// DonateRequest carries a campaign contribution
type DonateRequest struct {
	CompanyID    string  `json:"company_id" binding:"required,uuid"`
	Amount       float64 `json:"amount" binding:"required,gt=0"`
	Recurring    bool    `json:"recurring"`
	MatchingGift bool    `json:"matching_gift"`
}

// Donate records a donation to a candidate's campaign
func (h *PoliticsHandler) Donate(c *gin.Context) {
	candidateID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req DonateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company_id"})
		return
	}

	donation, err := h.politicsService.Donate(candidateID, companyID, req.Amount, req.Recurring, req.MatchingGift)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Donation recorded",
		"donation": donation,
	})
}

// GetDonorImpact ranks one donation against the candidate's donor book
func (h *PoliticsHandler) GetDonorImpact(c *gin.Context) {
	candidateID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	donationID, ok := uuidParam(c, "donation_id")
	if !ok {
		return
	}

	impact, err := h.politicsService.DonorImpact(candidateID, donationID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"impact": impact})
}

// GetDistrictInfluence grades a candidate's hold on a district
func (h *PoliticsHandler) GetDistrictInfluence(c *gin.Context) {
	var profile politics.DistrictProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"influence": h.politicsService.DistrictInfluence(profile),
	})
}

// OutreachRequest carries one voter-contact campaign's figures
type OutreachRequest struct {
	Contacted         int     `json:"contacted" binding:"gte=0"`
	Converted         int     `json:"converted" binding:"gte=0"`
	Spend             float64 `json:"spend" binding:"gte=0"`
	VotersGainedValue float64 `json:"voters_gained_value" binding:"gte=0"`
}

// GetOutreachEffectiveness grades a voter-contact campaign
func (h *PoliticsHandler) GetOutreachEffectiveness(c *gin.Context) {
	var req OutreachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	result := h.politicsService.OutreachEffectiveness(req.Contacted, req.Converted, req.Spend, req.VotersGainedValue)
	c.JSON(http.StatusOK, gin.H{"outreach": result})
}

// GetCampaignPerformance blends a cycle's aggregate figures into a grade
func (h *PoliticsHandler) GetCampaignPerformance(c *gin.Context) {
	var in politics.CampaignInputs
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"performance": h.politicsService.CampaignPerformance(in),
	})
}
