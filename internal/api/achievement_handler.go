package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/magnatehq/magnate-server/internal/models"
	"github.com/magnatehq/magnate-server/internal/services"
)

// AchievementHandler handles research milestone operations
type AchievementHandler struct {
	achievementService services.AchievementService
}

// NewAchievementHandler creates a new achievement handler with service injection
func NewAchievementHandler(achievementService services.AchievementService) *AchievementHandler {
	return &AchievementHandler{
		achievementService: achievementService,
	}
}

// CreateMilestoneRequest carries a new milestone's definition
type CreateMilestoneRequest struct {
	Type          string  `json:"type" binding:"required"`
	Class         string  `json:"class" binding:"required,oneof=capability alignment"`
	Complexity    float64 `json:"complexity" binding:"required,gte=1,lte=10"`
	CapabilityGap float64 `json:"capability_gap" binding:"gte=0"`
	BaseRatePct   float64 `json:"base_rate_pct" binding:"required,gt=0,lte=100"`
}

// CreateMilestone registers a milestone for a company
func (h *AchievementHandler) CreateMilestone(c *gin.Context) {
	companyID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req CreateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	m := &models.Milestone{
		Type:          req.Type,
		Class:         req.Class,
		Complexity:    req.Complexity,
		CapabilityGap: req.CapabilityGap,
		BaseRatePct:   req.BaseRatePct,
	}
	if err := h.achievementService.CreateMilestone(companyID, m); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Milestone created successfully",
		"milestone": m,
	})
}

// GetMilestones returns a company's milestones
func (h *AchievementHandler) GetMilestones(c *gin.Context) {
	companyID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	milestones, err := h.achievementService.GetMilestones(companyID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"milestones": milestones,
		"count":      len(milestones),
	})
}

// GetProbability previews a milestone's current success odds without rolling
func (h *AchievementHandler) GetProbability(c *gin.Context) {
	milestoneID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	breakdown, err := h.achievementService.Probability(milestoneID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"breakdown": breakdown})
}

// AttemptMilestone rolls a milestone attempt and applies its consequences
func (h *AchievementHandler) AttemptMilestone(c *gin.Context) {
	milestoneID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	result, err := h.achievementService.AttemptMilestone(milestoneID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}
