package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Company represents a player-controlled company
type Company struct {
	ID             uuid.UUID `json:"id" db:"id"`
	OwnerID        uuid.UUID `json:"owner_id" db:"owner_id"`
	Name           string    `json:"name" db:"name"`
	Industry       string    `json:"industry" db:"industry"`
	Cash           float64   `json:"cash" db:"cash"`
	MonthlyRevenue float64   `json:"monthly_revenue" db:"monthly_revenue"`
	TotalDebt      float64   `json:"total_debt" db:"total_debt"`
	Equity         float64   `json:"equity" db:"equity"`
	ResearchPoints float64   `json:"research_points" db:"research_points"`
	Reputation     float64   `json:"reputation" db:"reputation"`
	Capabilities   Profile   `json:"capabilities" db:"capabilities"`
	Alignment      Profile   `json:"alignment" db:"alignment"`
	Status         string    `json:"status" db:"status"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// CompanyStatus represents company lifecycle states
type CompanyStatus string

const (
	CompanyActive    CompanyStatus = "active"
	CompanyBankrupt  CompanyStatus = "bankrupt"
	CompanySuspended CompanyStatus = "suspended"
)

// IsActive returns true if the company can transact
func (c *Company) IsActive() bool {
	return c.Status == string(CompanyActive)
}

// DebtToEquity returns the company's leverage ratio. Zero equity reports
// maximal leverage rather than dividing.
func (c *Company) DebtToEquity() float64 {
	if c.Equity <= 0 {
		if c.TotalDebt > 0 {
			return 999
		}
		return 0
	}
	return c.TotalDebt / c.Equity
}

// Profile stores a named score map (capability or alignment dimensions) as a
// JSON column. Scores live on [0,100].
type Profile map[string]float64

// Average returns the mean across all dimensions, 0 for an empty profile.
func (p Profile) Average() float64 {
	if len(p) == 0 {
		return 0
	}
	total := 0.0
	for _, v := range p {
		total += v
	}
	return total / float64(len(p))
}

// Apply adds the given deltas, clamping each dimension to [0,100].
func (p Profile) Apply(deltas map[string]float64) {
	for dim, delta := range deltas {
		next := p[dim] + delta
		if next < 0 {
			next = 0
		}
		if next > 100 {
			next = 100
		}
		p[dim] = next
	}
}

// Value implements driver.Valuer for Profile
func (p Profile) Value() (driver.Value, error) {
	if p == nil {
		return json.Marshal(Profile{})
	}
	return json.Marshal(p)
}

// Scan implements sql.Scanner for Profile
func (p *Profile) Scan(value interface{}) error {
	if value == nil {
		*p = Profile{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into Profile", value)
	}

	return json.Unmarshal(bytes, p)
}

// CreateCompanyRequest represents a company creation request
type CreateCompanyRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=80"`
	Industry string `json:"industry" binding:"required"`
}

// Milestone represents an achievement a company can attempt
type Milestone struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	CompanyID      uuid.UUID  `json:"company_id" db:"company_id"`
	Type           string     `json:"type" db:"type"`
	Class          string     `json:"class" db:"class"`
	Complexity     float64    `json:"complexity" db:"complexity"`
	CapabilityGap  float64    `json:"capability_gap" db:"capability_gap"`
	BaseRatePct    float64    `json:"base_rate_pct" db:"base_rate_pct"`
	FailedAttempts int        `json:"failed_attempts" db:"failed_attempts"`
	Achieved       bool       `json:"achieved" db:"achieved"`
	AchievedAt     *time.Time `json:"achieved_at,omitempty" db:"achieved_at"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
}

// AttemptMilestoneRequest represents a milestone attempt submission
type AttemptMilestoneRequest struct {
	MilestoneID string `json:"milestone_id" binding:"required,uuid"`
}
