package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ComputeContract represents a compute capacity rental between two companies
type ComputeContract struct {
	ID               uuid.UUID `json:"id" db:"id"`
	SellerID         uuid.UUID `json:"seller_id" db:"seller_id"`
	BuyerID          uuid.UUID `json:"buyer_id" db:"buyer_id"`
	Capacity         float64   `json:"capacity" db:"capacity"`
	DurationHours    float64   `json:"duration_hours" db:"duration_hours"`
	SLATier          string    `json:"sla_tier" db:"sla_tier"`
	TotalPrice       float64   `json:"total_price" db:"total_price"`
	PerformanceScore float64   `json:"performance_score" db:"performance_score"`
	ReleasedAmount   float64   `json:"released_amount" db:"released_amount"`
	Status           string    `json:"status" db:"status"`
	StartedAt        time.Time `json:"started_at" db:"started_at"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// ContractStatus represents compute contract lifecycle states
type ContractStatus string

const (
	ContractActive    ContractStatus = "active"
	ContractCompleted ContractStatus = "completed"
	ContractBreached  ContractStatus = "breached"
	ContractCancelled ContractStatus = "cancelled"
)

// CreateContractRequest represents a compute rental request
type CreateContractRequest struct {
	SellerID      string  `json:"seller_id" binding:"required,uuid"`
	Capacity      float64 `json:"capacity" binding:"required,gt=0"`
	DurationHours float64 `json:"duration_hours" binding:"required,gt=0"`
	SLATier       string  `json:"sla_tier" binding:"required,oneof=Bronze Silver Gold Platinum"`
}

// ReportBreachRequest represents an SLA breach claim against a contract
type ReportBreachRequest struct {
	ViolationType    string  `json:"violation_type" binding:"required,oneof=Minor Moderate Severe Critical"`
	BreachPercentage float64 `json:"breach_percentage" binding:"required,gt=0"`
}

// Benchmarks stores a model listing's published evaluation numbers as JSON
type Benchmarks struct {
	Accuracy  float64 `json:"accuracy"`
	LatencyMs float64 `json:"latency_ms"`
}

// Value implements driver.Valuer for Benchmarks
func (b Benchmarks) Value() (driver.Value, error) {
	return json.Marshal(b)
}

// Scan implements sql.Scanner for Benchmarks
func (b *Benchmarks) Scan(value interface{}) error {
	if value == nil {
		*b = Benchmarks{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into Benchmarks", value)
	}

	return json.Unmarshal(bytes, b)
}

// ModelListing represents a trained model offered for sale
type ModelListing struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	SellerID      uuid.UUID  `json:"seller_id" db:"seller_id"`
	Name          string     `json:"name" db:"name"`
	Architecture  string     `json:"architecture" db:"architecture"`
	Size          string     `json:"size" db:"size"`
	Parameters    float64    `json:"parameters" db:"parameters"`
	Benchmarks    Benchmarks `json:"benchmarks" db:"benchmarks"`
	PerpetualUSD  float64    `json:"perpetual_usd" db:"perpetual_usd"`
	MonthlyUSD    float64    `json:"monthly_usd" db:"monthly_usd"`
	PerAPICallUSD float64    `json:"per_api_call_usd" db:"per_api_call_usd"`
	SalesCount    int        `json:"sales_count" db:"sales_count"`
	Status        string     `json:"status" db:"status"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

// ListingStatus represents model listing lifecycle states
type ListingStatus string

const (
	ListingActive   ListingStatus = "active"
	ListingDelisted ListingStatus = "delisted"
)

// CreateListingRequest represents a model listing submission
type CreateListingRequest struct {
	Name         string  `json:"name" binding:"required,min=2,max=120"`
	Architecture string  `json:"architecture" binding:"required"`
	Size         string  `json:"size" binding:"omitempty,oneof=Small Medium Large"`
	Parameters   float64 `json:"parameters" binding:"gte=0"`
	Accuracy     float64 `json:"accuracy" binding:"gte=0,lte=100"`
	LatencyMs    float64 `json:"latency_ms" binding:"gte=0"`
}
