package models

import (
	"time"

	"github.com/google/uuid"
)

// Loan represents an approved, active loan
type Loan struct {
	ID               uuid.UUID `json:"id" db:"id"`
	CompanyID        uuid.UUID `json:"company_id" db:"company_id"`
	LoanType         string    `json:"loan_type" db:"loan_type"`
	Principal        float64   `json:"principal" db:"principal"`
	InterestRatePct  float64   `json:"interest_rate_pct" db:"interest_rate_pct"`
	TermMonths       int       `json:"term_months" db:"term_months"`
	MonthlyPayment   float64   `json:"monthly_payment" db:"monthly_payment"`
	RemainingBalance float64   `json:"remaining_balance" db:"remaining_balance"`
	PaymentsMade     int       `json:"payments_made" db:"payments_made"`
	Status           string    `json:"status" db:"status"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// LoanStatus represents loan lifecycle states
type LoanStatus string

const (
	LoanActive    LoanStatus = "active"
	LoanPaidOff   LoanStatus = "paid_off"
	LoanDefaulted LoanStatus = "defaulted"
)

// LoanApplicationRequest represents a loan application submission
type LoanApplicationRequest struct {
	Amount     float64 `json:"amount" binding:"required,gt=0"`
	TermMonths int     `json:"term_months" binding:"required,gt=0,lte=360"`
	LoanType   string  `json:"loan_type" binding:"required"`
}

// Investment represents a held investment position
type Investment struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	CompanyID    uuid.UUID  `json:"company_id" db:"company_id"`
	Type         string     `json:"investment_type" db:"investment_type"`
	RiskLevel    string     `json:"risk_level" db:"risk_level"`
	Amount       float64    `json:"amount" db:"amount"`
	ReturnRate   float64    `json:"return_rate" db:"return_rate"`
	CurrentValue float64    `json:"current_value" db:"current_value"`
	MaturityDate *time.Time `json:"maturity_date,omitempty" db:"maturity_date"`
	Status       string     `json:"status" db:"status"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// InvestmentStatus represents investment lifecycle states
type InvestmentStatus string

const (
	InvestmentActive     InvestmentStatus = "active"
	InvestmentMatured    InvestmentStatus = "matured"
	InvestmentLiquidated InvestmentStatus = "liquidated"
)

// CreateInvestmentRequest represents an investment purchase
type CreateInvestmentRequest struct {
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	RiskLevel string  `json:"risk_level" binding:"required,oneof=low medium high"`
	Type      string  `json:"investment_type" binding:"required,oneof=bonds real_estate venture stocks"`
}
