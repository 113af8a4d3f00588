package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/magnatehq/magnate-server/internal/models"
)

// financeRepository implements FinanceRepository
type financeRepository struct {
	db dbExecutor
}

// NewFinanceRepository creates a new finance repository
func NewFinanceRepository(db dbExecutor) FinanceRepository {
	return &financeRepository{db: db}
}

const loanColumns = `id, company_id, loan_type, principal, interest_rate_pct, term_months,
	   monthly_payment, remaining_balance, payments_made, status, created_at, updated_at`

// GetLoan retrieves a loan by ID
func (r *financeRepository) GetLoan(id uuid.UUID) (*models.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`

	loan := &models.Loan{}
	err := r.db.QueryRow(query, id).Scan(
		&loan.ID, &loan.CompanyID, &loan.LoanType, &loan.Principal,
		&loan.InterestRatePct, &loan.TermMonths, &loan.MonthlyPayment,
		&loan.RemainingBalance, &loan.PaymentsMade, &loan.Status,
		&loan.CreatedAt, &loan.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("loan not found")
		}
		return nil, fmt.Errorf("failed to get loan: %w", err)
	}

	return loan, nil
}

// GetLoansByCompany retrieves all loans for a company
func (r *financeRepository) GetLoansByCompany(companyID uuid.UUID) ([]models.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE company_id = $1 ORDER BY created_at`

	rows, err := r.db.Query(query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query loans: %w", err)
	}
	defer rows.Close()

	var loans []models.Loan
	for rows.Next() {
		var loan models.Loan
		err := rows.Scan(
			&loan.ID, &loan.CompanyID, &loan.LoanType, &loan.Principal,
			&loan.InterestRatePct, &loan.TermMonths, &loan.MonthlyPayment,
			&loan.RemainingBalance, &loan.PaymentsMade, &loan.Status,
			&loan.CreatedAt, &loan.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan: %w", err)
		}
		loans = append(loans, loan)
	}

	return loans, nil
}

// CreateLoan creates a new loan
func (r *financeRepository) CreateLoan(loan *models.Loan) error {
	if loan.ID == uuid.Nil {
		loan.ID = uuid.New()
	}

	now := time.Now()
	loan.CreatedAt = now
	loan.UpdatedAt = now

	query := `
		INSERT INTO loans (
			id, company_id, loan_type, principal, interest_rate_pct, term_months,
			monthly_payment, remaining_balance, payments_made, status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)
	`

	_, err := r.db.Exec(query,
		loan.ID, loan.CompanyID, loan.LoanType, loan.Principal,
		loan.InterestRatePct, loan.TermMonths, loan.MonthlyPayment,
		loan.RemainingBalance, loan.PaymentsMade, loan.Status,
		loan.CreatedAt, loan.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create loan: %w", err)
	}

	return nil
}

// UpdateLoan updates an existing loan
func (r *financeRepository) UpdateLoan(loan *models.Loan) error {
	loan.UpdatedAt = time.Now()

	query := `
		UPDATE loans SET
			remaining_balance = $2, payments_made = $3, status = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.Exec(query,
		loan.ID, loan.RemainingBalance, loan.PaymentsMade, loan.Status, loan.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update loan: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("loan not found")
	}

	return nil
}

const investmentColumns = `id, company_id, investment_type, risk_level, amount, return_rate,
	   current_value, maturity_date, status, created_at, updated_at`

// GetInvestment retrieves an investment by ID
func (r *financeRepository) GetInvestment(id uuid.UUID) (*models.Investment, error) {
	query := `SELECT ` + investmentColumns + ` FROM investments WHERE id = $1`

	inv := &models.Investment{}
	err := r.db.QueryRow(query, id).Scan(
		&inv.ID, &inv.CompanyID, &inv.Type, &inv.RiskLevel, &inv.Amount,
		&inv.ReturnRate, &inv.CurrentValue, &inv.MaturityDate, &inv.Status,
		&inv.CreatedAt, &inv.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("investment not found")
		}
		return nil, fmt.Errorf("failed to get investment: %w", err)
	}

	return inv, nil
}

// GetInvestmentsByCompany retrieves all investments for a company
func (r *financeRepository) GetInvestmentsByCompany(companyID uuid.UUID) ([]models.Investment, error) {
	query := `SELECT ` + investmentColumns + ` FROM investments WHERE company_id = $1 ORDER BY created_at`

	rows, err := r.db.Query(query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query investments: %w", err)
	}
	defer rows.Close()

	var investments []models.Investment
	for rows.Next() {
		var inv models.Investment
		err := rows.Scan(
			&inv.ID, &inv.CompanyID, &inv.Type, &inv.RiskLevel, &inv.Amount,
			&inv.ReturnRate, &inv.CurrentValue, &inv.MaturityDate, &inv.Status,
			&inv.CreatedAt, &inv.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan investment: %w", err)
		}
		investments = append(investments, inv)
	}

	return investments, nil
}

// CreateInvestment creates a new investment
func (r *financeRepository) CreateInvestment(inv *models.Investment) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}

	now := time.Now()
	inv.CreatedAt = now
	inv.UpdatedAt = now

	query := `
		INSERT INTO investments (
			id, company_id, investment_type, risk_level, amount, return_rate,
			current_value, maturity_date, status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)
	`

	_, err := r.db.Exec(query,
		inv.ID, inv.CompanyID, inv.Type, inv.RiskLevel, inv.Amount,
		inv.ReturnRate, inv.CurrentValue, inv.MaturityDate, inv.Status,
		inv.CreatedAt, inv.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create investment: %w", err)
	}

	return nil
}

// UpdateInvestment updates an existing investment
func (r *financeRepository) UpdateInvestment(inv *models.Investment) error {
	inv.UpdatedAt = time.Now()

	query := `
		UPDATE investments SET
			current_value = $2, status = $3, updated_at = $4
		WHERE id = $1
	`

	result, err := r.db.Exec(query, inv.ID, inv.CurrentValue, inv.Status, inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update investment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("investment not found")
	}

	return nil
}
