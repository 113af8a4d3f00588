package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/magnatehq/magnate-server/internal/models"
)

// companyRepository implements CompanyRepository
type companyRepository struct {
	db dbExecutor
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db dbExecutor) CompanyRepository {
	return &companyRepository{db: db}
}

const companyColumns = `id, owner_id, name, industry, cash, monthly_revenue, total_debt,
	   equity, research_points, reputation, capabilities, alignment, status,
	   created_at, updated_at`

func scanCompany(row interface{ Scan(...interface{}) error }) (*models.Company, error) {
	company := &models.Company{}
	err := row.Scan(
		&company.ID, &company.OwnerID, &company.Name, &company.Industry,
		&company.Cash, &company.MonthlyRevenue, &company.TotalDebt, &company.Equity,
		&company.ResearchPoints, &company.Reputation, &company.Capabilities,
		&company.Alignment, &company.Status, &company.CreatedAt, &company.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return company, nil
}

// GetByID retrieves a company by ID
func (r *companyRepository) GetByID(id uuid.UUID) (*models.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`

	company, err := scanCompany(r.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("company not found")
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	return company, nil
}

// GetByOwner retrieves all companies owned by a player
func (r *companyRepository) GetByOwner(ownerID uuid.UUID) ([]models.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE owner_id = $1 ORDER BY created_at`

	rows, err := r.db.Query(query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query companies: %w", err)
	}
	defer rows.Close()

	var companies []models.Company
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, *company)
	}

	return companies, nil
}

// Create creates a new company
func (r *companyRepository) Create(company *models.Company) error {
	if company.ID == uuid.Nil {
		company.ID = uuid.New()
	}

	now := time.Now()
	company.CreatedAt = now
	company.UpdatedAt = now

	query := `
		INSERT INTO companies (
			id, owner_id, name, industry, cash, monthly_revenue, total_debt,
			equity, research_points, reputation, capabilities, alignment, status,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
		)
	`

	_, err := r.db.Exec(query,
		company.ID, company.OwnerID, company.Name, company.Industry,
		company.Cash, company.MonthlyRevenue, company.TotalDebt, company.Equity,
		company.ResearchPoints, company.Reputation, company.Capabilities,
		company.Alignment, company.Status, company.CreatedAt, company.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}

	return nil
}

// Update updates an existing company
func (r *companyRepository) Update(company *models.Company) error {
	company.UpdatedAt = time.Now()

	query := `
		UPDATE companies SET
			name = $2, industry = $3, cash = $4, monthly_revenue = $5,
			total_debt = $6, equity = $7, research_points = $8, reputation = $9,
			capabilities = $10, alignment = $11, status = $12, updated_at = $13
		WHERE id = $1
	`

	result, err := r.db.Exec(query,
		company.ID, company.Name, company.Industry, company.Cash,
		company.MonthlyRevenue, company.TotalDebt, company.Equity,
		company.ResearchPoints, company.Reputation, company.Capabilities,
		company.Alignment, company.Status, company.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("company not found")
	}

	return nil
}

// Delete deletes a company
func (r *companyRepository) Delete(id uuid.UUID) error {
	query := `DELETE FROM companies WHERE id = $1`

	result, err := r.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("company not found")
	}

	return nil
}

// GetAll retrieves companies with filters
func (r *companyRepository) GetAll(filters CompanyFilters) ([]models.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies`

	var whereClauses []string
	var args []interface{}
	argIndex := 1

	// Apply filters
	if len(filters.Industry) > 0 {
		placeholders := make([]string, len(filters.Industry))
		for i, industry := range filters.Industry {
			placeholders[i] = fmt.Sprintf("$%d", argIndex)
			args = append(args, industry)
			argIndex++
		}
		whereClauses = append(whereClauses, fmt.Sprintf("industry IN (%s)", strings.Join(placeholders, ",")))
	}

	if len(filters.Status) > 0 {
		placeholders := make([]string, len(filters.Status))
		for i, status := range filters.Status {
			placeholders[i] = fmt.Sprintf("$%d", argIndex)
			args = append(args, status)
			argIndex++
		}
		whereClauses = append(whereClauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}

	if filters.MinCash != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("cash >= $%d", argIndex))
		args = append(args, *filters.MinCash)
		argIndex++
	}

	if len(whereClauses) > 0 {
		query += " WHERE " + strings.Join(whereClauses, " AND ")
	}

	query += " ORDER BY updated_at DESC"

	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filters.Limit)
		argIndex++
	}

	if filters.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, filters.Offset)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query companies: %w", err)
	}
	defer rows.Close()

	var companies []models.Company
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, *company)
	}

	return companies, nil
}

const milestoneColumns = `id, company_id, type, class, complexity, capability_gap,
	   base_rate_pct, failed_attempts, achieved, achieved_at, created_at`

// GetMilestone retrieves a milestone by ID
func (r *companyRepository) GetMilestone(id uuid.UUID) (*models.Milestone, error) {
	query := `SELECT ` + milestoneColumns + ` FROM milestones WHERE id = $1`

	m := &models.Milestone{}
	err := r.db.QueryRow(query, id).Scan(
		&m.ID, &m.CompanyID, &m.Type, &m.Class, &m.Complexity, &m.CapabilityGap,
		&m.BaseRatePct, &m.FailedAttempts, &m.Achieved, &m.AchievedAt, &m.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("milestone not found")
		}
		return nil, fmt.Errorf("failed to get milestone: %w", err)
	}

	return m, nil
}

// GetMilestonesByCompany retrieves all milestones for a company
func (r *companyRepository) GetMilestonesByCompany(companyID uuid.UUID) ([]models.Milestone, error) {
	query := `SELECT ` + milestoneColumns + ` FROM milestones WHERE company_id = $1 ORDER BY created_at`

	rows, err := r.db.Query(query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query milestones: %w", err)
	}
	defer rows.Close()

	var milestones []models.Milestone
	for rows.Next() {
		var m models.Milestone
		err := rows.Scan(
			&m.ID, &m.CompanyID, &m.Type, &m.Class, &m.Complexity, &m.CapabilityGap,
			&m.BaseRatePct, &m.FailedAttempts, &m.Achieved, &m.AchievedAt, &m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan milestone: %w", err)
		}
		milestones = append(milestones, m)
	}

	return milestones, nil
}

// CreateMilestone creates a new milestone
func (r *companyRepository) CreateMilestone(m *models.Milestone) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()

	query := `
		INSERT INTO milestones (
			id, company_id, type, class, complexity, capability_gap,
			base_rate_pct, failed_attempts, achieved, achieved_at, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)
	`

	_, err := r.db.Exec(query,
		m.ID, m.CompanyID, m.Type, m.Class, m.Complexity, m.CapabilityGap,
		m.BaseRatePct, m.FailedAttempts, m.Achieved, m.AchievedAt, m.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create milestone: %w", err)
	}

	return nil
}

// UpdateMilestone updates an existing milestone
func (r *companyRepository) UpdateMilestone(m *models.Milestone) error {
	query := `
		UPDATE milestones SET
			failed_attempts = $2, achieved = $3, achieved_at = $4
		WHERE id = $1
	`

	result, err := r.db.Exec(query, m.ID, m.FailedAttempts, m.Achieved, m.AchievedAt)
	if err != nil {
		return fmt.Errorf("failed to update milestone: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("milestone not found")
	}

	return nil
}
