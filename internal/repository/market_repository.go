package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/magnatehq/magnate-server/internal/models"
)

// marketRepository implements MarketRepository
type marketRepository struct {
	db dbExecutor
}

// NewMarketRepository creates a new market repository
func NewMarketRepository(db dbExecutor) MarketRepository {
	return &marketRepository{db: db}
}

const contractColumns = `id, seller_id, buyer_id, capacity, duration_hours, sla_tier,
	   total_price, performance_score, released_amount, status, started_at,
	   created_at, updated_at`

// GetContract retrieves a compute contract by ID
func (r *marketRepository) GetContract(id uuid.UUID) (*models.ComputeContract, error) {
	query := `SELECT ` + contractColumns + ` FROM compute_contracts WHERE id = $1`

	c := &models.ComputeContract{}
	err := r.db.QueryRow(query, id).Scan(
		&c.ID, &c.SellerID, &c.BuyerID, &c.Capacity, &c.DurationHours,
		&c.SLATier, &c.TotalPrice, &c.PerformanceScore, &c.ReleasedAmount,
		&c.Status, &c.StartedAt, &c.CreatedAt, &c.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("contract not found")
		}
		return nil, fmt.Errorf("failed to get contract: %w", err)
	}

	return c, nil
}

// GetContractsBySeller retrieves all contracts where a company is the seller
func (r *marketRepository) GetContractsBySeller(sellerID uuid.UUID) ([]models.ComputeContract, error) {
	query := `SELECT ` + contractColumns + ` FROM compute_contracts WHERE seller_id = $1 ORDER BY created_at`

	rows, err := r.db.Query(query, sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query contracts: %w", err)
	}
	defer rows.Close()

	var contracts []models.ComputeContract
	for rows.Next() {
		var c models.ComputeContract
		err := rows.Scan(
			&c.ID, &c.SellerID, &c.BuyerID, &c.Capacity, &c.DurationHours,
			&c.SLATier, &c.TotalPrice, &c.PerformanceScore, &c.ReleasedAmount,
			&c.Status, &c.StartedAt, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contract: %w", err)
		}
		contracts = append(contracts, c)
	}

	return contracts, nil
}

// CreateContract creates a new compute contract
func (r *marketRepository) CreateContract(c *models.ComputeContract) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	query := `
		INSERT INTO compute_contracts (
			id, seller_id, buyer_id, capacity, duration_hours, sla_tier,
			total_price, performance_score, released_amount, status, started_at,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)
	`

	_, err := r.db.Exec(query,
		c.ID, c.SellerID, c.BuyerID, c.Capacity, c.DurationHours, c.SLATier,
		c.TotalPrice, c.PerformanceScore, c.ReleasedAmount, c.Status,
		c.StartedAt, c.CreatedAt, c.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create contract: %w", err)
	}

	return nil
}

// UpdateContract updates an existing compute contract
func (r *marketRepository) UpdateContract(c *models.ComputeContract) error {
	c.UpdatedAt = time.Now()

	query := `
		UPDATE compute_contracts SET
			performance_score = $2, released_amount = $3, status = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.Exec(query,
		c.ID, c.PerformanceScore, c.ReleasedAmount, c.Status, c.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update contract: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("contract not found")
	}

	return nil
}

const listingColumns = `id, seller_id, name, architecture, size, parameters, benchmarks,
	   perpetual_usd, monthly_usd, per_api_call_usd, sales_count, status,
	   created_at, updated_at`

// GetListing retrieves a model listing by ID
func (r *marketRepository) GetListing(id uuid.UUID) (*models.ModelListing, error) {
	query := `SELECT ` + listingColumns + ` FROM model_listings WHERE id = $1`

	l := &models.ModelListing{}
	err := r.db.QueryRow(query, id).Scan(
		&l.ID, &l.SellerID, &l.Name, &l.Architecture, &l.Size, &l.Parameters,
		&l.Benchmarks, &l.PerpetualUSD, &l.MonthlyUSD, &l.PerAPICallUSD,
		&l.SalesCount, &l.Status, &l.CreatedAt, &l.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("listing not found")
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}

	return l, nil
}

// GetActiveListings retrieves active listings with pagination
func (r *marketRepository) GetActiveListings(limit, offset int) ([]models.ModelListing, error) {
	query := `SELECT ` + listingColumns + ` FROM model_listings WHERE status = 'active'
		ORDER BY updated_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer rows.Close()

	var listings []models.ModelListing
	for rows.Next() {
		var l models.ModelListing
		err := rows.Scan(
			&l.ID, &l.SellerID, &l.Name, &l.Architecture, &l.Size, &l.Parameters,
			&l.Benchmarks, &l.PerpetualUSD, &l.MonthlyUSD, &l.PerAPICallUSD,
			&l.SalesCount, &l.Status, &l.CreatedAt, &l.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		listings = append(listings, l)
	}

	return listings, nil
}

// CreateListing creates a new model listing
func (r *marketRepository) CreateListing(l *models.ModelListing) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}

	now := time.Now()
	l.CreatedAt = now
	l.UpdatedAt = now

	query := `
		INSERT INTO model_listings (
			id, seller_id, name, architecture, size, parameters, benchmarks,
			perpetual_usd, monthly_usd, per_api_call_usd, sales_count, status,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		)
	`

	_, err := r.db.Exec(query,
		l.ID, l.SellerID, l.Name, l.Architecture, l.Size, l.Parameters,
		l.Benchmarks, l.PerpetualUSD, l.MonthlyUSD, l.PerAPICallUSD,
		l.SalesCount, l.Status, l.CreatedAt, l.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}

	return nil
}

// UpdateListing updates an existing model listing
func (r *marketRepository) UpdateListing(l *models.ModelListing) error {
	l.UpdatedAt = time.Now()

	query := `
		UPDATE model_listings SET
			perpetual_usd = $2, monthly_usd = $3, per_api_call_usd = $4,
			sales_count = $5, status = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.db.Exec(query,
		l.ID, l.PerpetualUSD, l.MonthlyUSD, l.PerAPICallUSD,
		l.SalesCount, l.Status, l.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update listing: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("listing not found")
	}

	return nil
}

// AverageListingSales reports the mean sales count across active listings.
// Zero when the marketplace is empty.
func (r *marketRepository) AverageListingSales() (float64, error) {
	query := `SELECT COALESCE(AVG(sales_count), 0) FROM model_listings WHERE status = 'active'`

	var avg float64
	if err := r.db.QueryRow(query).Scan(&avg); err != nil {
		return 0, fmt.Errorf("failed to get average sales: %w", err)
	}
	return avg, nil
}
