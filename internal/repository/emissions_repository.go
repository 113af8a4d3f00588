package repository

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/magnatehq/magnate-server/internal/models"
)

// emissionsRepository implements EmissionsRepository
type emissionsRepository struct {
	db dbExecutor
}

// NewEmissionsRepository creates a new emissions repository
func NewEmissionsRepository(db dbExecutor) EmissionsRepository {
	return &emissionsRepository{db: db}
}

// GetAssetsByCompany retrieves all emission assets owned by a company
func (r *emissionsRepository) GetAssetsByCompany(companyID uuid.UUID) ([]models.EmissionAsset, error) {
	query := `
		SELECT id, company_id, name, asset_type, annual_units, created_at, updated_at
		FROM emission_assets WHERE company_id = $1 ORDER BY created_at
	`

	rows, err := r.db.Query(query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assets: %w", err)
	}
	defer rows.Close()

	var assets []models.EmissionAsset
	for rows.Next() {
		var a models.EmissionAsset
		err := rows.Scan(
			&a.ID, &a.CompanyID, &a.Name, &a.AssetType, &a.AnnualUnits,
			&a.CreatedAt, &a.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, a)
	}

	return assets, nil
}

// CreateAsset creates a new emission asset
func (r *emissionsRepository) CreateAsset(a *models.EmissionAsset) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now

	query := `
		INSERT INTO emission_assets (id, company_id, name, asset_type, annual_units, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(query,
		a.ID, a.CompanyID, a.Name, a.AssetType, a.AnnualUnits, a.CreatedAt, a.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create asset: %w", err)
	}

	return nil
}

// UpdateAsset updates an existing emission asset
func (r *emissionsRepository) UpdateAsset(a *models.EmissionAsset) error {
	a.UpdatedAt = time.Now()

	query := `
		UPDATE emission_assets SET
			name = $2, asset_type = $3, annual_units = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.Exec(query, a.ID, a.Name, a.AssetType, a.AnnualUnits, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update asset: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("asset not found")
	}

	return nil
}

// DeleteAsset deletes an emission asset
func (r *emissionsRepository) DeleteAsset(id uuid.UUID) error {
	query := `DELETE FROM emission_assets WHERE id = $1`

	result, err := r.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("asset not found")
	}

	return nil
}
