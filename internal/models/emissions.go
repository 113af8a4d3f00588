package models

import (
	"time"

	"github.com/google/uuid"
)

// EmissionAsset represents one emitting facility owned by a company
type EmissionAsset struct {
	ID          uuid.UUID `json:"id" db:"id"`
	CompanyID   uuid.UUID `json:"company_id" db:"company_id"`
	Name        string    `json:"name" db:"name"`
	AssetType   string    `json:"asset_type" db:"asset_type"`
	AnnualUnits float64   `json:"annual_units" db:"annual_units"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// RegisterAssetRequest represents an asset registration
type RegisterAssetRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=120"`
	AssetType   string  `json:"asset_type" binding:"required"`
	AnnualUnits float64 `json:"annual_units" binding:"required,gt=0"`
}
