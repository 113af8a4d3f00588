package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/magnatehq/magnate-server/internal/engine/emissions"
	"github.com/magnatehq/magnate-server/internal/engine/medical"
	apperrors "github.com/magnatehq/magnate-server/internal/errors"
	"github.com/magnatehq/magnate-server/internal/models"
	"github.com/magnatehq/magnate-server/internal/repository"
)

// complianceServiceImpl implements ComplianceService
type complianceServiceImpl struct {
	repos *repository.Repositories
}

// newComplianceService creates a new compliance service implementation
func newComplianceService(repos *repository.Repositories) ComplianceService {
	return &complianceServiceImpl{repos: repos}
}

// RegisterAsset records an emitting facility for a company
func (s *complianceServiceImpl) RegisterAsset(companyID uuid.UUID, req *models.RegisterAssetRequest) (*models.EmissionAsset, error) {
	company, err := s.repos.Company.GetByID(companyID)
	if err != nil {
		return nil, apperrors.NotFound("company not found", err)
	}
	if !company.IsActive() {
		return nil, apperrors.CompanyInactive("assets require an active company", nil)
	}

	asset := &models.EmissionAsset{
		CompanyID:   companyID,
		Name:        req.Name,
		AssetType:   req.AssetType,
		AnnualUnits: req.AnnualUnits,
	}
	if err := s.repos.Emissions.CreateAsset(asset); err != nil {
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}
	return asset, nil
}

// GetAssets retrieves all emission assets for a company
func (s *complianceServiceImpl) GetAssets(companyID uuid.UUID) ([]models.EmissionAsset, error) {
	return s.repos.Emissions.GetAssetsByCompany(companyID)
}

// RemoveAsset deletes an emission asset
func (s *complianceServiceImpl) RemoveAsset(assetID uuid.UUID) error {
	return s.repos.Emissions.DeleteAsset(assetID)
}

// EmissionsInventory rolls a company's registered assets into its annual
// scope totals and compliance flags
func (s *complianceServiceImpl) EmissionsInventory(companyID uuid.UUID) (*emissions.Inventory, error) {
	assets, err := s.repos.Emissions.GetAssetsByCompany(companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assets: %w", err)
	}

	engineAssets := make([]emissions.Asset, 0, len(assets))
	for _, a := range assets {
		engineAssets = append(engineAssets, emissions.Asset{
			ID:        a.ID.String(),
			AssetType: a.AssetType,
			Units:     a.AnnualUnits,
		})
	}

	inv := emissions.CalculateInventory(engineAssets)
	return &inv, nil
}

// TrialOutlook summarizes a drug program's remaining path
func (s *complianceServiceImpl) TrialOutlook(area string, phase medical.TrialPhase) TrialOutlook {
	return TrialOutlook{
		Timeline:           medical.DevelopmentTimeline(phase),
		SuccessProbability: medical.SuccessProbability(area, phase),
		RiskScore:          medical.RiskScore(area, phase),
	}
}

// PatentValuation prices a patent portfolio
func (s *complianceServiceImpl) PatentValuation(portfolio []medical.Patent) float64 {
	return medical.PatentValuation(portfolio)
}
