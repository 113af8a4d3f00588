package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/magnatehq/magnate-server/internal/models"
	"github.com/magnatehq/magnate-server/internal/repository"
)

// Starting balance sheet for a newly founded company.
const (
	startingCash    = 1_000_000.0
	startingRevenue = 50_000.0
	startingEquity  = 1_000_000.0
	startingRep     = 50.0
)

// companyServiceImpl implements CompanyService
type companyServiceImpl struct {
	repos *repository.Repositories
}

// newCompanyService creates a new company service implementation
func newCompanyService(repos *repository.Repositories) CompanyService {
	return &companyServiceImpl{repos: repos}
}

func defaultCapabilities() models.Profile {
	return models.Profile{
		"reasoning":      10,
		"planning":       10,
		"generalization": 10,
	}
}

func defaultAlignment() models.Profile {
	return models.Profile{
		"safetyMeasures":      50,
		"controlMechanisms":   50,
		"interpretability":    50,
		"robustness":          50,
		"valueAlignmentScore": 50,
		"ethicalConstraints":  50,
	}
}

// Create founds a company with the standard starting balance sheet and
// neutral capability and alignment profiles.
func (s *companyServiceImpl) Create(ownerID uuid.UUID, req *models.CreateCompanyRequest) (*models.Company, error) {
	company := &models.Company{
		OwnerID:        ownerID,
		Name:           req.Name,
		Industry:       req.Industry,
		Cash:           startingCash,
		MonthlyRevenue: startingRevenue,
		TotalDebt:      0,
		Equity:         startingEquity,
		ResearchPoints: 0,
		Reputation:     startingRep,
		Capabilities:   defaultCapabilities(),
		Alignment:      defaultAlignment(),
		Status:         string(models.CompanyActive),
	}

	if err := s.repos.Company.Create(company); err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	return company, nil
}

// GetByID retrieves a company by ID
func (s *companyServiceImpl) GetByID(id uuid.UUID) (*models.Company, error) {
	return s.repos.Company.GetByID(id)
}

// GetByOwner retrieves all companies owned by a player
func (s *companyServiceImpl) GetByOwner(ownerID uuid.UUID) ([]models.Company, error) {
	return s.repos.Company.GetByOwner(ownerID)
}

// GetAll retrieves companies matching the filters
func (s *companyServiceImpl) GetAll(filters repository.CompanyFilters) ([]models.Company, error) {
	return s.repos.Company.GetAll(filters)
}

// Delete removes a company
func (s *companyServiceImpl) Delete(id uuid.UUID) error {
	return s.repos.Company.Delete(id)
}
