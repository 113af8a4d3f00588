package repository

import (
	"github.com/google/uuid"
	"github.com/magnatehq/magnate-server/internal/models"
)

// PlayerRepository defines the interface for player data access
type PlayerRepository interface {
	GetByID(id uuid.UUID) (*models.Player, error)
	GetByEmail(email string) (*models.Player, error)
	Create(player *models.Player) error
	Update(player *models.Player) error
	Delete(id uuid.UUID) error
}

// CompanyRepository defines the interface for company data access
type CompanyRepository interface {
	// Basic CRUD operations
	GetByID(id uuid.UUID) (*models.Company, error)
	GetByOwner(ownerID uuid.UUID) ([]models.Company, error)
	Create(company *models.Company) error
	Update(company *models.Company) error
	Delete(id uuid.UUID) error

	// Bulk operations
	GetAll(filters CompanyFilters) ([]models.Company, error)

	// Milestone operations
	GetMilestone(id uuid.UUID) (*models.Milestone, error)
	GetMilestonesByCompany(companyID uuid.UUID) ([]models.Milestone, error)
	CreateMilestone(m *models.Milestone) error
	UpdateMilestone(m *models.Milestone) error
}

// FinanceRepository defines the interface for loan and investment data access
type FinanceRepository interface {
	GetLoan(id uuid.UUID) (*models.Loan, error)
	GetLoansByCompany(companyID uuid.UUID) ([]models.Loan, error)
	CreateLoan(loan *models.Loan) error
	UpdateLoan(loan *models.Loan) error

	GetInvestment(id uuid.UUID) (*models.Investment, error)
	GetInvestmentsByCompany(companyID uuid.UUID) ([]models.Investment, error)
	CreateInvestment(inv *models.Investment) error
	UpdateInvestment(inv *models.Investment) error
}

// MarketRepository defines the interface for marketplace data access
type MarketRepository interface {
	GetContract(id uuid.UUID) (*models.ComputeContract, error)
	GetContractsBySeller(sellerID uuid.UUID) ([]models.ComputeContract, error)
	CreateContract(c *models.ComputeContract) error
	UpdateContract(c *models.ComputeContract) error

	GetListing(id uuid.UUID) (*models.ModelListing, error)
	GetActiveListings(limit, offset int) ([]models.ModelListing, error)
	CreateListing(l *models.ModelListing) error
	UpdateListing(l *models.ModelListing) error
	AverageListingSales() (float64, error)
}

// PoliticsRepository defines the interface for election and legislation data access
type PoliticsRepository interface {
	GetElection(id uuid.UUID) (*models.Election, error)
	CreateElection(e *models.Election) error
	UpdateElection(e *models.Election) error
	GetCandidate(id uuid.UUID) (*models.ElectionCandidate, error)
	GetCandidates(electionID uuid.UUID) ([]models.ElectionCandidate, error)
	CreateCandidate(c *models.ElectionCandidate) error
	UpdateCandidate(c *models.ElectionCandidate) error

	GetBill(id uuid.UUID) (*models.Bill, error)
	CreateBill(b *models.Bill) error
	UpdateBill(b *models.Bill) error

	GetDonationsByCandidate(candidateID uuid.UUID) ([]models.CampaignDonation, error)
	CreateDonation(d *models.CampaignDonation) error
}

// EmissionsRepository defines the interface for emission asset data access
type EmissionsRepository interface {
	GetAssetsByCompany(companyID uuid.UUID) ([]models.EmissionAsset, error)
	CreateAsset(a *models.EmissionAsset) error
	UpdateAsset(a *models.EmissionAsset) error
	DeleteAsset(id uuid.UUID) error
}

// TransactionManager defines the interface for database transaction management
type TransactionManager interface {
	WithTransaction(fn func(repos *Repositories) error) error
}

// Repositories groups all repository interfaces
type Repositories struct {
	Player    PlayerRepository
	Company   CompanyRepository
	Finance   FinanceRepository
	Market    MarketRepository
	Politics  PoliticsRepository
	Emissions EmissionsRepository
	Tx        TransactionManager
}

// CompanyFilters defines filters for querying companies
type CompanyFilters struct {
	Industry []string
	Status   []string
	MinCash  *float64
	Limit    int
	Offset   int
}
