package services

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/magnatehq/magnate-server/internal/engine/achieve"
	"github.com/magnatehq/magnate-server/internal/engine/credit"
	"github.com/magnatehq/magnate-server/internal/engine/emissions"
	"github.com/magnatehq/magnate-server/internal/engine/market"
	"github.com/magnatehq/magnate-server/internal/engine/medical"
	"github.com/magnatehq/magnate-server/internal/engine/politics"
	"github.com/magnatehq/magnate-server/internal/models"
	"github.com/magnatehq/magnate-server/internal/repository"
	"github.com/magnatehq/magnate-server/internal/rng"
	"github.com/magnatehq/magnate-server/pkg/config"
)

// Services contains all application services
type Services struct {
	Auth        AuthService
	Company     CompanyService
	Achievement AchievementService
	Finance     FinanceService
	Market      MarketService
	Politics    PoliticsService
	Compliance  ComplianceService
}

// AuthService defines the interface for player authentication
type AuthService interface {
	Register(req *models.RegisterRequest) (*models.Player, error)
	Login(email, password string) (*models.LoginResponse, error)
	ValidateToken(token string) (*models.Player, error)
}

// CompanyService defines the interface for company lifecycle logic
type CompanyService interface {
	Create(ownerID uuid.UUID, req *models.CreateCompanyRequest) (*models.Company, error)
	GetByID(id uuid.UUID) (*models.Company, error)
	GetByOwner(ownerID uuid.UUID) ([]models.Company, error)
	GetAll(filters repository.CompanyFilters) ([]models.Company, error)
	Delete(id uuid.UUID) error
}

// AchievementService defines the interface for research milestone logic
type AchievementService interface {
	CreateMilestone(companyID uuid.UUID, m *models.Milestone) error
	GetMilestones(companyID uuid.UUID) ([]models.Milestone, error)
	Probability(milestoneID uuid.UUID) (*achieve.Breakdown, error)
	AttemptMilestone(milestoneID uuid.UUID) (*achieve.AttemptResult, error)
}

// FinanceService defines the interface for credit and investment logic
type FinanceService interface {
	CreditScore(companyID uuid.UUID) (int, []credit.ScoreBreakdown, error)
	ApplyForLoan(companyID uuid.UUID, req *models.LoanApplicationRequest) (*credit.Decision, *models.Loan, error)
	MakeLoanPayment(loanID uuid.UUID) (*models.Loan, error)
	AmortizationSchedule(loanID uuid.UUID) ([]credit.PaymentRow, error)
	GetLoans(companyID uuid.UUID) ([]models.Loan, error)

	CreateInvestment(companyID uuid.UUID, req *models.CreateInvestmentRequest) (*models.Investment, error)
	GetPortfolio(companyID uuid.UUID) ([]models.Investment, float64, error)
	LiquidateInvestment(investmentID uuid.UUID) (*models.Investment, error)
}

// MarketService defines the interface for the compute and model marketplace
type MarketService interface {
	QuoteCompute(sellerID uuid.UUID, capacity, durationHours float64, tier string) (*market.ComputePricingResult, error)
	CreateContract(buyerID uuid.UUID, req *models.CreateContractRequest) (*models.ComputeContract, error)
	RecordPerformance(contractID uuid.UUID, score float64) (*models.ComputeContract, error)
	ReportBreach(contractID uuid.UUID, req *models.ReportBreachRequest) (*market.SLARefundResult, error)
	ReleaseEscrow(contractID uuid.UUID) (*EscrowStatus, error)

	CreateListing(sellerID uuid.UUID, req *models.CreateListingRequest) (*models.ModelListing, error)
	GetListings(limit, offset int) ([]models.ModelListing, error)
	RecordSale(listingID uuid.UUID) (*models.ModelListing, error)
	SellerStanding(sellerID uuid.UUID) (*SellerStanding, error)
}

// EscrowStatus pairs the engine's release snapshot with the amount this call
// actually moved to the seller.
type EscrowStatus struct {
	Contract      *models.ComputeContract    `json:"contract"`
	Release       market.EscrowReleaseResult `json:"release"`
	NewlyReleased float64                    `json:"newly_released"`
}

// SellerStanding bundles a seller's reputation and marketplace position.
type SellerStanding struct {
	Reputation float64                     `json:"reputation"`
	Position   market.MarketPositionResult `json:"position"`
	TotalSales int                         `json:"total_sales"`
}

// PoliticsService defines the interface for elections and legislation
type PoliticsService interface {
	CreateElection(office string, registeredVoters int) (*models.Election, error)
	AddCandidate(electionID, companyID uuid.UUID, name string) (*models.ElectionCandidate, error)
	CastVotes(candidateID uuid.UUID, votes int) (*models.ElectionCandidate, error)
	DecideElection(electionID uuid.UUID) (*politics.ElectionResults, error)

	CreateBill(title string) (*models.Bill, error)
	RecordBillVotes(billID uuid.UUID, tally politics.VoteTally) (*models.Bill, error)
	BillSupport(billID uuid.UUID) (float64, error)

	Donate(candidateID, companyID uuid.UUID, amount float64, recurring, matching bool) (*models.CampaignDonation, error)
	DonorImpact(candidateID, donationID uuid.UUID) (float64, error)

	DistrictInfluence(p politics.DistrictProfile) float64
	OutreachEffectiveness(contacted, converted int, spend, votersGainedValue float64) politics.OutreachResult
	CampaignPerformance(in politics.CampaignInputs) float64
}

// ComplianceService defines the interface for emissions and drug-program
// reporting
type ComplianceService interface {
	RegisterAsset(companyID uuid.UUID, req *models.RegisterAssetRequest) (*models.EmissionAsset, error)
	GetAssets(companyID uuid.UUID) ([]models.EmissionAsset, error)
	RemoveAsset(assetID uuid.UUID) error
	EmissionsInventory(companyID uuid.UUID) (*emissions.Inventory, error)

	TrialOutlook(area string, phase medical.TrialPhase) TrialOutlook
	PatentValuation(portfolio []medical.Patent) float64
}

// TrialOutlook summarizes a drug program's odds, timeline, and risk.
type TrialOutlook struct {
	Timeline           medical.Timeline `json:"timeline"`
	SuccessProbability float64          `json:"success_probability"`
	RiskScore          float64          `json:"risk_score"`
}

// NewServices creates a new Services instance with all dependencies
func NewServices(db *sql.DB, cfg *config.Config) *Services {
	repos := repository.NewRepositories(db)

	var src rng.RandomSource
	if cfg.RandomSeed != 0 {
		src = rng.NewSeededSource(cfg.RandomSeed)
	} else {
		src = rng.NewSystemSource()
	}
	clock := rng.NewSystemClock()

	return &Services{
		Auth:        newAuthService(repos, cfg),
		Company:     newCompanyService(repos),
		Achievement: newAchievementService(repos, src, clock),
		Finance:     newFinanceService(repos, src, clock),
		Market:      newMarketService(repos, cfg, clock),
		Politics:    newPoliticsService(repos, clock),
		Compliance:  newComplianceService(repos),
	}
}
