package services

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/magnatehq/magnate-server/internal/engine/market"
	apperrors "github.com/magnatehq/magnate-server/internal/errors"
	"github.com/magnatehq/magnate-server/internal/models"
	"github.com/magnatehq/magnate-server/internal/money"
	"github.com/magnatehq/magnate-server/internal/repository"
	"github.com/magnatehq/magnate-server/internal/rng"
	"github.com/magnatehq/magnate-server/pkg/config"
)

// marketServiceImpl implements MarketService
type marketServiceImpl struct {
	repos *repository.Repositories
	cfg   *config.Config
	clock rng.Clock
}

// newMarketService creates a new market service implementation
func newMarketService(repos *repository.Repositories, cfg *config.Config, clock rng.Clock) MarketService {
	return &marketServiceImpl{repos: repos, cfg: cfg, clock: clock}
}

// QuoteCompute prices a capacity rental against the seller's reputation and
// the configured market demand
func (s *marketServiceImpl) QuoteCompute(sellerID uuid.UUID, capacity, durationHours float64, tier string) (*market.ComputePricingResult, error) {
	seller, err := s.repos.Company.GetByID(sellerID)
	if err != nil {
		return nil, apperrors.NotFound("seller not found", err)
	}

	result, err := market.ComputePricing(capacity, durationHours, market.SLATier(tier), seller.Reputation, s.cfg.MarketBaseDemand)
	if err != nil {
		return nil, apperrors.InvalidInput(err.Error(), err)
	}
	return &result, nil
}

// CreateContract books a compute rental. The buyer pays the full price into
// escrow up front; the seller receives the first third immediately and the
// rest on the release schedule.
func (s *marketServiceImpl) CreateContract(buyerID uuid.UUID, req *models.CreateContractRequest) (*models.ComputeContract, error) {
	sellerID, err := uuid.Parse(req.SellerID)
	if err != nil {
		return nil, apperrors.InvalidInput("invalid seller id", err)
	}
	if sellerID == buyerID {
		return nil, apperrors.InvalidInput("a company cannot rent its own capacity", nil)
	}

	var contract *models.ComputeContract

	txErr := s.repos.Tx.WithTransaction(func(repos *repository.Repositories) error {
		seller, err := repos.Company.GetByID(sellerID)
		if err != nil {
			return apperrors.NotFound("seller not found", err)
		}
		buyer, err := repos.Company.GetByID(buyerID)
		if err != nil {
			return apperrors.NotFound("buyer not found", err)
		}
		if !seller.IsActive() || !buyer.IsActive() {
			return apperrors.CompanyInactive("contracts require active companies", nil)
		}

		quote, err := market.ComputePricing(req.Capacity, req.DurationHours, market.SLATier(req.SLATier), seller.Reputation, s.cfg.MarketBaseDemand)
		if err != nil {
			return apperrors.InvalidInput(err.Error(), err)
		}
		if buyer.Cash < quote.Total {
			return apperrors.InsufficientFunds(
				fmt.Sprintf("contract price %.2f exceeds available cash %.2f", quote.Total, buyer.Cash), nil)
		}

		upfront := money.RoundCents(quote.Total / 3)
		contract = &models.ComputeContract{
			SellerID:         sellerID,
			BuyerID:          buyerID,
			Capacity:         req.Capacity,
			DurationHours:    req.DurationHours,
			SLATier:          req.SLATier,
			TotalPrice:       quote.Total,
			PerformanceScore: 100,
			ReleasedAmount:   upfront,
			Status:           string(models.ContractActive),
			StartedAt:        s.clock.Now(),
		}
		if err := repos.Market.CreateContract(contract); err != nil {
			return fmt.Errorf("failed to create contract: %w", err)
		}

		buyer.Cash = money.RoundCents(buyer.Cash - quote.Total)
		if err := repos.Company.Update(buyer); err != nil {
			return fmt.Errorf("failed to debit buyer: %w", err)
		}
		seller.Cash = money.RoundCents(seller.Cash + upfront)
		if err := repos.Company.Update(seller); err != nil {
			return fmt.Errorf("failed to credit upfront tranche: %w", err)
		}
		return nil
	})

	if txErr != nil {
		return nil, txErr
	}
	return contract, nil
}

// RecordPerformance updates a contract's rolling performance score
func (s *marketServiceImpl) RecordPerformance(contractID uuid.UUID, score float64) (*models.ComputeContract, error) {
	contract, err := s.repos.Market.GetContract(contractID)
	if err != nil {
		return nil, apperrors.NotFound("contract not found", err)
	}
	if contract.Status != string(models.ContractActive) {
		return nil, apperrors.Conflict("contract is not active", nil)
	}

	contract.PerformanceScore = money.Clamp(score, 0, 100)
	if err := s.repos.Market.UpdateContract(contract); err != nil {
		return nil, fmt.Errorf("failed to update contract: %w", err)
	}
	return contract, nil
}

// ReportBreach settles an SLA violation: the refund moves from seller to
// buyer, the contract is marked breached, and the breach is folded into the
// seller's reputation.
func (s *marketServiceImpl) ReportBreach(contractID uuid.UUID, req *models.ReportBreachRequest) (*market.SLARefundResult, error) {
	var refund market.SLARefundResult

	err := s.repos.Tx.WithTransaction(func(repos *repository.Repositories) error {
		contract, err := repos.Market.GetContract(contractID)
		if err != nil {
			return apperrors.NotFound("contract not found", err)
		}
		if contract.Status != string(models.ContractActive) {
			return apperrors.Conflict("contract is not active", nil)
		}

		refund, err = market.SLARefund(contract.TotalPrice, market.SLATier(contract.SLATier), market.ViolationType(req.ViolationType), req.BreachPercentage)
		if err != nil {
			return apperrors.InvalidInput(err.Error(), err)
		}

		seller, err := repos.Company.GetByID(contract.SellerID)
		if err != nil {
			return apperrors.NotFound("seller not found", err)
		}
		buyer, err := repos.Company.GetByID(contract.BuyerID)
		if err != nil {
			return apperrors.NotFound("buyer not found", err)
		}

		seller.Cash = money.RoundCents(seller.Cash - refund.RefundAmount)
		rep := market.SellerReputation(seller.Reputation, 0, 1, 0, 0)
		seller.Reputation = rep.NewReputation
		if err := repos.Company.Update(seller); err != nil {
			return fmt.Errorf("failed to debit refund: %w", err)
		}

		buyer.Cash = money.RoundCents(buyer.Cash + refund.RefundAmount)
		if err := repos.Company.Update(buyer); err != nil {
			return fmt.Errorf("failed to credit refund: %w", err)
		}

		contract.Status = string(models.ContractBreached)
		if err := repos.Market.UpdateContract(contract); err != nil {
			return fmt.Errorf("failed to mark breach: %w", err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &refund, nil
}

func contractDurationDays(c *models.ComputeContract) int {
	return int(math.Ceil(c.DurationHours / 24))
}

// ReleaseEscrow moves any newly unlocked tranches to the seller. The engine
// reports a target state; this method pays out the difference between that
// target and what the contract has already released, so repeated calls on the
// same day move nothing.
func (s *marketServiceImpl) ReleaseEscrow(contractID uuid.UUID) (*EscrowStatus, error) {
	var status EscrowStatus

	err := s.repos.Tx.WithTransaction(func(repos *repository.Repositories) error {
		contract, err := repos.Market.GetContract(contractID)
		if err != nil {
			return apperrors.NotFound("contract not found", err)
		}
		if contract.Status != string(models.ContractActive) {
			return apperrors.Conflict("contract is not active", nil)
		}

		durationDays := contractDurationDays(contract)
		currentDay := int(s.clock.Now().Sub(contract.StartedAt).Hours() / 24)
		release := market.EscrowRelease(contract.TotalPrice, durationDays, currentDay, contract.PerformanceScore)

		upfront := money.RoundCents(contract.TotalPrice / 3)
		target := money.RoundCents(upfront + release.ImmediateRelease)
		delta := money.RoundCents(target - contract.ReleasedAmount)

		if delta > 0 {
			seller, err := repos.Company.GetByID(contract.SellerID)
			if err != nil {
				return apperrors.NotFound("seller not found", err)
			}
			seller.Cash = money.RoundCents(seller.Cash + delta)
			if err := repos.Company.Update(seller); err != nil {
				return fmt.Errorf("failed to credit tranche: %w", err)
			}
			contract.ReleasedAmount = target
		}

		if currentDay >= durationDays && contract.ReleasedAmount >= contract.TotalPrice {
			contract.Status = string(models.ContractCompleted)
		}
		if err := repos.Market.UpdateContract(contract); err != nil {
			return fmt.Errorf("failed to update contract: %w", err)
		}

		status = EscrowStatus{
			Contract:      contract,
			Release:       release,
			NewlyReleased: math.Max(0, delta),
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &status, nil
}

// CreateListing prices and publishes a model on the marketplace
func (s *marketServiceImpl) CreateListing(sellerID uuid.UUID, req *models.CreateListingRequest) (*models.ModelListing, error) {
	seller, err := s.repos.Company.GetByID(sellerID)
	if err != nil {
		return nil, apperrors.NotFound("seller not found", err)
	}
	if !seller.IsActive() {
		return nil, apperrors.CompanyInactive("listings require an active company", nil)
	}

	scores := market.BenchmarkScores{Accuracy: req.Accuracy, LatencyMs: req.LatencyMs}
	pricing := market.ModelPricing(req.Architecture, req.Size, req.Parameters, scores, seller.Reputation, 0)

	listing := &models.ModelListing{
		SellerID:      sellerID,
		Name:          req.Name,
		Architecture:  req.Architecture,
		Size:          req.Size,
		Parameters:    req.Parameters,
		Benchmarks:    models.Benchmarks{Accuracy: req.Accuracy, LatencyMs: req.LatencyMs},
		PerpetualUSD:  pricing.Perpetual,
		MonthlyUSD:    pricing.Monthly,
		PerAPICallUSD: pricing.PerAPICall,
		Status:        string(models.ListingActive),
	}
	if err := s.repos.Market.CreateListing(listing); err != nil {
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}
	return listing, nil
}

// GetListings retrieves active marketplace listings
func (s *marketServiceImpl) GetListings(limit, offset int) ([]models.ModelListing, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repos.Market.GetActiveListings(limit, offset)
}

// RecordSale counts a license sale and reprices the listing with the grown
// sales history
func (s *marketServiceImpl) RecordSale(listingID uuid.UUID) (*models.ModelListing, error) {
	var updated *models.ModelListing

	err := s.repos.Tx.WithTransaction(func(repos *repository.Repositories) error {
		listing, err := repos.Market.GetListing(listingID)
		if err != nil {
			return apperrors.NotFound("listing not found", err)
		}
		if listing.Status != string(models.ListingActive) {
			return apperrors.Conflict("listing is not active", nil)
		}

		seller, err := repos.Company.GetByID(listing.SellerID)
		if err != nil {
			return apperrors.NotFound("seller not found", err)
		}

		listing.SalesCount++
		scores := market.BenchmarkScores{Accuracy: listing.Benchmarks.Accuracy, LatencyMs: listing.Benchmarks.LatencyMs}
		pricing := market.ModelPricing(listing.Architecture, listing.Size, listing.Parameters, scores, seller.Reputation, listing.SalesCount)
		listing.PerpetualUSD = pricing.Perpetual
		listing.MonthlyUSD = pricing.Monthly
		listing.PerAPICallUSD = pricing.PerAPICall

		if err := repos.Market.UpdateListing(listing); err != nil {
			return fmt.Errorf("failed to update listing: %w", err)
		}

		seller.Cash = money.RoundCents(seller.Cash + listing.PerpetualUSD)
		if err := repos.Company.Update(seller); err != nil {
			return fmt.Errorf("failed to credit sale: %w", err)
		}
		updated = listing
		return nil
	})

	if err != nil {
		return nil, err
	}
	return updated, nil
}

// sellerRating derives a 1..5 rating from delivered contract performance.
// No completed contracts means the neutral 3.
func sellerRating(contracts []models.ComputeContract) (float64, int) {
	sum := 0.0
	n := 0
	for _, c := range contracts {
		if c.Status != string(models.ContractCompleted) {
			continue
		}
		sum += c.PerformanceScore
		n++
	}
	if n == 0 {
		return 3, 0
	}
	avgPerf := sum / float64(n)
	return 1 + avgPerf/100*4, n
}

// SellerStanding refreshes a seller's reputation from its delivery record and
// locates it in the marketplace hierarchy
func (s *marketServiceImpl) SellerStanding(sellerID uuid.UUID) (*SellerStanding, error) {
	seller, err := s.repos.Company.GetByID(sellerID)
	if err != nil {
		return nil, apperrors.NotFound("seller not found", err)
	}

	contracts, err := s.repos.Market.GetContractsBySeller(sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load contracts: %w", err)
	}

	completed := 0
	breaches := 0
	for _, c := range contracts {
		switch c.Status {
		case string(models.ContractCompleted):
			completed++
		case string(models.ContractBreached):
			breaches++
		}
	}
	rating, reviews := sellerRating(contracts)
	rep := market.SellerReputation(seller.Reputation, completed, breaches, rating, reviews)

	listings, err := s.repos.Market.GetActiveListings(100, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load listings: %w", err)
	}
	totalSales := 0
	for _, l := range listings {
		if l.SellerID == sellerID {
			totalSales += l.SalesCount
		}
	}

	marketAvg, err := s.repos.Market.AverageListingSales()
	if err != nil {
		return nil, fmt.Errorf("failed to load market average: %w", err)
	}

	position := market.MarketPosition(rep.NewReputation, float64(totalSales), rating, marketAvg)
	return &SellerStanding{
		Reputation: rep.NewReputation,
		Position:   position,
		TotalSales: totalSales,
	}, nil
}
