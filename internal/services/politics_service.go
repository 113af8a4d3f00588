package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/magnatehq/magnate-server/internal/engine/politics"
	apperrors "github.com/magnatehq/magnate-server/internal/errors"
	"github.com/magnatehq/magnate-server/internal/models"
	"github.com/magnatehq/magnate-server/internal/money"
	"github.com/magnatehq/magnate-server/internal/repository"
	"github.com/magnatehq/magnate-server/internal/rng"
)

// politicsServiceImpl implements PoliticsService
type politicsServiceImpl struct {
	repos *repository.Repositories
	clock rng.Clock
}

// newPoliticsService creates a new politics service implementation
func newPoliticsService(repos *repository.Repositories, clock rng.Clock) PoliticsService {
	return &politicsServiceImpl{repos: repos, clock: clock}
}

// CreateElection opens a race for an office
func (s *politicsServiceImpl) CreateElection(office string, registeredVoters int) (*models.Election, error) {
	if registeredVoters < 0 {
		return nil, apperrors.InvalidInput("registered voters cannot be negative", nil)
	}
	election := &models.Election{
		Office:           office,
		RegisteredVoters: registeredVoters,
		Status:           string(models.ElectionOpen),
	}
	if err := s.repos.Politics.CreateElection(election); err != nil {
		return nil, fmt.Errorf("failed to create election: %w", err)
	}
	return election, nil
}

// AddCandidate enters a company's candidate into an open race
func (s *politicsServiceImpl) AddCandidate(electionID, companyID uuid.UUID, name string) (*models.ElectionCandidate, error) {
	election, err := s.repos.Politics.GetElection(electionID)
	if err != nil {
		return nil, apperrors.NotFound("election not found", err)
	}
	if election.Status != string(models.ElectionOpen) {
		return nil, apperrors.Conflict("election is not open", nil)
	}

	candidate := &models.ElectionCandidate{
		ElectionID: electionID,
		CompanyID:  companyID,
		Name:       name,
	}
	if err := s.repos.Politics.CreateCandidate(candidate); err != nil {
		return nil, fmt.Errorf("failed to create candidate: %w", err)
	}
	return candidate, nil
}

// CastVotes adds votes to a candidate's running total
func (s *politicsServiceImpl) CastVotes(candidateID uuid.UUID, votes int) (*models.ElectionCandidate, error) {
	if votes <= 0 {
		return nil, apperrors.InvalidInput("votes must be positive", nil)
	}

	c, err := s.repos.Politics.GetCandidate(candidateID)
	if err != nil {
		return nil, apperrors.NotFound("candidate not found", err)
	}

	election, err := s.repos.Politics.GetElection(c.ElectionID)
	if err != nil {
		return nil, apperrors.NotFound("election not found", err)
	}
	if election.Status != string(models.ElectionOpen) {
		return nil, apperrors.Conflict("election is not open", nil)
	}

	c.Votes += votes
	if err := s.repos.Politics.UpdateCandidate(c); err != nil {
		return nil, fmt.Errorf("failed to record votes: %w", err)
	}
	return c, nil
}

// DecideElection closes a race and computes the results. A race nobody voted
// in is voided rather than decided.
func (s *politicsServiceImpl) DecideElection(electionID uuid.UUID) (*politics.ElectionResults, error) {
	var results *politics.ElectionResults

	err := s.repos.Tx.WithTransaction(func(repos *repository.Repositories) error {
		election, err := repos.Politics.GetElection(electionID)
		if err != nil {
			return apperrors.NotFound("election not found", err)
		}
		if election.Status != string(models.ElectionOpen) {
			return apperrors.Conflict("election already decided", nil)
		}

		candidates, err := repos.Politics.GetCandidates(electionID)
		if err != nil {
			return fmt.Errorf("failed to load candidates: %w", err)
		}

		entrants := make([]politics.Candidate, 0, len(candidates))
		for _, c := range candidates {
			entrants = append(entrants, politics.Candidate{
				ID:    c.ID.String(),
				Name:  c.Name,
				Votes: c.Votes,
			})
		}

		results = politics.CalculateElectionResults(entrants, election.RegisteredVoters)
		now := s.clock.Now()
		election.DecidedAt = &now
		if results == nil {
			election.Status = string(models.ElectionVoid)
		} else {
			election.Status = string(models.ElectionDecided)
		}
		if err := repos.Politics.UpdateElection(election); err != nil {
			return fmt.Errorf("failed to close election: %w", err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return results, nil
}

// CreateBill registers a bill before its floor vote
func (s *politicsServiceImpl) CreateBill(title string) (*models.Bill, error) {
	bill := &models.Bill{
		Title:  title,
		Status: "pending",
	}
	if err := s.repos.Politics.CreateBill(bill); err != nil {
		return nil, fmt.Errorf("failed to create bill: %w", err)
	}
	return bill, nil
}

// RecordBillVotes stores a floor vote tally
func (s *politicsServiceImpl) RecordBillVotes(billID uuid.UUID, tally politics.VoteTally) (*models.Bill, error) {
	bill, err := s.repos.Politics.GetBill(billID)
	if err != nil {
		return nil, apperrors.NotFound("bill not found", err)
	}

	bill.Yea = tally.Yea
	bill.Nay = tally.Nay
	bill.Abstain = tally.Abstain
	bill.Absent = tally.Absent
	if tally.Yea > tally.Nay {
		bill.Status = "passed"
	} else {
		bill.Status = "failed"
	}
	if err := s.repos.Politics.UpdateBill(bill); err != nil {
		return nil, fmt.Errorf("failed to record votes: %w", err)
	}
	return bill, nil
}

// BillSupport reports the yea share of cast votes for a bill
func (s *politicsServiceImpl) BillSupport(billID uuid.UUID) (float64, error) {
	bill, err := s.repos.Politics.GetBill(billID)
	if err != nil {
		return 0, apperrors.NotFound("bill not found", err)
	}
	return politics.CalculateBillSupportLevel(politics.VoteTally{
		Yea:     bill.Yea,
		Nay:     bill.Nay,
		Abstain: bill.Abstain,
		Absent:  bill.Absent,
	}), nil
}

// Donate records a campaign contribution, debiting the donor company
func (s *politicsServiceImpl) Donate(candidateID, companyID uuid.UUID, amount float64, recurring, matching bool) (*models.CampaignDonation, error) {
	if amount <= 0 {
		return nil, apperrors.InvalidInput("donation amount must be positive", nil)
	}

	var donation *models.CampaignDonation

	err := s.repos.Tx.WithTransaction(func(repos *repository.Repositories) error {
		company, err := repos.Company.GetByID(companyID)
		if err != nil {
			return apperrors.NotFound("company not found", err)
		}
		if company.Cash < amount {
			return apperrors.InsufficientFunds(
				fmt.Sprintf("donation of %.2f exceeds available cash %.2f", amount, company.Cash), nil)
		}

		donation = &models.CampaignDonation{
			CandidateID:  candidateID,
			CompanyID:    companyID,
			Amount:       amount,
			Recurring:    recurring,
			MatchingGift: matching,
		}
		if err := repos.Politics.CreateDonation(donation); err != nil {
			return fmt.Errorf("failed to create donation: %w", err)
		}

		company.Cash = money.RoundCents(company.Cash - amount)
		if err := repos.Company.Update(company); err != nil {
			return fmt.Errorf("failed to debit donation: %w", err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return donation, nil
}

// DonorImpact ranks one donation against a candidate's full donor book
func (s *politicsServiceImpl) DonorImpact(candidateID, donationID uuid.UUID) (float64, error) {
	donations, err := s.repos.Politics.GetDonationsByCandidate(candidateID)
	if err != nil {
		return 0, fmt.Errorf("failed to load donations: %w", err)
	}

	var target *models.CampaignDonation
	allDonors := make([]politics.Donor, 0, len(donations))
	for i, d := range donations {
		allDonors = append(allDonors, politics.Donor{
			ID:           d.ID.String(),
			Amount:       d.Amount,
			Recurring:    d.Recurring,
			MatchingGift: d.MatchingGift,
		})
		if d.ID == donationID {
			target = &donations[i]
		}
	}
	if target == nil {
		return 0, apperrors.NotFound("donation not found", nil)
	}

	donor := politics.Donor{
		ID:           target.ID.String(),
		Amount:       target.Amount,
		Recurring:    target.Recurring,
		MatchingGift: target.MatchingGift,
	}
	return politics.CalculateDonorImpact(donor, allDonors), nil
}

// DistrictInfluence grades a candidate's hold on a district
func (s *politicsServiceImpl) DistrictInfluence(p politics.DistrictProfile) float64 {
	return politics.CalculateDistrictInfluence(p)
}

// OutreachEffectiveness grades a voter-contact campaign
func (s *politicsServiceImpl) OutreachEffectiveness(contacted, converted int, spend, votersGainedValue float64) politics.OutreachResult {
	return politics.CalculateOutreachEffectiveness(contacted, converted, spend, votersGainedValue)
}

// CampaignPerformance blends a cycle's aggregate figures into a grade
func (s *politicsServiceImpl) CampaignPerformance(in politics.CampaignInputs) float64 {
	return politics.CalculateCampaignPerformance(in)
}
