package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/magnatehq/magnate-server/internal/engine/achieve"
	apperrors "github.com/magnatehq/magnate-server/internal/errors"
	"github.com/magnatehq/magnate-server/internal/models"
	"github.com/magnatehq/magnate-server/internal/repository"
	"github.com/magnatehq/magnate-server/internal/rng"
)

// achievementServiceImpl implements AchievementService
type achievementServiceImpl struct {
	repos *repository.Repositories
	src   rng.RandomSource
	clock rng.Clock
}

// newAchievementService creates a new achievement service implementation
func newAchievementService(repos *repository.Repositories, src rng.RandomSource, clock rng.Clock) AchievementService {
	return &achievementServiceImpl{repos: repos, src: src, clock: clock}
}

// CreateMilestone registers a research target for a company
func (s *achievementServiceImpl) CreateMilestone(companyID uuid.UUID, m *models.Milestone) error {
	company, err := s.repos.Company.GetByID(companyID)
	if err != nil {
		return apperrors.NotFound("company not found", err)
	}
	if !company.IsActive() {
		return apperrors.CompanyInactive("milestones require an active company", nil)
	}

	m.CompanyID = companyID
	m.Achieved = false
	m.FailedAttempts = 0
	return s.repos.Company.CreateMilestone(m)
}

// GetMilestones retrieves all milestones for a company
func (s *achievementServiceImpl) GetMilestones(companyID uuid.UUID) ([]models.Milestone, error) {
	return s.repos.Company.GetMilestonesByCompany(companyID)
}

func attemptParams(company *models.Company, m *models.Milestone) achieve.Params {
	return achieve.Params{
		BaseRatePct:    m.BaseRatePct,
		ResearchPoints: company.ResearchPoints,
		AvgCapability:  company.Capabilities.Average(),
		AvgAlignment:   company.Alignment.Average(),
		FailedAttempts: m.FailedAttempts,
	}
}

// Probability previews the current success chance without drawing
func (s *achievementServiceImpl) Probability(milestoneID uuid.UUID) (*achieve.Breakdown, error) {
	m, err := s.repos.Company.GetMilestone(milestoneID)
	if err != nil {
		return nil, apperrors.NotFound("milestone not found", err)
	}
	company, err := s.repos.Company.GetByID(m.CompanyID)
	if err != nil {
		return nil, apperrors.NotFound("company not found", err)
	}

	b := achieve.ComputeProbability(attemptParams(company, m))
	return &b, nil
}

// AttemptMilestone resolves one attempt inside a transaction. The draw, the
// profile deltas, and the attempt counter commit together or not at all, so a
// result is never applied twice.
func (s *achievementServiceImpl) AttemptMilestone(milestoneID uuid.UUID) (*achieve.AttemptResult, error) {
	var result achieve.AttemptResult

	err := s.repos.Tx.WithTransaction(func(repos *repository.Repositories) error {
		m, err := repos.Company.GetMilestone(milestoneID)
		if err != nil {
			return apperrors.NotFound("milestone not found", err)
		}
		if m.Achieved {
			return apperrors.Conflict("milestone already achieved", nil)
		}

		company, err := repos.Company.GetByID(m.CompanyID)
		if err != nil {
			return apperrors.NotFound("company not found", err)
		}
		if !company.IsActive() {
			return apperrors.CompanyInactive("attempts require an active company", nil)
		}

		milestone := achieve.Milestone{
			Type:       m.Type,
			Class:      achieve.MilestoneClass(m.Class),
			Complexity: m.Complexity,
			Gap:        m.CapabilityGap,
		}
		result = achieve.ResolveAttempt(milestone, attemptParams(company, m), s.src)

		if result.Success {
			now := s.clock.Now()
			m.Achieved = true
			m.AchievedAt = &now
			company.Capabilities.Apply(result.CapabilityGain)
			company.Alignment.Apply(result.AlignmentChange)
			if err := repos.Company.Update(company); err != nil {
				return fmt.Errorf("failed to apply attempt outcome: %w", err)
			}
		} else {
			m.FailedAttempts++
		}

		if err := repos.Company.UpdateMilestone(m); err != nil {
			return fmt.Errorf("failed to record attempt: %w", err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &result, nil
}
