package services

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/magnatehq/magnate-server/internal/engine/credit"
	"github.com/magnatehq/magnate-server/internal/engine/invest"
	apperrors "github.com/magnatehq/magnate-server/internal/errors"
	"github.com/magnatehq/magnate-server/internal/models"
	"github.com/magnatehq/magnate-server/internal/money"
	"github.com/magnatehq/magnate-server/internal/repository"
	"github.com/magnatehq/magnate-server/internal/rng"
)

// financeServiceImpl implements FinanceService
type financeServiceImpl struct {
	repos *repository.Repositories
	src   rng.RandomSource
	clock rng.Clock
}

// newFinanceService creates a new finance service implementation
func newFinanceService(repos *repository.Repositories, src rng.RandomSource, clock rng.Clock) FinanceService {
	return &financeServiceImpl{repos: repos, src: src, clock: clock}
}

// scoreInputs derives the bureau factors from a company's books. Each factor
// is normalized to [0,100] before weighting.
func scoreInputs(company *models.Company, loans []models.Loan, now rng.Clock) credit.ScoreInputs {
	totalPayments := 0
	defaulted := 0
	activeBalance := 0.0
	loanTypes := map[string]bool{}
	recentOriginations := 0

	for _, l := range loans {
		totalPayments += l.PaymentsMade
		if l.Status == string(models.LoanDefaulted) {
			defaulted++
		}
		if l.Status == string(models.LoanActive) {
			activeBalance += l.RemainingBalance
		}
		loanTypes[l.LoanType] = true
		if now.Now().Sub(l.CreatedAt).Hours() < 90*24 {
			recentOriginations++
		}
	}

	// On-time record: full marks with no defaults, each default costs 40.
	paymentHistory := money.Clamp(100-float64(defaulted)*40, 0, 100)
	if totalPayments == 0 && len(loans) == 0 {
		paymentHistory = 70 // thin file
	}

	// Utilization measured against equity.
	utilization := 100.0
	if company.Equity > 0 {
		utilization = money.Clamp(100-activeBalance/company.Equity*100, 0, 100)
	} else if activeBalance > 0 {
		utilization = 0
	}

	ageYears := now.Now().Sub(company.CreatedAt).Hours() / 24 / 365.25
	companyAge := money.Clamp(ageYears*20, 0, 100) // 5 years to max out

	creditMix := money.Clamp(float64(len(loanTypes))*34, 0, 100)

	inquiries := money.Clamp(100-float64(recentOriginations)*25, 0, 100)

	return credit.ScoreInputs{
		PaymentHistory:    paymentHistory,
		CreditUtilization: utilization,
		CompanyAge:        companyAge,
		CreditMix:         creditMix,
		RecentInquiries:   inquiries,
	}
}

// CreditScore computes a company's current score with its factor breakdown
func (s *financeServiceImpl) CreditScore(companyID uuid.UUID) (int, []credit.ScoreBreakdown, error) {
	company, err := s.repos.Company.GetByID(companyID)
	if err != nil {
		return 0, nil, apperrors.NotFound("company not found", err)
	}
	loans, err := s.repos.Finance.GetLoansByCompany(companyID)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to load loans: %w", err)
	}

	score, breakdown := credit.CalculateCreditScore(scoreInputs(company, loans, s.clock))
	return score, breakdown, nil
}

// ApplyForLoan runs the approval gate and, on approval, books the loan and
// credits the proceeds in one transaction. A rejection is a result, not an
// error; the loan pointer is nil.
func (s *financeServiceImpl) ApplyForLoan(companyID uuid.UUID, req *models.LoanApplicationRequest) (*credit.Decision, *models.Loan, error) {
	var decision credit.Decision
	var loan *models.Loan

	err := s.repos.Tx.WithTransaction(func(repos *repository.Repositories) error {
		company, err := repos.Company.GetByID(companyID)
		if err != nil {
			return apperrors.NotFound("company not found", err)
		}
		if !company.IsActive() {
			return apperrors.CompanyInactive("loans require an active company", nil)
		}

		loans, err := repos.Finance.GetLoansByCompany(companyID)
		if err != nil {
			return fmt.Errorf("failed to load loans: %w", err)
		}

		score, _ := credit.CalculateCreditScore(scoreInputs(company, loans, s.clock))
		app := credit.Application{
			Amount:         req.Amount,
			TermMonths:     req.TermMonths,
			LoanType:       req.LoanType,
			MonthlyRevenue: company.MonthlyRevenue,
		}
		decision = credit.EvaluateApplication(app, score, company.DebtToEquity(), company.Cash)
		if !decision.Approved {
			return nil
		}

		loan = &models.Loan{
			CompanyID:        companyID,
			LoanType:         req.LoanType,
			Principal:        req.Amount,
			InterestRatePct:  decision.InterestRate,
			TermMonths:       req.TermMonths,
			MonthlyPayment:   decision.MonthlyPayment,
			RemainingBalance: req.Amount,
			Status:           string(models.LoanActive),
		}
		if err := repos.Finance.CreateLoan(loan); err != nil {
			return fmt.Errorf("failed to create loan: %w", err)
		}

		company.Cash = money.RoundCents(company.Cash + req.Amount)
		company.TotalDebt = money.RoundCents(company.TotalDebt + req.Amount)
		if err := repos.Company.Update(company); err != nil {
			return fmt.Errorf("failed to credit loan proceeds: %w", err)
		}
		return nil
	})

	if err != nil {
		return nil, nil, err
	}
	return &decision, loan, nil
}

// MakeLoanPayment applies one scheduled payment: interest accrues on the
// remaining balance, the rest retires principal. The final payment clears the
// balance exactly and flips the loan to paid off.
func (s *financeServiceImpl) MakeLoanPayment(loanID uuid.UUID) (*models.Loan, error) {
	var updated *models.Loan

	err := s.repos.Tx.WithTransaction(func(repos *repository.Repositories) error {
		loan, err := repos.Finance.GetLoan(loanID)
		if err != nil {
			return apperrors.NotFound("loan not found", err)
		}
		if loan.Status != string(models.LoanActive) {
			return apperrors.Conflict("loan is not active", nil)
		}

		company, err := repos.Company.GetByID(loan.CompanyID)
		if err != nil {
			return apperrors.NotFound("company not found", err)
		}

		interest := money.RoundCents(loan.RemainingBalance * loan.InterestRatePct / 100 / 12)
		principalPart := money.RoundCents(loan.MonthlyPayment - interest)
		payment := loan.MonthlyPayment
		if principalPart >= loan.RemainingBalance {
			principalPart = loan.RemainingBalance
			payment = money.RoundCents(principalPart + interest)
		}

		if company.Cash < payment {
			return apperrors.InsufficientFunds(
				fmt.Sprintf("payment of %.2f exceeds available cash %.2f", payment, company.Cash), nil)
		}

		company.Cash = money.RoundCents(company.Cash - payment)
		company.TotalDebt = money.RoundCents(math.Max(0, company.TotalDebt-principalPart))
		loan.RemainingBalance = money.RoundCents(loan.RemainingBalance - principalPart)
		loan.PaymentsMade++
		if loan.RemainingBalance <= 0 {
			loan.RemainingBalance = 0
			loan.Status = string(models.LoanPaidOff)
		}

		if err := repos.Finance.UpdateLoan(loan); err != nil {
			return fmt.Errorf("failed to update loan: %w", err)
		}
		if err := repos.Company.Update(company); err != nil {
			return fmt.Errorf("failed to debit payment: %w", err)
		}
		updated = loan
		return nil
	})

	if err != nil {
		return nil, err
	}
	return updated, nil
}

// AmortizationSchedule expands a booked loan into its monthly rows
func (s *financeServiceImpl) AmortizationSchedule(loanID uuid.UUID) ([]credit.PaymentRow, error) {
	loan, err := s.repos.Finance.GetLoan(loanID)
	if err != nil {
		return nil, apperrors.NotFound("loan not found", err)
	}
	return credit.AmortizationSchedule(loan.Principal, loan.InterestRatePct, loan.TermMonths), nil
}

// GetLoans retrieves all loans for a company
func (s *financeServiceImpl) GetLoans(companyID uuid.UUID) ([]models.Loan, error) {
	return s.repos.Finance.GetLoansByCompany(companyID)
}

// CreateInvestment books an investment, sampling its fixed return rate and
// debiting the principal in one transaction
func (s *financeServiceImpl) CreateInvestment(companyID uuid.UUID, req *models.CreateInvestmentRequest) (*models.Investment, error) {
	var record *models.Investment

	err := s.repos.Tx.WithTransaction(func(repos *repository.Repositories) error {
		company, err := repos.Company.GetByID(companyID)
		if err != nil {
			return apperrors.NotFound("company not found", err)
		}
		if !company.IsActive() {
			return apperrors.CompanyInactive("investments require an active company", nil)
		}
		if company.Cash < req.Amount {
			return apperrors.InsufficientFunds(
				fmt.Sprintf("investment of %.2f exceeds available cash %.2f", req.Amount, company.Cash), nil)
		}

		inv, err := invest.Create(req.Amount, invest.RiskLevel(req.RiskLevel), invest.InstrumentType(req.Type), s.src, s.clock)
		if err != nil {
			return apperrors.InvalidInput(err.Error(), err)
		}

		record = &models.Investment{
			CompanyID:    companyID,
			Type:         string(inv.Type),
			RiskLevel:    string(inv.RiskLevel),
			Amount:       inv.Amount,
			ReturnRate:   inv.ReturnRate,
			CurrentValue: inv.CurrentValue,
			MaturityDate: inv.MaturityDate,
			Status:       string(models.InvestmentActive),
			CreatedAt:    inv.CreatedAt,
		}
		if err := repos.Finance.CreateInvestment(record); err != nil {
			return fmt.Errorf("failed to create investment: %w", err)
		}

		company.Cash = money.RoundCents(company.Cash - inv.Amount)
		if err := repos.Company.Update(company); err != nil {
			return fmt.Errorf("failed to debit principal: %w", err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return record, nil
}

func engineInvestment(inv models.Investment) invest.Investment {
	return invest.Investment{
		Amount:       inv.Amount,
		RiskLevel:    invest.RiskLevel(inv.RiskLevel),
		Type:         invest.InstrumentType(inv.Type),
		ReturnRate:   inv.ReturnRate,
		CurrentValue: inv.CurrentValue,
		MaturityDate: inv.MaturityDate,
		CreatedAt:    inv.CreatedAt,
	}
}

// GetPortfolio revalues a company's investments as of now, persists the
// refreshed values, marks passed maturities, and reports the total value
func (s *financeServiceImpl) GetPortfolio(companyID uuid.UUID) ([]models.Investment, float64, error) {
	investments, err := s.repos.Finance.GetInvestmentsByCompany(companyID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load investments: %w", err)
	}

	now := s.clock.Now()
	total := 0.0
	for i := range investments {
		inv := &investments[i]
		if inv.Status == string(models.InvestmentLiquidated) {
			continue
		}
		inv.CurrentValue = invest.ValueAt(engineInvestment(*inv), now)
		if inv.MaturityDate != nil && !now.Before(*inv.MaturityDate) && inv.Status == string(models.InvestmentActive) {
			inv.Status = string(models.InvestmentMatured)
		}
		if err := s.repos.Finance.UpdateInvestment(inv); err != nil {
			return nil, 0, fmt.Errorf("failed to refresh investment: %w", err)
		}
		total += inv.CurrentValue
	}

	return investments, money.RoundCents(total), nil
}

// LiquidateInvestment cashes out an investment at its current value
func (s *financeServiceImpl) LiquidateInvestment(investmentID uuid.UUID) (*models.Investment, error) {
	var updated *models.Investment

	err := s.repos.Tx.WithTransaction(func(repos *repository.Repositories) error {
		inv, err := repos.Finance.GetInvestment(investmentID)
		if err != nil {
			return apperrors.NotFound("investment not found", err)
		}
		if inv.Status == string(models.InvestmentLiquidated) {
			return apperrors.Conflict("investment already liquidated", nil)
		}

		company, err := repos.Company.GetByID(inv.CompanyID)
		if err != nil {
			return apperrors.NotFound("company not found", err)
		}

		value := invest.ValueAt(engineInvestment(*inv), s.clock.Now())
		inv.CurrentValue = value
		inv.Status = string(models.InvestmentLiquidated)
		if err := repos.Finance.UpdateInvestment(inv); err != nil {
			return fmt.Errorf("failed to update investment: %w", err)
		}

		company.Cash = money.RoundCents(company.Cash + value)
		if err := repos.Company.Update(company); err != nil {
			return fmt.Errorf("failed to credit proceeds: %w", err)
		}
		updated = inv
		return nil
	})

	if err != nil {
		return nil, err
	}
	return updated, nil
}
