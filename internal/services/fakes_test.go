package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/magnatehq/magnate-server/internal/models"
	"github.com/magnatehq/magnate-server/internal/repository"
)

// In-memory repository fakes. Transactions are flattened: the fake manager
// hands the same stores back to the callback, which is enough to test
// service-level arithmetic and state transitions.

type fakeCompanyRepo struct {
	companies  map[uuid.UUID]*models.Company
	milestones map[uuid.UUID]*models.Milestone
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{
		companies:  make(map[uuid.UUID]*models.Company),
		milestones: make(map[uuid.UUID]*models.Milestone),
	}
}

func (r *fakeCompanyRepo) GetByID(id uuid.UUID) (*models.Company, error) {
	c, ok := r.companies[id]
	if !ok {
		return nil, fmt.Errorf("company not found")
	}
	copied := *c
	return &copied, nil
}

func (r *fakeCompanyRepo) GetByOwner(ownerID uuid.UUID) ([]models.Company, error) {
	var out []models.Company
	for _, c := range r.companies {
		if c.OwnerID == ownerID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCompanyRepo) Create(c *models.Company) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	copied := *c
	r.companies[c.ID] = &copied
	return nil
}

func (r *fakeCompanyRepo) Update(c *models.Company) error {
	if _, ok := r.companies[c.ID]; !ok {
		return fmt.Errorf("company not found")
	}
	copied := *c
	r.companies[c.ID] = &copied
	return nil
}

func (r *fakeCompanyRepo) Delete(id uuid.UUID) error {
	if _, ok := r.companies[id]; !ok {
		return fmt.Errorf("company not found")
	}
	delete(r.companies, id)
	return nil
}

func (r *fakeCompanyRepo) GetAll(filters repository.CompanyFilters) ([]models.Company, error) {
	var out []models.Company
	for _, c := range r.companies {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCompanyRepo) GetMilestone(id uuid.UUID) (*models.Milestone, error) {
	m, ok := r.milestones[id]
	if !ok {
		return nil, fmt.Errorf("milestone not found")
	}
	copied := *m
	return &copied, nil
}

func (r *fakeCompanyRepo) GetMilestonesByCompany(companyID uuid.UUID) ([]models.Milestone, error) {
	var out []models.Milestone
	for _, m := range r.milestones {
		if m.CompanyID == companyID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeCompanyRepo) CreateMilestone(m *models.Milestone) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	copied := *m
	r.milestones[m.ID] = &copied
	return nil
}

func (r *fakeCompanyRepo) UpdateMilestone(m *models.Milestone) error {
	if _, ok := r.milestones[m.ID]; !ok {
		return fmt.Errorf("milestone not found")
	}
	copied := *m
	r.milestones[m.ID] = &copied
	return nil
}

type fakeFinanceRepo struct {
	loans       map[uuid.UUID]*models.Loan
	investments map[uuid.UUID]*models.Investment
}

func newFakeFinanceRepo() *fakeFinanceRepo {
	return &fakeFinanceRepo{
		loans:       make(map[uuid.UUID]*models.Loan),
		investments: make(map[uuid.UUID]*models.Investment),
	}
}

func (r *fakeFinanceRepo) GetLoan(id uuid.UUID) (*models.Loan, error) {
	l, ok := r.loans[id]
	if !ok {
		return nil, fmt.Errorf("loan not found")
	}
	copied := *l
	return &copied, nil
}

func (r *fakeFinanceRepo) GetLoansByCompany(companyID uuid.UUID) ([]models.Loan, error) {
	var out []models.Loan
	for _, l := range r.loans {
		if l.CompanyID == companyID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *fakeFinanceRepo) CreateLoan(l *models.Loan) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	copied := *l
	r.loans[l.ID] = &copied
	return nil
}

func (r *fakeFinanceRepo) UpdateLoan(l *models.Loan) error {
	if _, ok := r.loans[l.ID]; !ok {
		return fmt.Errorf("loan not found")
	}
	copied := *l
	r.loans[l.ID] = &copied
	return nil
}

func (r *fakeFinanceRepo) GetInvestment(id uuid.UUID) (*models.Investment, error) {
	inv, ok := r.investments[id]
	if !ok {
		return nil, fmt.Errorf("investment not found")
	}
	copied := *inv
	return &copied, nil
}

func (r *fakeFinanceRepo) GetInvestmentsByCompany(companyID uuid.UUID) ([]models.Investment, error) {
	var out []models.Investment
	for _, inv := range r.investments {
		if inv.CompanyID == companyID {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (r *fakeFinanceRepo) CreateInvestment(inv *models.Investment) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	copied := *inv
	r.investments[inv.ID] = &copied
	return nil
}

func (r *fakeFinanceRepo) UpdateInvestment(inv *models.Investment) error {
	if _, ok := r.investments[inv.ID]; !ok {
		return fmt.Errorf("investment not found")
	}
	copied := *inv
	r.investments[inv.ID] = &copied
	return nil
}

type fakeMarketRepo struct {
	contracts map[uuid.UUID]*models.ComputeContract
	listings  map[uuid.UUID]*models.ModelListing
}

func newFakeMarketRepo() *fakeMarketRepo {
	return &fakeMarketRepo{
		contracts: make(map[uuid.UUID]*models.ComputeContract),
		listings:  make(map[uuid.UUID]*models.ModelListing),
	}
}

func (r *fakeMarketRepo) GetContract(id uuid.UUID) (*models.ComputeContract, error) {
	c, ok := r.contracts[id]
	if !ok {
		return nil, fmt.Errorf("contract not found")
	}
	copied := *c
	return &copied, nil
}

func (r *fakeMarketRepo) GetContractsBySeller(sellerID uuid.UUID) ([]models.ComputeContract, error) {
	var out []models.ComputeContract
	for _, c := range r.contracts {
		if c.SellerID == sellerID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeMarketRepo) CreateContract(c *models.ComputeContract) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	copied := *c
	r.contracts[c.ID] = &copied
	return nil
}

func (r *fakeMarketRepo) UpdateContract(c *models.ComputeContract) error {
	if _, ok := r.contracts[c.ID]; !ok {
		return fmt.Errorf("contract not found")
	}
	copied := *c
	r.contracts[c.ID] = &copied
	return nil
}

func (r *fakeMarketRepo) GetListing(id uuid.UUID) (*models.ModelListing, error) {
	l, ok := r.listings[id]
	if !ok {
		return nil, fmt.Errorf("listing not found")
	}
	copied := *l
	return &copied, nil
}

func (r *fakeMarketRepo) GetActiveListings(limit, offset int) ([]models.ModelListing, error) {
	var out []models.ModelListing
	for _, l := range r.listings {
		if l.Status == string(models.ListingActive) {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *fakeMarketRepo) CreateListing(l *models.ModelListing) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	copied := *l
	r.listings[l.ID] = &copied
	return nil
}

func (r *fakeMarketRepo) UpdateListing(l *models.ModelListing) error {
	if _, ok := r.listings[l.ID]; !ok {
		return fmt.Errorf("listing not found")
	}
	copied := *l
	r.listings[l.ID] = &copied
	return nil
}

func (r *fakeMarketRepo) AverageListingSales() (float64, error) {
	total := 0
	n := 0
	for _, l := range r.listings {
		if l.Status == string(models.ListingActive) {
			total += l.SalesCount
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return float64(total) / float64(n), nil
}

type fakePoliticsRepo struct {
	elections  map[uuid.UUID]*models.Election
	candidates map[uuid.UUID]*models.ElectionCandidate
	bills      map[uuid.UUID]*models.Bill
	donations  map[uuid.UUID]*models.CampaignDonation
}

func newFakePoliticsRepo() *fakePoliticsRepo {
	return &fakePoliticsRepo{
		elections:  make(map[uuid.UUID]*models.Election),
		candidates: make(map[uuid.UUID]*models.ElectionCandidate),
		bills:      make(map[uuid.UUID]*models.Bill),
		donations:  make(map[uuid.UUID]*models.CampaignDonation),
	}
}

func (r *fakePoliticsRepo) GetElection(id uuid.UUID) (*models.Election, error) {
	e, ok := r.elections[id]
	if !ok {
		return nil, fmt.Errorf("election not found")
	}
	copied := *e
	return &copied, nil
}

func (r *fakePoliticsRepo) CreateElection(e *models.Election) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	copied := *e
	r.elections[e.ID] = &copied
	return nil
}

func (r *fakePoliticsRepo) UpdateElection(e *models.Election) error {
	if _, ok := r.elections[e.ID]; !ok {
		return fmt.Errorf("election not found")
	}
	copied := *e
	r.elections[e.ID] = &copied
	return nil
}

func (r *fakePoliticsRepo) GetCandidate(id uuid.UUID) (*models.ElectionCandidate, error) {
	c, ok := r.candidates[id]
	if !ok {
		return nil, fmt.Errorf("candidate not found")
	}
	copied := *c
	return &copied, nil
}

func (r *fakePoliticsRepo) GetCandidates(electionID uuid.UUID) ([]models.ElectionCandidate, error) {
	var out []models.ElectionCandidate
	for _, c := range r.candidates {
		if c.ElectionID == electionID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakePoliticsRepo) CreateCandidate(c *models.ElectionCandidate) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	copied := *c
	r.candidates[c.ID] = &copied
	return nil
}

func (r *fakePoliticsRepo) UpdateCandidate(c *models.ElectionCandidate) error {
	if _, ok := r.candidates[c.ID]; !ok {
		return fmt.Errorf("candidate not found")
	}
	copied := *c
	r.candidates[c.ID] = &copied
	return nil
}

func (r *fakePoliticsRepo) GetBill(id uuid.UUID) (*models.Bill, error) {
	b, ok := r.bills[id]
	if !ok {
		return nil, fmt.Errorf("bill not found")
	}
	copied := *b
	return &copied, nil
}

func (r *fakePoliticsRepo) CreateBill(b *models.Bill) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	copied := *b
	r.bills[b.ID] = &copied
	return nil
}

func (r *fakePoliticsRepo) UpdateBill(b *models.Bill) error {
	if _, ok := r.bills[b.ID]; !ok {
		return fmt.Errorf("bill not found")
	}
	copied := *b
	r.bills[b.ID] = &copied
	return nil
}

func (r *fakePoliticsRepo) GetDonationsByCandidate(candidateID uuid.UUID) ([]models.CampaignDonation, error) {
	var out []models.CampaignDonation
	for _, d := range r.donations {
		if d.CandidateID == candidateID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *fakePoliticsRepo) CreateDonation(d *models.CampaignDonation) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	copied := *d
	r.donations[d.ID] = &copied
	return nil
}

type fakeEmissionsRepo struct {
	assets map[uuid.UUID]*models.EmissionAsset
}

func newFakeEmissionsRepo() *fakeEmissionsRepo {
	return &fakeEmissionsRepo{assets: make(map[uuid.UUID]*models.EmissionAsset)}
}

func (r *fakeEmissionsRepo) GetAssetsByCompany(companyID uuid.UUID) ([]models.EmissionAsset, error) {
	var out []models.EmissionAsset
	for _, a := range r.assets {
		if a.CompanyID == companyID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeEmissionsRepo) CreateAsset(a *models.EmissionAsset) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	copied := *a
	r.assets[a.ID] = &copied
	return nil
}

func (r *fakeEmissionsRepo) UpdateAsset(a *models.EmissionAsset) error {
	if _, ok := r.assets[a.ID]; !ok {
		return fmt.Errorf("asset not found")
	}
	copied := *a
	r.assets[a.ID] = &copied
	return nil
}

func (r *fakeEmissionsRepo) DeleteAsset(id uuid.UUID) error {
	if _, ok := r.assets[id]; !ok {
		return fmt.Errorf("asset not found")
	}
	delete(r.assets, id)
	return nil
}

type fakeTxManager struct {
	repos *repository.Repositories
}

func (m *fakeTxManager) WithTransaction(fn func(repos *repository.Repositories) error) error {
	return fn(m.repos)
}

func newFakeRepositories() *repository.Repositories {
	repos := &repository.Repositories{
		Company:   newFakeCompanyRepo(),
		Finance:   newFakeFinanceRepo(),
		Market:    newFakeMarketRepo(),
		Politics:  newFakePoliticsRepo(),
		Emissions: newFakeEmissionsRepo(),
	}
	repos.Tx = &fakeTxManager{repos: repos}
	return repos
}
