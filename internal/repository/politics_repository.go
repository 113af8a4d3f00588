package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/magnatehq/magnate-server/internal/models"
)

// politicsRepository implements PoliticsRepository
type politicsRepository struct {
	db dbExecutor
}

// NewPoliticsRepository creates a new politics repository
func NewPoliticsRepository(db dbExecutor) PoliticsRepository {
	return &politicsRepository{db: db}
}

// GetElection retrieves an election by ID
func (r *politicsRepository) GetElection(id uuid.UUID) (*models.Election, error) {
	query := `
		SELECT id, office, registered_voters, status, decided_at, created_at
		FROM elections WHERE id = $1
	`

	e := &models.Election{}
	err := r.db.QueryRow(query, id).Scan(
		&e.ID, &e.Office, &e.RegisteredVoters, &e.Status, &e.DecidedAt, &e.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("election not found")
		}
		return nil, fmt.Errorf("failed to get election: %w", err)
	}

	return e, nil
}

// CreateElection creates a new election
func (r *politicsRepository) CreateElection(e *models.Election) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	e.CreatedAt = time.Now()

	query := `
		INSERT INTO elections (id, office, registered_voters, status, decided_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(query,
		e.ID, e.Office, e.RegisteredVoters, e.Status, e.DecidedAt, e.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create election: %w", err)
	}

	return nil
}

// UpdateElection updates an existing election
func (r *politicsRepository) UpdateElection(e *models.Election) error {
	query := `
		UPDATE elections SET status = $2, decided_at = $3 WHERE id = $1
	`

	result, err := r.db.Exec(query, e.ID, e.Status, e.DecidedAt)
	if err != nil {
		return fmt.Errorf("failed to update election: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("election not found")
	}

	return nil
}

// GetCandidate retrieves an election candidate by ID
func (r *politicsRepository) GetCandidate(id uuid.UUID) (*models.ElectionCandidate, error) {
	query := `
		SELECT id, election_id, company_id, name, votes, created_at
		FROM election_candidates WHERE id = $1
	`

	c := &models.ElectionCandidate{}
	err := r.db.QueryRow(query, id).Scan(&c.ID, &c.ElectionID, &c.CompanyID, &c.Name, &c.Votes, &c.CreatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("candidate not found")
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}

	return c, nil
}

// GetCandidates retrieves all candidates in an election
func (r *politicsRepository) GetCandidates(electionID uuid.UUID) ([]models.ElectionCandidate, error) {
	query := `
		SELECT id, election_id, company_id, name, votes, created_at
		FROM election_candidates WHERE election_id = $1 ORDER BY created_at
	`

	rows, err := r.db.Query(query, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	var candidates []models.ElectionCandidate
	for rows.Next() {
		var c models.ElectionCandidate
		err := rows.Scan(&c.ID, &c.ElectionID, &c.CompanyID, &c.Name, &c.Votes, &c.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}

	return candidates, nil
}

// CreateCandidate creates a new election candidate
func (r *politicsRepository) CreateCandidate(c *models.ElectionCandidate) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()

	query := `
		INSERT INTO election_candidates (id, election_id, company_id, name, votes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(query, c.ID, c.ElectionID, c.CompanyID, c.Name, c.Votes, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create candidate: %w", err)
	}

	return nil
}

// UpdateCandidate updates an existing election candidate
func (r *politicsRepository) UpdateCandidate(c *models.ElectionCandidate) error {
	query := `UPDATE election_candidates SET votes = $2 WHERE id = $1`

	result, err := r.db.Exec(query, c.ID, c.Votes)
	if err != nil {
		return fmt.Errorf("failed to update candidate: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("candidate not found")
	}

	return nil
}

// GetBill retrieves a bill by ID
func (r *politicsRepository) GetBill(id uuid.UUID) (*models.Bill, error) {
	query := `
		SELECT id, title, yea, nay, abstain, absent, status, created_at
		FROM bills WHERE id = $1
	`

	b := &models.Bill{}
	err := r.db.QueryRow(query, id).Scan(
		&b.ID, &b.Title, &b.Yea, &b.Nay, &b.Abstain, &b.Absent, &b.Status, &b.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("bill not found")
		}
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	return b, nil
}

// CreateBill creates a new bill
func (r *politicsRepository) CreateBill(b *models.Bill) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	b.CreatedAt = time.Now()

	query := `
		INSERT INTO bills (id, title, yea, nay, abstain, absent, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(query,
		b.ID, b.Title, b.Yea, b.Nay, b.Abstain, b.Absent, b.Status, b.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create bill: %w", err)
	}

	return nil
}

// UpdateBill updates an existing bill
func (r *politicsRepository) UpdateBill(b *models.Bill) error {
	query := `
		UPDATE bills SET yea = $2, nay = $3, abstain = $4, absent = $5, status = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(query, b.ID, b.Yea, b.Nay, b.Abstain, b.Absent, b.Status)
	if err != nil {
		return fmt.Errorf("failed to update bill: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("bill not found")
	}

	return nil
}

// GetDonationsByCandidate retrieves all donations to a candidate
func (r *politicsRepository) GetDonationsByCandidate(candidateID uuid.UUID) ([]models.CampaignDonation, error) {
	query := `
		SELECT id, candidate_id, company_id, amount, recurring, matching_gift, created_at
		FROM campaign_donations WHERE candidate_id = $1 ORDER BY created_at
	`

	rows, err := r.db.Query(query, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to query donations: %w", err)
	}
	defer rows.Close()

	var donations []models.CampaignDonation
	for rows.Next() {
		var d models.CampaignDonation
		err := rows.Scan(
			&d.ID, &d.CandidateID, &d.CompanyID, &d.Amount,
			&d.Recurring, &d.MatchingGift, &d.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan donation: %w", err)
		}
		donations = append(donations, d)
	}

	return donations, nil
}

// CreateDonation creates a new campaign donation
func (r *politicsRepository) CreateDonation(d *models.CampaignDonation) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	d.CreatedAt = time.Now()

	query := `
		INSERT INTO campaign_donations (id, candidate_id, company_id, amount, recurring, matching_gift, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(query,
		d.ID, d.CandidateID, d.CompanyID, d.Amount, d.Recurring, d.MatchingGift, d.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create donation: %w", err)
	}

	return nil
}
