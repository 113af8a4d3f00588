package models

import (
	"time"

	"github.com/google/uuid"
)

// Election represents a decided or in-progress race
type Election struct {
	ID               uuid.UUID  `json:"id" db:"id"`
	Office           string     `json:"office" db:"office"`
	RegisteredVoters int        `json:"registered_voters" db:"registered_voters"`
	Status           string     `json:"status" db:"status"`
	DecidedAt        *time.Time `json:"decided_at,omitempty" db:"decided_at"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
}

// ElectionStatus represents election lifecycle states
type ElectionStatus string

const (
	ElectionOpen    ElectionStatus = "open"
	ElectionDecided ElectionStatus = "decided"
	ElectionVoid    ElectionStatus = "void"
)

// ElectionCandidate represents one entrant in an election
type ElectionCandidate struct {
	ID         uuid.UUID `json:"id" db:"id"`
	ElectionID uuid.UUID `json:"election_id" db:"election_id"`
	CompanyID  uuid.UUID `json:"company_id" db:"company_id"`
	Name       string    `json:"name" db:"name"`
	Votes      int       `json:"votes" db:"votes"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// Bill represents a piece of legislation put to a vote
type Bill struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Yea       int       `json:"yea" db:"yea"`
	Nay       int       `json:"nay" db:"nay"`
	Abstain   int       `json:"abstain" db:"abstain"`
	Absent    int       `json:"absent" db:"absent"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CampaignDonation represents one donor's contribution record
type CampaignDonation struct {
	ID           uuid.UUID `json:"id" db:"id"`
	CandidateID  uuid.UUID `json:"candidate_id" db:"candidate_id"`
	CompanyID    uuid.UUID `json:"company_id" db:"company_id"`
	Amount       float64   `json:"amount" db:"amount"`
	Recurring    bool      `json:"recurring" db:"recurring"`
	MatchingGift bool      `json:"matching_gift" db:"matching_gift"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
