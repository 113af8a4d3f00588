package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/magnatehq/magnate-server/internal/models"
)

// playerRepository implements PlayerRepository
type playerRepository struct {
	db dbExecutor
}

// NewPlayerRepository creates a new player repository
func NewPlayerRepository(db dbExecutor) PlayerRepository {
	return &playerRepository{db: db}
}

// GetByID retrieves a player by ID
func (r *playerRepository) GetByID(id uuid.UUID) (*models.Player, error) {
	query := `
		SELECT id, email, display_name, password_hash, role, created_at, updated_at
		FROM players WHERE id = $1
	`

	player := &models.Player{}
	err := r.db.QueryRow(query, id).Scan(
		&player.ID, &player.Email, &player.DisplayName, &player.PasswordHash,
		&player.Role, &player.CreatedAt, &player.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("player not found")
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return player, nil
}

// GetByEmail retrieves a player by email
func (r *playerRepository) GetByEmail(email string) (*models.Player, error) {
	query := `
		SELECT id, email, display_name, password_hash, role, created_at, updated_at
		FROM players WHERE email = $1
	`

	player := &models.Player{}
	err := r.db.QueryRow(query, email).Scan(
		&player.ID, &player.Email, &player.DisplayName, &player.PasswordHash,
		&player.Role, &player.CreatedAt, &player.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("player with email %s not found", email)
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return player, nil
}

// Create creates a new player
func (r *playerRepository) Create(player *models.Player) error {
	if player.ID == uuid.Nil {
		player.ID = uuid.New()
	}

	now := time.Now()
	player.CreatedAt = now
	player.UpdatedAt = now

	query := `
		INSERT INTO players (id, email, display_name, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(query,
		player.ID, player.Email, player.DisplayName, player.PasswordHash,
		player.Role, player.CreatedAt, player.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}

	return nil
}

// Update updates an existing player
func (r *playerRepository) Update(player *models.Player) error {
	player.UpdatedAt = time.Now()

	query := `
		UPDATE players SET
			email = $2, display_name = $3, password_hash = $4, role = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(query,
		player.ID, player.Email, player.DisplayName, player.PasswordHash,
		player.Role, player.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("player not found")
	}

	return nil
}

// Delete deletes a player
func (r *playerRepository) Delete(id uuid.UUID) error {
	query := `DELETE FROM players WHERE id = $1`

	result, err := r.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("player not found")
	}

	return nil
}
