package services

import (
	"fmt"

	"github.com/magnatehq/magnate-server/internal/auth"
	apperrors "github.com/magnatehq/magnate-server/internal/errors"
	"github.com/magnatehq/magnate-server/internal/models"
	"github.com/magnatehq/magnate-server/internal/repository"
	"github.com/magnatehq/magnate-server/pkg/config"
)

// authServiceImpl implements AuthService
type authServiceImpl struct {
	repos      *repository.Repositories
	jwtService *auth.JWTService
	cfg        *config.Config
}

// newAuthService creates a new auth service implementation
func newAuthService(repos *repository.Repositories, cfg *config.Config) AuthService {
	return &authServiceImpl{
		repos:      repos,
		jwtService: auth.NewJWTService(cfg.JWTSecret),
		cfg:        cfg,
	}
}

// Register creates a new player account
func (s *authServiceImpl) Register(req *models.RegisterRequest) (*models.Player, error) {
	existing, err := s.repos.Player.GetByEmail(req.Email)
	if err == nil && existing != nil {
		return nil, apperrors.Conflict("player with this email already exists", nil)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	player := &models.Player{
		Email:        req.Email,
		DisplayName:  req.DisplayName,
		PasswordHash: hash,
		Role:         string(models.RolePlayer),
	}

	if err := s.repos.Player.Create(player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	player.PasswordHash = ""
	return player, nil
}

// Login authenticates a player and returns a token
func (s *authServiceImpl) Login(email, password string) (*models.LoginResponse, error) {
	player, err := s.repos.Player.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	if !auth.CheckPassword(password, player.PasswordHash) {
		return nil, fmt.Errorf("invalid credentials")
	}

	claims := auth.Claims{
		PlayerID: player.ID,
		Email:    player.Email,
		Role:     player.Role,
	}

	token, _, err := s.jwtService.GenerateToken(claims)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	player.PasswordHash = ""
	return &models.LoginResponse{
		Token:  token,
		Player: *player,
	}, nil
}

// ValidateToken validates a JWT token and returns the player it belongs to
func (s *authServiceImpl) ValidateToken(token string) (*models.Player, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	player, err := s.repos.Player.GetByID(claims.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("player not found: %w", err)
	}

	player.PasswordHash = ""
	return player, nil
}
