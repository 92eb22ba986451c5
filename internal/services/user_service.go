package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"job-board-api/internal/models"
	"job-board-api/internal/storage"
	"job-board-api/internal/transport/dto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type userService struct {
	repo              storage.UserRepository
	sessions          storage.SessionStore
	jwtSecret         string
	jwtExpiration     time.Duration
	refreshExpiration time.Duration
}

// NewUserService creates a new instance of UserService.
func NewUserService(
	repo storage.UserRepository,
	sessions storage.SessionStore,
	jwtSecret string,
	jwtExpiration time.Duration,
	refreshExpiration time.Duration,
) UserService {
	return &userService{
		repo:              repo,
		sessions:          sessions,
		jwtSecret:         jwtSecret,
		jwtExpiration:     jwtExpiration,
		refreshExpiration: refreshExpiration,
	}
}

func (s *userService) Register(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error) {
	user, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, mapRepoError(err, "creating user")
	}
	return user, nil
}

func (s *userService) Login(ctx context.Context, req *dto.LoginRequest) (*models.User, string, string, error) {
	emailReq := dto.GetUserByEmailRequest{Email: req.Email}
	user, err := s.repo.GetByEmail(ctx, &emailReq)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Printf("Login attempt failed for email %s: user not found", req.Email)
			return nil, "", "", ErrInvalidCredentials
		}
		log.Printf("Error fetching user by email %s during login: %v", req.Email, err)
		return nil, "", "", fmt.Errorf("internal error during login: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password))
	if err != nil {
		log.Printf("Login attempt failed for email %s: invalid password", req.Email)
		return nil, "", "", ErrInvalidCredentials
	}

	access, refresh, err := s.issueTokens(ctx, user.ID)
	if err != nil {
		return nil, "", "", err
	}
	return user, access, refresh, nil
}

// Refresh rotates the refresh token and issues a new access token.
func (s *userService) Refresh(ctx context.Context, req *dto.RefreshRequest) (string, string, error) {
	userID, err := s.sessions.Get(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", "", ErrInvalidCredentials
		}
		log.Printf("Error resolving refresh token: %v", err)
		return "", "", fmt.Errorf("internal error during refresh: %w", err)
	}

	if err := s.sessions.Delete(ctx, req.RefreshToken); err != nil {
		log.Printf("Error revoking rotated refresh token: %v", err)
		return "", "", fmt.Errorf("internal error during refresh: %w", err)
	}

	return s.issueTokens(ctx, userID)
}

func (s *userService) Logout(ctx context.Context, req *dto.LogoutRequest) error {
	if err := s.sessions.Delete(ctx, req.RefreshToken); err != nil {
		log.Printf("Error deleting refresh token on logout: %v", err)
		return fmt.Errorf("internal error during logout: %w", err)
	}
	return nil
}

func (s *userService) GetByID(ctx context.Context, req *dto.GetUserByIDRequest) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, req)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("internal error fetching user: %w", err)
	}
	return user, nil
}

func (s *userService) issueTokens(ctx context.Context, userID uuid.UUID) (string, string, error) {
	expirationTime := time.Now().Add(s.jwtExpiration)
	claims := &jwt.RegisteredClaims{
		Subject:   userID.String(),
		ExpiresAt: jwt.NewNumericDate(expirationTime),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		log.Printf("Error generating JWT token for user %s: %v", userID, err)
		return "", "", fmt.Errorf("failed to generate login token: %w", err)
	}

	refreshToken := uuid.NewString()
	if err := s.sessions.Save(ctx, refreshToken, userID, s.refreshExpiration); err != nil {
		log.Printf("Error saving refresh token for user %s: %v", userID, err)
		return "", "", fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return accessToken, refreshToken, nil
}
