package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rafael/coursehub/internal/app/models"
	"github.com/rafael/coursehub/internal/app/models/dto"
	"github.com/rafael/coursehub/internal/app/repositories"
	"github.com/rafael/coursehub/internal/db"
	"github.com/rafael/coursehub/internal/pkg/apperrors"
	"github.com/rafael/coursehub/internal/pkg/auth"
	"github.com/rafael/coursehub/internal/pkg/logger"
)

// AuthService handles registration, login and token lifecycle
type AuthService struct {
	database         *db.PostgresDB
	userRepo         *repositories.UserRepository
	tokenRepo        *repositories.TokenRepository
	organizationRepo *repositories.OrganizationRepository
	associateRepo    *repositories.AssociateRepository
	jwtService       *auth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(
	database *db.PostgresDB,
	userRepo *repositories.UserRepository,
	tokenRepo *repositories.TokenRepository,
	organizationRepo *repositories.OrganizationRepository,
	associateRepo *repositories.AssociateRepository,
	jwtService *auth.JWTService,
) *AuthService {
	return &AuthService{
		database:         database,
		userRepo:         userRepo,
		tokenRepo:        tokenRepo,
		organizationRepo: organizationRepo,
		associateRepo:    associateRepo,
		jwtService:       jwtService,
	}
}

// Register creates a user account together with its associate profile in the
// chosen organization. Both rows commit atomically; the profile starts
// unapproved, so the account cannot use tenant-scoped endpoints until the
// organization owner approves it.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	if req.Password != req.ConfirmPassword {
		return nil, apperrors.ErrPasswordMismatch
	}

	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	orgExists, err := s.organizationRepo.Exists(ctx, req.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to check organization: %w", err)
	}
	if !orgExists {
		return nil, apperrors.NewValidationError("organizationId", "organization does not exist")
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:     req.Email,
		Password:  hashedPassword,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
	}

	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.userRepo.CreateTx(ctx, tx, user); err != nil {
			return err
		}

		associate := &models.Associate{
			UserID:         user.ID,
			OrganizationID: req.OrganizationID,
			Approved:       false,
		}
		return s.associateRepo.CreateTx(ctx, tx, associate)
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("userID", user.ID).Int64("organizationID", req.OrganizationID).Msg("User registered")

	return user, nil
}

// Login authenticates by email and password. Owners log in regardless of
// membership; everyone else needs an approved associate profile.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.checkApproval(ctx, user.ID); err != nil {
		return nil, err
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		// Login still succeeds, the timestamp is informational
		logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to update last login")
	}

	return tokens, nil
}

// checkApproval rejects accounts that neither own an organization nor hold an
// approved membership
func (s *AuthService) checkApproval(ctx context.Context, userID int64) error {
	_, err := s.organizationRepo.GetByOwnerID(ctx, userID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrOrganizationNotFound) {
		return err
	}

	associate, err := s.associateRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAssociateNotFound) {
			return apperrors.ErrPermissionDenied
		}
		return err
	}

	if !associate.Approved {
		return apperrors.ErrAccountNotApproved
	}

	return nil
}

// RefreshToken rotates a refresh token into a new token pair
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	userID, err := s.tokenRepo.GetUserIDByToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.checkApproval(ctx, user.ID); err != nil {
		return nil, err
	}

	// Old token is single-use
	if err := s.tokenRepo.DeleteToken(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Logout invalidates a refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	err := s.tokenRepo.DeleteToken(ctx, refreshToken)
	if err != nil && !errors.Is(err, apperrors.ErrTokenNotFound) {
		return err
	}
	return nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	err = s.tokenRepo.CreateToken(ctx, refreshToken, user.ID, s.jwtService.GetRefreshTokenExpiry())
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
		TokenType:        "Bearer",
	}, nil
}
