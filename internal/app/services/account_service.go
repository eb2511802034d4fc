package services

import (
	"context"
	"errors"
	"mime/multipart"

	"github.com/rafael/coursehub/internal/app/models/dto"
	"github.com/rafael/coursehub/internal/app/repositories"
	"github.com/rafael/coursehub/internal/pkg/apperrors"
	"github.com/rafael/coursehub/internal/pkg/filestorage"
	"github.com/rafael/coursehub/internal/pkg/logger"
)

// AccountService handles the caller's own profile
type AccountService struct {
	userRepo         *repositories.UserRepository
	organizationRepo *repositories.OrganizationRepository
	associateRepo    *repositories.AssociateRepository
	fileStorage      filestorage.FileStorage
}

// NewAccountService creates a new AccountService
func NewAccountService(
	userRepo *repositories.UserRepository,
	organizationRepo *repositories.OrganizationRepository,
	associateRepo *repositories.AssociateRepository,
	fileStorage filestorage.FileStorage,
) *AccountService {
	return &AccountService{
		userRepo:         userRepo,
		organizationRepo: organizationRepo,
		associateRepo:    associateRepo,
		fileStorage:      fileStorage,
	}
}

// GetProfile returns the caller's account with their organization relation
func (s *AccountService) GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := &dto.ProfileResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Bio:       user.Bio,
	}
	if user.ProfilePhotoURL != nil {
		profile.ProfilePhotoURL = *user.ProfilePhotoURL
	}

	if org, err := s.organizationRepo.GetByOwnerID(ctx, userID); err == nil {
		profile.OrganizationID = org.ID
		profile.OrganizationName = org.Name
		profile.IsOwner = true
		profile.Approved = true
		return profile, nil
	} else if !errors.Is(err, apperrors.ErrOrganizationNotFound) {
		return nil, err
	}

	associate, err := s.associateRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAssociateNotFound) {
			return profile, nil
		}
		return nil, err
	}

	org, err := s.organizationRepo.GetByID(ctx, associate.OrganizationID)
	if err != nil {
		return nil, err
	}

	profile.OrganizationID = org.ID
	profile.OrganizationName = org.Name
	profile.Approved = associate.Approved

	return profile, nil
}

// UpdateProfile edits the caller's profile fields
func (s *AccountService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	err := s.userRepo.UpdateProfile(ctx, userID, req.FirstName, req.LastName, req.Bio)
	if err != nil {
		return nil, err
	}

	return s.GetProfile(ctx, userID)
}

// UpdateProfilePhoto stores a new profile photo, replacing any previous one
func (s *AccountService) UpdateProfilePhoto(ctx context.Context, userID int64, fileHeader *multipart.FileHeader) (string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	photoURL, err := s.fileStorage.SaveFile(fileHeader, filestorage.SubdirProfilePhotos)
	if err != nil {
		return "", err
	}

	if err := s.userRepo.UpdateProfilePhotoURL(ctx, userID, &photoURL); err != nil {
		// Database write failed, remove the orphaned file
		if delErr := s.fileStorage.DeleteFile(photoURL); delErr != nil {
			logger.Warn().Err(delErr).Str("path", photoURL).Msg("Failed to remove orphaned profile photo")
		}
		return "", err
	}

	if user.ProfilePhotoURL != nil {
		if err := s.fileStorage.DeleteFile(*user.ProfilePhotoURL); err != nil {
			logger.Warn().Err(err).Str("path", *user.ProfilePhotoURL).Msg("Failed to remove previous profile photo")
		}
	}

	return photoURL, nil
}

// DeleteProfilePhoto removes the caller's profile photo
func (s *AccountService) DeleteProfilePhoto(ctx context.Context, userID int64) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if user.ProfilePhotoURL == nil {
		return nil
	}

	if err := s.userRepo.UpdateProfilePhotoURL(ctx, userID, nil); err != nil {
		return err
	}

	if err := s.fileStorage.DeleteFile(*user.ProfilePhotoURL); err != nil {
		logger.Warn().Err(err).Str("path", *user.ProfilePhotoURL).Msg("Failed to remove profile photo file")
	}

	return nil
}
