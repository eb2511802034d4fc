package auth

import (
	"context"
	"errors"

	"github.com/rafael/coursehub/internal/app/repositories"
	"github.com/rafael/coursehub/internal/pkg/apperrors"
)

// TenantContext identifies the caller within exactly one organization.
// Every tenant-scoped operation resolves one of these before touching data.
type TenantContext struct {
	UserID         int64
	OrganizationID int64
	AssociateID    int64
	IsOwner        bool
}

// AuthorizationService resolves which organization a user acts in.
// Tenancy is resolved per request from the database rather than baked into
// the access token, so an approval or ownership change takes effect on the
// next request without reissuing tokens.
type AuthorizationService struct {
	organizationRepo *repositories.OrganizationRepository
	associateRepo    *repositories.AssociateRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(
	organizationRepo *repositories.OrganizationRepository,
	associateRepo *repositories.AssociateRepository,
) *AuthorizationService {
	return &AuthorizationService{
		organizationRepo: organizationRepo,
		associateRepo:    associateRepo,
	}
}

// ResolveTenant determines the caller's organization. Ownership wins over
// membership; a non-owner must hold an approved associate profile. A user
// with neither relation gets ErrPermissionDenied.
func (s *AuthorizationService) ResolveTenant(ctx context.Context, userID int64) (*TenantContext, error) {
	org, err := s.organizationRepo.GetByOwnerID(ctx, userID)
	if err == nil {
		return &TenantContext{
			UserID:         userID,
			OrganizationID: org.ID,
			IsOwner:        true,
		}, nil
	}
	if !errors.Is(err, apperrors.ErrOrganizationNotFound) {
		return nil, err
	}

	associate, err := s.associateRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAssociateNotFound) {
			return nil, apperrors.ErrPermissionDenied
		}
		return nil, err
	}

	if !associate.Approved {
		return nil, apperrors.ErrAccountNotApproved
	}

	return &TenantContext{
		UserID:         userID,
		OrganizationID: associate.OrganizationID,
		AssociateID:    associate.ID,
		IsOwner:        false,
	}, nil
}

// RequireOwner resolves the tenant and rejects non-owners
func (s *AuthorizationService) RequireOwner(ctx context.Context, userID int64) (*TenantContext, error) {
	tenant, err := s.ResolveTenant(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !tenant.IsOwner {
		return nil, apperrors.ErrNotOrganizationOwner
	}

	return tenant, nil
}
