package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	appModels "github.com/rafael/coursehub/internal/app/models"
	appRepos "github.com/rafael/coursehub/internal/app/repositories"
	"github.com/rafael/coursehub/internal/db"
	"github.com/rafael/coursehub/internal/pkg/apperrors"
	"github.com/rafael/coursehub/internal/pkg/auth"
)

const (
	defaultOwnerEmail    = "owner@coursehub.local"
	defaultOwnerPassword = "changeme123"
	defaultOrgName       = "CourseHub Academy"
)

// CreateDefaultData provisions a first organization with its owner account so
// a fresh install has somewhere to register into. Runs only when no
// organization exists yet.
func CreateDefaultData(ctx context.Context, database *db.PostgresDB, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(database.Pool)
	organizationRepo := appRepos.NewOrganizationRepository(database.Pool)

	organizations, err := organizationRepo.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(organizations) > 0 {
		lgr.Debug().Msg("Organizations already present, skipping default data")
		return nil
	}

	lgr.Info().Msg("No organizations found, creating default organization and owner...")

	hashedPassword, err := auth.HashPassword(defaultOwnerPassword)
	if err != nil {
		return err
	}

	owner := &appModels.User{
		Email:     defaultOwnerEmail,
		Password:  hashedPassword,
		FirstName: "Default",
		LastName:  "Owner",
	}

	err = database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return userRepo.CreateTx(ctx, tx, owner)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			existing, getErr := userRepo.GetByEmail(ctx, defaultOwnerEmail)
			if getErr != nil {
				return getErr
			}
			owner = existing
		} else {
			return err
		}
	}

	organization := &appModels.Organization{
		Name:    defaultOrgName,
		OwnerID: owner.ID,
	}
	if err := organizationRepo.Create(ctx, organization); err != nil {
		if errors.Is(err, apperrors.ErrResourceAlreadyExists) {
			return nil
		}
		return err
	}

	lgr.Info().
		Str("organization", defaultOrgName).
		Str("ownerEmail", defaultOwnerEmail).
		Msg("Default organization created, change the owner password after first login")
	return nil
}
