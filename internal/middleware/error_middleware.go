package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafael/coursehub/internal/app/models/dto"
	"github.com/rafael/coursehub/internal/pkg/apperrors"
	"github.com/rafael/coursehub/internal/pkg/logger"
)

// HandleAPIError maps service errors to HTTP responses. Every tenant-scoped
// miss, whether the row is absent or belongs to another organization, lands
// in the same not-found branch.
func HandleAPIError(c *gin.Context, err error) {
	var custom *apperrors.CustomError
	message := func(fallback string) string {
		if errors.As(err, &custom) && custom.Message != "" {
			return custom.Message
		}
		return fallback
	}

	switch {
	case apperrors.Is(err, apperrors.ErrResourceNotFound,
		apperrors.ErrUserNotFound,
		apperrors.ErrOrganizationNotFound,
		apperrors.ErrAssociateNotFound,
		apperrors.ErrCategoryNotFound,
		apperrors.ErrCourseNotFound,
		apperrors.ErrLessonNotFound,
		apperrors.ErrQuestionNotFound,
		apperrors.ErrAnswerNotFound,
		apperrors.ErrQuizNotFound,
		apperrors.ErrQuizQuestionNotFound,
		apperrors.ErrOptionNotFound,
		apperrors.ErrTopicNotFound,
		apperrors.ErrCommentNotFound):
		c.JSON(http.StatusNotFound, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found"),
		})

	case errors.Is(err, apperrors.ErrNotOrganizationOwner):
		c.JSON(http.StatusForbidden, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeForbidden, "Only the organization owner can perform this action"),
		})

	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeForbidden, message("Permission denied")),
		})

	case errors.Is(err, apperrors.ErrAccountNotApproved):
		c.JSON(http.StatusForbidden, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeAccountNotApproved, "Account is awaiting approval by the organization owner"),
		})

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials"),
		})

	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired"),
		})

	case errors.Is(err, apperrors.ErrTokenInvalid):
		c.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token"),
		})

	case errors.Is(err, apperrors.ErrTokenNotFound):
		c.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeTokenNotFound, "Token not found"),
		})

	case apperrors.Is(err, apperrors.ErrValidationFailed,
		apperrors.ErrPasswordMismatch,
		apperrors.ErrInvalidVideoURL,
		apperrors.ErrTooManyOptions,
		apperrors.ErrCategoryOrganizationMismatch,
		apperrors.ErrBadRequest):
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message(err.Error()))
		if errors.As(err, &custom) && custom.Details != nil {
			if field, ok := custom.Details["field"].(string); ok {
				detail = detail.WithField(field)
			}
		}
		c.JSON(http.StatusBadRequest, dto.APIResponse{Error: detail})

	case apperrors.Is(err, apperrors.ErrEmailAlreadyExists,
		apperrors.ErrAssociateAlreadyExists,
		apperrors.ErrCategoryAlreadyExists,
		apperrors.ErrResourceAlreadyExists,
		apperrors.ErrConflict):
		c.JSON(http.StatusConflict, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, message(err.Error())),
		})

	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		c.JSON(http.StatusInternalServerError, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
		})
	}
}

// HandleBindingError responds to a failed request binding with field-level
// validation details
func HandleBindingError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.APIResponse{
		Error: dto.HandleValidationError(err),
	})
}
