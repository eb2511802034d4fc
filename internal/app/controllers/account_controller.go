package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rafael/coursehub/internal/app/models/dto"
	"github.com/rafael/coursehub/internal/app/services"
	"github.com/rafael/coursehub/internal/middleware"
)

// AccountController handles the caller's own profile
type AccountController struct {
	accountService *services.AccountService
}

// NewAccountController creates a new AccountController
func NewAccountController(accountService *services.AccountService) *AccountController {
	return &AccountController{accountService: accountService}
}

// GetProfile returns the caller's profile
// @Summary Get own profile
// @Tags account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse} "Profile"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /account/profile [get]
func (c *AccountController) GetProfile(ctx *gin.Context) {
	userID := ctx.GetInt64(middleware.ContextUserID)

	profile, err := c.accountService.GetProfile(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      profile,
		Timestamp: time.Now(),
	})
}

// UpdateProfile edits the caller's profile
// @Summary Update own profile
// @Tags account
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse} "Updated profile"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /account/profile [put]
func (c *AccountController) UpdateProfile(ctx *gin.Context) {
	userID := ctx.GetInt64(middleware.ContextUserID)

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	profile, err := c.accountService.UpdateProfile(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      profile,
		Timestamp: time.Now(),
	})
}

// UploadProfilePhoto stores a new profile photo
// @Summary Upload profile photo
// @Tags account
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param photo formData file true "Profile photo"
// @Success 200 {object} dto.APIResponse "Photo stored"
// @Failure 400 {object} dto.ErrorResponse "Missing file"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /account/profile/photo [post]
func (c *AccountController) UploadProfilePhoto(ctx *gin.Context) {
	userID := ctx.GetInt64(middleware.ContextUserID)

	fileHeader, err := ctx.FormFile("photo")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Photo file is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	photoURL, err := c.accountService.UpdateProfilePhoto(ctx, userID, fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      gin.H{"profilePhotoUrl": photoURL},
		Timestamp: time.Now(),
	})
}

// DeleteProfilePhoto removes the caller's profile photo
// @Summary Delete profile photo
// @Tags account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Photo removed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /account/profile/photo [delete]
func (c *AccountController) DeleteProfilePhoto(ctx *gin.Context) {
	userID := ctx.GetInt64(middleware.ContextUserID)

	if err := c.accountService.DeleteProfilePhoto(ctx, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Profile photo removed"},
		Timestamp: time.Now(),
	})
}
