package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rafael/coursehub/internal/app/models/dto"
	"github.com/rafael/coursehub/internal/app/services"
	"github.com/rafael/coursehub/internal/middleware"
)

// InstructorController handles the owner-only management surface
type InstructorController struct {
	associateService *services.AssociateService
}

// NewInstructorController creates a new InstructorController
func NewInstructorController(associateService *services.AssociateService) *InstructorController {
	return &InstructorController{associateService: associateService}
}

// Dashboard aggregates the organization overview
// @Summary Instructor dashboard
// @Description Course, category and member counts plus pending approvals and open questions
// @Tags instructor
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardResponse} "Dashboard"
// @Failure 403 {object} dto.ErrorResponse "Owner only"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /instructor/dashboard [get]
func (c *InstructorController) Dashboard(ctx *gin.Context) {
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	dashboard, err := c.associateService.Dashboard(ctx, tenant.OrganizationID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dashboard,
		Timestamp: time.Now(),
	})
}

// ListMembers lists the organization's memberships
// @Summary List members
// @Description Lists all memberships; pass pending=true to see only pending approvals
// @Tags instructor
// @Produce json
// @Security BearerAuth
// @Param pending query bool false "Only pending approvals"
// @Success 200 {object} dto.APIResponse{data=[]dto.AssociateResponse} "Members"
// @Failure 403 {object} dto.ErrorResponse "Owner only"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /instructor/associates [get]
func (c *InstructorController) ListMembers(ctx *gin.Context) {
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	pendingOnly := ctx.Query("pending") == "true"

	members, err := c.associateService.ListMembers(ctx, tenant.OrganizationID, pendingOnly)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      members,
		Timestamp: time.Now(),
	})
}

// ApproveMember approves a pending membership
// @Summary Approve member
// @Description Approves a pending membership; approving twice changes nothing
// @Tags instructor
// @Produce json
// @Security BearerAuth
// @Param id path int true "Associate ID"
// @Success 200 {object} dto.APIResponse "Member approved"
// @Failure 403 {object} dto.ErrorResponse "Owner only"
// @Failure 404 {object} dto.ErrorResponse "Membership not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /instructor/associates/{id}/approve [post]
func (c *InstructorController) ApproveMember(ctx *gin.Context) {
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.associateService.ApproveMember(ctx, tenant.OrganizationID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Member approved"},
		Timestamp: time.Now(),
	})
}
