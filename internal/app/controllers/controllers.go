package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rafael/coursehub/internal/app/auth"
	"github.com/rafael/coursehub/internal/app/models/dto"
	"github.com/rafael/coursehub/internal/middleware"
)

// parseIDParam parses a numeric path parameter, responding with a validation
// error when it is not a number
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter")
		errorDetail = errorDetail.WithDetails(name + " must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// requireTenant fetches the tenant context resolved by the middleware chain
func requireTenant(ctx *gin.Context) (*auth.TenantContext, bool) {
	tenant, ok := middleware.GetTenant(ctx)
	if !ok {
		ctx.JSON(http.StatusInternalServerError, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
		})
		return nil, false
	}
	return tenant, true
}
