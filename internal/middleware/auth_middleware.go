package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appauth "github.com/rafael/coursehub/internal/app/auth"
	"github.com/rafael/coursehub/internal/app/models/dto"
	"github.com/rafael/coursehub/internal/pkg/auth"
	"github.com/rafael/coursehub/internal/pkg/logger"
)

// Context keys set by the middleware chain
const (
	ContextUserID = "userID"
	ContextEmail  = "email"
	ContextTenant = "tenant"
)

// JWTAuth validates the bearer token and stores the caller's identity on the
// request context
func JWTAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.APIResponse{
				Error: dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authorization header is missing or malformed"),
			})
			return
		}

		claims, err := jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			code := dto.ErrorCodeInvalidToken
			message := "Invalid token"
			if err == auth.ErrExpiredToken {
				code = dto.ErrorCodeExpiredToken
				message = "Token expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.APIResponse{
				Error: dto.NewErrorDetail(code, message),
			})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Next()
	}
}

// TenantRequired resolves the caller's organization for the request. Owners
// resolve through their organization, everyone else through an approved
// associate profile; callers with neither are rejected.
func TenantRequired(authzService *appauth.AuthorizationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt64(ContextUserID)
		if userID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.APIResponse{
				Error: dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required"),
			})
			return
		}

		tenant, err := authzService.ResolveTenant(c.Request.Context(), userID)
		if err != nil {
			HandleAPIError(c, err)
			c.Abort()
			return
		}

		c.Set(ContextTenant, tenant)
		c.Next()
	}
}

// OwnerRequired rejects requests whose resolved tenant is not the
// organization owner. Must run after TenantRequired.
func OwnerRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant, ok := GetTenant(c)
		if !ok {
			logger.Error().Str("path", c.FullPath()).Msg("OwnerRequired used without TenantRequired")
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.APIResponse{
				Error: dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
			})
			return
		}

		if !tenant.IsOwner {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.APIResponse{
				Error: dto.NewErrorDetail(dto.ErrorCodeForbidden, "Only the organization owner can perform this action"),
			})
			return
		}

		c.Next()
	}
}

// GetTenant returns the tenant context resolved for this request
func GetTenant(c *gin.Context) (*appauth.TenantContext, bool) {
	value, exists := c.Get(ContextTenant)
	if !exists {
		return nil, false
	}

	tenant, ok := value.(*appauth.TenantContext)
	return tenant, ok
}
