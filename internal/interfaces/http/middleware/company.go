package middleware

import (
	"net/http"

	identityapp "github.com/gestor-erp/backend/internal/application/identity"
	"github.com/gestor-erp/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CompanyIDHeader selects the active company of the request
const CompanyIDHeader = "X-Company-ID"

// CompanyIDKey is the gin context key holding the resolved company id
const CompanyIDKey = "company_id"

// Company resolves the active company from the request header and checks
// that the authenticated user is a member. Tokens identify the user only,
// so this runs on every company-scoped route.
func Company(companies *identityapp.CompanyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(CompanyIDHeader)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				dto.NewErrorResponse(dto.ErrCodeBadRequest, "Missing "+CompanyIDHeader+" header", GetRequestID(c)))
			return
		}
		companyID, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				dto.NewErrorResponse(dto.ErrCodeBadRequest, "Malformed "+CompanyIDHeader+" header", GetRequestID(c)))
			return
		}

		userID := GetUserID(c)
		if userID == uuid.Nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Authentication required", GetRequestID(c)))
			return
		}

		if _, err := companies.RequireMembership(c.Request.Context(), companyID, userID); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "You are not a member of this company", GetRequestID(c)))
			return
		}

		c.Set(CompanyIDKey, companyID.String())
		c.Next()
	}
}

// GetCompanyID returns the active company id resolved by Company
func GetCompanyID(c *gin.Context) uuid.UUID {
	id, err := uuid.Parse(c.GetString(CompanyIDKey))
	if err != nil {
		return uuid.Nil
	}
	return id
}
