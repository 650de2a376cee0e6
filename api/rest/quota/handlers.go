package quota

import (
	"net/http"

	"codeberg.org/scholargo/server/internal/auth"
	"codeberg.org/scholargo/server/internal/errors"
	"codeberg.org/scholargo/server/scholargo/profiles"
	"github.com/gin-gonic/gin"
)

// GetUsageHandler godoc
// @Summary Get plan and monthly usage
// @Description Returns the effective plan, its validity and usage, limit and remaining count per feature
// @Tags quota
// @Produce json
// @Success 200 {object} quota.Summary
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/quota [get]
// @Security BearerAuth
func GetUsageHandler(ledger Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			errors.Unauthorized(c, "user not authenticated")
			return
		}

		summary, err := ledger.Usage(c.Request.Context(), userID)
		if err != nil {
			errors.InternalError(c, "failed to load usage", err)
			return
		}

		c.JSON(http.StatusOK, summary)
	}
}

// CheckQuotaHandler godoc
// @Summary Check one feature's quota
// @Tags quota
// @Produce json
// @Param feature path string true "pdf_analysis, chat or deep_review"
// @Success 200 {object} CheckResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/quota/{feature} [get]
// @Security BearerAuth
func CheckQuotaHandler(ledger Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			errors.Unauthorized(c, "user not authenticated")
			return
		}

		feature, ok := profiles.ParseFeature(c.Param("feature"))
		if !ok {
			errors.BadRequest(c, "unknown feature", nil)
			return
		}

		decision, err := ledger.CheckQuota(c.Request.Context(), userID, feature)
		if err != nil {
			errors.InternalError(c, "failed to check quota", err)
			return
		}

		c.JSON(http.StatusOK, CheckResponse{Feature: feature, Decision: decision})
	}
}
