package quota

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc, ledger Ledger) {
	q := rg.Group("/quota")
	q.Use(authMW)

	q.GET("", GetUsageHandler(ledger))
	q.GET("/:feature", CheckQuotaHandler(ledger))
}
