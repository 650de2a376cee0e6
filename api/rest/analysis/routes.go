package analysis

import (
	"github.com/gin-gonic/gin"
)

// authMW must set user_id; limitMW may be nil
func RegisterRoutes(rg *gin.RouterGroup, authMW, limitMW gin.HandlerFunc, adv Advisor, ledger Ledger, store ChatStore) {
	ai := rg.Group("")
	ai.Use(authMW)

	if limitMW != nil {
		ai.Use(limitMW)
	}

	ai.POST("/analyze", AnalyzeHandler(adv, ledger))
	ai.POST("/chat", ChatHandler(adv, ledger, store))
	ai.POST("/insight", InsightHandler(adv, ledger))
	ai.POST("/resume/parse", ParseResumeHandler(adv, ledger))
}
