package payments

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc, svc Service, history History) {
	p := rg.Group("/payments")

	p.POST("/checkout", authMW, CheckoutHandler(svc))
	p.GET("/history", authMW, HistoryHandler(history))

	// gateways authenticate themselves through the payload signature
	p.POST("/webhook", WebhookHandler(svc))
}
