package chats

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc, store Store) {
	g := rg.Group("/chats")
	g.Use(authMW)

	g.GET("", ListSessionsHandler(store))
	g.POST("", CreateSessionHandler(store))
	g.PATCH("/:id", RenameSessionHandler(store))
	g.DELETE("/:id", DeleteSessionHandler(store))
	g.GET("/:id/messages", ListMessagesHandler(store))
	g.POST("/:id/messages", AddMessageHandler(store))
}
