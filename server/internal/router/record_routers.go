package router

import (
	"github.com/gin-gonic/gin"

	"github.com/timberintel/timberintel/server/internal/handler"
)

func registerRecordRoutes(router *gin.RouterGroup, recordHandler *handler.RecordHandler) {
	records := router.Group("/records")
	{
		records.GET("/cleaned", recordHandler.GetCleaned)
		records.GET("/count", recordHandler.GetCount)
	}
	router.GET("/coverage", recordHandler.GetCoverage)
	router.GET("/account", recordHandler.GetAccount)
}
