package router

import (
	"github.com/gin-gonic/gin"

	"github.com/timberintel/timberintel/server/internal/handler"
)

type Config struct {
	RecordHandler *handler.RecordHandler
}

func NewRouter(cfg *Config) *gin.Engine {
	router := gin.Default()

	api := router.Group("/v1/")
	registerRecordRoutes(api, cfg.RecordHandler)

	return router
}
