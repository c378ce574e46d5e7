package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/timberintel/timberintel/internal/coverage"
	"github.com/timberintel/timberintel/server/internal/model"
	"github.com/timberintel/timberintel/server/internal/service"
)

type RecordHandler struct {
	recordService *service.RecordsService
}

func NewRecordHandler(service *service.RecordsService) *RecordHandler {
	return &RecordHandler{
		recordService: service,
	}
}

func (h *RecordHandler) GetCleaned(c *gin.Context) {
	var q model.RecordQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.recordService.GetCleanedRecords(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *RecordHandler) GetCount(c *gin.Context) {
	var q model.RecordQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	count, err := h.recordService.GetCountRecords(q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *RecordHandler) GetCoverage(c *gin.Context) {
	req := coverage.Request{
		HSCodes: model.SplitCSV(c.Query("hs")),
		Origins: model.SplitCSV(c.Query("origins")),
		Dests:   model.SplitCSV(c.Query("dests")),
		Species: model.SplitCSV(c.Query("species")),
	}
	var err error
	if start := c.Query("start"); start != "" {
		req.StartDate, err = time.Parse("2006-01-02", start)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start: " + err.Error()})
			return
		}
	}
	if end := c.Query("end"); end != "" {
		req.EndDate, err = time.Parse("2006-01-02", end)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end: " + err.Error()})
			return
		}
	}

	result, err := h.recordService.GetCoverage(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *RecordHandler) GetAccount(c *gin.Context) {
	info, err := h.recordService.GetAccount(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, info)
}
