package handlers

import (
	"net/http"

	"smart-meter-exploration/internal/api/models"
	"smart-meter-exploration/internal/data"

	"github.com/gin-gonic/gin"
)

// DatasetHandler describes the meter data the server was started with
type DatasetHandler struct {
	summary data.Summary
}

// NewDatasetHandler creates a dataset handler
func NewDatasetHandler(summary data.Summary) *DatasetHandler {
	return &DatasetHandler{summary: summary}
}

// GetDataset handles GET /api/v1/dataset
func (h *DatasetHandler) GetDataset(c *gin.Context) {
	s := h.summary
	c.JSON(http.StatusOK, models.DatasetResponse{
		Source:     s.Source,
		Households: s.Households,
		Timestamps: s.Timestamps,
		Readings:   s.Readings,
		Coverage:   s.Coverage,
		Start:      s.Start,
		End:        s.End,
		Registered: s.Registered,
	})
}
