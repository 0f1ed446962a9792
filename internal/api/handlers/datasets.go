package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stylegrid/internal/data"
)

// ListDatasets handles GET /api/v1/datasets.
func ListDatasets(c *gin.Context) {
	datasets := data.Datasets()
	c.JSON(http.StatusOK, gin.H{
		"datasets": datasets,
		"count":    len(datasets),
	})
}
