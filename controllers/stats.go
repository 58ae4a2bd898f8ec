package controllers

import (
	"net/http"

	"alfajr-backend/store"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	Store *store.Store
}

// GetStatistics returns the dashboard aggregates.
func (ctl *StatsController) GetStatistics(c *gin.Context) {
	stats, err := ctl.Store.GetStatistics(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
