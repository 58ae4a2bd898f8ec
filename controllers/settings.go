package controllers

import (
	"net/http"

	"alfajr-backend/store"
	"alfajr-backend/utils"

	"github.com/gin-gonic/gin"
)

type SettingsController struct {
	Store *store.Store
}

// SaveSettingInput is the body for updating one setting.
type SaveSettingInput struct {
	Value interface{} `json:"value" binding:"required"`
}

// GetSettings returns every setting, defaults filled in.
func (ctl *SettingsController) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, ctl.Store.GetAllSettings(c.Request.Context()))
}

// GetSetting returns one value; unknown keys fall back to the default,
// which may be null.
func (ctl *SettingsController) GetSetting(c *gin.Context) {
	key := c.Param("key")
	c.JSON(http.StatusOK, gin.H{
		"key":   key,
		"value": ctl.Store.GetSetting(c.Request.Context(), key),
	})
}

// SaveSetting stores one key/value pair. Unknown keys are stored verbatim.
func (ctl *SettingsController) SaveSetting(c *gin.Context) {
	var input SaveSettingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	key := c.Param("key")
	if err := ctl.Store.SaveSetting(c.Request.Context(), key, input.Value); err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"key": key, "value": input.Value})
}
