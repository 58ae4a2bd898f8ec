package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"alfajr-backend/backup"
	"alfajr-backend/models"
	"alfajr-backend/store"
	"alfajr-backend/utils"

	"github.com/gin-gonic/gin"
)

type BackupController struct {
	Store  *store.Store
	Engine *backup.Engine
}

// CreateBackup snapshots everything into the backup log and returns the
// plain snapshot.
func (ctl *BackupController) CreateBackup(c *gin.Context) {
	snapshot, err := ctl.Engine.Create(c.Request.Context(), models.BackupManual)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, snapshot)
}

// ListBackups returns the backup log without payloads.
func (ctl *BackupController) ListBackups(c *gin.Context) {
	entries, err := ctl.Engine.ListBackups(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// ExportBackup creates a fresh snapshot and sends it as a downloadable
// JSON file.
func (ctl *BackupController) ExportBackup(c *gin.Context) {
	snapshot, err := ctl.Engine.Create(c.Request.Context(), models.BackupManual)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	body, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to serialize backup")
		return
	}

	timestamp := strings.NewReplacer(":", "-", ".", "-").
		Replace(time.Now().Format(time.RFC3339))
	filename := fmt.Sprintf("alfajr-backup-%s.json", timestamp)

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/json", body)
}

// RestoreBackup validates and replays an imported snapshot. All integrity
// gates run before anything is cleared.
func (ctl *BackupController) RestoreBackup(c *gin.Context) {
	var snapshot models.Snapshot
	if err := c.ShouldBindJSON(&snapshot); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid backup file: "+err.Error())
		return
	}

	result, err := ctl.Engine.Restore(c.Request.Context(), &snapshot)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ClearDataInput carries the collaborator's confirmation decision. The UI
// asks the user; the core only checks the answer.
type ClearDataInput struct {
	Confirm bool `json:"confirm"`
}

// ClearData empties the customer, backup and audit collections.
func (ctl *BackupController) ClearData(c *gin.Context) {
	var input ClearDataInput
	if err := c.ShouldBindJSON(&input); err != nil || !input.Confirm {
		utils.RespondWithError(c, http.StatusBadRequest, "Confirmation required")
		return
	}

	if err := ctl.Store.ClearAllData(c.Request.Context()); err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All data cleared"})
}
