package controllers

import (
	"errors"
	"net/http"

	"alfajr-backend/store"
	"alfajr-backend/utils"

	"github.com/gin-gonic/gin"
)

// respondStoreError maps the store/backup error taxonomy onto HTTP codes.
func respondStoreError(c *gin.Context, err error) {
	var validationErr *store.ValidationError
	var integrityErr *store.IntegrityError
	var encodingErr *store.EncodingError

	switch {
	case errors.As(err, &validationErr):
		utils.RespondWithErrors(c, http.StatusBadRequest, validationErr.Messages)
	case errors.Is(err, store.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
	case errors.As(err, &integrityErr):
		utils.RespondWithError(c, http.StatusUnprocessableEntity, integrityErr.Reason)
	case errors.As(err, &encodingErr):
		utils.RespondWithError(c, http.StatusInternalServerError, encodingErr.Error())
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
	}
}
