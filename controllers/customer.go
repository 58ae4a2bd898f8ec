package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"alfajr-backend/models"
	"alfajr-backend/services"
	"alfajr-backend/store"
	"alfajr-backend/utils"

	"github.com/gin-gonic/gin"
)

// CustomerController serves the customer CRUD, listing and search
// operations.
type CustomerController struct {
	Store *store.Store
	Saver *services.AutoSaver
}

// CreateCustomer normalizes the posted input into a new record and saves
// it through the single write path.
func (ctl *CustomerController) CreateCustomer(c *gin.Context) {
	var input models.CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	customer := models.NewCustomer(input)
	if err := ctl.Store.SaveCustomer(c.Request.Context(), customer); err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// GetCustomers returns one page of the customer list.
func (ctl *CustomerController) GetCustomers(c *gin.Context) {
	opts := listOptionsFromQuery(c)

	page, err := ctl.Store.GetAllCustomers(c.Request.Context(), opts)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetCustomer returns one record by id.
func (ctl *CustomerController) GetCustomer(c *gin.Context) {
	customer, err := ctl.Store.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer replaces an existing record with the normalized input,
// preserving its identity and creation metadata.
func (ctl *CustomerController) UpdateCustomer(c *gin.Context) {
	existing, err := ctl.Store.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	var input models.CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	input.ID = existing.ID
	customer := models.NewCustomer(input)
	customer.Metadata.CreatedAt = existing.Metadata.CreatedAt
	customer.Metadata.CreatedBy = existing.Metadata.CreatedBy
	customer.Metadata.Version = existing.Metadata.Version + 1
	customer.Metadata.Deleted = existing.Metadata.Deleted
	customer.Metadata.DeletedAt = existing.Metadata.DeletedAt
	customer.Metadata.DeletedBy = existing.Metadata.DeletedBy

	if err := ctl.Store.SaveCustomer(c.Request.Context(), customer); err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, customer)
}

// AutosaveCustomer accepts a draft of an existing record and schedules a
// debounced persist; repeated calls within the delay coalesce into one
// write. An explicit save should use UpdateCustomer instead.
func (ctl *CustomerController) AutosaveCustomer(c *gin.Context) {
	existing, err := ctl.Store.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	var input models.CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	input.ID = existing.ID
	customer := models.NewCustomer(input)
	customer.Metadata.CreatedAt = existing.Metadata.CreatedAt
	customer.Metadata.CreatedBy = existing.Metadata.CreatedBy
	customer.Metadata.Version = existing.Metadata.Version

	ctl.Saver.Schedule(customer)
	c.JSON(http.StatusAccepted, gin.H{"scheduled": true})
}

// FlushAutosave persists a pending draft immediately.
func (ctl *CustomerController) FlushAutosave(c *gin.Context) {
	if err := ctl.Saver.Flush(c.Request.Context(), c.Param("id")); err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"flushed": true})
}

// DeleteCustomer soft deletes by default; ?hard=true removes the row.
func (ctl *CustomerController) DeleteCustomer(c *gin.Context) {
	soft := c.Query("hard") != "true"

	if err := ctl.Store.DeleteCustomer(c.Request.Context(), c.Param("id"), soft); err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}

// SearchCustomers returns all non-deleted records matching the query in
// any of the requested fields.
func (ctl *CustomerController) SearchCustomers(c *gin.Context) {
	query := c.Query("q")

	var fields []string
	if raw := c.Query("fields"); raw != "" {
		fields = strings.Split(raw, ",")
	}

	results, err := ctl.Store.SearchCustomers(c.Request.Context(), query, fields)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}

func listOptionsFromQuery(c *gin.Context) store.ListOptions {
	opts := store.ListOptions{
		IncludeDeleted: c.Query("includeDeleted") == "true",
		SortBy:         c.Query("sortBy"),
		SortOrder:      c.Query("sortOrder"),
		Filters: store.Filters{
			Status:      c.Query("status"),
			DeliveryDay: c.Query("deliveryDay"),
			Search:      c.Query("search"),
		},
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		opts.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		opts.Limit = limit
	}
	return opts
}
