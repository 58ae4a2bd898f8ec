package store

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"alfajr-backend/config"
	"alfajr-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Sort fields accepted by GetAllCustomers.
const (
	SortByName      = "name"
	SortByCreatedAt = "createdAt"
	SortByUpdatedAt = "updatedAt"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// Filters narrows a customer listing. Zero values mean "no filter".
type Filters struct {
	Status      string `form:"status" json:"status"`
	DeliveryDay string `form:"deliveryDay" json:"deliveryDay"`
	Search      string `form:"search" json:"search"`
}

// ListOptions controls filtering, sorting and pagination of a listing.
type ListOptions struct {
	IncludeDeleted bool    `form:"includeDeleted" json:"includeDeleted"`
	Page           int     `form:"page" json:"page"`
	Limit          int     `form:"limit" json:"limit"`
	SortBy         string  `form:"sortBy" json:"sortBy"`
	SortOrder      string  `form:"sortOrder" json:"sortOrder"`
	Filters        Filters `json:"filters"`
}

// Pagination describes the returned page.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// CustomerPage is one page of a listing plus its pagination metadata.
type CustomerPage struct {
	Customers  []models.Customer `json:"customers"`
	Pagination Pagination        `json:"pagination"`
}

// SaveCustomer is the single write path for customer data. It validates,
// recomputes derived totals, stamps updatedAt, upserts by id, appends an
// audit entry and notifies subscribers. On validation failure nothing is
// written.
func (s *Store) SaveCustomer(ctx context.Context, customer *models.Customer) error {
	if result := customer.Validate(); !result.IsValid {
		return &ValidationError{Messages: result.Errors}
	}

	customer.CalculateTotal()
	customer.Metadata.UpdatedAt = time.Now()

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(customer).Error
	if err != nil {
		s.bus.Publish(Event{Type: EventError, Err: err})
		return storageErr("SaveCustomer", err)
	}

	s.logAudit(ctx, "SAVE_CUSTOMER", map[string]interface{}{"customerId": customer.ID})
	s.bus.Publish(Event{Type: EventCustomerSaved, Customer: customer})
	return nil
}

// GetCustomer returns the record for id, or ErrNotFound.
func (s *Store) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	var customer models.Customer
	err := s.db.WithContext(ctx).First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageErr("GetCustomer", err)
	}
	return &customer, nil
}

// GetAllCustomers returns one page of records. The deletion filter runs
// against the indexed column; status, delivery-day and free-text filters,
// the stable sort and the page slice run over the materialized list, the
// same shape the listing has always had.
func (s *Store) GetAllCustomers(ctx context.Context, opts ListOptions) (*CustomerPage, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = config.DefaultPageSize
	}
	if opts.SortBy == "" {
		opts.SortBy = SortByUpdatedAt
	}
	if opts.SortOrder == "" {
		opts.SortOrder = SortDesc
	}

	query := s.db.WithContext(ctx)
	if !opts.IncludeDeleted {
		query = query.Where("meta_deleted = ?", false)
	}

	var customers []models.Customer
	if err := query.Find(&customers).Error; err != nil {
		return nil, storageErr("GetAllCustomers", err)
	}

	customers = applyFilters(customers, opts.Filters)
	sortCustomers(customers, opts.SortBy, opts.SortOrder)

	total := int64(len(customers))
	totalPages := int((total + int64(opts.Limit) - 1) / int64(opts.Limit))

	start := (opts.Page - 1) * opts.Limit
	if start > len(customers) {
		start = len(customers)
	}
	end := start + opts.Limit
	if end > len(customers) {
		end = len(customers)
	}

	return &CustomerPage{
		Customers: customers[start:end],
		Pagination: Pagination{
			Page:       opts.Page,
			Limit:      opts.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    opts.Page < totalPages,
			HasPrev:    opts.Page > 1,
		},
	}, nil
}

func applyFilters(customers []models.Customer, f Filters) []models.Customer {
	filtered := customers[:0]
	search := strings.ToLower(strings.TrimSpace(f.Search))

	for _, c := range customers {
		if f.Status != "" && c.Financial.PaymentStatus != f.Status {
			continue
		}
		if f.DeliveryDay != "" && c.Delivery.Day != f.DeliveryDay {
			continue
		}
		if search != "" && !matchesSearch(c, search) {
			continue
		}
		filtered = append(filtered, c)
	}
	return filtered
}

func matchesSearch(c models.Customer, term string) bool {
	return strings.Contains(strings.ToLower(c.Name), term) ||
		strings.Contains(strings.ToLower(c.Phone), term) ||
		strings.Contains(strings.ToLower(c.ID), term) ||
		strings.Contains(strings.ToLower(c.Notes), term)
}

// sortCustomers orders the list by the chosen field; ties keep their
// natural comparator order via the id tiebreak.
func sortCustomers(customers []models.Customer, sortBy, sortOrder string) {
	less := func(a, b models.Customer) bool {
		switch sortBy {
		case SortByName:
			if a.Name != b.Name {
				return a.Name < b.Name
			}
		case SortByCreatedAt:
			if !a.Metadata.CreatedAt.Equal(b.Metadata.CreatedAt) {
				return a.Metadata.CreatedAt.Before(b.Metadata.CreatedAt)
			}
		default:
			if !a.Metadata.UpdatedAt.Equal(b.Metadata.UpdatedAt) {
				return a.Metadata.UpdatedAt.Before(b.Metadata.UpdatedAt)
			}
		}
		return a.ID < b.ID
	}

	sort.SliceStable(customers, func(i, j int) bool {
		if sortOrder == SortAsc {
			return less(customers[i], customers[j])
		}
		return less(customers[j], customers[i])
	})
}

// AllCustomers returns every record without pagination, for consumers
// that genuinely need the full set (backups, statistics exports).
func (s *Store) AllCustomers(ctx context.Context, includeDeleted bool) ([]models.Customer, error) {
	query := s.db.WithContext(ctx)
	if !includeDeleted {
		query = query.Where("meta_deleted = ?", false)
	}
	var customers []models.Customer
	if err := query.Order("meta_created_at").Find(&customers).Error; err != nil {
		return nil, storageErr("AllCustomers", err)
	}
	return customers, nil
}

// DeleteCustomer removes a record. Soft deletion (the default) flags the
// row and keeps it; hard deletion removes it permanently.
func (s *Store) DeleteCustomer(ctx context.Context, id string, soft bool) error {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return err
	}

	if soft {
		customer.SoftDelete("system")
		customer.Metadata.UpdatedAt = time.Now()
		if err := s.db.WithContext(ctx).Save(customer).Error; err != nil {
			s.bus.Publish(Event{Type: EventError, Err: err})
			return storageErr("DeleteCustomer", err)
		}
		s.logAudit(ctx, "SOFT_DELETE_CUSTOMER", map[string]interface{}{"customerId": id})
	} else {
		if err := s.db.WithContext(ctx).Delete(&models.Customer{}, "id = ?", id).Error; err != nil {
			s.bus.Publish(Event{Type: EventError, Err: err})
			return storageErr("DeleteCustomer", err)
		}
		s.logAudit(ctx, "HARD_DELETE_CUSTOMER", map[string]interface{}{"customerId": id})
	}

	s.bus.Publish(Event{Type: EventCustomerDeleted, CustomerID: id, Soft: soft})
	return nil
}

// SearchCustomers scans all non-deleted records and returns those where
// any of the given fields contains the query, case-insensitively. An
// empty query yields an empty result, never an error.
func (s *Store) SearchCustomers(ctx context.Context, query string, fields []string) ([]models.Customer, error) {
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return []models.Customer{}, nil
	}
	if len(fields) == 0 {
		fields = []string{"name", "phone", "id", "notes"}
	}

	var customers []models.Customer
	err := s.db.WithContext(ctx).Where("meta_deleted = ?", false).Find(&customers).Error
	if err != nil {
		return nil, storageErr("SearchCustomers", err)
	}

	results := []models.Customer{}
	for _, c := range customers {
		for _, field := range fields {
			var value string
			switch field {
			case "name":
				value = c.Name
			case "phone":
				value = c.Phone
			case "id":
				value = c.ID
			case "notes":
				value = c.Notes
			}
			if value != "" && strings.Contains(strings.ToLower(value), term) {
				results = append(results, c)
				break
			}
		}
	}
	return results, nil
}
