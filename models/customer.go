package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"alfajr-backend/utils"

	"github.com/oklog/ulid/v2"
)

// Payment and delivery lifecycle states.
const (
	PaymentPending = "pending"
	PaymentPartial = "partial"
	PaymentPaid    = "paid"

	DeliveryPending    = "pending"
	DeliveryInProgress = "in_progress"
	DeliveryDelivered  = "delivered"

	OrderPending    = "pending"
	OrderInProgress = "in_progress"
	OrderCompleted  = "completed"
)

// Customer is the central record of the system. Nested groups that are
// never filtered on are stored as JSON columns; scalars used by list
// filters and sorting live in indexed columns.
type Customer struct {
	ID      string `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"index;not null" json:"name"`
	Phone   string `gorm:"index;not null" json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Notes   string `json:"notes"`

	Measurements Measurements  `gorm:"type:text" json:"measurements"`
	Models       GarmentModels `gorm:"type:text" json:"models"`
	Orders       OrderList     `gorm:"type:text" json:"orders"`

	Financial Financial `gorm:"embedded;embeddedPrefix:financial_" json:"financial"`
	Delivery  Delivery  `gorm:"embedded;embeddedPrefix:delivery_" json:"delivery"`
	Metadata  Metadata  `gorm:"embedded;embeddedPrefix:meta_" json:"metadata"`

	Tags        StringList `gorm:"type:text" json:"tags"`
	Attachments StringList `gorm:"type:text" json:"attachments"`
}

// Measurements maps every declared measurement field to a value, or nil
// when the field was left empty on the form.
type Measurements map[string]*float64

// GarmentModels holds the style selections for a customer's garment.
type GarmentModels struct {
	Yakhun   string   `json:"yakhun"`
	Sleeve   string   `json:"sleeve"`
	Skirt    []string `json:"skirt"`
	Features []string `json:"features"`
	Custom   string   `json:"custom"`
}

// Order is one entry in a customer's order history.
type Order struct {
	ID      string     `json:"id"`
	Details string     `json:"details"`
	Date    *time.Time `json:"date"`
	Status  string     `json:"status"`
}

type OrderList []Order

type StringList []string

// Financial carries the money side of a record. TotalAmount,
// RemainingAmount and PaymentStatus are derived by CalculateTotal and
// recomputed on every save; they are never trusted from input.
type Financial struct {
	SewingPrice     *float64   `json:"sewingPrice"`
	FabricCost      *float64   `json:"fabricCost"`
	AdditionalCosts *float64   `json:"additionalCosts"`
	TotalAmount     float64    `json:"totalAmount"`
	PaidAmount      float64    `json:"paidAmount"`
	RemainingAmount float64    `json:"remainingAmount"`
	PaymentStatus   string     `gorm:"index;default:'pending'" json:"paymentStatus"`
	PaymentDate     *time.Time `json:"paymentDate"`
}

type Delivery struct {
	Day    string     `gorm:"index" json:"day"`
	Date   *time.Time `json:"date"`
	Status string     `gorm:"index;default:'pending'" json:"status"`
	Notes  string     `json:"notes"`
}

type Metadata struct {
	CreatedAt time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"index" json:"updatedAt"`
	CreatedBy string     `json:"createdBy"`
	Version   int        `json:"version"`
	Deleted   bool       `gorm:"index" json:"deleted"`
	DeletedAt *time.Time `json:"deletedAt"`
	DeletedBy string     `json:"deletedBy"`
}

// CustomerInput is the loose form accepted from the UI layer. Every field
// is optional; NewCustomer fills defaults for whatever is missing.
type CustomerInput struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Notes   string `json:"notes"`

	Measurements map[string]interface{} `json:"measurements"`
	Models       GarmentModels          `json:"models"`
	Orders       []Order                `json:"orders"`

	SewingPrice     *float64   `json:"sewingPrice"`
	FabricCost      *float64   `json:"fabricCost"`
	AdditionalCosts *float64   `json:"additionalCosts"`
	PaidAmount      float64    `json:"paidAmount"`
	PaymentDate     *time.Time `json:"paymentDate"`

	DeliveryDay    string     `json:"deliveryDay"`
	DeliveryDate   *time.Time `json:"deliveryDate"`
	DeliveryStatus string     `json:"deliveryStatus"`
	DeliveryNotes  string     `json:"deliveryNotes"`

	CreatedAt *time.Time `json:"createdAt"`
	CreatedBy string     `json:"createdBy"`
	Version   int        `json:"version"`

	Tags        []string `json:"tags"`
	Attachments []string `json:"attachments"`
}

// GenerateCustomerID returns a new time-ordered customer id. ULIDs embed a
// millisecond timestamp followed by randomness, so concurrent creations on
// one device cannot realistically collide.
func GenerateCustomerID() string {
	return "CUST-" + ulid.Make().String()
}

// NewCustomer normalizes loose input into a complete record: free text is
// sanitized, every declared measurement field is present, sub-structures
// get their defaults and metadata is stamped.
func NewCustomer(input CustomerInput) *Customer {
	now := time.Now()

	c := &Customer{
		ID:      input.ID,
		Name:    utils.SanitizeInput(input.Name),
		Phone:   strings.TrimSpace(input.Phone),
		Email:   utils.SanitizeInput(input.Email),
		Address: utils.SanitizeInput(input.Address),
		Notes:   utils.SanitizeInput(input.Notes),

		Measurements: normalizeMeasurements(input.Measurements),
		Models:       normalizeModels(input.Models),
		Orders:       OrderList(input.Orders),

		Financial: Financial{
			SewingPrice:     input.SewingPrice,
			FabricCost:      input.FabricCost,
			AdditionalCosts: input.AdditionalCosts,
			PaidAmount:      input.PaidAmount,
			PaymentStatus:   PaymentPending,
			PaymentDate:     input.PaymentDate,
		},
		Delivery: Delivery{
			Day:    input.DeliveryDay,
			Date:   input.DeliveryDate,
			Status: input.DeliveryStatus,
			Notes:  utils.SanitizeInput(input.DeliveryNotes),
		},
		Metadata: Metadata{
			CreatedAt: now,
			UpdatedAt: now,
			CreatedBy: input.CreatedBy,
			Version:   input.Version,
		},

		Tags:        StringList(input.Tags),
		Attachments: StringList(input.Attachments),
	}

	if c.ID == "" {
		c.ID = GenerateCustomerID()
	}
	if c.Orders == nil {
		c.Orders = OrderList{}
	}
	if c.Tags == nil {
		c.Tags = StringList{}
	}
	if c.Attachments == nil {
		c.Attachments = StringList{}
	}
	if c.Delivery.Status == "" {
		c.Delivery.Status = DeliveryPending
	}
	if input.CreatedAt != nil {
		c.Metadata.CreatedAt = *input.CreatedAt
	}
	if c.Metadata.CreatedBy == "" {
		c.Metadata.CreatedBy = "system"
	}
	if c.Metadata.Version == 0 {
		c.Metadata.Version = 1
	}

	return c
}

// normalizeMeasurements fills every declared field: present values are
// coerced to a number, everything else becomes the empty marker.
func normalizeMeasurements(raw map[string]interface{}) Measurements {
	m := make(Measurements, len(MeasurementFields))
	for field := range MeasurementFields {
		m[field] = coerceFloat(raw[field])
	}
	return m
}

func normalizeModels(in GarmentModels) GarmentModels {
	if in.Skirt == nil {
		in.Skirt = []string{}
	}
	if in.Features == nil {
		in.Features = []string{}
	}
	return in
}

func coerceFloat(v interface{}) *float64 {
	switch n := v.(type) {
	case nil:
		return nil
	case float64:
		return &n
	case float32:
		f := float64(n)
		return &f
	case int:
		f := float64(n)
		return &f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}

// ValidationResult accumulates every rule violation found in one pass.
type ValidationResult struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// Validate checks required fields, formats and measurement ranges. It is
// pure and never short-circuits: all violations are reported together.
func (c *Customer) Validate() ValidationResult {
	var errs []string

	name := strings.TrimSpace(c.Name)
	if name == "" {
		errs = append(errs, "نام مشتری الزامی است")
	} else if len([]rune(name)) < 2 {
		errs = append(errs, "نام باید حداقل ۲ کاراکتر باشد")
	}

	if c.Phone == "" {
		errs = append(errs, "شماره تلفن الزامی است")
	} else if !utils.ValidatePhone(c.Phone) {
		errs = append(errs, "شماره تلفن معتبر نیست")
	}

	if c.Email != "" && !utils.ValidateEmail(c.Email) {
		errs = append(errs, "ایمیل معتبر نیست")
	}

	for field, value := range c.Measurements {
		rule, ok := MeasurementFields[field]
		if !ok || value == nil {
			continue
		}
		if *value < rule.Min || *value > rule.Max {
			errs = append(errs, fmt.Sprintf("%s باید بین %s تا %s %s باشد",
				rule.Label, formatBound(rule.Min), formatBound(rule.Max), rule.Unit))
		}
	}

	if c.Financial.SewingPrice != nil && *c.Financial.SewingPrice < 0 {
		errs = append(errs, "قیمت دوخت نمی‌تواند منفی باشد")
	}

	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// CalculateTotal recomputes the derived financial fields. It must run
// before every persist so the stored status always matches its inputs.
func (c *Customer) CalculateTotal() {
	total := floatOrZero(c.Financial.SewingPrice) +
		floatOrZero(c.Financial.FabricCost) +
		floatOrZero(c.Financial.AdditionalCosts)

	c.Financial.TotalAmount = total
	c.Financial.RemainingAmount = total - c.Financial.PaidAmount

	switch {
	case c.Financial.RemainingAmount <= 0:
		c.Financial.PaymentStatus = PaymentPaid
	case c.Financial.PaidAmount > 0:
		c.Financial.PaymentStatus = PaymentPartial
	default:
		c.Financial.PaymentStatus = PaymentPending
	}
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// SoftDelete marks the record deleted without removing the row.
func (c *Customer) SoftDelete(by string) {
	now := time.Now()
	c.Metadata.Deleted = true
	c.Metadata.DeletedAt = &now
	c.Metadata.DeletedBy = by
}

// JSON column plumbing for the nested groups stored as text.

func jsonValue(v interface{}) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func jsonScan(dest interface{}, value interface{}) error {
	switch b := value.(type) {
	case []byte:
		return json.Unmarshal(b, dest)
	case string:
		return json.Unmarshal([]byte(b), dest)
	case nil:
		return nil
	default:
		return errors.New("type assertion to []byte failed")
	}
}

func (m Measurements) Value() (driver.Value, error)  { return jsonValue(m) }
func (m *Measurements) Scan(value interface{}) error { return jsonScan(m, value) }

func (g GarmentModels) Value() (driver.Value, error)  { return jsonValue(g) }
func (g *GarmentModels) Scan(value interface{}) error { return jsonScan(g, value) }

func (o OrderList) Value() (driver.Value, error)  { return jsonValue(o) }
func (o *OrderList) Scan(value interface{}) error { return jsonScan(o, value) }

func (s StringList) Value() (driver.Value, error)  { return jsonValue(s) }
func (s *StringList) Scan(value interface{}) error { return jsonScan(s, value) }
