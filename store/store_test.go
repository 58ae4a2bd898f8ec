package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"alfajr-backend/config"
	"alfajr-backend/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	// Per-test in-memory database to avoid cross-test interference.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return New(db, zap.NewNop())
}

func testCustomer(name, phone string) *models.Customer {
	return models.NewCustomer(models.CustomerInput{Name: name, Phone: phone})
}

func TestSaveAndGetCustomer(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sewing := 1000.0
	customer := models.NewCustomer(models.CustomerInput{
		Name:        "احمد کریمی",
		Phone:       "0791234567",
		SewingPrice: &sewing,
		PaidAmount:  400,
	})
	require.NoError(t, s.SaveCustomer(ctx, customer))

	got, err := s.GetCustomer(ctx, customer.ID)
	require.NoError(t, err)
	require.Equal(t, customer.ID, got.ID)
	require.Equal(t, "احمد کریمی", got.Name)
	// Derived fields were recomputed on save.
	require.Equal(t, 1000.0, got.Financial.TotalAmount)
	require.Equal(t, 600.0, got.Financial.RemainingAmount)
	require.Equal(t, models.PaymentPartial, got.Financial.PaymentStatus)
	require.Len(t, got.Measurements, len(models.MeasurementFields))
}

func TestSaveCustomerValidationFailureWritesNothing(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	customer := testCustomer("", "")
	err := s.SaveCustomer(ctx, customer)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Len(t, validationErr.Messages, 2)

	var count int64
	require.NoError(t, s.db.Model(&models.Customer{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestSaveCustomerUpserts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	customer := testCustomer("احمد کریمی", "0791234567")
	require.NoError(t, s.SaveCustomer(ctx, customer))
	firstUpdate := customer.Metadata.UpdatedAt

	time.Sleep(10 * time.Millisecond)
	customer.Notes = "updated"
	require.NoError(t, s.SaveCustomer(ctx, customer))

	var count int64
	require.NoError(t, s.db.Model(&models.Customer{}).Count(&count).Error)
	require.EqualValues(t, 1, count)

	got, err := s.GetCustomer(ctx, customer.ID)
	require.NoError(t, err)
	require.Equal(t, "updated", got.Notes)
	require.True(t, got.Metadata.UpdatedAt.After(firstUpdate))
}

func TestGetCustomerNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetCustomer(context.Background(), "CUST-MISSING")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSoftDeleteExcludedFromListing(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	keep := testCustomer("احمد کریمی", "0791234567")
	drop := testCustomer("محمود رضایی", "0707654321")
	require.NoError(t, s.SaveCustomer(ctx, keep))
	require.NoError(t, s.SaveCustomer(ctx, drop))

	require.NoError(t, s.DeleteCustomer(ctx, drop.ID, true))

	page, err := s.GetAllCustomers(ctx, ListOptions{})
	require.NoError(t, err)
	require.Len(t, page.Customers, 1)
	require.Equal(t, keep.ID, page.Customers[0].ID)

	// Soft-deleted rows stay in place and come back with includeDeleted.
	page, err = s.GetAllCustomers(ctx, ListOptions{IncludeDeleted: true})
	require.NoError(t, err)
	require.Len(t, page.Customers, 2)
}

func TestHardDeleteRemovesRow(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	customer := testCustomer("احمد کریمی", "0791234567")
	require.NoError(t, s.SaveCustomer(ctx, customer))
	require.NoError(t, s.DeleteCustomer(ctx, customer.ID, false))

	_, err := s.GetCustomer(ctx, customer.ID)
	require.ErrorIs(t, err, ErrNotFound)

	page, err := s.GetAllCustomers(ctx, ListOptions{IncludeDeleted: true})
	require.NoError(t, err)
	require.Empty(t, page.Customers)
}

func TestDeleteCustomerNotFound(t *testing.T) {
	s := newTestStore(t)
	err := s.DeleteCustomer(context.Background(), "CUST-MISSING", true)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPagination(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 45; i++ {
		c := testCustomer(fmt.Sprintf("مشتری %02d", i), "0791234567")
		require.NoError(t, s.SaveCustomer(ctx, c))
	}

	page1, err := s.GetAllCustomers(ctx, ListOptions{Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Len(t, page1.Customers, 20)
	require.EqualValues(t, 45, page1.Pagination.Total)
	require.Equal(t, 3, page1.Pagination.TotalPages)
	require.False(t, page1.Pagination.HasPrev)
	require.True(t, page1.Pagination.HasNext)

	page3, err := s.GetAllCustomers(ctx, ListOptions{Page: 3, Limit: 20})
	require.NoError(t, err)
	require.Len(t, page3.Customers, 5)
	require.True(t, page3.Pagination.HasPrev)
	require.False(t, page3.Pagination.HasNext)

	// Pages partition the list: no id appears twice.
	seen := make(map[string]bool)
	for p := 1; p <= 3; p++ {
		page, err := s.GetAllCustomers(ctx, ListOptions{Page: p, Limit: 20})
		require.NoError(t, err)
		for _, c := range page.Customers {
			require.False(t, seen[c.ID])
			seen[c.ID] = true
		}
	}
	require.Len(t, seen, 45)
}

func TestListingFiltersAndSort(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	paidPrice := 500.0
	paid := models.NewCustomer(models.CustomerInput{
		Name: "بهرام احمدی", Phone: "0791111111",
		SewingPrice: &paidPrice, PaidAmount: 500,
		DeliveryDay: "شنبه",
	})
	pending := models.NewCustomer(models.CustomerInput{
		Name: "آرش نادری", Phone: "0792222222",
		DeliveryDay: "جمعه",
		Notes:       "عجله دارد",
	})
	pendingPrice := 300.0
	pending.Financial.SewingPrice = &pendingPrice
	require.NoError(t, s.SaveCustomer(ctx, paid))
	require.NoError(t, s.SaveCustomer(ctx, pending))

	page, err := s.GetAllCustomers(ctx, ListOptions{
		Filters: Filters{Status: models.PaymentPaid},
	})
	require.NoError(t, err)
	require.Len(t, page.Customers, 1)
	require.Equal(t, paid.ID, page.Customers[0].ID)

	page, err = s.GetAllCustomers(ctx, ListOptions{
		Filters: Filters{DeliveryDay: "جمعه"},
	})
	require.NoError(t, err)
	require.Len(t, page.Customers, 1)
	require.Equal(t, pending.ID, page.Customers[0].ID)

	page, err = s.GetAllCustomers(ctx, ListOptions{
		Filters: Filters{Search: "2222"},
	})
	require.NoError(t, err)
	require.Len(t, page.Customers, 1)
	require.Equal(t, pending.ID, page.Customers[0].ID)

	page, err = s.GetAllCustomers(ctx, ListOptions{
		SortBy: SortByName, SortOrder: SortAsc,
	})
	require.NoError(t, err)
	require.Len(t, page.Customers, 2)
	require.Equal(t, "آرش نادری", page.Customers[0].Name)
}

func TestListingDefaultSortIsUpdatedAtDesc(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	older := testCustomer("قدیمی تر", "0791111111")
	require.NoError(t, s.SaveCustomer(ctx, older))
	time.Sleep(10 * time.Millisecond)
	newer := testCustomer("تازه تر", "0792222222")
	require.NoError(t, s.SaveCustomer(ctx, newer))

	page, err := s.GetAllCustomers(ctx, ListOptions{})
	require.NoError(t, err)
	require.Equal(t, newer.ID, page.Customers[0].ID)
	require.Equal(t, older.ID, page.Customers[1].ID)
}

func TestSearchCustomers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	match := models.NewCustomer(models.CustomerInput{
		Name: "احمد کریمی", Phone: "0791234567", Notes: "سفارش فوری",
	})
	other := testCustomer("محمود رضایی", "0707654321")
	deleted := models.NewCustomer(models.CustomerInput{
		Name: "حذف شده", Phone: "0791234999",
	})
	require.NoError(t, s.SaveCustomer(ctx, match))
	require.NoError(t, s.SaveCustomer(ctx, other))
	require.NoError(t, s.SaveCustomer(ctx, deleted))
	require.NoError(t, s.DeleteCustomer(ctx, deleted.ID, true))

	// Phone substring search only hits matching phones.
	results, err := s.SearchCustomers(ctx, "91234", []string{"phone"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, match.ID, results[0].ID)

	// Default fields cover name, phone, id and notes.
	results, err = s.SearchCustomers(ctx, "فوری", nil)
	require.NoError(t, err)
	require.Len(t, results, 1)

	// Empty query returns an empty result, not an error.
	results, err = s.SearchCustomers(ctx, "   ", nil)
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestSettings(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Unsaved keys fall back to the defaults, unknown keys to nil.
	require.Equal(t, "dark", s.GetSetting(ctx, "theme"))
	require.Nil(t, s.GetSetting(ctx, "no-such-key"))

	require.NoError(t, s.SaveSetting(ctx, "theme", "light"))
	require.Equal(t, "light", s.GetSetting(ctx, "theme"))

	// Unknown keys are stored and returned verbatim.
	require.NoError(t, s.SaveSetting(ctx, "custom", "value"))
	require.Equal(t, "value", s.GetSetting(ctx, "custom"))

	all := s.GetAllSettings(ctx)
	require.Equal(t, "light", all["theme"])
	require.Equal(t, true, all["autoSave"])
	require.Equal(t, "value", all["custom"])
}

func TestInitializeSettingsIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.InitializeSettings(ctx))
	require.NoError(t, s.SaveSetting(ctx, "theme", "light"))

	// A second run must not reset user-modified values.
	require.NoError(t, s.InitializeSettings(ctx))
	require.Equal(t, "light", s.GetSetting(ctx, "theme"))
}

func TestClearAllData(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveCustomer(ctx, testCustomer("احمد کریمی", "0791234567")))

	cleared := false
	s.Events().Subscribe(EventDataCleared, func(e Event) { cleared = true })

	require.NoError(t, s.ClearAllData(ctx))
	require.True(t, cleared)

	page, err := s.GetAllCustomers(ctx, ListOptions{IncludeDeleted: true})
	require.NoError(t, err)
	require.Empty(t, page.Customers)

	// Settings survive a data clear.
	require.NoError(t, s.SaveSetting(ctx, "theme", "light"))
	require.NoError(t, s.ClearAllData(ctx))
	require.Equal(t, "light", s.GetSetting(ctx, "theme"))
}

func TestEvents(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var savedID, deletedID string
	s.Events().Subscribe(EventCustomerSaved, func(e Event) { savedID = e.Customer.ID })
	s.Events().Subscribe(EventCustomerDeleted, func(e Event) { deletedID = e.CustomerID })
	// A panicking subscriber must not break the emitter or its peers.
	s.Events().Subscribe(EventCustomerSaved, func(e Event) { panic("boom") })

	customer := testCustomer("احمد کریمی", "0791234567")
	require.NoError(t, s.SaveCustomer(ctx, customer))
	require.Equal(t, customer.ID, savedID)

	require.NoError(t, s.DeleteCustomer(ctx, customer.ID, true))
	require.Equal(t, customer.ID, deletedID)
}

func TestStatistics(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	paidPrice := 1000.0
	paid := models.NewCustomer(models.CustomerInput{
		Name: "پرداخت شده", Phone: "0791111111",
		SewingPrice: &paidPrice, PaidAmount: 1000,
		DeliveryStatus: models.DeliveryDelivered,
	})
	partialPrice := 500.0
	partial := models.NewCustomer(models.CustomerInput{
		Name: "نیمه پرداخت", Phone: "0792222222",
		SewingPrice: &partialPrice, PaidAmount: 200,
		DeliveryStatus: models.DeliveryInProgress,
	})
	deletedPrice := 300.0
	deleted := models.NewCustomer(models.CustomerInput{
		Name: "حذف شده", Phone: "0793333333",
		SewingPrice: &deletedPrice,
	})

	require.NoError(t, s.SaveCustomer(ctx, paid))
	require.NoError(t, s.SaveCustomer(ctx, partial))
	require.NoError(t, s.SaveCustomer(ctx, deleted))
	require.NoError(t, s.DeleteCustomer(ctx, deleted.ID, true))

	stats, err := s.GetStatistics(ctx)
	require.NoError(t, err)

	require.Equal(t, 3, stats.TotalCustomers)
	require.Equal(t, 2, stats.ActiveCustomers)
	require.Equal(t, 1, stats.DeletedCustomers)

	require.Equal(t, 1, stats.PaymentStats.Paid)
	require.Equal(t, 1, stats.PaymentStats.Partial)
	require.Equal(t, 1, stats.PaymentStats.Pending)

	require.Equal(t, 1, stats.DeliveryStats.Delivered)
	require.Equal(t, 1, stats.DeliveryStats.InProgress)
	require.Equal(t, 1, stats.DeliveryStats.Pending)

	require.Equal(t, 1800.0, stats.FinancialStats.TotalRevenue)
	require.Equal(t, 1200.0, stats.FinancialStats.TotalPaid)
	require.Equal(t, 600.0, stats.FinancialStats.TotalPending)
	require.Equal(t, 600.0, stats.FinancialStats.AverageOrderValue)

	// All three were created just now, in every bucket.
	require.Equal(t, 3, stats.TimelineStats.Today)
	require.Equal(t, 3, stats.TimelineStats.ThisWeek)
	require.Equal(t, 3, stats.TimelineStats.ThisMonth)
}
