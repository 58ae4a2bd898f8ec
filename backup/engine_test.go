package backup

import (
	"context"
	"fmt"
	"testing"

	"alfajr-backend/config"
	"alfajr-backend/models"
	"alfajr-backend/store"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestEngine(t *testing.T) (*Engine, *store.Store) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	st := store.New(db, zap.NewNop())
	return NewEngine(st, zap.NewNop()), st
}

func seedCustomer(t *testing.T, st *store.Store, name, phone string) *models.Customer {
	t.Helper()
	c := models.NewCustomer(models.CustomerInput{Name: name, Phone: phone})
	require.NoError(t, st.SaveCustomer(context.Background(), c))
	return c
}

func TestCodecRoundTrip(t *testing.T) {
	codec := NewCodec("test-secret")
	snapshot := &models.Snapshot{
		Customers: []models.Customer{*models.NewCustomer(models.CustomerInput{
			Name: "احمد کریمی", Phone: "0791234567",
		})},
		Settings: map[string]interface{}{"theme": "dark"},
		Metadata: models.SnapshotMetadata{Version: config.SchemaVersion, Checksum: "x"},
	}

	blob, err := codec.Seal(snapshot)
	require.NoError(t, err)
	require.NotContains(t, blob, "احمد", "payload must not appear in the clear")

	opened, err := codec.Open(blob)
	require.NoError(t, err)
	require.Len(t, opened.Customers, 1)
	require.Equal(t, snapshot.Customers[0].ID, opened.Customers[0].ID)
	require.Equal(t, "dark", opened.Settings["theme"])
}

func TestCodecRejectsWrongKeyAndGarbage(t *testing.T) {
	codec := NewCodec("test-secret")
	blob, err := codec.Seal(&models.Snapshot{Customers: []models.Customer{}})
	require.NoError(t, err)

	_, err = NewCodec("other-secret").Open(blob)
	require.Error(t, err)

	_, err = codec.Open("no-separator")
	require.Error(t, err)

	// Flipping a ciphertext byte must fail authentication.
	tampered := []byte(blob)
	tampered[len(tampered)-5] ^= 0x01
	_, err = codec.Open(string(tampered))
	require.Error(t, err)
}

func TestCreateBackup(t *testing.T) {
	engine, st := newTestEngine(t)
	ctx := context.Background()

	seedCustomer(t, st, "احمد کریمی", "0791234567")
	gone := seedCustomer(t, st, "حذف شده", "0707654321")
	require.NoError(t, st.DeleteCustomer(ctx, gone.ID, true))

	snapshot, err := engine.Create(ctx, models.BackupManual)
	require.NoError(t, err)

	// Soft-deleted records are part of the snapshot.
	require.Len(t, snapshot.Customers, 2)
	require.Equal(t, 2, snapshot.Metadata.TotalCustomers)
	require.Equal(t, config.SchemaVersion, snapshot.Metadata.Version)
	require.Equal(t, models.BackupManual, snapshot.Metadata.Type)

	checksum, err := customersChecksum(snapshot.Customers)
	require.NoError(t, err)
	require.Equal(t, checksum, snapshot.Metadata.Checksum)

	require.Equal(t, "dark", snapshot.Settings["theme"])

	entries, err := engine.ListBackups(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, models.BackupManual, entries[0].Type)
	require.NotZero(t, entries[0].Size)
	// Listing omits the sealed payload.
	require.Empty(t, entries[0].Data)
}

func TestBackupRestoreRoundTrip(t *testing.T) {
	engine, st := newTestEngine(t)
	ctx := context.Background()

	price := 750.0
	original := models.NewCustomer(models.CustomerInput{
		Name:        "احمد کریمی",
		Phone:       "0791234567",
		SewingPrice: &price,
		PaidAmount:  300,
		Measurements: map[string]interface{}{
			"قد":   175.0,
			"گردن": 42.0,
		},
		Tags: []string{"vip"},
	})
	require.NoError(t, st.SaveCustomer(ctx, original))
	seedCustomer(t, st, "محمود رضایی", "0707654321")
	require.NoError(t, st.SaveSetting(ctx, "theme", "light"))

	snapshot, err := engine.Create(ctx, models.BackupManual)
	require.NoError(t, err)

	// Mutate the live data, then restore the snapshot over it.
	seedCustomer(t, st, "بعد از پشتیبان", "0799999999")

	result, err := engine.Restore(ctx, snapshot)
	require.NoError(t, err)
	require.Equal(t, 2, result.Total)
	require.Equal(t, 2, result.Restored)
	require.Zero(t, result.Failed)

	page, err := st.GetAllCustomers(ctx, store.ListOptions{IncludeDeleted: true})
	require.NoError(t, err)
	require.Len(t, page.Customers, 2)

	got, err := st.GetCustomer(ctx, original.ID)
	require.NoError(t, err)
	require.Equal(t, "احمد کریمی", got.Name)
	require.Equal(t, 750.0, got.Financial.TotalAmount)
	require.Equal(t, 450.0, got.Financial.RemainingAmount)
	require.Equal(t, models.PaymentPartial, got.Financial.PaymentStatus)
	require.NotNil(t, got.Measurements["قد"])
	require.Equal(t, 175.0, *got.Measurements["قد"])
	require.Equal(t, models.StringList{"vip"}, got.Tags)

	require.Equal(t, "light", st.GetSetting(ctx, "theme"))
}

func TestRestoreRejectsCorruptedSnapshot(t *testing.T) {
	engine, st := newTestEngine(t)
	ctx := context.Background()

	survivor := seedCustomer(t, st, "احمد کریمی", "0791234567")
	snapshot, err := engine.Create(ctx, models.BackupManual)
	require.NoError(t, err)

	snapshot.Metadata.Checksum = "bogus"
	_, err = engine.Restore(ctx, snapshot)

	var integrityErr *store.IntegrityError
	require.ErrorAs(t, err, &integrityErr)
	require.Equal(t, "پشتیبان آسیب دیده است", integrityErr.Reason)

	// The gate ran before anything was cleared.
	_, err = st.GetCustomer(ctx, survivor.ID)
	require.NoError(t, err)
}

func TestRestoreRejectsVersionMismatch(t *testing.T) {
	engine, st := newTestEngine(t)
	ctx := context.Background()

	survivor := seedCustomer(t, st, "احمد کریمی", "0791234567")
	snapshot, err := engine.Create(ctx, models.BackupManual)
	require.NoError(t, err)

	snapshot.Metadata.Version = config.SchemaVersion + 1
	_, err = engine.Restore(ctx, snapshot)

	var integrityErr *store.IntegrityError
	require.ErrorAs(t, err, &integrityErr)

	_, err = st.GetCustomer(ctx, survivor.ID)
	require.NoError(t, err)
}

func TestRestoreRejectsMalformedSnapshot(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	var integrityErr *store.IntegrityError

	_, err := engine.Restore(ctx, nil)
	require.ErrorAs(t, err, &integrityErr)

	_, err = engine.Restore(ctx, &models.Snapshot{})
	require.ErrorAs(t, err, &integrityErr)
}

func TestRestoreCountsBadRecords(t *testing.T) {
	engine, st := newTestEngine(t)
	ctx := context.Background()

	seedCustomer(t, st, "احمد کریمی", "0791234567")
	snapshot, err := engine.Create(ctx, models.BackupManual)
	require.NoError(t, err)

	// Inject a record that fails validation and recompute the checksum so
	// the integrity gate still passes.
	bad := models.NewCustomer(models.CustomerInput{Name: "", Phone: ""})
	snapshot.Customers = append(snapshot.Customers, *bad)
	snapshot.Metadata.Checksum, err = customersChecksum(snapshot.Customers)
	require.NoError(t, err)

	result, err := engine.Restore(ctx, snapshot)
	require.NoError(t, err)
	require.Equal(t, 2, result.Total)
	require.Equal(t, 1, result.Restored)
	require.Equal(t, 1, result.Failed)
}
