package services

import (
	"context"
	"sync"
	"time"

	"alfajr-backend/models"
	"alfajr-backend/store"

	"go.uber.org/zap"
)

// DefaultAutoSaveDelay is the quiet period after the last edit before a
// record is persisted.
const DefaultAutoSaveDelay = 2 * time.Second

// AutoSaver coalesces bursts of edits to a record into a single deferred
// persist. Each new Schedule for the same customer cancels and restarts
// the delay; Flush persists immediately.
type AutoSaver struct {
	store *store.Store
	log   *zap.Logger
	delay time.Duration

	mu      sync.Mutex
	timers  map[string]*time.Timer
	pending map[string]*models.Customer
}

func NewAutoSaver(st *store.Store, log *zap.Logger, delay time.Duration) *AutoSaver {
	if delay <= 0 {
		delay = DefaultAutoSaveDelay
	}
	return &AutoSaver{
		store:   st,
		log:     log,
		delay:   delay,
		timers:  make(map[string]*time.Timer),
		pending: make(map[string]*models.Customer),
	}
}

// Schedule records the latest state of a customer and arms the deferred
// save, replacing any save already scheduled for the same id.
func (a *AutoSaver) Schedule(customer *models.Customer) {
	a.mu.Lock()
	defer a.mu.Unlock()

	id := customer.ID
	a.pending[id] = customer

	if timer, ok := a.timers[id]; ok {
		timer.Reset(a.delay)
		return
	}
	a.timers[id] = time.AfterFunc(a.delay, func() {
		if err := a.Flush(context.Background(), id); err != nil {
			a.log.Warn("autosave failed", zap.String("customerId", id), zap.Error(err))
		}
	})
}

// Flush persists the pending state for id immediately, cancelling the
// deferred save. Flushing an id with nothing pending is a no-op.
func (a *AutoSaver) Flush(ctx context.Context, id string) error {
	a.mu.Lock()
	customer, ok := a.pending[id]
	if ok {
		delete(a.pending, id)
		if timer, exists := a.timers[id]; exists {
			timer.Stop()
			delete(a.timers, id)
		}
	}
	a.mu.Unlock()

	if !ok {
		return nil
	}
	return a.store.SaveCustomer(ctx, customer)
}

// FlushAll persists everything still pending, e.g. on shutdown.
func (a *AutoSaver) FlushAll(ctx context.Context) {
	a.mu.Lock()
	ids := make([]string, 0, len(a.pending))
	for id := range a.pending {
		ids = append(ids, id)
	}
	a.mu.Unlock()

	for _, id := range ids {
		if err := a.Flush(ctx, id); err != nil {
			a.log.Warn("autosave flush failed", zap.String("customerId", id), zap.Error(err))
		}
	}
}

// Stop cancels every scheduled save without persisting.
func (a *AutoSaver) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for id, timer := range a.timers {
		timer.Stop()
		delete(a.timers, id)
		delete(a.pending, id)
	}
}
