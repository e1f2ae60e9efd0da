package view

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/rogerio-castellano/sweet-shop/internal/catalog"
	"github.com/rogerio-castellano/sweet-shop/internal/filter"
	"github.com/rogerio-castellano/sweet-shop/internal/guard"
	"github.com/rogerio-castellano/sweet-shop/internal/models"
)

// Dashboard is the public browsing surface: search, filter and purchase.
type Dashboard struct {
	store  *Store
	client catalog.Client
	guard  *guard.Guard
	notify Notifier

	mu      sync.Mutex
	name    string
	cat     string
	min     string
	max     string
	pending map[int64]string
}

func NewDashboard(client catalog.Client, notify Notifier) *Dashboard {
	return &Dashboard{
		store:   NewStore(client),
		client:  client,
		guard:   guard.New(),
		notify:  notify,
		pending: make(map[int64]string),
	}
}

// Load fetches the collection. Failures only set the inline load error.
func (d *Dashboard) Load(ctx context.Context) error {
	return d.store.Reload(ctx)
}

func (d *Dashboard) LoadError() string { return d.store.LoadError() }

// Items is the unfiltered snapshot.
func (d *Dashboard) Items() []models.Sweet { return d.store.Items() }

func (d *Dashboard) SetName(v string) {
	d.mu.Lock()
	d.name = v
	d.mu.Unlock()
}

func (d *Dashboard) SetCategory(v string) {
	d.mu.Lock()
	d.cat = v
	d.mu.Unlock()
}

// SetPriceRange stores the raw bound inputs. Empty or non-numeric values mean no bound.
func (d *Dashboard) SetPriceRange(min, max string) {
	d.mu.Lock()
	d.min, d.max = min, max
	d.mu.Unlock()
}

// Spec builds the filter from the current inputs.
func (d *Dashboard) Spec() filter.Spec {
	d.mu.Lock()
	defer d.mu.Unlock()
	return filter.Spec{
		Name:     d.name,
		Category: d.cat,
		MinPrice: filter.ParseBound(d.min),
		MaxPrice: filter.ParseBound(d.max),
	}
}

// Visible recomputes the filtered view from the current snapshot and inputs.
func (d *Dashboard) Visible() []models.Sweet {
	return filter.Apply(d.store.Items(), d.Spec())
}

// Categories are taken from the unfiltered collection.
func (d *Dashboard) Categories() []string {
	return filter.Categories(d.store.Items())
}

// SetPendingQuantity records the raw purchase quantity typed for id.
func (d *Dashboard) SetPendingQuantity(id int64, raw string) {
	d.mu.Lock()
	d.pending[id] = raw
	d.mu.Unlock()
}

func (d *Dashboard) PendingQuantity(id int64) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending[id]
}

// Purchasing reports whether a purchase for id is in flight.
func (d *Dashboard) Purchasing(id int64) bool {
	return d.guard.InFlight(id)
}

// CanPurchase tells the UI whether the purchase control for id should be enabled.
func (d *Dashboard) CanPurchase(id int64) bool {
	s, ok := d.store.Get(id)
	if !ok || s.Quantity == 0 || d.guard.InFlight(id) {
		return false
	}
	qty, err := parsePositive(d.PendingQuantity(id))
	return err == nil && qty > 0
}

// Purchase buys the pending quantity of id. The collection is reloaded on success and the
// pending input cleared; on failure the input is left for correction.
func (d *Dashboard) Purchase(ctx context.Context, id int64) error {
	raw := d.PendingQuantity(id)
	qty, err := parsePositive(raw)
	if err != nil {
		verr := &ValidationError{Field: "quantity", Reason: "Please enter a valid quantity greater than 0"}
		d.notify.Failure(verr.Reason)
		return verr
	}
	// advisory only, the service has the final word
	if s, ok := d.store.Get(id); ok && qty > s.Quantity {
		verr := &ValidationError{Field: "quantity", Reason: fmt.Sprintf("Insufficient stock! Only %d items available.", s.Quantity)}
		d.notify.Failure(verr.Reason)
		return verr
	}

	ok, err := d.guard.Do(id, func() error {
		if _, err := d.client.Purchase(ctx, id, qty); err != nil {
			d.notify.Failure(catalog.Reason(err, catalog.FallbackPurchase))
			return err
		}

		_ = d.store.Reload(ctx)
		d.mu.Lock()
		delete(d.pending, id)
		d.mu.Unlock()
		d.notify.Success(fmt.Sprintf("Successfully purchased %d item(s)!", qty))
		return nil
	})
	if !ok {
		return ErrMutationInFlight
	}
	return err
}

// parsePositive parses a strictly positive integer.
func parsePositive(raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, fmt.Errorf("quantity must be positive, got %d", v)
	}
	return v, nil
}
