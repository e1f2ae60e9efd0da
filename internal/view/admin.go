package view

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/rogerio-castellano/sweet-shop/internal/catalog"
	"github.com/rogerio-castellano/sweet-shop/internal/guard"
	"github.com/rogerio-castellano/sweet-shop/internal/models"
	"github.com/shopspring/decimal"
)

const deletePrompt = "Are you sure you want to delete this sweet?"

// Draft mirrors the editable fields of a sweet as raw, unvalidated text.
type Draft struct {
	Name     string
	Category string
	Price    string
	Quantity string
}

// Admin is the management surface: create, edit, delete and restock.
type Admin struct {
	store   *Store
	client  catalog.Client
	guard   *guard.Guard
	notify  Notifier
	confirm Confirmer

	mu        sync.Mutex
	draft     *Draft
	editingID int64
}

func NewAdmin(client catalog.Client, notify Notifier, confirm Confirmer) *Admin {
	return &Admin{
		store:   NewStore(client),
		client:  client,
		guard:   guard.New(),
		notify:  notify,
		confirm: confirm,
	}
}

func (a *Admin) Load(ctx context.Context) error { return a.store.Reload(ctx) }

func (a *Admin) LoadError() string { return a.store.LoadError() }

func (a *Admin) Items() []models.Sweet { return a.store.Items() }

// InFlight reports whether a mutation on id is running, so its controls can be disabled.
func (a *Admin) InFlight(id int64) bool { return a.guard.InFlight(id) }

// OpenCreate opens an empty form.
func (a *Admin) OpenCreate() {
	a.mu.Lock()
	a.draft = &Draft{}
	a.editingID = 0
	a.mu.Unlock()
}

// OpenEdit opens the form pre-filled with the cached values of id.
func (a *Admin) OpenEdit(id int64) error {
	s, ok := a.store.Get(id)
	if !ok {
		return ErrUnknownSweet
	}
	a.mu.Lock()
	a.draft = &Draft{
		Name:     s.Name,
		Category: s.Category,
		Price:    s.Price.String(),
		Quantity: strconv.Itoa(s.Quantity),
	}
	a.editingID = id
	a.mu.Unlock()
	return nil
}

// Draft returns the open form, if any.
func (a *Admin) Draft() (Draft, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.draft == nil {
		return Draft{}, false
	}
	return *a.draft, true
}

// Editing returns the id being edited; ok is false for a create form or no form.
func (a *Admin) Editing() (id int64, ok bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.editingID, a.draft != nil && a.editingID != 0
}

func (a *Admin) SetDraft(d Draft) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.draft == nil {
		return ErrNoDraft
	}
	*a.draft = d
	return nil
}

// Close discards the form.
func (a *Admin) Close() {
	a.mu.Lock()
	a.draft = nil
	a.editingID = 0
	a.mu.Unlock()
}

// ValidateDraft checks d and coerces it into a request. Text fields are trimmed.
func ValidateDraft(d Draft) (catalog.SweetInput, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return catalog.SweetInput{}, &ValidationError{Field: "name", Reason: "Please enter a name"}
	}
	category := strings.TrimSpace(d.Category)
	if category == "" {
		return catalog.SweetInput{}, &ValidationError{Field: "category", Reason: "Please enter a category"}
	}
	price, err := decimal.NewFromString(strings.TrimSpace(d.Price))
	if err != nil || !price.IsPositive() {
		return catalog.SweetInput{}, &ValidationError{Field: "price", Reason: "Please enter a valid positive price"}
	}
	qty, err := strconv.Atoi(strings.TrimSpace(d.Quantity))
	if err != nil || qty < 0 {
		return catalog.SweetInput{}, &ValidationError{Field: "quantity", Reason: "Please enter a valid quantity (0 or greater)"}
	}
	return catalog.SweetInput{Name: name, Category: category, Price: price, Quantity: qty}, nil
}

// Submit validates the open form and creates or updates the sweet. On success the
// collection is reloaded and the form closed; on a remote failure the form stays open
// with the entered values.
func (a *Admin) Submit(ctx context.Context) error {
	a.mu.Lock()
	if a.draft == nil {
		a.mu.Unlock()
		return ErrNoDraft
	}
	submitted, id := a.draft, a.editingID
	d := *submitted
	a.mu.Unlock()

	in, err := ValidateDraft(d)
	if err != nil {
		a.notify.Failure(err.Error())
		return err
	}

	// a create form has id 0, so concurrent creates share one guard slot
	ok, err := a.guard.Do(id, func() error {
		var err error
		if id != 0 {
			_, err = a.client.Update(ctx, id, in)
		} else {
			_, err = a.client.Create(ctx, in)
		}
		if err != nil {
			a.notify.Failure(catalog.Reason(err, catalog.FallbackOperation))
			return err
		}

		_ = a.store.Reload(ctx)
		a.closeIfCurrent(submitted, id)
		if id != 0 {
			a.notify.Success("Sweet updated successfully!")
		} else {
			a.notify.Success("Sweet created successfully!")
		}
		return nil
	})
	if !ok {
		return ErrMutationInFlight
	}
	return err
}

// closeIfCurrent closes the form unless another one was opened while d was in flight.
func (a *Admin) closeIfCurrent(d *Draft, id int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.draft == d && a.editingID == id {
		a.draft = nil
		a.editingID = 0
	}
}

// Delete removes id after the user confirms. Nothing is sent without confirmation.
func (a *Admin) Delete(ctx context.Context, id int64) error {
	if a.guard.InFlight(id) {
		return ErrMutationInFlight
	}
	if a.confirm == nil || !a.confirm.Confirm(deletePrompt) {
		return ErrDeleteCancelled
	}

	ok, err := a.guard.Do(id, func() error {
		if err := a.client.Delete(ctx, id); err != nil {
			a.notify.Failure(catalog.Reason(err, catalog.FallbackDelete))
			return err
		}

		_ = a.store.Reload(ctx)
		a.notify.Success("Sweet deleted successfully!")
		return nil
	})
	if !ok {
		return ErrMutationInFlight
	}
	return err
}

// Restock adds raw units to id.
func (a *Admin) Restock(ctx context.Context, id int64, raw string) error {
	qty, err := parsePositive(raw)
	if err != nil {
		verr := &ValidationError{Field: "quantity", Reason: "Please enter a valid positive number"}
		a.notify.Failure(verr.Reason)
		return verr
	}
	ok, err := a.guard.Do(id, func() error {
		if _, err := a.client.Restock(ctx, id, qty); err != nil {
			a.notify.Failure(catalog.Reason(err, catalog.FallbackRestock))
			return err
		}

		_ = a.store.Reload(ctx)
		a.notify.Success(fmt.Sprintf("Successfully added %d items!", qty))
		return nil
	})
	if !ok {
		return ErrMutationInFlight
	}
	return err
}
