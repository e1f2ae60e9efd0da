package view

import (
	"context"
	"errors"
	"sync"

	"github.com/rogerio-castellano/sweet-shop/internal/catalog"
	"github.com/rogerio-castellano/sweet-shop/internal/models"
	"github.com/shopspring/decimal"
)

// fakeClient is an in-memory catalog.Client that records every call.
type fakeClient struct {
	mu     sync.Mutex
	items  []models.Sweet
	nextID int64
	calls  []string

	listErr   error
	mutateErr error
	// gates blocks Purchase for an id until the channel is closed
	gates map[int64]chan struct{}
	// createGate blocks Create until the channel is closed
	createGate chan struct{}
	// entered is signalled when a gated Purchase or Create starts; Create sends 0
	entered chan int64
}

func newFakeClient(items ...models.Sweet) *fakeClient {
	return &fakeClient{items: items, nextID: 100, gates: map[int64]chan struct{}{}}
}

func sweet(id int64, name, category, price string, qty int) models.Sweet {
	return models.Sweet{ID: id, Name: name, Category: category, Price: decimal.RequireFromString(price), Quantity: qty}
}

func (f *fakeClient) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeClient) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeClient) count(call string) int {
	n := 0
	for _, c := range f.Calls() {
		if c == call {
			n++
		}
	}
	return n
}

func (f *fakeClient) List(ctx context.Context) ([]models.Sweet, error) {
	f.record("list")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Sweet(nil), f.items...), nil
}

func (f *fakeClient) Create(ctx context.Context, in catalog.SweetInput) (models.Sweet, error) {
	f.record("create")
	f.mu.Lock()
	gate := f.createGate
	f.mu.Unlock()
	if gate != nil {
		if f.entered != nil {
			f.entered <- 0
		}
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutateErr != nil {
		return models.Sweet{}, f.mutateErr
	}
	f.nextID++
	s := models.Sweet{ID: f.nextID, Name: in.Name, Category: in.Category, Price: in.Price, Quantity: in.Quantity}
	f.items = append(f.items, s)
	return s, nil
}

func (f *fakeClient) Update(ctx context.Context, id int64, in catalog.SweetInput) (models.Sweet, error) {
	f.record("update")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutateErr != nil {
		return models.Sweet{}, f.mutateErr
	}
	for i, s := range f.items {
		if s.ID == id {
			f.items[i] = models.Sweet{ID: id, Name: in.Name, Category: in.Category, Price: in.Price, Quantity: in.Quantity}
			return f.items[i], nil
		}
	}
	return models.Sweet{}, &catalog.Error{StatusCode: 404, Reason: "Sweet not found"}
}

func (f *fakeClient) Delete(ctx context.Context, id int64) error {
	f.record("delete")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutateErr != nil {
		return f.mutateErr
	}
	for i, s := range f.items {
		if s.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return &catalog.Error{StatusCode: 404}
}

func (f *fakeClient) Restock(ctx context.Context, id int64, quantity int) (models.Sweet, error) {
	f.record("restock")
	return f.adjust(id, quantity)
}

func (f *fakeClient) Purchase(ctx context.Context, id int64, quantity int) (models.Sweet, error) {
	f.record("purchase")
	f.mu.Lock()
	gate := f.gates[id]
	f.mu.Unlock()
	if gate != nil {
		if f.entered != nil {
			f.entered <- id
		}
		<-gate
	}
	return f.adjust(id, -quantity)
}

func (f *fakeClient) adjust(id int64, delta int) (models.Sweet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutateErr != nil {
		return models.Sweet{}, f.mutateErr
	}
	for i, s := range f.items {
		if s.ID == id {
			if s.Quantity+delta < 0 {
				return models.Sweet{}, &catalog.Error{StatusCode: 409, Reason: "Insufficient stock"}
			}
			f.items[i].Quantity += delta
			return f.items[i], nil
		}
	}
	return models.Sweet{}, errors.New("no such sweet")
}

// recorder captures notifications.
type recorder struct {
	mu        sync.Mutex
	successes []string
	failures  []string
}

func (r *recorder) Success(msg string) {
	r.mu.Lock()
	r.successes = append(r.successes, msg)
	r.mu.Unlock()
}

func (r *recorder) Failure(msg string) {
	r.mu.Lock()
	r.failures = append(r.failures, msg)
	r.mu.Unlock()
}

func (r *recorder) Failures() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.failures...)
}

func (r *recorder) Successes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.successes...)
}
