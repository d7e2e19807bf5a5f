package billing

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dukabook/backend/internal/domain/billing"
	"github.com/dukabook/backend/internal/domain/catalog"
	"github.com/dukabook/backend/internal/domain/salon"
	"github.com/dukabook/backend/internal/domain/shared"
)

// memStore is a map-backed stand-in for the CRUD half of a repository
type memStore[T any] struct {
	byID    map[uuid.UUID]*T
	idOf    func(*T) uuid.UUID
	nextSeq int
	prefix  string
}

func newMemStore[T any](prefix string, idOf func(*T) uuid.UUID) *memStore[T] {
	return &memStore[T]{byID: make(map[uuid.UUID]*T), idOf: idOf, prefix: prefix}
}

func (m *memStore[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	if e, ok := m.byID[id]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (m *memStore[T]) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*T, error) {
	return m.FindByID(ctx, id)
}

func (m *memStore[T]) FindAll(ctx context.Context, filter shared.Filter) ([]T, error) {
	out := make([]T, 0, len(m.byID))
	for _, e := range m.byID {
		out = append(out, *e)
	}
	return out, nil
}

func (m *memStore[T]) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]T, error) {
	return m.FindAll(ctx, filter)
}

func (m *memStore[T]) Save(ctx context.Context, entity *T) error {
	copied := *entity
	m.byID[m.idOf(entity)] = &copied
	return nil
}

func (m *memStore[T]) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.byID, id)
	return nil
}

func (m *memStore[T]) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return int64(len(m.byID)), nil
}

func (m *memStore[T]) GenerateNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	m.nextSeq++
	return fmt.Sprintf("%s-2026-%05d", m.prefix, m.nextSeq), nil
}

type fakeInvoiceRepo struct{ *memStore[billing.Invoice] }

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{newMemStore("INV", func(i *billing.Invoice) uuid.UUID { return i.ID })}
}

func (r *fakeInvoiceRepo) FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*billing.Invoice, error) {
	for _, inv := range r.byID {
		if inv.Number == number {
			copied := *inv
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

type fakeQuotationRepo struct{ *memStore[billing.Quotation] }

func newFakeQuotationRepo() *fakeQuotationRepo {
	return &fakeQuotationRepo{newMemStore("QUO", func(q *billing.Quotation) uuid.UUID { return q.ID })}
}

func (r *fakeQuotationRepo) FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*billing.Quotation, error) {
	for _, q := range r.byID {
		if q.Number == number {
			copied := *q
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

type fakePOSSaleRepo struct{ *memStore[billing.POSSale] }

func newFakePOSSaleRepo() *fakePOSSaleRepo {
	return &fakePOSSaleRepo{newMemStore("POS", func(s *billing.POSSale) uuid.UUID { return s.ID })}
}

func (r *fakePOSSaleRepo) FindByShift(ctx context.Context, tenantID, shiftID uuid.UUID) ([]billing.POSSale, error) {
	var out []billing.POSSale
	for _, s := range r.byID {
		if s.ShiftID != nil && *s.ShiftID == shiftID {
			out = append(out, *s)
		}
	}
	return out, nil
}

type fakeItemRepo struct{ *memStore[catalog.Item] }

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{newMemStore("ITM", func(i *catalog.Item) uuid.UUID { return i.ID })}
}

func (r *fakeItemRepo) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*catalog.Item, error) {
	for _, item := range r.byID {
		if item.Code == code {
			copied := *item
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeItemRepo) Search(ctx context.Context, tenantID uuid.UUID, term string, filter shared.Filter) ([]catalog.Item, int64, error) {
	items, _ := r.FindAll(ctx, filter)
	return items, int64(len(items)), nil
}

type fakeShiftRepo struct{ *memStore[salon.Shift] }

func newFakeShiftRepo() *fakeShiftRepo {
	return &fakeShiftRepo{newMemStore("SHF", func(s *salon.Shift) uuid.UUID { return s.ID })}
}

func (r *fakeShiftRepo) FindOpenByStaff(ctx context.Context, tenantID, staffID uuid.UUID) (*salon.Shift, error) {
	for _, s := range r.byID {
		if s.StaffID == staffID && s.IsOpen() {
			copied := *s
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

// fakeTxScope runs the function against the same fakes the service sees,
// snapshotting every store first so a failure rolls all of them back
type fakeTxScope struct {
	invoices *fakeInvoiceRepo
	sales    *fakePOSSaleRepo
	shifts   *fakeShiftRepo
	items    *fakeItemRepo
}

func (s *fakeTxScope) Invoices() billing.InvoiceRepository { return s.invoices }
func (s *fakeTxScope) Sales() billing.POSSaleRepository    { return s.sales }
func (s *fakeTxScope) Shifts() salon.ShiftRepository       { return s.shifts }
func (s *fakeTxScope) Items() catalog.ItemRepository       { return s.items }

func (s *fakeTxScope) Execute(ctx context.Context, fn func(TransactionalRepositories) error) error {
	restore := []func(){
		snapshot(s.invoices.memStore),
		snapshot(s.sales.memStore),
		snapshot(s.shifts.memStore),
		snapshot(s.items.memStore),
	}
	if err := fn(s); err != nil {
		for _, r := range restore {
			r()
		}
		return err
	}
	return nil
}

// snapshot captures a store's state and returns the rollback. Stored
// pointers are never mutated in place (reads and writes both copy), so a
// shallow map copy is enough.
func snapshot[T any](m *memStore[T]) func() {
	before := make(map[uuid.UUID]*T, len(m.byID))
	for id, e := range m.byID {
		before[id] = e
	}
	seq := m.nextSeq
	return func() {
		m.byID = before
		m.nextSeq = seq
	}
}

var (
	_ billing.InvoiceRepository   = (*fakeInvoiceRepo)(nil)
	_ billing.QuotationRepository = (*fakeQuotationRepo)(nil)
	_ billing.POSSaleRepository   = (*fakePOSSaleRepo)(nil)
	_ catalog.ItemRepository      = (*fakeItemRepo)(nil)
	_ salon.ShiftRepository       = (*fakeShiftRepo)(nil)
	_ TransactionScope            = (*fakeTxScope)(nil)
)
