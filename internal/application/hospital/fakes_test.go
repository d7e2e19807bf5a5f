package hospital

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dukabook/backend/internal/domain/billing"
	"github.com/dukabook/backend/internal/domain/catalog"
	"github.com/dukabook/backend/internal/domain/hospital"
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

type fakeVisitRepo struct{ *memStore[hospital.Visit] }

func newFakeVisitRepo() *fakeVisitRepo {
	return &fakeVisitRepo{newMemStore("VIS", func(v *hospital.Visit) uuid.UUID { return v.ID })}
}

func (r *fakeVisitRepo) FindOpenByStage(ctx context.Context, tenantID uuid.UUID, stage hospital.VisitStage) ([]hospital.Visit, error) {
	var out []hospital.Visit
	for _, v := range r.byID {
		if v.Stage == stage && v.IsOpen() {
			out = append(out, *v)
		}
	}
	return out, nil
}

// FindAll narrows to a stage when one is set, mirroring the stage filter
// the lab poll applies
func (r *fakeVisitRepo) FindAll(ctx context.Context, filter shared.Filter) ([]hospital.Visit, error) {
	stage, _ := filter.Filters["stage"].(string)
	var out []hospital.Visit
	for _, v := range r.byID {
		if stage == "" || string(v.Stage) == stage {
			out = append(out, *v)
		}
	}
	return out, nil
}

type fakePrescriptionRepo struct{ *memStore[hospital.Prescription] }

func newFakePrescriptionRepo() *fakePrescriptionRepo {
	return &fakePrescriptionRepo{newMemStore("PRE", func(p *hospital.Prescription) uuid.UUID { return p.ID })}
}

func (r *fakePrescriptionRepo) FindByVisit(ctx context.Context, tenantID, visitID uuid.UUID) ([]hospital.Prescription, error) {
	var out []hospital.Prescription
	for _, p := range r.byID {
		if p.VisitID == visitID {
			out = append(out, *p)
		}
	}
	return out, nil
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

// fakeLabSource hands out canned results per visit
type fakeLabSource struct {
	results map[uuid.UUID][]hospital.LabResult
	err     error
}

func newFakeLabSource() *fakeLabSource {
	return &fakeLabSource{results: make(map[uuid.UUID][]hospital.LabResult)}
}

func (f *fakeLabSource) FetchResults(ctx context.Context, tenantID, visitID uuid.UUID) ([]hospital.LabResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.results[visitID], nil
}

// fakeTxScope runs the function against the same fakes the service sees,
// snapshotting every store first so a failure rolls all of them back
type fakeTxScope struct {
	visits        *fakeVisitRepo
	prescriptions *fakePrescriptionRepo
	invoices      *fakeInvoiceRepo
	items         *fakeItemRepo
}

func (s *fakeTxScope) Visits() hospital.VisitRepository               { return s.visits }
func (s *fakeTxScope) Prescriptions() hospital.PrescriptionRepository { return s.prescriptions }
func (s *fakeTxScope) Invoices() billing.InvoiceRepository            { return s.invoices }
func (s *fakeTxScope) Items() catalog.ItemRepository                  { return s.items }

func (s *fakeTxScope) Execute(ctx context.Context, fn func(TransactionalRepositories) error) error {
	restore := []func(){
		snapshot(s.visits.memStore),
		snapshot(s.prescriptions.memStore),
		snapshot(s.invoices.memStore),
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
	_ hospital.VisitRepository        = (*fakeVisitRepo)(nil)
	_ hospital.PrescriptionRepository = (*fakePrescriptionRepo)(nil)
	_ hospital.LabResultSource        = (*fakeLabSource)(nil)
	_ billing.InvoiceRepository       = (*fakeInvoiceRepo)(nil)
	_ catalog.ItemRepository          = (*fakeItemRepo)(nil)
	_ TransactionScope                = (*fakeTxScope)(nil)
)
