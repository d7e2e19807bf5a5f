package salon

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dukabook/backend/internal/domain/billing"
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

var (
	_ salon.ShiftRepository     = (*fakeShiftRepo)(nil)
	_ billing.POSSaleRepository = (*fakePOSSaleRepo)(nil)
)
