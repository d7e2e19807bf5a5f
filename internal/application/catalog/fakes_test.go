package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dukabook/backend/internal/domain/catalog"
	"github.com/dukabook/backend/internal/domain/shared"
)

type fakeItemRepo struct {
	byID map[uuid.UUID]*catalog.Item
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{byID: make(map[uuid.UUID]*catalog.Item)}
}

func (r *fakeItemRepo) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	if item, ok := r.byID[id]; ok {
		copied := *item
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeItemRepo) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Item, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeItemRepo) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Item, error) {
	out := make([]catalog.Item, 0, len(r.byID))
	for _, item := range r.byID {
		out = append(out, *item)
	}
	return out, nil
}

func (r *fakeItemRepo) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Item, error) {
	return r.FindAll(ctx, filter)
}

func (r *fakeItemRepo) Save(ctx context.Context, item *catalog.Item) error {
	copied := *item
	r.byID[item.ID] = &copied
	return nil
}

func (r *fakeItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

func (r *fakeItemRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return int64(len(r.byID)), nil
}

func (r *fakeItemRepo) GenerateNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	return fmt.Sprintf("ITM-2026-%05d", len(r.byID)+1), nil
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
	var out []catalog.Item
	for _, item := range r.byID {
		if term == "" || strings.Contains(strings.ToLower(item.Name), strings.ToLower(term)) ||
			strings.Contains(strings.ToLower(item.Code), strings.ToLower(term)) {
			out = append(out, *item)
		}
	}
	return out, int64(len(out)), nil
}

var _ catalog.ItemRepository = (*fakeItemRepo)(nil)
