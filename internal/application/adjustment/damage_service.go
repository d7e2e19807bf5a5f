package adjustment

import (
	"context"

	"github.com/google/uuid"

	"github.com/dukabook/backend/internal/domain/adjustment"
	"github.com/dukabook/backend/internal/domain/catalog"
	"github.com/dukabook/backend/internal/domain/ledger"
	"github.com/dukabook/backend/internal/domain/shared"
)

// DamageService handles damage write-off business operations
type DamageService struct {
	damages adjustment.DamageRecordRepository
	items   catalog.ItemRepository
	tx      TransactionScope
}

// NewDamageService creates a new DamageService
func NewDamageService(damages adjustment.DamageRecordRepository, items catalog.ItemRepository, tx TransactionScope) *DamageService {
	return &DamageService{
		damages: damages,
		items:   items,
		tx:      tx,
	}
}

// Create opens a pending damage record
func (s *DamageService) Create(ctx context.Context, tenantID uuid.UUID, req CreateDamageRequest) (*DamageRecordResponse, error) {
	number, err := s.damages.GenerateNumber(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	rec, err := adjustment.NewDamageRecord(tenantID, number)
	if err != nil {
		return nil, err
	}
	if req.Reason != "" {
		rec.SetReason(req.Reason)
	}
	rec.ReportedBy = req.ReportedBy

	if err := s.damages.Save(ctx, rec); err != nil {
		return nil, err
	}
	return ToDamageRecordResponse(rec), nil
}

// Get returns a single damage record for a tenant
func (s *DamageService) Get(ctx context.Context, tenantID, recordID uuid.UUID) (*DamageRecordResponse, error) {
	rec, err := s.damages.FindByIDForTenant(ctx, tenantID, recordID)
	if err != nil {
		return nil, err
	}
	return ToDamageRecordResponse(rec), nil
}

// List returns a page of damage records for a tenant
func (s *DamageService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[DamageRecordResponse], error) {
	records, err := s.damages.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	countFilter := filter
	countFilter.Filters = map[string]interface{}{"tenant_id": tenantID}
	total, err := s.damages.Count(ctx, countFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]DamageRecordResponse, len(records))
	for i := range records {
		responses[i] = *ToDamageRecordResponse(&records[i])
	}

	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// AddCatalogLine adds a catalog item to a damage record. The line costs out
// at the item's buying price; adding an item already on the record bumps its
// quantity instead.
func (s *DamageService) AddCatalogLine(ctx context.Context, tenantID, recordID uuid.UUID, req AddCatalogLineRequest) (*DamageRecordResponse, error) {
	rec, err := s.damages.FindByIDForTenant(ctx, tenantID, recordID)
	if err != nil {
		return nil, err
	}

	item, err := s.items.FindByIDForTenant(ctx, tenantID, req.ItemID)
	if err != nil {
		return nil, err
	}

	if err := s.editLines(rec, func(led *ledger.Ledger) {
		led.AddFromCatalog(item.ToPick())
	}); err != nil {
		return nil, err
	}

	if err := s.damages.Save(ctx, rec); err != nil {
		return nil, err
	}
	return ToDamageRecordResponse(rec), nil
}

// UpdateLineQuantity changes a line's quantity; zero or malformed input
// removes the line
func (s *DamageService) UpdateLineQuantity(ctx context.Context, tenantID, recordID uuid.UUID, index int, req UpdateLineQuantityRequest) (*DamageRecordResponse, error) {
	return s.edit(ctx, tenantID, recordID, func(led *ledger.Ledger) {
		led.UpdateQuantity(index, ledger.Amount(req.Quantity))
	})
}

// RemoveLine deletes a line from the record
func (s *DamageService) RemoveLine(ctx context.Context, tenantID, recordID uuid.UUID, index int) (*DamageRecordResponse, error) {
	return s.edit(ctx, tenantID, recordID, func(led *ledger.Ledger) {
		led.RemoveLine(index)
	})
}

// SetReason records what happened to the stock
func (s *DamageService) SetReason(ctx context.Context, tenantID, recordID uuid.UUID, req SetReasonRequest) (*DamageRecordResponse, error) {
	rec, err := s.damages.FindByIDForTenant(ctx, tenantID, recordID)
	if err != nil {
		return nil, err
	}

	rec.SetReason(req.Reason)

	if err := s.damages.Save(ctx, rec); err != nil {
		return nil, err
	}
	return ToDamageRecordResponse(rec), nil
}

// Process deducts the damaged stock and settles the record. The
// deductions and the status flip commit together, so a failed line rolls
// the rest back and the record stays pending.
func (s *DamageService) Process(ctx context.Context, tenantID, recordID uuid.UUID) (*DamageRecordResponse, error) {
	rec, err := s.damages.FindByIDForTenant(ctx, tenantID, recordID)
	if err != nil {
		return nil, err
	}
	if !rec.Status.CanProcess() {
		return nil, shared.NewDomainError("INVALID_STATE", "Damage record has already been settled")
	}

	err = s.tx.Execute(ctx, func(repos TransactionalRepositories) error {
		for _, line := range rec.Lines {
			if line.ItemID == nil || *line.ItemID == uuid.Nil || !line.Quantity.IsPositive() {
				continue
			}
			item, err := repos.Items().FindByIDForTenant(ctx, tenantID, *line.ItemID)
			if err != nil {
				return err
			}
			if err := item.DeductStock(line.Quantity); err != nil {
				return err
			}
			if err := repos.Items().Save(ctx, item); err != nil {
				return err
			}
		}

		if err := rec.Process(); err != nil {
			return err
		}
		return repos.Damages().Save(ctx, rec)
	})
	if err != nil {
		return nil, err
	}
	return ToDamageRecordResponse(rec), nil
}

// Cancel abandons a pending damage record
func (s *DamageService) Cancel(ctx context.Context, tenantID, recordID uuid.UUID) (*DamageRecordResponse, error) {
	rec, err := s.damages.FindByIDForTenant(ctx, tenantID, recordID)
	if err != nil {
		return nil, err
	}

	if err := rec.Cancel(); err != nil {
		return nil, err
	}

	if err := s.damages.Save(ctx, rec); err != nil {
		return nil, err
	}
	return ToDamageRecordResponse(rec), nil
}

func (s *DamageService) edit(ctx context.Context, tenantID, recordID uuid.UUID, mutate func(*ledger.Ledger)) (*DamageRecordResponse, error) {
	rec, err := s.damages.FindByIDForTenant(ctx, tenantID, recordID)
	if err != nil {
		return nil, err
	}

	if err := s.editLines(rec, mutate); err != nil {
		return nil, err
	}

	if err := s.damages.Save(ctx, rec); err != nil {
		return nil, err
	}
	return ToDamageRecordResponse(rec), nil
}

func (s *DamageService) editLines(rec *adjustment.DamageRecord, mutate func(*ledger.Ledger)) error {
	led := rec.Ledger()
	mutate(led)
	return rec.SetLines(led.Entries())
}
