package adjustment

import (
	"context"

	"github.com/google/uuid"

	"github.com/dukabook/backend/internal/domain/adjustment"
	"github.com/dukabook/backend/internal/domain/billing"
	"github.com/dukabook/backend/internal/domain/ledger"
	"github.com/dukabook/backend/internal/domain/shared"
)

// ReturnService handles goods return business operations
type ReturnService struct {
	returns  adjustment.GoodsReturnRepository
	invoices billing.InvoiceRepository
	tx       TransactionScope
}

// NewReturnService creates a new ReturnService
func NewReturnService(returns adjustment.GoodsReturnRepository, invoices billing.InvoiceRepository, tx TransactionScope) *ReturnService {
	return &ReturnService{
		returns:  returns,
		invoices: invoices,
		tx:       tx,
	}
}

// CreateFromInvoice opens a pending return pre-filled from an issued
// invoice's lines, with every quantity reset to zero
func (s *ReturnService) CreateFromInvoice(ctx context.Context, tenantID uuid.UUID, req CreateReturnRequest) (*GoodsReturnResponse, error) {
	inv, err := s.invoices.FindByIDForTenant(ctx, tenantID, req.InvoiceID)
	if err != nil {
		return nil, err
	}
	if inv.Status != billing.InvoiceStatusIssued {
		return nil, shared.NewDomainError("INVALID_SOURCE", "Goods can only be returned against an issued invoice")
	}

	number, err := s.returns.GenerateNumber(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	ret, err := adjustment.NewGoodsReturn(tenantID, number, inv)
	if err != nil {
		return nil, err
	}
	if req.Reason != "" {
		ret.SetReason(req.Reason)
	}

	if err := s.returns.Save(ctx, ret); err != nil {
		return nil, err
	}
	return ToGoodsReturnResponse(ret), nil
}

// Get returns a single goods return for a tenant
func (s *ReturnService) Get(ctx context.Context, tenantID, returnID uuid.UUID) (*GoodsReturnResponse, error) {
	ret, err := s.returns.FindByIDForTenant(ctx, tenantID, returnID)
	if err != nil {
		return nil, err
	}
	return ToGoodsReturnResponse(ret), nil
}

// List returns a page of goods returns for a tenant
func (s *ReturnService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[GoodsReturnResponse], error) {
	returns, err := s.returns.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	countFilter := filter
	countFilter.Filters = map[string]interface{}{"tenant_id": tenantID}
	total, err := s.returns.Count(ctx, countFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]GoodsReturnResponse, len(returns))
	for i := range returns {
		responses[i] = *ToGoodsReturnResponse(&returns[i])
	}

	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// ListByInvoice returns all returns raised against one invoice
func (s *ReturnService) ListByInvoice(ctx context.Context, tenantID, invoiceID uuid.UUID) ([]GoodsReturnResponse, error) {
	returns, err := s.returns.FindByInvoice(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}

	responses := make([]GoodsReturnResponse, len(returns))
	for i := range returns {
		responses[i] = *ToGoodsReturnResponse(&returns[i])
	}
	return responses, nil
}

// SetLineQuantity enters the returned units for one line
func (s *ReturnService) SetLineQuantity(ctx context.Context, tenantID, returnID uuid.UUID, index int, req SetReturnQuantityRequest) (*GoodsReturnResponse, error) {
	ret, err := s.returns.FindByIDForTenant(ctx, tenantID, returnID)
	if err != nil {
		return nil, err
	}

	if err := ret.SetLineQuantity(index, ledger.Amount(req.Quantity)); err != nil {
		return nil, err
	}

	if err := s.returns.Save(ctx, ret); err != nil {
		return nil, err
	}
	return ToGoodsReturnResponse(ret), nil
}

// SetReason records why the goods are coming back
func (s *ReturnService) SetReason(ctx context.Context, tenantID, returnID uuid.UUID, req SetReasonRequest) (*GoodsReturnResponse, error) {
	ret, err := s.returns.FindByIDForTenant(ctx, tenantID, returnID)
	if err != nil {
		return nil, err
	}

	ret.SetReason(req.Reason)

	if err := s.returns.Save(ctx, ret); err != nil {
		return nil, err
	}
	return ToGoodsReturnResponse(ret), nil
}

// Process restocks every returned line and settles the return. The
// restocks and the status flip commit together, so a failed line rolls
// the rest back and the return stays pending.
func (s *ReturnService) Process(ctx context.Context, tenantID, returnID uuid.UUID) (*GoodsReturnResponse, error) {
	ret, err := s.returns.FindByIDForTenant(ctx, tenantID, returnID)
	if err != nil {
		return nil, err
	}
	if !ret.Status.CanProcess() {
		return nil, shared.NewDomainError("INVALID_STATE", "Return has already been settled")
	}

	err = s.tx.Execute(ctx, func(repos TransactionalRepositories) error {
		for _, line := range ret.ReturnedLines() {
			if line.ItemID == nil || *line.ItemID == uuid.Nil {
				continue
			}
			item, err := repos.Items().FindByIDForTenant(ctx, tenantID, *line.ItemID)
			if err != nil {
				return err
			}
			if err := item.ReceiveStock(line.Quantity); err != nil {
				return err
			}
			if err := repos.Items().Save(ctx, item); err != nil {
				return err
			}
		}

		if err := ret.Process(); err != nil {
			return err
		}
		return repos.Returns().Save(ctx, ret)
	})
	if err != nil {
		return nil, err
	}
	return ToGoodsReturnResponse(ret), nil
}

// Cancel abandons a pending return
func (s *ReturnService) Cancel(ctx context.Context, tenantID, returnID uuid.UUID) (*GoodsReturnResponse, error) {
	ret, err := s.returns.FindByIDForTenant(ctx, tenantID, returnID)
	if err != nil {
		return nil, err
	}

	if err := ret.Cancel(); err != nil {
		return nil, err
	}

	if err := s.returns.Save(ctx, ret); err != nil {
		return nil, err
	}
	return ToGoodsReturnResponse(ret), nil
}
