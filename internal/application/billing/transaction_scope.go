package billing

import (
	"context"

	"github.com/dukabook/backend/internal/domain/billing"
	"github.com/dukabook/backend/internal/domain/catalog"
	"github.com/dukabook/backend/internal/domain/salon"
)

// TransactionScope provides transactional access to the repositories a
// billing flow writes together. When a function is executed within a
// transaction scope, all repository operations are part of the same
// database transaction and commit or roll back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the billing-side
// repositories within a transaction. All repositories returned share the
// same underlying database transaction.
type TransactionalRepositories interface {
	// Invoices returns the invoice repository scoped to the current transaction
	Invoices() billing.InvoiceRepository
	// Sales returns the POS sale repository scoped to the current transaction
	Sales() billing.POSSaleRepository
	// Shifts returns the shift repository scoped to the current transaction
	Shifts() salon.ShiftRepository
	// Items returns the catalog item repository scoped to the current transaction
	Items() catalog.ItemRepository
}
