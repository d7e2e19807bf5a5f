package hospital

import (
	"context"

	"github.com/dukabook/backend/internal/domain/billing"
	"github.com/dukabook/backend/internal/domain/catalog"
	"github.com/dukabook/backend/internal/domain/hospital"
)

// TransactionScope provides transactional access to the repositories a
// patient-flow operation writes together: dispensing stock, the
// prescription, the visit, and the bill commit or roll back as one.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the hospital-side
// repositories within a transaction. All repositories returned share the
// same underlying database transaction.
type TransactionalRepositories interface {
	// Visits returns the visit repository scoped to the current transaction
	Visits() hospital.VisitRepository
	// Prescriptions returns the prescription repository scoped to the current transaction
	Prescriptions() hospital.PrescriptionRepository
	// Invoices returns the invoice repository scoped to the current transaction
	Invoices() billing.InvoiceRepository
	// Items returns the catalog item repository scoped to the current transaction
	Items() catalog.ItemRepository
}
