package adjustment

import (
	"context"

	"github.com/dukabook/backend/internal/domain/adjustment"
	"github.com/dukabook/backend/internal/domain/catalog"
)

// TransactionScope provides transactional access to the repositories an
// adjustment flow writes together: the stock movements and the document
// status flip commit or roll back as one.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the adjustment-side
// repositories within a transaction. All repositories returned share the
// same underlying database transaction.
type TransactionalRepositories interface {
	// Returns returns the goods return repository scoped to the current transaction
	Returns() adjustment.GoodsReturnRepository
	// Damages returns the damage record repository scoped to the current transaction
	Damages() adjustment.DamageRecordRepository
	// Items returns the catalog item repository scoped to the current transaction
	Items() catalog.ItemRepository
}
