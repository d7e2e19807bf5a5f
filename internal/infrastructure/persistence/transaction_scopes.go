package persistence

import (
	"context"

	"gorm.io/gorm"

	adjustmentapp "github.com/dukabook/backend/internal/application/adjustment"
	billingapp "github.com/dukabook/backend/internal/application/billing"
	hospitalapp "github.com/dukabook/backend/internal/application/hospital"
	"github.com/dukabook/backend/internal/domain/adjustment"
	"github.com/dukabook/backend/internal/domain/billing"
	"github.com/dukabook/backend/internal/domain/catalog"
	"github.com/dukabook/backend/internal/domain/hospital"
	"github.com/dukabook/backend/internal/domain/salon"
)

// GormBillingTransactionScope implements the billing TransactionScope
// using GORM transactions.
type GormBillingTransactionScope struct {
	db *gorm.DB
}

// NewGormBillingTransactionScope creates a new GormBillingTransactionScope
func NewGormBillingTransactionScope(db *gorm.DB) *GormBillingTransactionScope {
	return &GormBillingTransactionScope{db: db}
}

// Execute runs the given function within a database transaction. If the
// function returns an error, the transaction is rolled back.
func (s *GormBillingTransactionScope) Execute(ctx context.Context, fn func(repos billingapp.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(billingTxRepos{tx: tx})
	})
}

type billingTxRepos struct {
	tx *gorm.DB
}

func (r billingTxRepos) Invoices() billing.InvoiceRepository {
	return NewGormInvoiceRepository(r.tx)
}

func (r billingTxRepos) Sales() billing.POSSaleRepository {
	return NewGormPOSSaleRepository(r.tx)
}

func (r billingTxRepos) Shifts() salon.ShiftRepository {
	return NewGormShiftRepository(r.tx)
}

func (r billingTxRepos) Items() catalog.ItemRepository {
	return NewGormItemRepository(r.tx)
}

// GormAdjustmentTransactionScope implements the adjustment
// TransactionScope using GORM transactions.
type GormAdjustmentTransactionScope struct {
	db *gorm.DB
}

// NewGormAdjustmentTransactionScope creates a new GormAdjustmentTransactionScope
func NewGormAdjustmentTransactionScope(db *gorm.DB) *GormAdjustmentTransactionScope {
	return &GormAdjustmentTransactionScope{db: db}
}

// Execute runs the given function within a database transaction. If the
// function returns an error, the transaction is rolled back.
func (s *GormAdjustmentTransactionScope) Execute(ctx context.Context, fn func(repos adjustmentapp.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(adjustmentTxRepos{tx: tx})
	})
}

type adjustmentTxRepos struct {
	tx *gorm.DB
}

func (r adjustmentTxRepos) Returns() adjustment.GoodsReturnRepository {
	return NewGormGoodsReturnRepository(r.tx)
}

func (r adjustmentTxRepos) Damages() adjustment.DamageRecordRepository {
	return NewGormDamageRecordRepository(r.tx)
}

func (r adjustmentTxRepos) Items() catalog.ItemRepository {
	return NewGormItemRepository(r.tx)
}

// GormHospitalTransactionScope implements the hospital TransactionScope
// using GORM transactions.
type GormHospitalTransactionScope struct {
	db *gorm.DB
}

// NewGormHospitalTransactionScope creates a new GormHospitalTransactionScope
func NewGormHospitalTransactionScope(db *gorm.DB) *GormHospitalTransactionScope {
	return &GormHospitalTransactionScope{db: db}
}

// Execute runs the given function within a database transaction. If the
// function returns an error, the transaction is rolled back.
func (s *GormHospitalTransactionScope) Execute(ctx context.Context, fn func(repos hospitalapp.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(hospitalTxRepos{tx: tx})
	})
}

type hospitalTxRepos struct {
	tx *gorm.DB
}

func (r hospitalTxRepos) Visits() hospital.VisitRepository {
	return NewGormVisitRepository(r.tx)
}

func (r hospitalTxRepos) Prescriptions() hospital.PrescriptionRepository {
	return NewGormPrescriptionRepository(r.tx)
}

func (r hospitalTxRepos) Invoices() billing.InvoiceRepository {
	return NewGormInvoiceRepository(r.tx)
}

func (r hospitalTxRepos) Items() catalog.ItemRepository {
	return NewGormItemRepository(r.tx)
}

var (
	_ billingapp.TransactionScope    = (*GormBillingTransactionScope)(nil)
	_ adjustmentapp.TransactionScope = (*GormAdjustmentTransactionScope)(nil)
	_ hospitalapp.TransactionScope   = (*GormHospitalTransactionScope)(nil)

	_ billingapp.TransactionalRepositories    = (billingTxRepos{})
	_ adjustmentapp.TransactionalRepositories = (adjustmentTxRepos{})
	_ hospitalapp.TransactionalRepositories   = (hospitalTxRepos{})
)
