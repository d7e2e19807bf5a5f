package billing

import (
	"github.com/shopspring/decimal"
)

// PaymentStatus is the 3-way status label derived from amount paid against
// the grand total. It is never stored; every read derives it fresh.
type PaymentStatus string

const (
	PaymentStatusUnpaid        PaymentStatus = "UNPAID"
	PaymentStatusPartiallyPaid PaymentStatus = "PARTIALLY_PAID"
	PaymentStatusPaid          PaymentStatus = "PAID"
)

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// Label returns the user-facing status text
func (s PaymentStatus) Label() string {
	switch s {
	case PaymentStatusUnpaid:
		return "Unpaid"
	case PaymentStatusPartiallyPaid:
		return "Partially Paid"
	case PaymentStatusPaid:
		return "Paid"
	}
	return string(s)
}

// DerivePaymentStatus derives the payment status from the grand total and the
// amount paid so far
func DerivePaymentStatus(grandTotal, amountPaid decimal.Decimal) PaymentStatus {
	switch {
	case amountPaid.IsZero():
		return PaymentStatusUnpaid
	case amountPaid.GreaterThanOrEqual(grandTotal):
		return PaymentStatusPaid
	default:
		return PaymentStatusPartiallyPaid
	}
}

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "CASH"
	PaymentMethodMpesa  PaymentMethod = "MPESA"
	PaymentMethodBank   PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCheque PaymentMethod = "CHEQUE"
	PaymentMethodCard   PaymentMethod = "CARD"
)

// IsValid checks if the payment method is known
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodMpesa, PaymentMethodBank, PaymentMethodCheque, PaymentMethodCard:
		return true
	}
	return false
}
