// Package billing provides the revenue documents of the back office.
//
// This package implements the billing bounded context, which is
// responsible for:
//   - Invoices: drafted, issued against catalog stock, and settled by
//     recorded payments
//   - Quotations: offered, sent, accepted, and converted into invoices
//   - POS sales: rung up at the till and settled against a tendered
//     amount, optionally rolled into a salon shift
//
// Key Aggregates:
//   - Invoice: line items plus a payment block deriving Unpaid, Partially
//     Paid, or Paid from the amount applied
//   - Quotation: the same line items behind a draft/sent/accepted status
//     machine with an expiry date
//   - POSSale: an open ticket that completes with tender and change
//
// All three share the ledger line-item collection for quantities,
// pricing, and totals.
package billing
