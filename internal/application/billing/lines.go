package billing

import (
	"github.com/dukabook/backend/internal/domain/ledger"
)

// lineDocument is any billing document whose lines are edited through a
// ledger: invoices, quotations and POS sales all qualify.
type lineDocument interface {
	Ledger() *ledger.Ledger
	SetLines(entries []ledger.Entry) error
}

// editLines runs one ledger mutation against a document and writes the
// resulting entries back. SetLines fails when the document is no longer
// editable.
func editLines(doc lineDocument, edit func(*ledger.Ledger)) error {
	led := doc.Ledger()
	edit(led)
	return doc.SetLines(led.Entries())
}
