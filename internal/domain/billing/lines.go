package billing

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/dukabook/backend/internal/domain/ledger"
)

// Lines is the persisted form of a document's ledger entries, stored as JSONB
// within the owning aggregate
type Lines []ledger.Entry

// Value implements driver.Valuer for GORM to store as JSONB
func (l Lines) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for GORM to read from JSONB
func (l *Lines) Scan(value interface{}) error {
	if value == nil {
		*l = Lines{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan Lines: unsupported type")
	}

	if len(bytes) == 0 {
		*l = Lines{}
		return nil
	}

	return json.Unmarshal(bytes, l)
}
