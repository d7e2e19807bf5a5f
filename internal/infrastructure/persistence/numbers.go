package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// nextDocumentNumber allocates the next sequential document number for a
// tenant. Format: PREFIX-YYYY-NNNNN (e.g. INV-2026-00042). The sequence
// restarts each year. The highest existing number is read under FOR UPDATE
// inside its own transaction so concurrent allocators for the same tenant
// serialise on the current max row; the first allocation of a year has no
// row to lock, where the unique tenant+number index rejects the loser.
func nextDocumentNumber(ctx context.Context, db *gorm.DB, model interface{}, prefix string, tenantID uuid.UUID) (string, error) {
	year := time.Now().Year()
	yearPrefix := fmt.Sprintf("%s-%d-", prefix, year)

	var number string
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lastNumber string
		err := tx.Model(model).
			Select("number").
			Where("tenant_id = ? AND number LIKE ?", tenantID, yearPrefix+"%").
			Order("number DESC").
			Limit(1).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Scan(&lastNumber).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var nextNum int64 = 1
		if lastNumber != "" {
			parts := strings.Split(lastNumber, "-")
			if len(parts) == 3 {
				var num int64
				if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
					nextNum = num + 1
				}
			}
		}

		number = fmt.Sprintf("%s%05d", yearPrefix, nextNum)
		return nil
	})
	if err != nil {
		return "", err
	}
	return number, nil
}
