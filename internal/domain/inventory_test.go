package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInventoryLotIsExpired(t *testing.T) {
	asOf := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

	t.Run("FlaggedExpired", func(t *testing.T) {
		lot := &InventoryLot{Status: LotStatusExpired, ExpirationDate: Date{Year: 2027, Month: 1, Day: 1}}
		assert.True(t, lot.IsExpired(asOf))
	})

	t.Run("DatePassed", func(t *testing.T) {
		lot := &InventoryLot{Status: LotStatusActive, ExpirationDate: Date{Year: 2026, Month: 5, Day: 9}}
		assert.True(t, lot.IsExpired(asOf))
	})

	t.Run("ExpiresToday", func(t *testing.T) {
		lot := &InventoryLot{Status: LotStatusActive, ExpirationDate: Date{Year: 2026, Month: 5, Day: 10}}
		assert.True(t, lot.IsExpired(asOf))
	})

	t.Run("StillFresh", func(t *testing.T) {
		lot := &InventoryLot{Status: LotStatusActive, ExpirationDate: Date{Year: 2026, Month: 5, Day: 11}}
		assert.False(t, lot.IsExpired(asOf))
	})
}
