package jobs

import (
	"context"

	"bloodlink-backend/internal/logger"
)

// ExpireInventoryLots reclassifies active lots whose expiration date has
// passed. Expired stock stays on the books for reporting but is never
// picked up by a deduction.
func (jr *JobRunner) ExpireInventoryLots() {
	jr.runWithRecovery("ExpireInventoryLots", func() {
		ctx := context.Background()

		count, err := jr.services.Inventory.ExpireLots(ctx)
		if err != nil {
			logger.Error("Failed to expire inventory lots", "error", err)
			return
		}

		logger.Info("Expired inventory lots reclassified", "count", count)
	})
}
