package jobs

import (
	"context"
	"fmt"
	"time"

	"bloodlink-backend/internal/domain"
	"bloodlink-backend/internal/logger"
)

// SendAppointmentReminders writes a reminder notification for every donor
// with a confirmed appointment inside the next 24 hours.
func (jr *JobRunner) SendAppointmentReminders() {
	jr.runWithRecovery("SendAppointmentReminders", func() {
		ctx := context.Background()
		now := jr.clk.Now()

		donations, err := jr.store.DonationRepository.ListWithAppointmentsBetween(ctx, now, now.Add(24*time.Hour))
		if err != nil {
			logger.Error("Failed to list upcoming appointments", "error", err)
			return
		}

		sent := 0
		for i := range donations {
			d := &donations[i]
			if d.DonorID == nil || d.EventDate == nil {
				continue
			}
			note := &domain.Notification{
				DonorID:     *d.DonorID,
				Type:        domain.NotificationAppointmentReminder,
				Title:       "Upcoming donation appointment",
				Message:     fmt.Sprintf("Reminder: your donation appointment is at %s.", d.EventDate.Format("2006-01-02 15:04")),
				RelatedID:   &d.ID,
				RelatedType: "donation",
			}
			if err := jr.store.NotificationRepository.Create(ctx, note); err != nil {
				logger.Error("Failed to create reminder", "donation_id", d.ID, "error", err)
				continue
			}
			sent++
		}

		logger.Info("Appointment reminders sent", "count", sent, "upcoming", len(donations))
	})
}
