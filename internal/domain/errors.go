package domain

import "fmt"

// The engine's expected outcomes are typed errors returned as values and
// matched by callers with errors.As. Only infrastructure failures (storage
// unavailable) travel as wrapped opaque errors.

// NotFoundError reports a missing entity.
type NotFoundError struct {
	Entity string
	ID     int32
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// ForbiddenError reports that the actor lacks authority over the entity.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string {
	if e.Reason == "" {
		return "access denied"
	}
	return "access denied: " + e.Reason
}

// InvalidTransitionError reports an illegal state-machine edge.
type InvalidTransitionError struct {
	From DonationStatus
	To   DonationStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition donation from %s to %s", e.From, e.To)
}

// InvalidStateError reports that an entity's current status does not permit
// the requested operation.
type InvalidStateError struct {
	Entity string
	Status string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s status %s does not permit this operation", e.Entity, e.Status)
}

// CooldownActiveError reports that the donor is still inside the mandatory
// wait between completed donations.
type CooldownActiveError struct {
	DaysRemaining int
}

func (e *CooldownActiveError) Error() string {
	return fmt.Sprintf("cannot donate within the cooldown period, %d more days to wait", e.DaysRemaining)
}

// WindowNotYetOpenError reports a mark-completed attempt before the window
// opens (one hour before the appointment).
type WindowNotYetOpenError struct {
	HoursUntil int
}

func (e *WindowNotYetOpenError) Error() string {
	return fmt.Sprintf("completion window not yet open, appointment is in %d hours", e.HoursUntil)
}

// WindowClosedError reports a mark-completed attempt after the window
// closed (end of day, two days past the appointment).
type WindowClosedError struct {
	DaysPast int
}

func (e *WindowClosedError) Error() string {
	return fmt.Sprintf("completion window closed %d days ago", e.DaysPast)
}

// InsufficientInventoryError reports a deduction that would overdraw stock.
// No partial deduction happens.
type InsufficientInventoryError struct {
	Available int32
	Required  int32
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("insufficient inventory: available %d units, required %d units", e.Available, e.Required)
}

// DuplicatePendingError reports a second pending reschedule request for the
// same donation.
type DuplicatePendingError struct {
	DonationID int32
}

func (e *DuplicatePendingError) Error() string {
	return fmt.Sprintf("donation %d already has a pending reschedule request", e.DonationID)
}

// TooLateError reports a reschedule attempt inside the cutoff before the
// appointment.
type TooLateError struct {
	CutoffHours int
}

func (e *TooLateError) Error() string {
	return fmt.Sprintf("cannot reschedule within %d hours of the appointment", e.CutoffHours)
}

// MismatchError reports that a donation/request pairing is invalid for
// peer-to-peer acceptance, or that a donor's blood group does not match a
// request.
type MismatchError struct {
	Reason string
}

func (e *MismatchError) Error() string {
	return "mismatch: " + e.Reason
}
