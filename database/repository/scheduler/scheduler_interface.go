package schedulerRepo

import (
	"context"

	"halo/models"
)

// SchedulerRepository performs the multi-document writes of the booking flow.
type SchedulerRepository interface {
	// BookSlotTransactionally inserts appt and closes its slot as one unit.
	// If the slot is no longer open nothing is written and a Conflict is returned.
	BookSlotTransactionally(ctx context.Context, appt *models.Appointment) error
	// CancelTransactionally marks a confirmed appointment cancelled and reopens its slot.
	CancelTransactionally(ctx context.Context, appt *models.Appointment) error
}
