package booking

import (
	"context"

	"halo/models"
	"halo/utils"
)

// UpdateAppointmentStatus moves a confirmed appointment to completed or
// cancelled. Only the doctor may complete; either party may cancel, which
// reopens the slot.
func (s *DefaultBookingService) UpdateAppointmentStatus(ctx context.Context, appointmentID string, role models.Role, identityID string, status models.AppointmentStatus) (*models.Appointment, error) {
	if status != models.StatusCompleted && status != models.StatusCancelled {
		return nil, utils.NewInvalidRequest("status must be completed or cancelled")
	}

	appt, err := s.Appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	switch role {
	case models.RoleDoctor:
		if appt.DoctorID != identityID {
			return nil, utils.NewForbidden("not authorized to update this appointment")
		}
	case models.RolePatient:
		if appt.PatientID != identityID {
			return nil, utils.NewForbidden("not authorized to update this appointment")
		}
		if status == models.StatusCompleted {
			return nil, utils.NewForbidden("only the doctor can complete an appointment")
		}
	default:
		return nil, utils.NewForbidden("role cannot update appointments")
	}

	if appt.Status != models.StatusConfirmed {
		return nil, utils.NewInvalidRequest("only confirmed appointments can change status")
	}

	if status == models.StatusCancelled {
		err = s.Scheduler.CancelTransactionally(ctx, appt)
	} else {
		err = s.Appointments.UpdateStatus(ctx, appt.ID, models.StatusConfirmed, models.StatusCompleted)
	}
	if err != nil {
		return nil, err
	}
	appt.Status = status
	return appt, nil
}
