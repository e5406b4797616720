package appointmentRepo

import (
	"context"

	"halo/models"
)

// AppointmentRepository defines methods for appointment data access.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	// ListByPatient and ListByDoctor return appointments in insertion order.
	ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error)
	UpdateReport(ctx context.Context, id, prescription, report string) error
	// UpdateStatus moves an appointment from one status to another, failing
	// with a Conflict if the stored status is no longer `from`.
	UpdateStatus(ctx context.Context, id string, from, to models.AppointmentStatus) error
}
