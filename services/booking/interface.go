package booking

import (
	"context"
	"time"

	"halo/database/repository"
	"halo/models"
	"halo/utils"
)

// BookingService owns doctor availability and the appointments booked against it.
type BookingService interface {
	AddAvailability(ctx context.Context, doctorID string, req models.AvailabilityRequest) (*models.Doctor, error)
	GetAvailability(ctx context.Context, doctorID string) ([]models.Availability, error)
	BookAppointment(ctx context.Context, patientID string, req models.BookingRequest) (*models.Appointment, error)
	RecordPrescription(ctx context.Context, appointmentID, doctorID string, req models.PrescriptionRequest) (*models.Appointment, error)
	ListAppointmentsFor(ctx context.Context, role models.Role, identityID string) ([]models.AppointmentDetail, error)
	ListDoctorPatients(ctx context.Context, doctorID string) ([]models.DoctorPatient, error)
	UpdateAppointmentStatus(ctx context.Context, appointmentID string, role models.Role, identityID string, status models.AppointmentStatus) (*models.Appointment, error)
	GetDoctors(ctx context.Context) ([]models.Doctor, error)
	GetDoctorsBySpecialty(ctx context.Context, specialty string) ([]models.Doctor, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Doctors      repository.DoctorRepository
	Appointments repository.AppointmentRepository
	Patients     repository.PatientRepository
	Scheduler    repository.SchedulerRepository
	// Locker is optional. Without it the slot CAS alone arbitrates races.
	Locker   utils.SlotLocker
	Location *time.Location
	Now      func() time.Time
	// Metrics may be nil.
	Metrics *utils.BookingMetrics
}

func NewDefaultBookingService(
	doctors repository.DoctorRepository,
	appointments repository.AppointmentRepository,
	patients repository.PatientRepository,
	scheduler repository.SchedulerRepository,
	locker utils.SlotLocker,
	loc *time.Location,
) *DefaultBookingService {
	if loc == nil {
		loc = time.UTC
	}
	return &DefaultBookingService{
		Doctors:      doctors,
		Appointments: appointments,
		Patients:     patients,
		Scheduler:    scheduler,
		Locker:       locker,
		Location:     loc,
		Now:          time.Now,
	}
}

func (s *DefaultBookingService) today() time.Time {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return utils.Today(now(), s.Location)
}
