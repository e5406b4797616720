package booking

import (
	"context"
	"errors"
	"time"

	"halo/models"
	"halo/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookAppointment reserves an open slot for a patient. Validation stops at the
// first failure; the appointment insert and the slot close are one unit.
func (s *DefaultBookingService) BookAppointment(ctx context.Context, patientID string, req models.BookingRequest) (appt *models.Appointment, err error) {
	defer func() { s.Metrics.ObserveBooking(err) }()

	start, end := utils.NormalizeTime(req.StartTime), utils.NormalizeTime(req.EndTime)
	if req.DoctorID == "" {
		return nil, utils.NewInvalidRequest("doctorId is required")
	}
	day, err := utils.ParseDay(req.Date)
	if err != nil {
		return nil, err
	}

	doctor, err := s.Doctors.GetByID(ctx, req.DoctorID)
	if err != nil {
		return nil, err
	}
	if day.Before(s.today()) {
		return nil, utils.NewInvalidRequest("requested date has already passed")
	}
	entry, _ := doctor.FindAvailability(day)
	if entry == nil {
		return nil, utils.NewInvalidRequest("doctor not available on this date")
	}
	slot := entry.FindSlot(start, end)
	if slot == nil || !slot.Available {
		return nil, utils.NewInvalidRequest("requested time slot is not available")
	}

	appt = &models.Appointment{
		ID:        uuid.New().String(),
		PatientID: patientID,
		DoctorID:  doctor.ID,
		Date:      day,
		StartTime: start,
		EndTime:   end,
		Status:    models.StatusConfirmed,
	}

	book := func(ctx context.Context) error {
		return s.Scheduler.BookSlotTransactionally(ctx, appt)
	}
	if s.Locker != nil {
		key := utils.SlotLockKey(doctor.ID, day, start, end)
		err = s.Locker.WithSlotLock(ctx, key, book)
		if errors.Is(err, utils.ErrLockNotAcquired) {
			return nil, utils.NewConflict("slot is being booked by another request")
		}
	} else {
		err = book(ctx)
	}
	if err != nil {
		if !utils.IsKind(err, utils.KindConflict) {
			utils.GetLogger().Error("booking failed",
				zap.String("doctorId", doctor.ID),
				zap.String("patientId", patientID),
				zap.Error(err))
		}
		return nil, err
	}

	utils.GetLogger().Info("appointment booked",
		zap.String("appointmentId", appt.ID),
		zap.String("doctorId", doctor.ID),
		zap.String("date", day.Format(time.DateOnly)),
		zap.String("startTime", start))
	return appt, nil
}
