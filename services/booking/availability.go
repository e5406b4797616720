package booking

import (
	"context"

	"halo/models"
	"halo/utils"

	"go.uber.org/zap"
)

const maxAvailabilityAttempts = 3

type slotKey struct{ start, end string }

// normalizeSlots pads and validates the submitted slots, dropping repeats
// within the request itself.
func normalizeSlots(in []models.SlotInput) ([]models.Slot, error) {
	if len(in) == 0 {
		return nil, utils.NewInvalidRequest("at least one slot is required")
	}
	seen := make(map[slotKey]struct{}, len(in))
	out := make([]models.Slot, 0, len(in))
	for _, raw := range in {
		if raw.StartTime == "" || raw.EndTime == "" {
			return nil, utils.NewInvalidRequest("each slot needs a start and end time")
		}
		start, end := utils.NormalizeTime(raw.StartTime), utils.NormalizeTime(raw.EndTime)
		if !utils.ValidClockTime(start) || !utils.ValidClockTime(end) {
			return nil, utils.NewInvalidRequest("slot times must be in HH:MM format")
		}
		if start >= end {
			return nil, utils.NewInvalidRequest("slot start time must be before end time")
		}
		k := slotKey{start, end}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, models.Slot{StartTime: start, EndTime: end, Available: true})
	}
	return out, nil
}

// mergeAvailability returns a copy of existing with slots merged into the
// entry for day. Slots whose (start, end) already exist are skipped.
func mergeAvailability(existing []models.Availability, day models.Availability) []models.Availability {
	merged := make([]models.Availability, len(existing))
	for i, a := range existing {
		merged[i] = models.Availability{Date: a.Date, Slots: append([]models.Slot(nil), a.Slots...)}
	}

	for i := range merged {
		if !merged[i].Date.Equal(day.Date) {
			continue
		}
		for _, slot := range day.Slots {
			if merged[i].FindSlot(slot.StartTime, slot.EndTime) == nil {
				merged[i].Slots = append(merged[i].Slots, slot)
			}
		}
		return merged
	}
	return append(merged, day)
}

// AddAvailability merges the requested slots into the doctor's entry for the date.
func (s *DefaultBookingService) AddAvailability(ctx context.Context, doctorID string, req models.AvailabilityRequest) (*models.Doctor, error) {
	day, err := utils.ParseDay(req.Date)
	if err != nil {
		return nil, err
	}
	slots, err := normalizeSlots(req.Slots)
	if err != nil {
		return nil, err
	}
	entry := models.Availability{Date: day, Slots: slots}

	for attempt := 1; attempt <= maxAvailabilityAttempts; attempt++ {
		doctor, err := s.Doctors.GetByID(ctx, doctorID)
		if err != nil {
			return nil, err
		}

		merged := mergeAvailability(doctor.Availability, entry)
		err = s.Doctors.ReplaceAvailability(ctx, doctorID, merged, doctor.Version)
		if err == nil {
			doctor.Availability = merged
			doctor.Version++
			return doctor, nil
		}
		if !utils.IsKind(err, utils.KindConflict) {
			return nil, err
		}
		s.Metrics.ObserveAvailabilityConflict()
		utils.GetLogger().Debug("availability version moved, retrying",
			zap.String("doctorId", doctorID), zap.Int("attempt", attempt))
	}
	return nil, utils.NewConflict("availability is being modified concurrently, please retry")
}

func (s *DefaultBookingService) GetAvailability(ctx context.Context, doctorID string) ([]models.Availability, error) {
	doctor, err := s.Doctors.GetByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor.Availability == nil {
		return []models.Availability{}, nil
	}
	return doctor.Availability, nil
}

func (s *DefaultBookingService) GetDoctors(ctx context.Context) ([]models.Doctor, error) {
	return s.Doctors.GetAll(ctx)
}

func (s *DefaultBookingService) GetDoctorsBySpecialty(ctx context.Context, specialty string) ([]models.Doctor, error) {
	if specialty == "" {
		return nil, utils.NewInvalidRequest("specialty is required")
	}
	return s.Doctors.GetBySpecialty(ctx, specialty)
}
