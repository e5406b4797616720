package booking

import (
	"context"

	"halo/models"
	"halo/utils"

	"go.uber.org/zap"
)

// RecordPrescription overwrites the prescription and report of an appointment
// that belongs to the calling doctor.
func (s *DefaultBookingService) RecordPrescription(ctx context.Context, appointmentID, doctorID string, req models.PrescriptionRequest) (*models.Appointment, error) {
	appt, err := s.Appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.DoctorID != doctorID {
		return nil, utils.NewForbidden("not authorized to update this appointment")
	}
	if err := s.Appointments.UpdateReport(ctx, appointmentID, req.Prescription, req.Report); err != nil {
		return nil, err
	}
	appt.Prescription = req.Prescription
	appt.Report = req.Report
	return appt, nil
}

// ListAppointmentsFor returns the caller's appointments in insertion order
// with the counterpart's summary attached.
func (s *DefaultBookingService) ListAppointmentsFor(ctx context.Context, role models.Role, identityID string) ([]models.AppointmentDetail, error) {
	switch role {
	case models.RolePatient:
		appts, err := s.Appointments.ListByPatient(ctx, identityID)
		if err != nil {
			return nil, err
		}
		doctors := map[string]*models.DoctorSummary{}
		out := make([]models.AppointmentDetail, 0, len(appts))
		for _, a := range appts {
			summary, ok := doctors[a.DoctorID]
			if !ok {
				summary = s.doctorSummary(ctx, a.DoctorID)
				doctors[a.DoctorID] = summary
			}
			out = append(out, models.AppointmentDetail{Appointment: a, Doctor: summary})
		}
		return out, nil

	case models.RoleDoctor:
		appts, err := s.Appointments.ListByDoctor(ctx, identityID)
		if err != nil {
			return nil, err
		}
		patients := map[string]*models.PatientSummary{}
		out := make([]models.AppointmentDetail, 0, len(appts))
		for _, a := range appts {
			summary, ok := patients[a.PatientID]
			if !ok {
				summary = s.patientSummary(ctx, a.PatientID)
				patients[a.PatientID] = summary
			}
			out = append(out, models.AppointmentDetail{Appointment: a, Patient: summary})
		}
		return out, nil
	}
	return nil, utils.NewForbidden("role cannot list appointments")
}

// doctorSummary tolerates dangling references; appointments do not own doctors.
func (s *DefaultBookingService) doctorSummary(ctx context.Context, doctorID string) *models.DoctorSummary {
	d, err := s.Doctors.GetByID(ctx, doctorID)
	if err != nil {
		if !utils.IsKind(err, utils.KindNotFound) {
			utils.GetLogger().Warn("failed to load doctor summary", zap.String("doctorId", doctorID), zap.Error(err))
		}
		return nil
	}
	return &models.DoctorSummary{Name: d.Name, Specialty: d.Specialty}
}

func (s *DefaultBookingService) patientSummary(ctx context.Context, patientID string) *models.PatientSummary {
	p, err := s.Patients.GetByID(ctx, patientID)
	if err != nil {
		if !utils.IsKind(err, utils.KindNotFound) {
			utils.GetLogger().Warn("failed to load patient summary", zap.String("patientId", patientID), zap.Error(err))
		}
		return nil
	}
	return &models.PatientSummary{ID: p.ID, Username: p.Username}
}

// ListDoctorPatients returns each distinct patient of a doctor once, with the
// date of their first appointment.
func (s *DefaultBookingService) ListDoctorPatients(ctx context.Context, doctorID string) ([]models.DoctorPatient, error) {
	appts, err := s.Appointments.ListByDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	out := []models.DoctorPatient{}
	for _, a := range appts {
		if _, ok := seen[a.PatientID]; ok {
			continue
		}
		seen[a.PatientID] = struct{}{}
		summary := s.patientSummary(ctx, a.PatientID)
		if summary == nil {
			continue
		}
		out = append(out, models.DoctorPatient{ID: summary.ID, Username: summary.Username, Date: a.Date})
	}
	return out, nil
}
