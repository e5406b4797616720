package booking

import (
	"context"
	"sync"
	"time"

	"halo/models"
	"halo/utils"
)

func cloneDoctor(d *models.Doctor) *models.Doctor {
	c := *d
	c.Availability = make([]models.Availability, len(d.Availability))
	for i, a := range d.Availability {
		c.Availability[i] = models.Availability{Date: a.Date, Slots: append([]models.Slot(nil), a.Slots...)}
	}
	return &c
}

type fakeDoctorRepo struct {
	mu      sync.Mutex
	doctors map[string]*models.Doctor
	// replaceHook runs before each ReplaceAvailability; used to simulate a concurrent writer.
	replaceHook func()
}

func newFakeDoctorRepo(doctors ...*models.Doctor) *fakeDoctorRepo {
	r := &fakeDoctorRepo{doctors: map[string]*models.Doctor{}}
	for _, d := range doctors {
		r.doctors[d.ID] = d
	}
	return r
}

func (r *fakeDoctorRepo) Create(_ context.Context, d *models.Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.doctors[d.ID] = cloneDoctor(d)
	return nil
}

func (r *fakeDoctorRepo) GetByID(_ context.Context, id string) (*models.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.doctors[id]
	if !ok {
		return nil, utils.NewNotFound("doctor not found")
	}
	return cloneDoctor(d), nil
}

func (r *fakeDoctorRepo) GetByUserID(_ context.Context, userID string) (*models.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.doctors {
		if d.UserID == userID {
			return cloneDoctor(d), nil
		}
	}
	return nil, utils.NewNotFound("doctor not found")
}

func (r *fakeDoctorRepo) GetAll(_ context.Context) ([]models.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Doctor{}
	for _, d := range r.doctors {
		out = append(out, *cloneDoctor(d))
	}
	return out, nil
}

func (r *fakeDoctorRepo) GetBySpecialty(_ context.Context, specialty string) ([]models.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Doctor{}
	for _, d := range r.doctors {
		if d.Specialty == specialty {
			out = append(out, *cloneDoctor(d))
		}
	}
	return out, nil
}

func (r *fakeDoctorRepo) ReplaceAvailability(_ context.Context, id string, availability []models.Availability, expectedVersion int) error {
	if r.replaceHook != nil {
		hook := r.replaceHook
		r.replaceHook = nil
		hook()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.doctors[id]
	if !ok || d.Version != expectedVersion {
		return utils.NewConflict("availability was modified concurrently")
	}
	tmp := cloneDoctor(&models.Doctor{Availability: availability})
	d.Availability = tmp.Availability
	d.Version++
	return nil
}

func (r *fakeDoctorRepo) setSlot(id string, day time.Time, start, end string, available bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.doctors[id]
	if !ok {
		return utils.NewConflict("slot not found")
	}
	entry, _ := d.FindAvailability(day)
	if entry == nil {
		return utils.NewConflict("slot not found")
	}
	slot := entry.FindSlot(start, end)
	if slot == nil || slot.Available == available {
		return utils.NewConflict("slot state changed")
	}
	slot.Available = available
	d.Version++
	return nil
}

func (r *fakeDoctorRepo) CloseSlot(_ context.Context, id string, day time.Time, start, end string) error {
	return r.setSlot(id, day, start, end, false)
}

func (r *fakeDoctorRepo) ReopenSlot(_ context.Context, id string, day time.Time, start, end string) error {
	return r.setSlot(id, day, start, end, true)
}

type fakeAppointmentRepo struct {
	mu    sync.Mutex
	appts []*models.Appointment
}

func (r *fakeAppointmentRepo) Create(_ context.Context, a *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *a
	r.appts = append(r.appts, &c)
	return nil
}

func (r *fakeAppointmentRepo) GetByID(_ context.Context, id string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.appts {
		if a.ID == id {
			c := *a
			return &c, nil
		}
	}
	return nil, utils.NewNotFound("appointment not found")
}

func (r *fakeAppointmentRepo) list(match func(*models.Appointment) bool) []models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Appointment{}
	for _, a := range r.appts {
		if match(a) {
			out = append(out, *a)
		}
	}
	return out
}

func (r *fakeAppointmentRepo) ListByPatient(_ context.Context, patientID string) ([]models.Appointment, error) {
	return r.list(func(a *models.Appointment) bool { return a.PatientID == patientID }), nil
}

func (r *fakeAppointmentRepo) ListByDoctor(_ context.Context, doctorID string) ([]models.Appointment, error) {
	return r.list(func(a *models.Appointment) bool { return a.DoctorID == doctorID }), nil
}

func (r *fakeAppointmentRepo) UpdateReport(_ context.Context, id, prescription, report string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.appts {
		if a.ID == id {
			a.Prescription, a.Report = prescription, report
			return nil
		}
	}
	return utils.NewNotFound("appointment not found")
}

func (r *fakeAppointmentRepo) UpdateStatus(_ context.Context, id string, from, to models.AppointmentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.appts {
		if a.ID == id {
			if a.Status != from {
				return utils.NewConflict("status changed")
			}
			a.Status = to
			return nil
		}
	}
	return utils.NewConflict("status changed")
}

type fakePatientRepo struct {
	patients map[string]*models.Patient
}

func (r *fakePatientRepo) Create(_ context.Context, p *models.Patient) error {
	r.patients[p.ID] = p
	return nil
}

func (r *fakePatientRepo) GetByID(_ context.Context, id string) (*models.Patient, error) {
	if p, ok := r.patients[id]; ok {
		return p, nil
	}
	return nil, utils.NewNotFound("patient not found")
}

func (r *fakePatientRepo) GetByUserID(_ context.Context, userID string) (*models.Patient, error) {
	for _, p := range r.patients {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, utils.NewNotFound("patient not found")
}

func (r *fakePatientRepo) GetByUsername(_ context.Context, username string) (*models.Patient, error) {
	for _, p := range r.patients {
		if p.Username == username {
			return p, nil
		}
	}
	return nil, utils.NewNotFound("patient not found")
}

func (r *fakePatientRepo) GetAll(_ context.Context) ([]models.Patient, error) {
	out := []models.Patient{}
	for _, p := range r.patients {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakePatientRepo) SetStripeCustomerID(_ context.Context, id, customerID string) error {
	p, ok := r.patients[id]
	if !ok {
		return utils.NewNotFound("patient not found")
	}
	p.StripeCustomerID = customerID
	return nil
}

func (r *fakePatientRepo) DeleteByUserID(_ context.Context, userID string) error {
	for id, p := range r.patients {
		if p.UserID == userID {
			delete(r.patients, id)
		}
	}
	return nil
}

// fakeScheduler mirrors the compensating path of the Mongo scheduler.
type fakeScheduler struct {
	doctors      *fakeDoctorRepo
	appointments *fakeAppointmentRepo
}

func (s *fakeScheduler) BookSlotTransactionally(ctx context.Context, appt *models.Appointment) error {
	if err := s.doctors.CloseSlot(ctx, appt.DoctorID, appt.Date, appt.StartTime, appt.EndTime); err != nil {
		return err
	}
	return s.appointments.Create(ctx, appt)
}

func (s *fakeScheduler) CancelTransactionally(ctx context.Context, appt *models.Appointment) error {
	if err := s.appointments.UpdateStatus(ctx, appt.ID, models.StatusConfirmed, models.StatusCancelled); err != nil {
		return err
	}
	return s.doctors.ReopenSlot(ctx, appt.DoctorID, appt.Date, appt.StartTime, appt.EndTime)
}
