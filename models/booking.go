package models

import "time"

// AppointmentStatus is the lifecycle state of an Appointment.
type AppointmentStatus string

const (
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment binds one patient, one doctor and one slot on one date.
type Appointment struct {
	ID           string            `bson:"id" json:"id"`
	PatientID    string            `bson:"patientId" json:"patientId"`
	DoctorID     string            `bson:"doctorId" json:"doctorId"`
	Date         time.Time         `bson:"date" json:"date"`
	StartTime    string            `bson:"startTime" json:"startTime"`
	EndTime      string            `bson:"endTime" json:"endTime"`
	Status       AppointmentStatus `bson:"status" json:"status"`
	Prescription string            `bson:"prescription,omitempty" json:"prescription,omitempty"`
	Report       string            `bson:"report,omitempty" json:"report,omitempty"`
	CreatedAt    time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// AppointmentDetail is an appointment with the counterpart's basic profile attached.
type AppointmentDetail struct {
	Appointment
	Doctor  *DoctorSummary  `json:"doctor,omitempty"`
	Patient *PatientSummary `json:"patient,omitempty"`
}

// BookingRequest is the payload for POST /appointment/book.
type BookingRequest struct {
	DoctorID  string `json:"doctorId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// PrescriptionRequest is the payload for POST /doctor/prescription-report/:appointmentId.
type PrescriptionRequest struct {
	Prescription string `json:"prescription"`
	Report       string `json:"report"`
}

// StatusUpdateRequest is the payload for PATCH /appointment/:appointmentId/status.
type StatusUpdateRequest struct {
	Status AppointmentStatus `json:"status"`
}
