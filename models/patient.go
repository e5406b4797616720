package models

import "time"

// Patient holds patient-specific data for a User with role Patient.
type Patient struct {
	ID               string    `bson:"id" json:"id"`
	UserID           string    `bson:"userId" json:"userId"`
	Username         string    `bson:"username" json:"username"`
	StripeCustomerID string    `bson:"stripeCustomerId,omitempty" json:"stripeCustomerId,omitempty"`
	CreatedAt        time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time `bson:"updatedAt" json:"updatedAt"`
}

// PatientSummary is the counterpart view a doctor sees on an appointment.
type PatientSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// DoctorPatient is one entry of a doctor's distinct patient list.
type DoctorPatient struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	Date     time.Time `json:"date"`
}

// PatientAccount joins a patient with the owning user's email and role for admin listings.
type PatientAccount struct {
	Patient
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// ApplyDoctorRequest is the payload for POST /patient/applyDoctor.
type ApplyDoctorRequest struct {
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
}
