package models

import "time"

// Role is the account type attached to a User.
type Role string

const (
	RoleUser    Role = "User"
	RolePatient Role = "Patient"
	RoleDoctor  Role = "Doctor"
	RoleAdmin   Role = "Admin"
)

// User is the login identity shared by patients, doctors and admins.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	Verified     bool      `bson:"verified" json:"verified"`
	Role         Role      `bson:"role" json:"role"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// SignupRequest is the payload for POST /user/signup.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
	Username string `json:"username"`
}

// LoginRequest accepts either an email or a patient username.
type LoginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Profile is returned by GET /user/profile.
type Profile struct {
	User        User     `json:"user"`
	PatientInfo *Patient `json:"patientInfo"`
}
