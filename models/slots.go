package models

import "time"

// Slot is a bookable time window. Times are zero-padded "HH:MM".
type Slot struct {
	StartTime string `bson:"startTime" json:"startTime"`
	EndTime   string `bson:"endTime" json:"endTime"`
	Available bool   `bson:"available" json:"available"`
}

// Availability groups the slots a doctor offers on one calendar day.
// Date is always stored as midnight UTC of that day.
type Availability struct {
	Date  time.Time `bson:"date" json:"date"`
	Slots []Slot    `bson:"slots" json:"slots"`
}

// SlotInput is a slot candidate submitted by a doctor.
type SlotInput struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// AvailabilityRequest is the payload for POST /doctor/availability.
type AvailabilityRequest struct {
	Date  string      `json:"date"`
	Slots []SlotInput `json:"slots"`
}
