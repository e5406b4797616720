package models

import "time"

// Doctor is a practitioner. It exclusively owns its availability.
type Doctor struct {
	ID           string         `bson:"id" json:"id"`
	UserID       string         `bson:"userId" json:"userId"`
	Name         string         `bson:"name" json:"name"`
	Email        string         `bson:"email" json:"email"`
	Specialty    string         `bson:"specialty" json:"specialty"`
	Availability []Availability `bson:"availability" json:"availability"`
	Version      int            `bson:"version" json:"-"`
	CreatedAt    time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// DoctorSummary is the counterpart view a patient sees on an appointment.
type DoctorSummary struct {
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
}

// FindAvailability returns the entry for the given calendar day, if any.
func (d *Doctor) FindAvailability(day time.Time) (*Availability, int) {
	for i := range d.Availability {
		if d.Availability[i].Date.Equal(day) {
			return &d.Availability[i], i
		}
	}
	return nil, -1
}

// FindSlot returns the slot with exactly the given start and end.
func (a *Availability) FindSlot(start, end string) *Slot {
	for i := range a.Slots {
		if a.Slots[i].StartTime == start && a.Slots[i].EndTime == end {
			return &a.Slots[i]
		}
	}
	return nil
}
