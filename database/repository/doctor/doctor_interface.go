package doctorRepo

import (
	"context"
	"time"

	"halo/models"
)

// DoctorRepository defines methods for doctor data access.
type DoctorRepository interface {
	Create(ctx context.Context, doctor *models.Doctor) error
	GetByID(ctx context.Context, id string) (*models.Doctor, error)
	GetByUserID(ctx context.Context, userID string) (*models.Doctor, error)
	GetAll(ctx context.Context) ([]models.Doctor, error)
	GetBySpecialty(ctx context.Context, specialty string) ([]models.Doctor, error)

	// ReplaceAvailability overwrites the availability list only if the stored
	// version still equals expectedVersion. A lost race returns a Conflict.
	ReplaceAvailability(ctx context.Context, id string, availability []models.Availability, expectedVersion int) error

	// CloseSlot flips an open slot to unavailable. It returns a Conflict when
	// no open slot with exactly that day, start and end exists.
	CloseSlot(ctx context.Context, id string, day time.Time, start, end string) error

	// ReopenSlot is the inverse of CloseSlot.
	ReopenSlot(ctx context.Context, id string, day time.Time, start, end string) error
}
