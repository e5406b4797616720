package patientRepo

import (
	"context"

	"halo/models"
)

// PatientRepository defines methods for patient data access.
type PatientRepository interface {
	Create(ctx context.Context, patient *models.Patient) error
	GetByID(ctx context.Context, id string) (*models.Patient, error)
	GetByUserID(ctx context.Context, userID string) (*models.Patient, error)
	GetByUsername(ctx context.Context, username string) (*models.Patient, error)
	GetAll(ctx context.Context) ([]models.Patient, error)
	SetStripeCustomerID(ctx context.Context, id, customerID string) error
	// DeleteByUserID removes the patient owned by a user. Missing records are not an error.
	DeleteByUserID(ctx context.Context, userID string) error
}
