package user

import (
	"context"

	"halo/models"
	"halo/utils"

	"golang.org/x/crypto/bcrypt"
)

func (s *DefaultUserService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile := &models.Profile{User: *user}
	if user.Role == models.RolePatient {
		patient, err := s.Patients.GetByUserID(ctx, user.ID)
		if err != nil && !utils.IsKind(err, utils.KindNotFound) {
			return nil, err
		}
		profile.PatientInfo = patient
	}
	return profile, nil
}

// DeleteAccount removes the caller's account after re-checking the password.
func (s *DefaultUserService) DeleteAccount(ctx context.Context, userID, password, token string) error {
	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return utils.NewUnauthorized("Unauthorized: Incorrect password.")
	}
	if err := s.deleteUser(ctx, user); err != nil {
		return err
	}
	return s.revoke(ctx, token, utils.PurposeSession)
}

// deleteUser cascades to the patient record. Appointments are kept; they
// only reference their participants.
func (s *DefaultUserService) deleteUser(ctx context.Context, user *models.User) error {
	if user.Role == models.RolePatient {
		if err := s.Patients.DeleteByUserID(ctx, user.ID); err != nil {
			return err
		}
	}
	return s.Users.Delete(ctx, user.ID)
}
