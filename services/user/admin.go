package user

import (
	"context"

	"halo/models"
)

func (s *DefaultUserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return s.Users.GetAll(ctx)
}

// GetAllPatients joins each patient with its user's email and role.
func (s *DefaultUserService) GetAllPatients(ctx context.Context) ([]models.PatientAccount, error) {
	patients, err := s.Patients.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.Users.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	out := make([]models.PatientAccount, 0, len(patients))
	for _, p := range patients {
		acct := models.PatientAccount{Patient: p}
		if u, ok := byID[p.UserID]; ok {
			acct.Email = u.Email
			acct.Role = u.Role
		}
		out = append(out, acct)
	}
	return out, nil
}

func (s *DefaultUserService) DeleteUser(ctx context.Context, userID string) error {
	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	return s.deleteUser(ctx, user)
}
