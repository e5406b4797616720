package patient

import (
	"context"
	"strings"

	"halo/database/repository"
	"halo/models"
	"halo/services/payment"
	"halo/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PatientService interface {
	ApplyDoctor(ctx context.Context, userID string, req models.ApplyDoctorRequest) (*models.Doctor, error)
	Pay(ctx context.Context, userID string, req models.PaymentRequest) (*models.ChargeResult, error)
}

type DefaultPatientService struct {
	Users    repository.UserRepository
	Patients repository.PatientRepository
	Doctors  repository.DoctorRepository
	Charger  payment.Charger
}

// ApplyDoctor turns a patient account into a doctor account.
func (s *DefaultPatientService) ApplyDoctor(ctx context.Context, userID string, req models.ApplyDoctorRequest) (*models.Doctor, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Specialty = strings.TrimSpace(req.Specialty)
	if req.Name == "" || req.Specialty == "" {
		return nil, utils.NewInvalidRequest("All fields are required.")
	}

	patient, err := s.Patients.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	doctor := &models.Doctor{
		ID:           uuid.New().String(),
		UserID:       patient.UserID,
		Name:         req.Name,
		Email:        user.Email,
		Specialty:    req.Specialty,
		Availability: []models.Availability{},
	}
	if err := s.Doctors.Create(ctx, doctor); err != nil {
		return nil, err
	}
	if err := s.Users.SetRole(ctx, userID, models.RoleDoctor); err != nil {
		return nil, err
	}
	if err := s.Patients.DeleteByUserID(ctx, userID); err != nil {
		utils.GetLogger().Warn("failed to remove patient record after doctor application",
			zap.String("userId", userID), zap.Error(err))
	}

	utils.GetLogger().Info("patient became doctor", zap.String("userId", userID), zap.String("doctorId", doctor.ID))
	return doctor, nil
}

// Pay charges the patient's card and remembers the created Stripe customer.
func (s *DefaultPatientService) Pay(ctx context.Context, userID string, req models.PaymentRequest) (*models.ChargeResult, error) {
	if req.FinalBalance <= 0 {
		return nil, utils.NewInvalidRequest("finalBalance must be greater than zero")
	}
	if req.Token.ID == "" || req.Token.Email == "" {
		return nil, utils.NewInvalidRequest("payment token with id and email is required")
	}

	patient, err := s.Patients.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	result, err := s.Charger.Charge(ctx, req.FinalBalance, req.Token)
	if err != nil {
		return nil, err
	}
	if result.CustomerID != "" {
		if err := s.Patients.SetStripeCustomerID(ctx, patient.ID, result.CustomerID); err != nil {
			utils.GetLogger().Error("failed to store stripe customer", zap.String("patientId", patient.ID), zap.Error(err))
		}
	}
	return result, nil
}
