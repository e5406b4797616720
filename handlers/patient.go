package handlers

import (
	"net/http"

	"halo/middleware"
	"halo/models"
	"halo/services/patient"
	"halo/utils"

	"github.com/gin-gonic/gin"
)

type PatientHandler struct {
	Patients patient.PatientService
}

func NewPatientHandler(svc patient.PatientService) *PatientHandler {
	return &PatientHandler{Patients: svc}
}

// PaymentHandler handles POST /patient/payment.
func (h *PatientHandler) PaymentHandler(c *gin.Context) {
	var req models.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	result, err := h.Patients.Pay(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment successful.", "payment": result})
}

// ApplyDoctorHandler handles POST /patient/applyDoctor. The caller's session stays valid; the new
// role takes effect on the next authenticated request.
func (h *PatientHandler) ApplyDoctorHandler(c *gin.Context) {
	var req models.ApplyDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	doctor, err := h.Patients.ApplyDoctor(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "You are now registered as a doctor.", "doctor": doctor})
}
