package handlers

import (
	"net/http"

	"halo/middleware"
	"halo/models"
	"halo/services/booking"
	"halo/utils"

	"github.com/gin-gonic/gin"
)

// DoctorHandler serves the /doctor routes.
type DoctorHandler struct {
	Booking booking.BookingService
}

func NewDoctorHandler(svc booking.BookingService) *DoctorHandler {
	return &DoctorHandler{Booking: svc}
}

func (h *DoctorHandler) GetDoctorsHandler(c *gin.Context) {
	doctors, err := h.Booking.GetDoctors(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doctors)
}

func (h *DoctorHandler) GetDoctorsBySpecialtyHandler(c *gin.Context) {
	doctors, err := h.Booking.GetDoctorsBySpecialty(c.Request.Context(), c.Param("specialty"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doctors)
}

// AddAvailabilityHandler handles POST /doctor/availability.
func (h *DoctorHandler) AddAvailabilityHandler(c *gin.Context) {
	var req models.AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	doctor, err := h.Booking.AddAvailability(c.Request.Context(), middleware.DoctorID(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Availability added successfully.", "availability": doctor.Availability})
}

func (h *DoctorHandler) GetAvailabilityHandler(c *gin.Context) {
	avail, err := h.Booking.GetAvailability(c.Request.Context(), middleware.DoctorID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, avail)
}

func (h *DoctorHandler) GetDoctorPatientsHandler(c *gin.Context) {
	patients, err := h.Booking.ListDoctorPatients(c.Request.Context(), middleware.DoctorID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, patients)
}

// PrescriptionReportHandler handles POST /doctor/prescription-report/:appointmentId.
func (h *DoctorHandler) PrescriptionReportHandler(c *gin.Context) {
	var req models.PrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	appt, err := h.Booking.RecordPrescription(c.Request.Context(), c.Param("appointmentId"), middleware.DoctorID(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Prescription and report saved.", "appointment": appt})
}
