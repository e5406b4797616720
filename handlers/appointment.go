package handlers

import (
	"net/http"

	"halo/middleware"
	"halo/models"
	"halo/services/booking"
	"halo/utils"

	"github.com/gin-gonic/gin"
)

// AppointmentHandler serves the /appointment routes.
type AppointmentHandler struct {
	Booking booking.BookingService
}

func NewAppointmentHandler(svc booking.BookingService) *AppointmentHandler {
	return &AppointmentHandler{Booking: svc}
}

// BookAppointmentHandler handles POST /appointment/book.
func (h *AppointmentHandler) BookAppointmentHandler(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	appt, err := h.Booking.BookAppointment(c.Request.Context(), middleware.PatientID(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Appointment booked successfully.", "appointment": appt})
}

func (h *AppointmentHandler) PatientAppointmentsHandler(c *gin.Context) {
	h.list(c, models.RolePatient, middleware.PatientID(c))
}

func (h *AppointmentHandler) DoctorAppointmentsHandler(c *gin.Context) {
	h.list(c, models.RoleDoctor, middleware.DoctorID(c))
}

func (h *AppointmentHandler) list(c *gin.Context, role models.Role, identityID string) {
	appts, err := h.Booking.ListAppointmentsFor(c.Request.Context(), role, identityID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appts)
}

// UpdateStatusHandler handles PATCH /appointment/:appointmentId/status.
func (h *AppointmentHandler) UpdateStatusHandler(c *gin.Context) {
	var req models.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	role := middleware.Role(c)
	identityID := middleware.PatientID(c)
	if role == models.RoleDoctor {
		identityID = middleware.DoctorID(c)
	}

	appt, err := h.Booking.UpdateAppointmentStatus(c.Request.Context(), c.Param("appointmentId"), role, identityID, req.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment status updated.", "appointment": appt})
}
