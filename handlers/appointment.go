package handlers

import (
	"net/http"

	"furcare/models"
	"furcare/services/appointment"
	"furcare/utils"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	Service appointment.AppointmentLifecycle
}

func NewAppointmentHandler(svc appointment.AppointmentLifecycle) *AppointmentHandler {
	return &AppointmentHandler{Service: svc}
}

func (h *AppointmentHandler) CreateAppointmentHandler(c *gin.Context) {
	var req models.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	appt, err := h.Service.CreateAppointment(c.Request.Context(), req)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, "Appointment created", appt)
}

func (h *AppointmentHandler) GetAppointmentHandler(c *gin.Context) {
	appt, err := h.Service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Appointment fetched", appt)
}

func (h *AppointmentHandler) GetAppointmentByNumberHandler(c *gin.Context) {
	appt, err := h.Service.GetByBookingNumber(c.Request.Context(), c.Param("bookingNumber"))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Appointment fetched", appt)
}

func (h *AppointmentHandler) UpdateAppointmentStatusHandler(c *gin.Context) {
	var req models.UpdateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	status, ok := models.ParseAppointmentStatus(req.Status)
	if !ok {
		utils.JSONError(c, utils.NewValidationError("status", "must be one of Pending, Confirmed, Completed, Cancelled"))
		return
	}

	appt, err := h.Service.UpdateStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Appointment status updated", appt)
}

func (h *AppointmentHandler) GetShopAppointmentsHandler(c *gin.Context) {
	appts, err := h.Service.ListByShop(c.Request.Context(), c.Param("shopId"))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Appointments fetched", appts)
}

func (h *AppointmentHandler) GetUserAppointmentsHandler(c *gin.Context) {
	appts, err := h.Service.ListByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Appointments fetched", appts)
}
