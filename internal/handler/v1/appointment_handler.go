package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/visitflow/visitflow/internal/domain/appointment"
	"github.com/visitflow/visitflow/internal/service"
)

type AppointmentHandler struct {
	appointmentSvc *service.AppointmentService
}

func NewAppointmentHandler(appointmentSvc *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentSvc: appointmentSvc}
}

func (h *AppointmentHandler) Schedule(c *gin.Context) {
	var req scheduleRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, role := caller(c)
	created, err := h.appointmentSvc.Schedule(c.Request.Context(), &appointment.ScheduleCommand{
		StartsAt:   req.StartsAt,
		EndsAt:     req.EndsAt,
		VisitorID:  req.VisitorID,
		EmployeeID: req.EmployeeID,
		CompanyID:  req.CompanyID,
	}, callerID, role, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, toAppointmentResponse(created))
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	found, err := h.appointmentSvc.GetAppointment(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toAppointmentResponse(found))
}

func (h *AppointmentHandler) List(c *gin.Context) {
	appointments, err := h.appointmentSvc.ListAppointments(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toAppointmentResponses(appointments))
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req rescheduleRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, role := caller(c)
	updated, err := h.appointmentSvc.Reschedule(c.Request.Context(), id, &appointment.RescheduleCommand{
		StartsAt:   req.StartsAt,
		EndsAt:     req.EndsAt,
		EmployeeID: req.EmployeeID,
		CompanyID:  req.CompanyID,
	}, callerID, role, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toAppointmentResponse(updated))
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	callerID, role := caller(c)
	if err := h.appointmentSvc.Cancel(c.Request.Context(), id, callerID, role, c.ClientIP()); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
