package update_appointment_services

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/bobylov03/salon/internal/api/handlers"
	apptService "github.com/bobylov03/salon/internal/service/appointments"
	"github.com/bobylov03/salon/internal/service/appointments/models"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgNotFound             = "запись не найдена"
	msgServiceNotFound      = "услуга не найдена"
	msgTimeConflict         = "новый состав услуг не помещается в свободное время"
	msgTerminalStatus       = "запись в конечном статусе нельзя изменить"
	msgDependencyDown       = "внешний сервис недоступен, повторите запрос позже"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/appointments/{appointmentId}/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /appointments/{id}/services - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req models.UpdateServicesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /appointments/{id}/services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateServices(r.Context(), appointmentID, &req)
	if err != nil {
		switch {
		case errors.Is(err, apptService.ErrAppointmentNotFound):
			h.logger.Warn("PUT /appointments/{id}/services - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, apptService.ErrServiceNotFound):
			h.logger.Warn("PUT /appointments/{id}/services - Service not found: appointment_id=%d, services=%v",
				appointmentID, req.ServiceIDs)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, apptService.ErrTimeConflict):
			h.logger.Warn("PUT /appointments/{id}/services - Time conflict: appointment_id=%d", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgTimeConflict)

		case errors.Is(err, apptService.ErrInvalidTransition):
			h.logger.Warn("PUT /appointments/{id}/services - Terminal status: appointment_id=%d", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgTerminalStatus)

		case errors.Is(err, apptService.ErrInvalidInput):
			h.logger.Warn("PUT /appointments/{id}/services - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, apptService.ErrDependencyUnavailable):
			h.logger.Error("PUT /appointments/{id}/services - Dependency unavailable: %v", err)
			handlers.RespondBadGateway(w, msgDependencyDown)

		default:
			h.logger.Error("PUT /appointments/{id}/services - Failed to update services: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /appointments/{id}/services - Services updated: appointment_id=%d, count=%d",
		appointmentID, len(req.ServiceIDs))
	handlers.RespondJSON(w, http.StatusOK, result)
}
