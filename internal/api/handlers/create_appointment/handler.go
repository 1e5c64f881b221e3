package create_appointment

import (
	"errors"
	"net/http"

	"github.com/bobylov03/salon/internal/api/handlers"
	createAppointment "github.com/bobylov03/salon/internal/usecase/create_appointment"
)

const (
	// HeaderIdempotencyKey заголовок с ключом идемпотентности
	HeaderIdempotencyKey = "Idempotency-Key"

	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат даты или времени"
	msgTimeConflict       = "выбранное время пересекается с другой записью"
	msgDuplicateRequest   = "запрос с этим ключом идемпотентности уже обрабатывается"
	msgClientNotFound     = "клиент не найден"
	msgStaffNotFound      = "мастер не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgDependencyDown     = "внешний сервис недоступен, повторите запрос позже"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(r.Header.Get(HeaderIdempotencyKey))
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrTimeConflict):
			h.logger.Warn("POST /appointments - Time conflict: client_id=%d, staff_id=%v", req.ClientID, req.StaffID)
			handlers.RespondError(w, http.StatusConflict, msgTimeConflict)

		case errors.Is(err, createAppointment.ErrDuplicateRequest):
			h.logger.Warn("POST /appointments - Duplicate request: client_id=%d", req.ClientID)
			handlers.RespondError(w, http.StatusConflict, msgDuplicateRequest)

		case errors.Is(err, createAppointment.ErrClientNotFound):
			h.logger.Warn("POST /appointments - Client not found: client_id=%d", req.ClientID)
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, createAppointment.ErrStaffNotFound):
			h.logger.Warn("POST /appointments - Staff not found: staff_id=%v", req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: client_id=%d, services=%v", req.ClientID, req.ServiceIDs)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createAppointment.ErrDependencyUnavailable):
			h.logger.Error("POST /appointments - Dependency unavailable: %v", err)
			handlers.RespondBadGateway(w, msgDependencyDown)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: client_id=%d, error=%v", req.ClientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, client_id=%d",
		result.ID, req.ClientID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
