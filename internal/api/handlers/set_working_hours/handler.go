package set_working_hours

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/bobylov03/salon/internal/api/handlers"
	whService "github.com/bobylov03/salon/internal/service/workinghours"
	"github.com/bobylov03/salon/internal/service/workinghours/models"
)

const (
	msgInvalidStaffID     = "некорректный ID мастера"
	msgInvalidDayOfWeek   = "некорректный день недели, ожидается число от 0 до 6"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgStaffNotFound      = "мастер не найден"
	msgRuleNotFound       = "график на этот день не задан"
	msgDependencyDown     = "внешний сервис недоступен, повторите запрос позже"
)

// SetWorkingHoursRequest HTTP request model
// dayOff=true очищает график дня, иначе задаются startTime и endTime
type SetWorkingHoursRequest struct {
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
	DayOff    bool   `json:"dayOff,omitempty"`
}

type Handler struct {
	service WorkingHoursService
	logger  Logger
}

func NewHandler(service WorkingHoursService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/staff/{staffId}/working-hours/{dayOfWeek}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	staffID, err := strconv.ParseInt(vars["staffId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /staff/{id}/working-hours/{day} - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	dayOfWeek, err := strconv.Atoi(vars["dayOfWeek"])
	if err != nil {
		h.logger.Warn("PUT /staff/{id}/working-hours/{day} - Invalid day of week: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDayOfWeek)
		return
	}

	var req SetWorkingHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /staff/{id}/working-hours/{day} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.DayOff {
		h.clear(w, r, staffID, dayOfWeek)
		return
	}

	result, err := h.service.Set(r.Context(), staffID, dayOfWeek, &models.SetWorkingHoursRequest{
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		switch {
		case errors.Is(err, whService.ErrStaffNotFound):
			h.logger.Warn("PUT /staff/{id}/working-hours/{day} - Staff not found: staff_id=%d", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, whService.ErrInvalidInput):
			h.logger.Warn("PUT /staff/{id}/working-hours/{day} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, whService.ErrDependencyUnavailable):
			h.logger.Error("PUT /staff/{id}/working-hours/{day} - Dependency unavailable: %v", err)
			handlers.RespondBadGateway(w, msgDependencyDown)

		default:
			h.logger.Error("PUT /staff/{id}/working-hours/{day} - Failed to set working hours: staff_id=%d, error=%v",
				staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /staff/{id}/working-hours/{day} - Working hours set: staff_id=%d, day=%d, %s-%s",
		staffID, dayOfWeek, req.StartTime, req.EndTime)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// clear делает день выходным
func (h *Handler) clear(w http.ResponseWriter, r *http.Request, staffID int64, dayOfWeek int) {
	if err := h.service.Clear(r.Context(), staffID, dayOfWeek); err != nil {
		switch {
		case errors.Is(err, whService.ErrRuleNotFound):
			h.logger.Warn("PUT /staff/{id}/working-hours/{day} - Rule not found: staff_id=%d, day=%d", staffID, dayOfWeek)
			handlers.RespondNotFound(w, msgRuleNotFound)

		case errors.Is(err, whService.ErrInvalidInput):
			h.logger.Warn("PUT /staff/{id}/working-hours/{day} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDayOfWeek)

		default:
			h.logger.Error("PUT /staff/{id}/working-hours/{day} - Failed to clear working hours: staff_id=%d, error=%v",
				staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /staff/{id}/working-hours/{day} - Day marked as day off: staff_id=%d, day=%d", staffID, dayOfWeek)
	handlers.RespondNoContent(w)
}
