package get_week_schedule

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/bobylov03/salon/internal/api/handlers"
	"github.com/bobylov03/salon/internal/domain"
	getWeekSchedule "github.com/bobylov03/salon/internal/usecase/get_week_schedule"
)

const (
	msgInvalidStaffID   = "некорректный ID мастера"
	msgInvalidWeekStart = "некорректный формат даты начала недели, ожидается YYYY-MM-DD"
	msgStaffNotFound    = "мастер не найден"
)

type Handler struct {
	useCase GetWeekScheduleUseCase
	logger  Logger
}

func NewHandler(useCase GetWeekScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/staff/{staffId}/week-schedule?weekStart=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	staffID, err := strconv.ParseInt(vars["staffId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /staff/{id}/week-schedule - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	weekStart, err := time.Parse(domain.DateFormat, r.URL.Query().Get("weekStart"))
	if err != nil {
		h.logger.Warn("GET /staff/{id}/week-schedule - Invalid week start: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWeekStart)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getWeekSchedule.Request{
		StaffID:   staffID,
		WeekStart: weekStart,
	})
	if err != nil {
		switch {
		case errors.Is(err, getWeekSchedule.ErrStaffNotFound):
			h.logger.Warn("GET /staff/{id}/week-schedule - Staff not found: staff_id=%d", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, getWeekSchedule.ErrInvalidInput):
			h.logger.Warn("GET /staff/{id}/week-schedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /staff/{id}/week-schedule - Failed to build schedule: staff_id=%d, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
