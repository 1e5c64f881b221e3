package get_working_hours

import (
	"context"

	"github.com/bobylov03/salon/internal/service/workinghours/models"
)

type WorkingHoursService interface {
	GetByStaff(ctx context.Context, staffID int64) (*models.WorkingHoursResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
