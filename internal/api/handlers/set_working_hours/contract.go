package set_working_hours

import (
	"context"

	"github.com/bobylov03/salon/internal/service/workinghours/models"
)

type WorkingHoursService interface {
	Set(ctx context.Context, staffID int64, dayOfWeek int, req *models.SetWorkingHoursRequest) (*models.WorkingHoursRuleResponse, error)
	Clear(ctx context.Context, staffID int64, dayOfWeek int) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
