package update_appointment_services

import (
	"context"

	"github.com/bobylov03/salon/internal/service/appointments/models"
)

type AppointmentService interface {
	UpdateServices(ctx context.Context, id int64, req *models.UpdateServicesRequest) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
