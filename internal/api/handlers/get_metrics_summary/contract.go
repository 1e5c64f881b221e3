package get_metrics_summary

import (
	"context"

	computeMetrics "github.com/bobylov03/salon/internal/usecase/compute_metrics"
)

type ComputeMetricsUseCase interface {
	Execute(ctx context.Context, req *computeMetrics.Request) (*computeMetrics.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
