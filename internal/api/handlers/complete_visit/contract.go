package complete_visit

import (
	"context"

	"github.com/google/uuid"
)

type VisitsService interface {
	Complete(ctx context.Context, reference uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
