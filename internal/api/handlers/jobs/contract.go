package jobs

import (
	"context"

	"github.com/m04kA/SMC-FleetDesk/internal/domain"
	"github.com/m04kA/SMC-FleetDesk/internal/integrations/fleetapi"
	"github.com/m04kA/SMC-FleetDesk/internal/store"
)

type JobsCollection interface {
	Load(ctx context.Context) store.Snapshot[domain.Job]
	Retry(ctx context.Context) store.Snapshot[domain.Job]
}

type JobsService interface {
	CreateJob(ctx context.Context, input fleetapi.JobInput) (*domain.Job, error)
	DeleteJob(ctx context.Context, id string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
