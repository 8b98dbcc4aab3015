package drafts

import (
	"context"

	"github.com/m04kA/SMC-FleetDesk/internal/domain"
	draftsService "github.com/m04kA/SMC-FleetDesk/internal/service/drafts"
	"github.com/m04kA/SMC-FleetDesk/internal/service/pricing"
)

type DraftsService interface {
	Open(ctx context.Context, carID string) (*draftsService.View, error)
	View(ctx context.Context, id string, mode pricing.VATMode) (*draftsService.View, error)
	ViewCurrent(ctx context.Context, id string) (*draftsService.View, error)
	Discard(id string) error
	ToggleJob(ctx context.Context, id, jobID string) (*draftsService.View, error)
	OverrideJob(ctx context.Context, id, jobID string, override domain.JobOverride) (*draftsService.View, error)
	TogglePart(ctx context.Context, id, partID string) (*draftsService.View, error)
	OverridePart(ctx context.Context, id, partID string, override domain.PartOverride) (*draftsService.View, error)
	AddSlot(ctx context.Context, id, date, startTime string) (*draftsService.View, error)
	RemoveSlot(ctx context.Context, id, date, startTime string) (*draftsService.View, error)
	SetPostalCode(ctx context.Context, id, code string) (*draftsService.View, error)
	Next(ctx context.Context, id string) (*draftsService.View, error)
	Back(ctx context.Context, id string) (*draftsService.View, error)
	GoTo(ctx context.Context, id string, state domain.DraftState) (*draftsService.View, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
