package drafts

import (
	"github.com/m04kA/SMC-FleetDesk/internal/domain"
	"github.com/m04kA/SMC-FleetDesk/internal/service/pricing"
)

// View черновик вместе с производными строками цен и итогами
type View struct {
	Draft  *domain.Draft
	Jobs   []pricing.JobLine
	Parts  []pricing.PartLine
	Totals pricing.Totals

	CanConfirm    bool
	JobsFetching  bool
	PartsFetching bool
	JobsError     error
	PartsError    error
}

// Lines строки цен черновика и ошибки загрузки справочников, из которых они построены
type Lines struct {
	Jobs  []pricing.JobLine
	Parts []pricing.PartLine

	JobsErr  error
	PartsErr error
}

// DefaultVATMode режим НДС по шагу мастера: итог со НДС только на сводке
func DefaultVATMode(state domain.DraftState) pricing.VATMode {
	if state == domain.StateSummary || state == domain.StateSubmitted {
		return pricing.IncludeVAT
	}
	return pricing.ExcludeVAT
}
