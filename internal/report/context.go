package report

import "github.com/embermetrics/fire-report-service/internal/domain"

// DataContext is the immutable session dataset bundle. It is produced once
// at startup by the loader and passed explicitly into every derivation; the
// engine and its callers treat it as read-only, so concurrent reads are safe.
type DataContext struct {
	Fires     []domain.FireRecord
	Climate   []domain.ClimateObservation
	Destroyed []domain.PropertyRecord
	Recovered []domain.PropertyRecord
}

// Empty reports whether no dataset has any rows.
func (d *DataContext) Empty() bool {
	if d == nil {
		return true
	}
	return len(d.Fires) == 0 && len(d.Climate) == 0 &&
		len(d.Destroyed) == 0 && len(d.Recovered) == 0
}
