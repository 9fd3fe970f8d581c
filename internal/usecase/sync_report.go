package usecase

// SyncReport summarizes one sync run item by item. Failed items never abort
// the run; the caller decides what to do with them.
type SyncReport struct {
	Operation     string           `json:"operation"`
	Year          int              `json:"year,omitempty"`
	ItemCount     int              `json:"item_count"`
	SuccessCount  int              `json:"success_count"`
	FailedCount   int              `json:"failed_count"`
	CanceledCount int              `json:"canceled_count"`
	SkippedCount  int              `json:"skipped_count"`
	Items         []SyncItemResult `json:"items"`
}

type SyncItemResult struct {
	Key        string `json:"key"`
	Name       string `json:"name,omitempty"`
	RaceID     int64  `json:"race_id,omitempty"`
	Status     string `json:"status"`
	Records    int    `json:"records"`
	Unmatched  int    `json:"unmatched,omitempty"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

const (
	SyncStatusOK       = "ok"
	SyncStatusFailed   = "failed"
	SyncStatusCanceled = "canceled"
	SyncStatusSkipped  = "skipped"
)

const (
	SyncOperationSeed       = "seed"
	SyncOperationRaces      = "races"
	SyncOperationResults    = "results"
	SyncOperationStartlists = "startlists"
)

func newSyncReport(operation string, year int) SyncReport {
	return SyncReport{
		Operation: operation,
		Year:      year,
		Items:     make([]SyncItemResult, 0, 8),
	}
}

func (r *SyncReport) add(item SyncItemResult) {
	r.Items = append(r.Items, item)
	r.ItemCount++
	switch item.Status {
	case SyncStatusOK:
		r.SuccessCount++
	case SyncStatusFailed:
		r.FailedCount++
	case SyncStatusCanceled:
		r.CanceledCount++
	case SyncStatusSkipped:
		r.SkippedCount++
	}
}

// Item returns the first item recorded under key.
func (r SyncReport) Item(key string) (SyncItemResult, bool) {
	for _, item := range r.Items {
		if item.Key == key {
			return item, true
		}
	}
	return SyncItemResult{}, false
}

func (r SyncReport) HasFailures() bool {
	return r.FailedCount > 0
}
