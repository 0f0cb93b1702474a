package integration

import (
	"encoding/json"
	"slices"
	"time"
)

// ---------------------------------------------------------------------------
// DispatchOutcome
// ---------------------------------------------------------------------------

// OutcomeKind tags a DispatchOutcome
type OutcomeKind string

const (
	// OutcomeSuccess means the marketplace accepted the listing
	OutcomeSuccess OutcomeKind = "SUCCESS"
	// OutcomeFailure means the listing was not accepted
	OutcomeFailure OutcomeKind = "FAILURE"
)

// String returns the string representation of OutcomeKind
func (k OutcomeKind) String() string {
	return string(k)
}

// DispatchOutcome is the result of submitting one listing.
// Success carries the marketplace response body, Failure a readable message.
type DispatchOutcome struct {
	Kind         OutcomeKind
	Payload      json.RawMessage
	ErrorMessage string
}

// SuccessOutcome returns a Success outcome carrying payload
func SuccessOutcome(payload json.RawMessage) DispatchOutcome {
	return DispatchOutcome{Kind: OutcomeSuccess, Payload: payload}
}

// FailureOutcome returns a Failure outcome carrying message
func FailureOutcome(message string) DispatchOutcome {
	return DispatchOutcome{Kind: OutcomeFailure, ErrorMessage: message}
}

// IsSuccess returns true for a Success outcome
func (o DispatchOutcome) IsSuccess() bool {
	return o.Kind == OutcomeSuccess
}

// ---------------------------------------------------------------------------
// SyncBatchResult
// ---------------------------------------------------------------------------

// SyncItemResult is the outcome of one product within a run
type SyncItemResult struct {
	// ProductID is the store identifier of the product
	ProductID ProductID
	// ProductTitle is the title that was sent to the marketplace
	ProductTitle string
	// Outcome tells whether the marketplace accepted the listing
	Outcome OutcomeKind
	// ErrorMessage is set for failures
	ErrorMessage string
}

// SyncBatchResult summarises one sync run. It is a value: Append, Cancel and
// Finish return new results and never modify the receiver.
//
// SuccessCount + FailedCount == Total == len(Items) holds for every value.
// Fetched is the size of the sync set; Total reaches it unless the run was
// cancelled.
type SyncBatchResult struct {
	RunID        string
	StoreID      int64
	Fetched      int
	Total        int
	SuccessCount int
	FailedCount  int
	Items        []SyncItemResult
	Cancelled    bool
	StartedAt    time.Time
	FinishedAt   time.Time
}

// NewSyncBatchResult returns an empty result for a run over fetched products
func NewSyncBatchResult(runID string, storeID int64, fetched int, startedAt time.Time) SyncBatchResult {
	return SyncBatchResult{
		RunID:     runID,
		StoreID:   storeID,
		Fetched:   fetched,
		Items:     []SyncItemResult{},
		StartedAt: startedAt,
	}
}

// Append folds one item outcome into the result
func (r SyncBatchResult) Append(item SyncItemResult) SyncBatchResult {
	next := r
	next.Items = append(slices.Clip(r.Items), item)
	next.Total = r.Total + 1
	if item.Outcome == OutcomeSuccess {
		next.SuccessCount = r.SuccessCount + 1
	} else {
		next.FailedCount = r.FailedCount + 1
	}
	return next
}

// Cancel marks the run as stopped early at the given time
func (r SyncBatchResult) Cancel(at time.Time) SyncBatchResult {
	next := r
	next.Cancelled = true
	next.FinishedAt = at
	return next
}

// Finish marks the run as complete at the given time
func (r SyncBatchResult) Finish(at time.Time) SyncBatchResult {
	next := r
	next.FinishedAt = at
	return next
}

// Duration returns how long the run took, or zero while unfinished
func (r SyncBatchResult) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Status derives the overall run status
func (r SyncBatchResult) Status() SyncStatus {
	switch {
	case r.Cancelled:
		return SyncStatusCancelled
	case r.FailedCount == 0:
		return SyncStatusSuccess
	case r.SuccessCount == 0:
		return SyncStatusFailed
	default:
		return SyncStatusPartial
	}
}
