package audit

import (
	"context"
	"time"
)

// Event is a single audit record. The leave engine emits events for
// allocation writes and cascade partial failures; delivery beyond the sink
// is someone else's concern.
type Event struct {
	ID         string
	Kind       string
	SubjectID  string
	Payload    map[string]any
	RecordedAt time.Time
}

// Event kinds emitted by the leave engine.
const (
	KindAllocationCreated  = "leave.allocation_created"
	KindAllocationUpdated  = "leave.allocation_updated"
	KindAccrualBlockNotice = "leave.accrual_block_notice"
	KindCascadeIncomplete  = "employee.cascade_incomplete"
)

// Repository - sink contract for audit events
type Repository interface {
	Record(ctx context.Context, event Event) error
}
