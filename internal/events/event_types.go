package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRecordChanged    EventType = "record_changed"
	EventBillingGenerated EventType = "billing_generated"
	EventNoticePosted     EventType = "notice_posted"
	EventTaskAssigned     EventType = "task_assigned"
)

// ChangeOp describes what happened to a record.
type ChangeOp string

const (
	OpCreated ChangeOp = "created"
	OpUpdated ChangeOp = "updated"
	OpDeleted ChangeOp = "deleted"
)

// Collection names mirror the persisted record collections.
const (
	CollectionStaff    = "staff_members"
	CollectionStudents = "students"
	CollectionEvents   = "class_events"
	CollectionNotices  = "notices"
	CollectionBilling  = "billing_entries"
	CollectionIncomes  = "misc_incomes"
	CollectionExpenses = "general_expenses"
	CollectionTasks    = "tasks"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID          string      `json:"id"`
	Type        EventType   `json:"type"`
	ActorHandle string      `json:"actor_handle"`
	Timestamp   time.Time   `json:"timestamp"`
	Payload     interface{} `json:"payload"`
}

// RecordChangedPayload describes a single-document mutation.
type RecordChangedPayload struct {
	Collection  string   `json:"collection"`
	Op          ChangeOp `json:"op"`
	RecordID    string   `json:"record_id"`
	OwnerHandle string   `json:"owner_handle,omitempty"`
}

// BillingGeneratedPayload summarizes a monthly generation run.
type BillingGeneratedPayload struct {
	Period  string `json:"period"`
	Created int    `json:"created"`
	Skipped int    `json:"skipped"`
}

// NoticePostedPayload payload.
type NoticePostedPayload struct {
	NoticeID string `json:"notice_id"`
	Everyone bool   `json:"everyone"`
}

// TaskAssignedPayload payload.
type TaskAssignedPayload struct {
	TaskID    string   `json:"task_id"`
	Assignees []string `json:"assignees"`
}
