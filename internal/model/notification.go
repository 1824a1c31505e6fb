package model

import "time"

// Notification records a plan lifecycle event for the users who act next in
// the pipeline. Written by the worker, read by the API.
// PlanEvent is the message published to the events exchange whenever a
// breakdown or performance record moves through the pipeline. The worker
// persists it as a Notification.
type PlanEvent struct {
	RecordType string `json:"record_type"`
	RecordID   int    `json:"record_id"`
	PlanID     int    `json:"plan_id"`
	Year       int    `json:"year"`
	Action     string `json:"action"`
	Status     string `json:"status"`
	Message    string `json:"message"`
}

type Notification struct {
	ID         int       `json:"id"`
	RecordType string    `json:"record_type"` // breakdown or performance
	RecordID   int       `json:"record_id"`
	PlanID     int       `json:"plan_id"`
	Action     string    `json:"action"`
	Status     string    `json:"status"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}
