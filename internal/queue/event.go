// Package queue defines message payloads exchanged over the message broker.
package queue

// ImportCompletedEvent is published when a CSV import batch finishes.
// It carries the reconciliation counters so downstream consumers can
// log or feed analytics without querying the primary database.
type ImportCompletedEvent struct {
    UserID       uint64 `json:"user_id"`
    Created      int    `json:"created"`
    Updated      int    `json:"updated"`
    MarkedCaught int    `json:"marked_caught"`
    ErrorCount   int    `json:"error_count"`
    RowCount     int    `json:"row_count"`
    CompletedAt  string `json:"completed_at"`
}
