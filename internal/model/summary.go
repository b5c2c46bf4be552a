package model

import "time"

const (
	RunStatusNoPending = "no_pending"
	RunStatusPosted    = "posted"
	RunStatusFailed    = "failed"
)

// SummaryRun is the record of one summarization invocation.
type SummaryRun struct {
	ID         string    `json:"id"`
	Status     string    `json:"status"`
	Message    string    `json:"message"`
	ErrorKind  string    `json:"error_kind,omitempty"`
	ItemCount  int       `json:"item_count"`
	Summarizer string    `json:"summarizer"`
	Notifier   string    `json:"notifier"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}
