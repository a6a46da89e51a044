package domain

import "time"

// Report is a flag raised by one user against a log and its owner,
// reviewed by an admin. At most one report exists per
// (log, reporter, reported user) triple; the store enforces this with a
// unique constraint.
//
// Lifecycle: created by any authenticated user, destroyed either by an
// admin ignoring it or as part of suspending the reported user.
type Report struct {
	ID             string    `json:"id"`
	LogID          string    `json:"log_id"`
	ReporterID     string    `json:"reporter_id"`
	ReportedUserID string    `json:"reported_user_id"`
	Reason         string    `json:"reason"` // 2-60 chars
	CreatedAt      time.Time `json:"created_at"`
}
