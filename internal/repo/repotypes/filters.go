package repotypes

import "time"

// LogFilter carries the filter set of the query engine. Zero values
// are no-ops: an empty field never excludes rows.
type LogFilter struct {
	Level     string
	Channel   string
	Source    string
	UserID    int64
	IPAddress string
	DateFrom  time.Time
	DateTo    time.Time
	Search    string
}
