// Package cloudwatch forwards timestamped text events to a CloudWatch Logs
// stream, creating the destination on demand and tracking the sequence token
// the service hands back after each append.
package cloudwatch

import (
	"fmt"
	"time"
)

// Event is one forwarded log line. Timestamp and IngestionTime are
// milliseconds since the epoch, the unit PutLogEvents speaks.
// IngestionTime is only set on events read back from the service.
type Event struct {
	Timestamp     int64
	Message       string
	IngestionTime int64
}

const eventTimeFormat = "2006-01-02 15:04:05.000"

// String renders the event the way it is echoed to the user while streaming.
func (e Event) String() string {
	s := fmt.Sprintf("[%s]", time.UnixMilli(e.Timestamp).UTC().Format(eventTimeFormat))
	if e.IngestionTime > 0 {
		s += fmt.Sprintf("[ingested %s]", time.UnixMilli(e.IngestionTime).UTC().Format(eventTimeFormat))
	}
	return s + ": " + e.Message
}
