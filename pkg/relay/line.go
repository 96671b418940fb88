package relay

import (
	"strings"
	"time"

	"github.com/harborlog/harborlog/pkg/cloudwatch"
)

// parseLine turns one captured line into an event. The engine prefixes each
// line with an RFC3339Nano timestamp when logs are requested with
// Timestamps; that becomes the event time. Lines without a parseable prefix
// get the capture time and keep their full text.
func parseLine(line string, now func() time.Time) cloudwatch.Event {
	line = strings.TrimSuffix(line, "\r")

	prefix, rest, found := strings.Cut(line, " ")
	if found {
		if t, err := time.Parse(time.RFC3339Nano, prefix); err == nil {
			if rest == "" {
				// PutLogEvents rejects empty messages.
				rest = " "
			}
			return cloudwatch.Event{Timestamp: t.UnixMilli(), Message: rest}
		}
	} else if t, err := time.Parse(time.RFC3339Nano, line); err == nil {
		return cloudwatch.Event{Timestamp: t.UnixMilli(), Message: " "}
	}

	message := line
	if message == "" {
		message = " "
	}
	return cloudwatch.Event{Timestamp: now().UnixMilli(), Message: message}
}
