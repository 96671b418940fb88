package relay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseLine(t *testing.T) {
	capture := func() time.Time { return time.UnixMilli(9000) }

	for _, tt := range []struct {
		name        string
		line        string
		wantMillis  int64
		wantMessage string
	}{
		{
			name:        "timestamped line",
			line:        "2024-05-01T10:00:00.500000000Z hello world",
			wantMillis:  1714557600500,
			wantMessage: "hello world",
		},
		{
			name:        "timestamp with no message",
			line:        "2024-05-01T10:00:00.000000000Z",
			wantMillis:  1714557600000,
			wantMessage: " ",
		},
		{
			name:        "timestamp with empty message",
			line:        "2024-05-01T10:00:00.000000000Z ",
			wantMillis:  1714557600000,
			wantMessage: " ",
		},
		{
			name:        "no timestamp falls back to capture time",
			line:        "plain output line",
			wantMillis:  9000,
			wantMessage: "plain output line",
		},
		{
			name:        "garbage prefix falls back to capture time",
			line:        "notadate rest of line",
			wantMillis:  9000,
			wantMessage: "notadate rest of line",
		},
		{
			name:        "carriage return stripped",
			line:        "2024-05-01T10:00:00.000000000Z windows line\r",
			wantMillis:  1714557600000,
			wantMessage: "windows line",
		},
		{
			name:        "empty line",
			line:        "",
			wantMillis:  9000,
			wantMessage: " ",
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			ev := parseLine(tt.line, capture)
			assert.Equal(t, tt.wantMillis, ev.Timestamp)
			assert.Equal(t, tt.wantMessage, ev.Message)
		})
	}
}
