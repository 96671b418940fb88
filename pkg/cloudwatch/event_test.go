package cloudwatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventString(t *testing.T) {
	ev := Event{Timestamp: 1714557600000, Message: "hello"}
	assert.Equal(t, "[2024-05-01 10:00:00.000]: hello", ev.String())
}

func TestEventStringWithIngestionTime(t *testing.T) {
	ev := Event{Timestamp: 1714557600000, Message: "hello", IngestionTime: 1714557600250}
	assert.Equal(t, "[2024-05-01 10:00:00.000][ingested 2024-05-01 10:00:00.250]: hello", ev.String())
}
