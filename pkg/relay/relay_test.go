package relay

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborlog/harborlog/pkg/cloudwatch"
	"github.com/harborlog/harborlog/pkg/docker/command"
)

type fakeRuntime struct {
	imageExists bool
	logs        string
	exitCode    int64
	createErr   error

	created []command.CreateOptions
	started []string
}

func (f *fakeRuntime) ImageExists(ctx context.Context, ref string) (bool, error) {
	return f.imageExists, nil
}

func (f *fakeRuntime) ContainerCreate(ctx context.Context, options command.CreateOptions) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = append(f.created, options)
	return "cid-1", nil
}

func (f *fakeRuntime) ContainerStart(ctx context.Context, containerID string) error {
	f.started = append(f.started, containerID)
	return nil
}

func (f *fakeRuntime) FollowLogs(ctx context.Context, containerID string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(f.logs)), nil
}

func (f *fakeRuntime) ContainerWait(ctx context.Context, containerID string) (int64, error) {
	return f.exitCode, nil
}

type fakeAppender struct {
	ensureCalls int
	batches     [][]cloudwatch.Event
	appendErr   error
}

func (f *fakeAppender) EnsureDestination(ctx context.Context) error {
	f.ensureCalls++
	return nil
}

func (f *fakeAppender) Append(ctx context.Context, events []cloudwatch.Event) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.batches = append(f.batches, events)
	return nil
}

func newTestRelay(runtime *fakeRuntime, appender *fakeAppender) *Relay {
	return &Relay{
		Runtime:   runtime,
		Forwarder: appender,
		Image:     "busybox",
		Command:   "echo hello",
		now:       func() time.Time { return time.UnixMilli(9000) },
	}
}

func TestRunForwardsEveryLineInOrder(t *testing.T) {
	runtime := &fakeRuntime{
		imageExists: true,
		logs: "2024-05-01T10:00:00.000000000Z one\n" +
			"2024-05-01T10:00:01.000000000Z two\n" +
			"2024-05-01T10:00:02.000000000Z three\n",
	}
	appender := &fakeAppender{}

	require.NoError(t, newTestRelay(runtime, appender).Run(t.Context()))

	assert.Equal(t, 1, appender.ensureCalls)
	assert.Equal(t, []string{"cid-1"}, runtime.started)
	require.Len(t, appender.batches, 3)

	var prev int64
	messages := make([]string, 0, 3)
	for _, batch := range appender.batches {
		require.Len(t, batch, 1)
		assert.GreaterOrEqual(t, batch[0].Timestamp, prev)
		prev = batch[0].Timestamp
		messages = append(messages, batch[0].Message)
	}
	assert.Equal(t, []string{"one", "two", "three"}, messages)
}

func TestRunSingleLine(t *testing.T) {
	runtime := &fakeRuntime{
		imageExists: true,
		logs:        "2024-05-01T10:00:00.000000000Z hello\n",
	}
	appender := &fakeAppender{}

	require.NoError(t, newTestRelay(runtime, appender).Run(t.Context()))

	require.Len(t, appender.batches, 1)
	assert.Equal(t, "hello", appender.batches[0][0].Message)
}

func TestRunMissingImageStopsBeforeDestination(t *testing.T) {
	runtime := &fakeRuntime{imageExists: false}
	appender := &fakeAppender{}

	err := newTestRelay(runtime, appender).Run(t.Context())
	require.Error(t, err)
	assert.True(t, command.IsNotFoundError(err))
	assert.Zero(t, appender.ensureCalls)
	assert.Empty(t, runtime.created)
}

func TestRunNameConflictStopsBeforeDestination(t *testing.T) {
	runtime := &fakeRuntime{
		imageExists: true,
		createErr:   &command.ConflictError{Name: "taken"},
	}
	appender := &fakeAppender{}

	err := newTestRelay(runtime, appender).Run(t.Context())
	require.Error(t, err)
	assert.True(t, command.IsConflictError(err))
	assert.Zero(t, appender.ensureCalls)
}

func TestRunAppendFailureAborts(t *testing.T) {
	runtime := &fakeRuntime{
		imageExists: true,
		logs:        "2024-05-01T10:00:00.000000000Z hello\n",
	}
	appender := &fakeAppender{appendErr: errors.New("append failed")}

	err := newTestRelay(runtime, appender).Run(t.Context())
	require.ErrorContains(t, err, "append failed")
	assert.Empty(t, appender.batches)
}

func TestRunNonZeroExitStillSucceeds(t *testing.T) {
	runtime := &fakeRuntime{
		imageExists: true,
		logs:        "2024-05-01T10:00:00.000000000Z bye\n",
		exitCode:    3,
	}
	appender := &fakeAppender{}

	require.NoError(t, newTestRelay(runtime, appender).Run(t.Context()))
	require.Len(t, appender.batches, 1)
}
