package docker

import (
	"context"
	"fmt"
	"io"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"

	"github.com/harborlog/harborlog/pkg/docker/command"
	"github.com/harborlog/harborlog/pkg/util/console"
)

// FollowLogs streams the container's combined stdout/stderr from the
// beginning, with the engine's RFC3339Nano timestamp prefixed to each line.
// Containers without a TTY multiplex both streams into 8-byte-header frames;
// demux puts them back into a single plain stream in emission order.
func (c *apiClient) FollowLogs(ctx context.Context, containerID string) (io.ReadCloser, error) {
	console.Debugf("=== APIClient.FollowLogs %s", containerID)

	logs, err := c.client.ContainerLogs(ctx, containerID, container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Follow:     true,
		Timestamps: true,
	})
	if err != nil {
		if client.IsErrNotFound(err) {
			return nil, &command.NotFoundError{Ref: containerID, Object: "container"}
		}
		return nil, fmt.Errorf("failed to get container logs for %q: %w", containerID, err)
	}

	return demux(logs), nil
}

// demux strips docker's multiplexing frames, interleaving stdout and stderr
// payloads in the order the engine delivered them. Closing the returned
// reader closes the underlying log stream.
func demux(logs io.ReadCloser) io.ReadCloser {
	pr, pw := io.Pipe()
	go func() {
		_, err := stdcopy.StdCopy(pw, pw, logs)
		logs.Close()
		pw.CloseWithError(err)
	}()
	return &demuxReader{PipeReader: pr, logs: logs}
}

type demuxReader struct {
	*io.PipeReader
	logs io.Closer
}

func (r *demuxReader) Close() error {
	r.logs.Close()
	return r.PipeReader.Close()
}
