// Package command defines the interface the rest of the tool uses to drive a
// container runtime, so callers never depend on a concrete engine client.
package command

import (
	"context"
	"io"
)

// CreateOptions describes the container to create. Command is run through
// `/bin/sh -c`, matching `docker run <image> sh -c <command>`.
type CreateOptions struct {
	Image   string
	Command string
	// Name is the container name. Empty lets the engine pick one.
	Name string
	Env  []string
}

// Runtime is the subset of container engine operations the forwarder needs.
type Runtime interface {
	// ImageExists reports whether the image is present locally. It never pulls.
	ImageExists(ctx context.Context, ref string) (bool, error)

	// ContainerCreate creates (but does not start) a container and returns its ID.
	ContainerCreate(ctx context.Context, options CreateOptions) (string, error)

	ContainerStart(ctx context.Context, containerID string) error

	// FollowLogs returns the container's combined stdout/stderr as a single
	// demultiplexed stream of timestamped lines. The stream ends when the
	// container's process exits and all buffered output has been delivered.
	FollowLogs(ctx context.Context, containerID string) (io.ReadCloser, error)

	// ContainerWait blocks until the container stops and returns its exit code.
	ContainerWait(ctx context.Context, containerID string) (int64, error)
}
