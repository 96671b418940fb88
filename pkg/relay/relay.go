// Package relay wires the container runtime to the log forwarder: one
// sequential pass that creates the container, follows its output and appends
// every line to the destination stream. The first error of any kind aborts
// the run; there is no retry, buffering or parallelism.
package relay

import (
	"bufio"
	"context"
	"fmt"
	"time"

	"github.com/harborlog/harborlog/pkg/cloudwatch"
	"github.com/harborlog/harborlog/pkg/docker/command"
	"github.com/harborlog/harborlog/pkg/util/console"
)

// Appender is the slice of the forwarder the relay needs.
type Appender interface {
	EnsureDestination(ctx context.Context) error
	Append(ctx context.Context, events []cloudwatch.Event) error
}

// Relay runs one container and forwards its output until it drains.
type Relay struct {
	Runtime   command.Runtime
	Forwarder Appender

	Image   string
	Command string
	// ContainerName is optional; empty lets the engine pick one.
	ContainerName string
	Env           []string

	// now stamps lines that carry no parseable timestamp prefix.
	// Overridable in tests; nil means time.Now.
	now func() time.Time
}

// Run executes the whole flow. The image check and container creation happen
// before the destination is touched, so a missing image never leaves behind
// an empty log group.
func (r *Relay) Run(ctx context.Context) error {
	console.Info("checking image")
	exists, err := r.Runtime.ImageExists(ctx, r.Image)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("image not found on local machine, install it with \"docker pull %s\": %w",
			r.Image, &command.NotFoundError{Ref: r.Image, Object: "image"})
	}

	console.Info("creating container")
	containerID, err := r.Runtime.ContainerCreate(ctx, command.CreateOptions{
		Image:   r.Image,
		Command: r.Command,
		Name:    r.ContainerName,
		Env:     r.Env,
	})
	if err != nil {
		return err
	}
	console.Infof("container created: %s", containerID)

	console.Info("creating log destination")
	if err := r.Forwarder.EnsureDestination(ctx); err != nil {
		return err
	}

	console.Info("starting container")
	if err := r.Runtime.ContainerStart(ctx, containerID); err != nil {
		return err
	}

	console.Info("forwarding container output")
	if err := r.forward(ctx, containerID); err != nil {
		return err
	}

	code, err := r.Runtime.ContainerWait(ctx, containerID)
	if err != nil {
		return err
	}
	if code != 0 {
		console.Warnf("container exited with status %d", code)
	}
	console.Info("container output drained")
	return nil
}

func (r *Relay) forward(ctx context.Context, containerID string) error {
	logs, err := r.Runtime.FollowLogs(ctx, containerID)
	if err != nil {
		return err
	}
	defer logs.Close()

	now := r.now
	if now == nil {
		now = time.Now
	}

	scanner := bufio.NewScanner(logs)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		event := parseLine(scanner.Text(), now)
		console.Output(event.String())
		if err := r.Forwarder.Append(ctx, []cloudwatch.Event{event}); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading container output: %w", err)
	}
	return nil
}
