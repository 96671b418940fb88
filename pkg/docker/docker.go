// Package docker implements command.Runtime against the Docker Engine API.
package docker

import (
	"context"
	"fmt"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/client"
	dc "github.com/docker/docker/client"

	"github.com/harborlog/harborlog/pkg/docker/command"
	"github.com/harborlog/harborlog/pkg/util/console"
)

// NewClient creates a client from the usual DOCKER_* environment and pings
// the daemon so an unreachable runtime fails here, not mid-run.
func NewClient(ctx context.Context) (*apiClient, error) {
	dockerClient, err := dc.NewClientWithOpts(dc.FromEnv, dc.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("error creating docker client: %w", err)
	}

	if _, err := dockerClient.Ping(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", command.ErrDaemonUnavailable, err)
	}

	return &apiClient{client: dockerClient}, nil
}

type apiClient struct {
	client *dc.Client
}

var _ command.Runtime = (*apiClient)(nil)

func (c *apiClient) Inspect(ctx context.Context, ref string) (*image.InspectResponse, error) {
	inspect, err := c.client.ImageInspect(ctx, ref)
	if err != nil {
		if client.IsErrNotFound(err) {
			return nil, &command.NotFoundError{Ref: ref, Object: "image"}
		}
		return nil, fmt.Errorf("error inspecting image: %w", err)
	}

	return &inspect, nil
}

func (c *apiClient) ImageExists(ctx context.Context, ref string) (bool, error) {
	console.Debugf("=== APIClient.ImageExists %s", ref)

	_, err := c.Inspect(ctx, ref)
	if err != nil {
		if command.IsNotFoundError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (c *apiClient) ContainerCreate(ctx context.Context, options command.CreateOptions) (string, error) {
	console.Debugf("=== APIClient.ContainerCreate %s", options.Image)

	containerCfg := &container.Config{
		Image: options.Image,
		Cmd:   []string{"/bin/sh", "-c", options.Command},
		Env:   options.Env,
	}

	networkingCfg := &network.NetworkingConfig{
		EndpointsConfig: map[string]*network.EndpointSettings{},
	}

	resp, err := c.client.ContainerCreate(ctx,
		containerCfg,
		&container.HostConfig{},
		networkingCfg,
		nil,
		options.Name)
	if err != nil {
		if isNameConflictError(err) {
			return "", &command.ConflictError{Name: options.Name}
		}
		if client.IsErrNotFound(err) || isImageNotFoundError(err) {
			return "", &command.NotFoundError{Ref: options.Image, Object: "image"}
		}
		return "", fmt.Errorf("failed to create container: %w", err)
	}

	console.Debugf("container id: %s", resp.ID)
	return resp.ID, nil
}

func (c *apiClient) ContainerStart(ctx context.Context, containerID string) error {
	console.Debugf("=== APIClient.ContainerStart %s", containerID)

	if err := c.client.ContainerStart(ctx, containerID, container.StartOptions{}); err != nil {
		if client.IsErrNotFound(err) {
			return &command.NotFoundError{Ref: containerID, Object: "container"}
		}
		return fmt.Errorf("failed to start container %q: %w", containerID, err)
	}
	return nil
}

func (c *apiClient) ContainerWait(ctx context.Context, containerID string) (int64, error) {
	console.Debugf("=== APIClient.ContainerWait %s", containerID)

	statusCh, errCh := c.client.ContainerWait(ctx, containerID, container.WaitConditionNotRunning)
	select {
	case err := <-errCh:
		return 0, fmt.Errorf("error waiting for container: %w", err)
	case status := <-statusCh:
		return status.StatusCode, nil
	}
}
