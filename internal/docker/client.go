// Package docker is the single gateway to the local Docker daemon.
// It lists images and removes them by ID, translating SDK errors into the
// sentinel errors the rest of imageclean reasons about.
package docker

import (
	"context"
	"fmt"
	"strings"

	"github.com/moby/moby/client"
	"github.com/opencontainers/go-digest"

	"github.com/schmitthub/imageclean/internal/logger"
)

// APIClient is the subset of the moby SDK client used by imageclean.
// *client.Client satisfies it; tests use dockertest.FakeAPIClient.
type APIClient interface {
	Ping(ctx context.Context, options client.PingOptions) (client.PingResult, error)
	ImageList(ctx context.Context, options client.ImageListOptions) (client.ImageListResult, error)
	ImageRemove(ctx context.Context, image string, options client.ImageRemoveOptions) (client.ImageRemoveResult, error)
	Close() error
}

// Client is an explicitly constructed handle to the Docker daemon.
type Client struct {
	APIClient APIClient
}

// NewClient connects to the daemon selected by the environment
// (DOCKER_HOST, DOCKER_CERT_PATH, DOCKER_TLS_VERIFY) and verifies it answers.
func NewClient(ctx context.Context) (*Client, error) {
	cli, err := client.New(client.FromEnv)
	if err != nil {
		return nil, ErrDockerNotRunning(err)
	}

	c := NewClientFromAPI(cli)
	if err := c.HealthCheck(ctx); err != nil {
		cli.Close()
		return nil, err
	}
	return c, nil
}

// NewClientFromAPI wraps an existing API client without pinging it.
func NewClientFromAPI(api APIClient) *Client {
	return &Client{APIClient: api}
}

// HealthCheck verifies the Docker daemon is reachable.
func (c *Client) HealthCheck(ctx context.Context) error {
	if _, err := c.APIClient.Ping(ctx, client.PingOptions{}); err != nil {
		return ErrDockerNotRunning(err)
	}
	return nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.APIClient.Close()
}

// ListImages returns every top-level image currently known to the daemon.
func (c *Client) ListImages(ctx context.Context) ([]Image, error) {
	result, err := c.APIClient.ImageList(ctx, client.ImageListOptions{})
	if err != nil {
		if isUnavailable(err) {
			return nil, ErrDockerNotRunning(err)
		}
		return nil, fmt.Errorf("listing images: %w", err)
	}

	images := make([]Image, 0, len(result.Items))
	for _, summary := range result.Items {
		images = append(images, imageFromSummary(summary))
	}

	logger.Debug().Int("count", len(images)).Msg("listed images")
	return images, nil
}

// RemoveImage force-removes an image by ID, untagging it from every
// repository. An image held by a running container yields an error
// matching ErrImageInUse.
func (c *Client) RemoveImage(ctx context.Context, id string) error {
	_, err := c.APIClient.ImageRemove(ctx, id, client.ImageRemoveOptions{
		Force:         true,
		PruneChildren: true,
	})
	if err == nil {
		return nil
	}

	if isInUseConflict(err) {
		return &inUseError{id: id, err: err}
	}
	if isUnavailable(err) {
		return ErrDockerNotRunning(err)
	}
	return fmt.Errorf("removing image %s: %w", shortID(id), err)
}

// shortID drops the digest algorithm and shortens an ID for messages.
// IDs that are not well-formed digests are cut after the last colon.
func shortID(id string) string {
	encoded := id
	if d, err := digest.Parse(id); err == nil {
		encoded = d.Encoded()
	} else if i := strings.LastIndexByte(id, ':'); i >= 0 {
		encoded = id[i+1:]
	}
	if len(encoded) > 12 {
		return encoded[:12]
	}
	return encoded
}
