package dockertest

import (
	"context"
	"testing"

	"github.com/moby/moby/api/types/image"
	"github.com/moby/moby/client"

	"github.com/schmitthub/imageclean/internal/docker"
)

// FakeClient wraps a real *docker.Client backed by a FakeAPIClient.
// Configure behavior via FakeAPI's Fn fields; pass Client to code under test.
type FakeClient struct {
	// Client is the real *docker.Client to inject into command Options.
	Client *docker.Client

	// FakeAPI is the underlying function-field fake.
	FakeAPI *FakeAPIClient
}

// NewFakeClient constructs a FakeClient whose Ping and Close succeed.
func NewFakeClient() *FakeClient {
	fakeAPI := NewFakeAPIClient()
	return &FakeClient{
		Client:  docker.NewClientFromAPI(fakeAPI),
		FakeAPI: fakeAPI,
	}
}

// ImageFixture returns an image summary with the given ID, creation time and tags.
func ImageFixture(id string, created int64, tags ...string) image.Summary {
	return image.Summary{
		ID:       id,
		Created:  created,
		RepoTags: tags,
		Size:     64 * 1024 * 1024,
	}
}

// SetupImageList configures the fake to return the given summaries.
func (f *FakeClient) SetupImageList(summaries ...image.Summary) {
	f.FakeAPI.ImageListFn = func(_ context.Context, _ client.ImageListOptions) (client.ImageListResult, error) {
		return client.ImageListResult{Items: summaries}, nil
	}
}

// SetupImageListError configures ImageList to fail with err.
func (f *FakeClient) SetupImageListError(err error) {
	f.FakeAPI.ImageListFn = func(_ context.Context, _ client.ImageListOptions) (client.ImageListResult, error) {
		return client.ImageListResult{}, err
	}
}

// SetupImageRemove configures ImageRemove to succeed for every image except
// those listed in failures, which fail with the mapped error.
func (f *FakeClient) SetupImageRemove(failures map[string]error) {
	f.FakeAPI.ImageRemoveFn = func(_ context.Context, id string, _ client.ImageRemoveOptions) (client.ImageRemoveResult, error) {
		if err, ok := failures[id]; ok {
			return client.ImageRemoveResult{}, err
		}
		return client.ImageRemoveResult{
			Items: []image.DeleteResponse{{Deleted: id}},
		}, nil
	}
}

// AssertCalled fails the test if method was never invoked.
func (f *FakeClient) AssertCalled(t *testing.T, method string) {
	t.Helper()
	if f.FakeAPI.CallCount(method) == 0 {
		t.Errorf("expected %s to be called; calls: %v", method, f.FakeAPI.Calls)
	}
}

// AssertNotCalled fails the test if method was invoked.
func (f *FakeClient) AssertNotCalled(t *testing.T, method string) {
	t.Helper()
	if n := f.FakeAPI.CallCount(method); n != 0 {
		t.Errorf("expected %s not to be called, got %d call(s)", method, n)
	}
}

// conflictError satisfies errdefs.IsConflict.
type conflictError struct{ msg string }

func (e conflictError) Error() string { return e.msg }
func (e conflictError) Conflict()     {}

// InUseError mimics the daemon's 409 for an image held by a running container.
func InUseError(id string) error {
	return conflictError{msg: "Error response from daemon: conflict: unable to delete " + id +
		" (cannot be forced) - image is being used by running container 4f1c2a9b7d3e"}
}

// ChildImagesError mimics the daemon's 409 for an image with dependent children.
func ChildImagesError(id string) error {
	return conflictError{msg: "Error response from daemon: conflict: unable to delete " + id +
		" (cannot be forced) - image has dependent child images"}
}

// unavailableError satisfies errdefs.IsUnavailable.
type unavailableError struct{ msg string }

func (e unavailableError) Error() string { return e.msg }
func (e unavailableError) Unavailable()  {}

// UnavailableError mimics a daemon that cannot be reached.
func UnavailableError() error {
	return unavailableError{msg: "Cannot connect to the Docker daemon at unix:///var/run/docker.sock. Is the docker daemon running?"}
}
