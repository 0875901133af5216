// Package dockertest provides test doubles for internal/docker.Client.
//
// FakeAPIClient follows the function-field pattern: each SDK method the
// docker package calls has a corresponding Fn field. If the field is set the
// fake delegates to it and records the call; if it is nil the call panics
// with "not implemented: MethodName".
//
// Usage:
//
//	fake := dockertest.NewFakeClient()
//	fake.SetupImageList(dockertest.ImageFixture("sha256:aaa", 100, "app:1"))
//	images, err := fake.Client.ListImages(ctx)
//
//	fake.AssertCalled(t, "ImageList")
package dockertest

import (
	"context"
	"fmt"
	"sync"

	"github.com/moby/moby/client"
)

// FakeAPIClient is a test double for docker.APIClient.
type FakeAPIClient struct {
	// mu protects Calls from concurrent access.
	mu sync.Mutex

	// Calls records the method names invoked on this fake, in order.
	Calls []string

	// Removed records image IDs passed to ImageRemove, in order.
	Removed []string

	PingFn        func(ctx context.Context, options client.PingOptions) (client.PingResult, error)
	ImageListFn   func(ctx context.Context, opts client.ImageListOptions) (client.ImageListResult, error)
	ImageRemoveFn func(ctx context.Context, image string, opts client.ImageRemoveOptions) (client.ImageRemoveResult, error)
	CloseFn       func() error
}

// NewFakeAPIClient returns a fake whose Ping and Close succeed.
func NewFakeAPIClient() *FakeAPIClient {
	return &FakeAPIClient{
		PingFn: func(context.Context, client.PingOptions) (client.PingResult, error) {
			return client.PingResult{}, nil
		},
		CloseFn: func() error { return nil },
	}
}

// record appends a method name to the call log (thread-safe).
func (f *FakeAPIClient) record(method string) {
	f.mu.Lock()
	f.Calls = append(f.Calls, method)
	f.mu.Unlock()
}

// notImplemented panics with a descriptive message for unset function fields.
func notImplemented(method string) {
	panic(fmt.Sprintf("not implemented: %s (set %sFn on FakeAPIClient)", method, method))
}

// Reset clears the Calls and Removed logs.
func (f *FakeAPIClient) Reset() {
	f.mu.Lock()
	f.Calls = nil
	f.Removed = nil
	f.mu.Unlock()
}

// CallCount returns how many times method was invoked.
func (f *FakeAPIClient) CallCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if c == method {
			n++
		}
	}
	return n
}

func (f *FakeAPIClient) Ping(ctx context.Context, options client.PingOptions) (client.PingResult, error) {
	if f.PingFn == nil {
		notImplemented("Ping")
	}
	f.record("Ping")
	return f.PingFn(ctx, options)
}

func (f *FakeAPIClient) ImageList(ctx context.Context, opts client.ImageListOptions) (client.ImageListResult, error) {
	if f.ImageListFn == nil {
		notImplemented("ImageList")
	}
	f.record("ImageList")
	return f.ImageListFn(ctx, opts)
}

func (f *FakeAPIClient) ImageRemove(ctx context.Context, image string, opts client.ImageRemoveOptions) (client.ImageRemoveResult, error) {
	if f.ImageRemoveFn == nil {
		notImplemented("ImageRemove")
	}
	f.record("ImageRemove")
	f.mu.Lock()
	f.Removed = append(f.Removed, image)
	f.mu.Unlock()
	return f.ImageRemoveFn(ctx, image, opts)
}

func (f *FakeAPIClient) Close() error {
	if f.CloseFn == nil {
		notImplemented("Close")
	}
	f.record("Close")
	return f.CloseFn()
}
