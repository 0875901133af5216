package docker

import (
	"errors"
	"fmt"
	"strings"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/moby/moby/client"
)

var (
	// ErrRuntimeUnavailable means the daemon could not be reached.
	ErrRuntimeUnavailable = errors.New("docker daemon unavailable")

	// ErrImageInUse means the daemon refused to remove an image because a
	// running container references it.
	ErrImageInUse = errors.New("image is being used by running container")
)

// inUseMarker is the daemon's wording for the one conflict we tolerate.
// Conflicts are classified structurally first; the wording only separates
// it from other 409s such as "image has dependent child images".
const inUseMarker = "being used by running container"

// DockerError represents a user-friendly Docker error with remediation steps.
type DockerError struct {
	Op        string   // Operation that failed (e.g., "connect", "list", "remove")
	Err       error    // Underlying error
	Message   string   // Human-readable message
	NextSteps []string // Suggested remediation steps
}

func (e *DockerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DockerError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrRuntimeUnavailable) match connection failures.
func (e *DockerError) Is(target error) bool {
	return target == ErrRuntimeUnavailable && e.Op == "connect"
}

// FormatUserError formats the error for display to users with next steps.
func (e *DockerError) FormatUserError() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Error: %s\n", e.Message))

	if e.Err != nil {
		sb.WriteString(fmt.Sprintf("  Details: %s\n", e.Err.Error()))
	}

	if len(e.NextSteps) > 0 {
		sb.WriteString("\nNext Steps:\n")
		for i, step := range e.NextSteps {
			sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, step))
		}
	}

	return sb.String()
}

// ErrDockerNotRunning returns an error for when Docker daemon is not accessible.
func ErrDockerNotRunning(err error) *DockerError {
	return &DockerError{
		Op:      "connect",
		Err:     err,
		Message: "Cannot connect to Docker daemon",
		NextSteps: []string{
			"Ensure Docker is installed",
			"Start Docker Desktop (macOS/Windows) or run 'sudo systemctl start docker' (Linux)",
			"Check if Docker socket is accessible: ls -la /var/run/docker.sock",
			"Verify your user is in the docker group: groups $USER",
		},
	}
}

// inUseError records which image was skipped and why.
type inUseError struct {
	id  string
	err error
}

func (e *inUseError) Error() string {
	return fmt.Sprintf("image %s is being used by running container", shortID(e.id))
}

func (e *inUseError) Unwrap() error { return e.err }

func (e *inUseError) Is(target error) bool { return target == ErrImageInUse }

// IsImageInUse reports whether err is the tolerated "in use by a running
// container" removal failure.
func IsImageInUse(err error) bool {
	return errors.Is(err, ErrImageInUse)
}

func isInUseConflict(err error) bool {
	return cerrdefs.IsConflict(err) && strings.Contains(err.Error(), inUseMarker)
}

// isUnavailable checks if an error indicates the daemon could not be reached.
// The SDK reports a dropped socket as a connection failure, not an errdefs
// class.
func isUnavailable(err error) bool {
	if client.IsErrConnectionFailed(err) || cerrdefs.IsUnavailable(err) {
		return true
	}
	return strings.Contains(err.Error(), "Cannot connect to the Docker daemon")
}
