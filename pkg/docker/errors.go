package docker

import "strings"

// Error messages vary between different backends (dockerd, containerd, podman, orbstack, etc)
// or even versions of docker. These helpers normalize the check so callers can handle
// situations without worrying about the underlying implementation.

func isNameConflictError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "is already in use by container") ||
		strings.Contains(msg, "Conflict. The container name")
}

func isImageNotFoundError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "image does not exist") ||
		strings.Contains(msg, "No such image")
}
