package docker

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNameConflictError(t *testing.T) {
	err := errors.New(`Error response from daemon: Conflict. The container name "/worker" is already in use by container "abc123". You have to remove (or rename) that container to be able to reuse that name.`)
	assert.True(t, isNameConflictError(err))

	assert.False(t, isNameConflictError(errors.New("some other daemon error")))
}

func TestIsImageNotFoundError(t *testing.T) {
	assert.True(t, isImageNotFoundError(errors.New("Error response from daemon: No such image: nope:latest")))
	assert.False(t, isImageNotFoundError(errors.New("connection refused")))
}
