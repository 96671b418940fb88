package cli

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandFlagSurface(t *testing.T) {
	cmd, err := NewRootCommand()
	require.NoError(t, err)

	for _, name := range []string{
		"docker-image",
		"bash-command",
		"docker-container-name",
		"aws-cloudwatch-group",
		"aws-cloudwatch-stream",
		"aws-access-key-id",
		"aws-secret-access-key",
		"aws-region",
		"aws-endpoint",
	} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag %s", name)
	}
	assert.NotNil(t, cmd.PersistentFlags().Lookup("verbose"))
}

func TestRootCommandRequiresCoreFlags(t *testing.T) {
	cmd, err := NewRootCommand()
	require.NoError(t, err)

	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--docker-image", "busybox"})

	err = cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestContainerNameValidation(t *testing.T) {
	for name, valid := range map[string]bool{
		"worker-1":    true,
		"My.Worker_2": true,
		"-leading":    false,
		"a":           false,
		"has space":   false,
	} {
		assert.Equal(t, valid, containerNameRegex.MatchString(name), "name %q", name)
	}
}
