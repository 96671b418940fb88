package cloudwatch

import (
	"fmt"
	"regexp"
	"strings"
)

// Log group names may contain a-z, A-Z, 0-9, '_', '-', '/', '.' and '#',
// must be 1-512 characters, and may not start with a separator.
var groupNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_./-]*$`)

func validateGroupName(name string) error {
	// '#' is allowed anywhere past the first character; strip it before the
	// charset match so the expression stays readable.
	stripped := strings.ReplaceAll(name, "#", "")
	if len(name) == 0 || len(name) > 512 || !groupNameRegex.MatchString(stripped) {
		return fmt.Errorf("log group name %q is invalid: names consist of a-z, A-Z, 0-9, '_', '-', '/', '.' and '#'", name)
	}
	return nil
}

func validateStreamName(name string) error {
	if len(name) == 0 || len(name) > 512 || strings.ContainsAny(name, ":*") {
		return fmt.Errorf("log stream name %q is invalid: names are 1-512 characters and may not contain ':' or '*'", name)
	}
	return nil
}
