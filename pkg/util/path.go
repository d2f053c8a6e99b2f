package util

import (
	"fmt"
	"os/user"
	"path/filepath"
	"strings"
)

// Expand replaces a leading '~' with the home directory of the current user
func Expand(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	user, err := user.Current()
	if err != nil {
		return "", err
	}
	if len(path) == 1 {
		return user.HomeDir, nil
	} else if strings.HasPrefix(path, "~/") {
		return filepath.Join(user.HomeDir, path[2:]), nil
	}
	// We don't care about handling paths like '~user/...' for now
	return "", fmt.Errorf("expanding of path '%s' is not supported", path)
}
