// Package safefile reads operator-controlled files (the YAML config) with a
// symlink check and a size cap. Artifact files deliberately do not go through
// here: the loader layer's contract is to accept whatever the agent wrote and
// degrade gracefully, while a config file that is secretly a symlink or
// gigabytes long is worth refusing outright.
package safefile

import (
	"fmt"
	"os"
)

// RejectSymlink returns an error if path is a symbolic link. It uses Lstat,
// not Stat, so the check is not followed through the link.
func RejectSymlink(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("%s is a symbolic link (rejected)", path)
	}
	return nil
}

// ReadFileMax reads path after verifying it is not a symlink and does not
// exceed maxBytes.
func ReadFileMax(path string, maxBytes int64) ([]byte, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return nil, err
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return nil, fmt.Errorf("%s is a symbolic link (rejected)", path)
	}
	if info.Size() > maxBytes {
		return nil, fmt.Errorf("%s is too large (%d bytes, max %d)", path, info.Size(), maxBytes)
	}
	return os.ReadFile(path)
}
