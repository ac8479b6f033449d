// Package fs provides various filesystem helpers.
package fs

import (
	"io"
	"os"
	"path/filepath"
)

// DefaultFilePermissions are the permission bits applied to written files when none are given.
const DefaultFilePermissions os.FileMode = 0664

// FileExists returns true if the given path exists and is a file.
func FileExists(filename string) bool {
	info, err := os.Lstat(filename)
	return err == nil && !info.IsDir()
}

// WriteFile writes data from a reader to the file named 'to', with an attempt to perform
// a copy & rename to avoid chaos if anything goes wrong partway.
// Unlike os.WriteFile it will not leave a truncated file behind on failure.
// The destination directory must already exist.
// If 'to' is a symlink the file it points to is replaced and the link is kept. If mode is 0
// an existing file keeps its permissions; a new one gets DefaultFilePermissions.
// It returns the number of bytes written.
func WriteFile(from io.Reader, to string, mode os.FileMode) (int64, error) {
	if resolved, err := filepath.EvalSymlinks(to); err == nil {
		to = resolved
		if info, err := os.Stat(to); err == nil && mode == 0 {
			mode = info.Mode().Perm()
		}
	}
	dir, file := filepath.Split(to)
	if dir == "" {
		dir = "."
	}
	tempFile, err := os.CreateTemp(dir, "."+file+".tmp*")
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(tempFile, from)
	if err != nil {
		tempFile.Close()
		os.Remove(tempFile.Name())
		return n, err
	}
	if err := tempFile.Close(); err != nil {
		os.Remove(tempFile.Name())
		return n, err
	}
	// OK, now file is written; adjust permissions appropriately.
	if mode == 0 {
		mode = DefaultFilePermissions
	}
	if err := os.Chmod(tempFile.Name(), mode); err != nil {
		os.Remove(tempFile.Name())
		return n, err
	}
	// And move it to its final destination.
	if err := os.Rename(tempFile.Name(), to); err != nil {
		os.Remove(tempFile.Name())
		return n, err
	}
	return n, nil
}
