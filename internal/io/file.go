// Package ioutils provides file system utilities for the xkcd-downloader.
//
// This package contains functions for:
//   - Directory creation that is safe under concurrent first-time creation
//   - Existence checks for already downloaded artifacts
//   - Atomic file writing
package ioutils

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x). An existing directory
// is not an error, including one created concurrently by another goroutine
// or process between the check and the creation.
//
// Example:
//
//	err := EnsureDir("/home/me/Downloads/xkcd")
func EnsureDir(path string) error {
	err := os.MkdirAll(path, 0755)
	if err == nil || !errors.Is(err, fs.ErrExist) {
		return err
	}
	if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
		return nil
	}
	return err
}

// Exists reports whether a file or directory exists at path.
//
// Errors other than "does not exist" (permission problems for instance)
// are returned so callers do not mistake an unreadable path for a missing one.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// FindWithPrefix returns the path of the first regular file in dir whose
// name starts with prefix. A missing directory means no match.
//
// Example:
//
//	path, ok, err := FindWithPrefix("/downloads/xkcd", "0353_")
//	// path = "/downloads/xkcd/0353_python.png", ok = true
func FindWithPrefix(dir, prefix string) (string, bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasPrefix(e.Name(), prefix) {
			return filepath.Join(dir, e.Name()), true, nil
		}
	}
	return "", false, nil
}

// WriteFile writes data to path atomically.
//
// The data is written to a temporary file in the same directory which is
// renamed over path once complete, so readers never observe a partially
// written file. The final file has mode 0644.
//
// Parameters:
//   - ctx: Context for cancellation, checked before the rename
//   - path: File path to write to
//   - data: Bytes to write
//
// Example:
//
//	err := WriteFile(ctx, "/downloads/xkcd/0353_python.png", image)
func WriteFile(ctx context.Context, path string, data []byte) (err error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+name+".*.part")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err = tmp.Chmod(0644); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = ctx.Err(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
