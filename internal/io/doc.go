// Package ioutils provides file system and image processing utilities.
//
// This package contains functions for:
//   - Directory creation
//   - Existence checks
//   - Atomic file writing
//   - Image downscaling
//
// # File Operations
//
//	// Ensure directory exists; safe when many downloads start at once
//	err := ioutils.EnsureDir("/path/to/new/directory")
//
//	// Skip work that is already done
//	ok, err := ioutils.Exists("/path/to/0001_barrel_cropped_(1).jpg")
//
//	// Write data so that no partial file is ever visible
//	err := ioutils.WriteFile(ctx, "/path/to/file.png", data)
//
// # Image Processing
//
// The ImageService shrinks oversized comics while keeping their format:
//
//	svc := ioutils.NewImageService()
//	smaller, _ := svc.Downscale(ctx, imageData, 1000)
package ioutils
