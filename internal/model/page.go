package model

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

// PageNumber identifies one comic in the series (1-indexed).
type PageNumber int

// ImageReference is the absolute URL of the image published on a page.
//
// ImageReference values come from resolving a page document; they are never
// built by hand.
type ImageReference string

// Range is an inclusive span of page numbers.
//
// An End of zero means the end is not known yet and has to be discovered
// from the site before the range can be enumerated.
type Range struct {
	Start PageNumber
	End   PageNumber
}

// ErrInvalidRange is returned by Range.Validate.
var ErrInvalidRange = errors.New("invalid page range")

// Open reports whether the end of the range still has to be discovered.
func (r Range) Open() bool {
	return r.End == 0
}

// Validate checks that the range is non-empty and starts at a valid page.
func (r Range) Validate() error {
	if r.Start < 1 {
		return fmt.Errorf("%w: start page %d must be at least 1", ErrInvalidRange, r.Start)
	}
	if r.End < r.Start {
		return fmt.Errorf("%w: end page %d is before start page %d", ErrInvalidRange, r.End, r.Start)
	}
	return nil
}

// Len returns the number of pages in the range.
func (r Range) Len() int {
	if r.End < r.Start {
		return 0
	}
	return int(r.End-r.Start) + 1
}

// Pages enumerates every page number in the range in ascending order.
func (r Range) Pages() []PageNumber {
	pages := make([]PageNumber, 0, r.Len())
	for p := r.Start; p <= r.End; p++ {
		pages = append(pages, p)
	}
	return pages
}

// String formats the range as "[start, end]".
func (r Range) String() string {
	if r.Open() {
		return fmt.Sprintf("[%d, ?]", r.Start)
	}
	return fmt.Sprintf("[%d, %d]", r.Start, r.End)
}

// FileName returns the local file name for the image of a page.
//
// The name is the page number zero-padded to four digits, an underscore and
// the final path segment of the image URL. Query strings and fragments are
// ignored, and characters that are invalid in file names are replaced.
//
// Example:
//
//	FileName(7, "https://imgs.xkcd.com/comics/abc.png") // "0007_abc.png"
func FileName(page PageNumber, ref ImageReference) string {
	return FilePrefix(page) + sanitizeFileName(baseName(ref))
}

// FilePrefix returns the part of every artifact name that depends only on
// the page number, such as "0007_".
func FilePrefix(page PageNumber) string {
	return fmt.Sprintf("%04d_", page)
}

// baseName extracts the final path segment of an image URL.
func baseName(ref ImageReference) string {
	raw := string(ref)
	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		return path.Base(u.Path)
	}
	if i := strings.LastIndex(raw, "/"); i >= 0 {
		return raw[i+1:]
	}
	return raw
}

var (
	invalidChars   = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots   = regexp.MustCompile(`\.+$`)
	multipleSpaces = regexp.MustCompile(`\s+`)
)

// sanitizeFileName removes or replaces characters that are invalid in file names.
func sanitizeFileName(name string) string {
	name = invalidChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = multipleSpaces.ReplaceAllString(name, " ")
	return strings.TrimRight(name, " ")
}

// DownloadTask is the unit of concurrent work: one page saved into one directory.
type DownloadTask struct {
	Page      PageNumber
	OutputDir string
}

// Dir returns the absolute output directory. If the directory cannot be
// made absolute it is used as given.
func (t DownloadTask) Dir() string {
	if abs, err := filepath.Abs(t.OutputDir); err == nil {
		return abs
	}
	return t.OutputDir
}

// TargetPath returns the absolute path of the artifact for ref.
func (t DownloadTask) TargetPath(ref ImageReference) string {
	return filepath.Join(t.Dir(), FileName(t.Page, ref))
}
