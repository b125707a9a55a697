package download

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/handiism/xkcd-downloader/internal/http"
	ioutils "github.com/handiism/xkcd-downloader/internal/io"
	"github.com/handiism/xkcd-downloader/internal/model"
)

// Resolver turns a page number into an image reference.
type Resolver interface {
	ResolveImage(ctx context.Context, page model.PageNumber) (model.ImageReference, error)
}

// Locator discovers the latest page number.
type Locator interface {
	FindLastPage(ctx context.Context) (model.PageNumber, error)
}

// Fetcher performs one logical GET, retries included.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*http.Response, error)
}

// Sink makes sure the image of one page exists on disk.
type Sink struct {
	resolver     Resolver
	fetcher      Fetcher
	imageService *ioutils.ImageService
	maxImageSize int
	onProgress   func(ProgressEvent)
}

// NewSink creates a Sink. A positive maxImageSize downscales images that
// are larger before they are written.
func NewSink(resolver Resolver, fetcher Fetcher, maxImageSize int, onProgress func(ProgressEvent)) *Sink {
	return &Sink{
		resolver:     resolver,
		fetcher:      fetcher,
		imageService: ioutils.NewImageService(),
		maxImageSize: maxImageSize,
		onProgress:   onProgress,
	}
}

// EnsureDownloaded resolves, fetches and persists the image of task.Page.
//
// The steps run strictly in order and stop at the first failure:
//  1. If an artifact for the page number is already in the output
//     directory, return Skipped without any network fetch
//  2. Resolve the image reference of the page
//  3. Compute the artifact path; if a file is already there, return Skipped
//     without fetching the image
//  4. Fetch the image bytes
//  5. Create the output directory and write the artifact atomically
//
// Nothing is retried at this layer. Failures are returned as a Failed result
// and never as a panic or error, so sibling tasks are unaffected.
func (s *Sink) EnsureDownloaded(ctx context.Context, task model.DownloadTask) model.Result {
	// Artifact names start with the page number, so finished pages are
	// found without resolving their image reference.
	existing, ok, err := ioutils.FindWithPrefix(task.Dir(), model.FilePrefix(task.Page))
	if err != nil {
		return model.Failed(task, "", &model.FilesystemError{Path: task.Dir(), Err: err})
	}
	if ok {
		return model.Skipped(task, existing)
	}

	ref, err := s.resolver.ResolveImage(ctx, task.Page)
	if err != nil {
		return model.Failed(task, "", fmt.Errorf("resolve page %d: %w", task.Page, err))
	}

	path := task.TargetPath(ref)

	exists, err := ioutils.Exists(path)
	if err != nil {
		return model.Failed(task, path, &model.FilesystemError{Path: path, Err: err})
	}
	if exists {
		return model.Skipped(task, path)
	}

	resp, err := s.fetcher.Fetch(ctx, string(ref))
	if err != nil {
		return model.Failed(task, path, fmt.Errorf("fetch image of page %d: %w", task.Page, err))
	}
	data := resp.Body

	if s.maxImageSize > 0 {
		resized, err := s.imageService.Downscale(ctx, data, s.maxImageSize)
		if err != nil {
			s.progress(ProgressEvent{Message: fmt.Sprintf("Keeping original image of page %d: %v", task.Page, err), Level: LevelWarning})
		} else {
			data = resized
		}
	}

	dir := filepath.Dir(path)
	if err := ioutils.EnsureDir(dir); err != nil {
		return model.Failed(task, path, &model.FilesystemError{Path: dir, Err: err})
	}
	if err := ioutils.WriteFile(ctx, path, data); err != nil {
		return model.Failed(task, path, &model.FilesystemError{Path: path, Err: err})
	}

	return model.Saved(task, path)
}

func (s *Sink) progress(event ProgressEvent) {
	if s.onProgress != nil {
		s.onProgress(event)
	}
}
