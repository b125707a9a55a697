package xkcd

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/handiism/xkcd-downloader/internal/model"
)

// Resolver turns a page number into the image reference published on it.
//
// Example usage:
//
//	resolver := NewResolver("http://www.xkcd.com", client)
//
//	ref, err := resolver.ResolveImage(ctx, 353)
//	if err != nil {
//	    var pe *ParseError
//	    if errors.As(err, &pe) {
//	        // page exists but has no comic image (interactive comics, #404)
//	    }
//	    return err
//	}
type Resolver struct {
	site    string
	fetcher Fetcher
}

// NewResolver creates a Resolver for the given site base URL.
//
// An empty site means DefaultSite.
func NewResolver(site string, f Fetcher) *Resolver {
	return &Resolver{
		site:    normalizeSite(site),
		fetcher: f,
	}
}

// PageURL returns the URL of the page document for page.
func (r *Resolver) PageURL(page model.PageNumber) string {
	return fmt.Sprintf("%s/%d", r.site, page)
}

// ResolveImage fetches the page document and returns the absolute URL of
// the image inside the element with id "comic".
//
// Fetch failures are returned as they come from the Fetcher; no retries are
// made beyond its own budget. A page without the element, the image or its
// src attribute yields a *ParseError wrapping ErrNoComic.
func (r *Resolver) ResolveImage(ctx context.Context, page model.PageNumber) (model.ImageReference, error) {
	pageURL := r.PageURL(page)

	doc, err := fetchDocument(ctx, r.fetcher, pageURL)
	if err != nil {
		return "", err
	}

	comic, ok := doc.ByID("comic")
	if !ok {
		return "", &ParseError{URL: pageURL, Err: fmt.Errorf("%w: missing #comic element", ErrNoComic)}
	}
	img, ok := comic.First("img")
	if !ok {
		return "", &ParseError{URL: pageURL, Err: fmt.Errorf("%w: #comic has no img", ErrNoComic)}
	}
	src, ok := img.Attr("src")
	if !ok || strings.TrimSpace(src) == "" {
		return "", &ParseError{URL: pageURL, Err: fmt.Errorf("%w: img has no src", ErrNoComic)}
	}

	return NormalizeImageURL(r.site, pageURL, src)
}

// NormalizeImageURL makes an image source found on pageURL absolute.
//
// The rules are:
//   - protocol-relative sources ("//host/x.png") get an "http:" prefix
//   - root-relative sources ("/comics/x.png") get the site prefix
//   - absolute URLs are returned unchanged
//   - other relative sources are resolved against pageURL
//
// Example:
//
//	NormalizeImageURL("http://www.xkcd.com", page, "//imgs.xkcd.com/comics/x.png")
//	// "http://imgs.xkcd.com/comics/x.png"
//	NormalizeImageURL("http://www.xkcd.com", page, "/comics/x.png")
//	// "http://www.xkcd.com/comics/x.png"
func NormalizeImageURL(site, pageURL, src string) (model.ImageReference, error) {
	src = strings.TrimSpace(src)

	switch {
	case strings.HasPrefix(src, "//"):
		return model.ImageReference("http:" + src), nil
	case strings.HasPrefix(src, "/"):
		return model.ImageReference(normalizeSite(site) + src), nil
	}

	ref, err := url.Parse(src)
	if err != nil {
		return "", &ParseError{URL: pageURL, Err: fmt.Errorf("invalid image source %q: %w", src, err)}
	}
	if ref.IsAbs() {
		return model.ImageReference(src), nil
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return "", &ParseError{URL: pageURL, Err: fmt.Errorf("invalid page url: %w", err)}
	}
	return model.ImageReference(base.ResolveReference(ref).String()), nil
}
