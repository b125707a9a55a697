package xkcd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/handiism/xkcd-downloader/internal/htmldoc"
	"github.com/handiism/xkcd-downloader/internal/http"
	"github.com/handiism/xkcd-downloader/internal/model"
)

// DefaultSite is the base URL of the comic site.
const DefaultSite = "http://www.xkcd.com"

// Fetcher performs one logical GET, retries included.
//
// *http.Client implements Fetcher.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*http.Response, error)
}

var (
	// ErrNoComic is returned when a page has no comic image.
	ErrNoComic = errors.New("no comic image found on page")

	// ErrNoPrevLink is returned when the front page has no usable prev link.
	ErrNoPrevLink = errors.New("no prev link found on page")
)

// ParseError reports a page whose document lacks the expected structure.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Kind implements model.Kinder.
func (e *ParseError) Kind() model.ErrorKind { return model.KindParse }

// normalizeSite strips trailing slashes so paths can be appended.
func normalizeSite(site string) string {
	site = strings.TrimRight(strings.TrimSpace(site), "/")
	if site == "" {
		return DefaultSite
	}
	return site
}

// fetchDocument fetches url and parses the body as HTML.
func fetchDocument(ctx context.Context, f Fetcher, url string) (htmldoc.Document, error) {
	resp, err := f.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	doc, err := htmldoc.Parse(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, &ParseError{URL: url, Err: err}
	}
	return doc, nil
}
