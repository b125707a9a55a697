package xkcd

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/handiism/xkcd-downloader/internal/model"
)

// Locator discovers the number of the latest page.
type Locator struct {
	site    string
	fetcher Fetcher
}

// NewLocator creates a Locator for the given site base URL.
//
// An empty site means DefaultSite.
func NewLocator(site string, f Fetcher) *Locator {
	return &Locator{
		site:    normalizeSite(site),
		fetcher: f,
	}
}

// FindLastPage fetches the front page, which always shows the latest comic,
// and returns the page number of its "prev" link plus one.
//
// There is no retry beyond the Fetcher's own budget. Callers should treat a
// failure as fatal since no page range can be computed without it.
func (l *Locator) FindLastPage(ctx context.Context) (model.PageNumber, error) {
	doc, err := fetchDocument(ctx, l.fetcher, l.site)
	if err != nil {
		return 0, err
	}

	link, ok := doc.ByRel("prev")
	if !ok {
		return 0, &ParseError{URL: l.site, Err: ErrNoPrevLink}
	}
	href, ok := link.Attr("href")
	if !ok {
		return 0, &ParseError{URL: l.site, Err: fmt.Errorf("%w: link has no href", ErrNoPrevLink)}
	}

	prev, err := pageFromHref(href)
	if err != nil {
		return 0, &ParseError{URL: l.site, Err: err}
	}
	return prev + 1, nil
}

// pageFromHref extracts the trailing numeric path segment of a link target.
//
// "/500/", "500" and "https://xkcd.com/500/" all give 500.
func pageFromHref(href string) (model.PageNumber, error) {
	p := strings.TrimSpace(href)
	if u, err := url.Parse(p); err == nil {
		p = u.Path
	}
	p = strings.Trim(p, "/")
	if i := strings.LastIndex(p, "/"); i >= 0 {
		p = p[i+1:]
	}

	n, err := strconv.Atoi(p)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %q has no page number", ErrNoPrevLink, href)
	}
	return model.PageNumber(n), nil
}
