// Package http provides the HTTP client used to fetch comic pages and images.
//
// The Client in this package handles:
//   - User-Agent headers
//   - Timeout handling
//   - A fixed retry budget for connection-level failures
//   - Classification of failures into transient and permanent kinds
//
// # Basic Usage
//
//	client := http.NewClient(http.DefaultOptions())
//
//	// Fetch an HTML page
//	resp, err := client.Fetch(ctx, "http://www.xkcd.com/")
//
//	// Fetch image bytes
//	data, err := client.Get(ctx, "https://imgs.xkcd.com/comics/python.png")
//
// # Retry Policy
//
// Retries are immediate, there is no back-off. RetryAttempts counts every
// attempt including the first. Only connection-level failures consume the
// budget; an unclassifiable failure aborts the fetch without further
// attempts so that structural problems surface at once.
//
// # Observing Attempts
//
//	opts := http.DefaultOptions()
//	opts.OnAttempt = func(a http.Attempt) {
//	    if a.Err != nil && a.Transient {
//	        fmt.Printf("retrying %s (%d/%d)\n", a.URL, a.Number, a.Budget)
//	    }
//	}
package http
