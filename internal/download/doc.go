// Package download provides the download orchestration logic for
// fetching a range of comics.
//
// # Manager
//
// The Manager coordinates the entire download process:
//
//  1. Locate the latest page when no end page is given
//  2. Create a bounded pool of workers
//  3. Hand every page of the range to the Sink
//  4. Wait for all pages to finish
//
// # Sink
//
// The Sink processes one page: resolve its image reference, skip it when
// the artifact already exists, otherwise fetch the image and write it.
// Artifacts are named NNNN_<basename>, so a re-run finds finished pages
// and issues no image fetches for them.
//
// # Basic Usage
//
//	manager := download.NewManager(settings, func(event download.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	summary, err := manager.Run(ctx, "/home/me/Downloads/xkcd", model.Range{Start: 1})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("saved %d, skipped %d, failed %d\n", summary.Saved, summary.Skipped, summary.Failed)
//
// # Concurrency
//
// MaxParallel bounds how many pages are in flight at once. Pages finish in
// any order; a failed page is reported and counted but does not cancel the
// others.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
//
// # Retry Logic
//
// Fetches are retried by the HTTP client on connection-level failures only,
// immediately and up to settings.RetryAttempts attempts in total.
package download
