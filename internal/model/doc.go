// Package model defines the core data structures used throughout
// the xkcd-downloader application.
//
// # Pages
//
// A PageNumber identifies one comic. Page numbers are dense and start at 1;
// a Range describes an inclusive span of them:
//
//	rng := model.Range{Start: 1, End: 3}
//	for _, page := range rng.Pages() {
//	    fmt.Println(page) // 1, 2, 3
//	}
//
// # Artifacts
//
// FileName maps a page and its image reference to the local file name.
// The mapping is pure, which is what makes re-runs skip finished pages:
//
//	name := model.FileName(7, "https://imgs.xkcd.com/comics/abc.png")
//	// name = "0007_abc.png"
//
// # Results
//
// Every DownloadTask ends in exactly one Result whose Status is Skipped,
// Saved or Failed. Failed results carry an ErrorKind classifying the cause.
package model
