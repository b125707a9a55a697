// Package xkcd turns pages of a sequentially numbered comic site into
// image references and discovers how many pages the site has.
//
// The package handles two use cases:
//
//  1. Resolving a page number to the URL of its comic image
//  2. Locating the number of the latest page from the front page
//
// # Resolving Images
//
//	resolver := xkcd.NewResolver(xkcd.DefaultSite, client)
//	ref, err := resolver.ResolveImage(ctx, 353)
//	// ref = "http://imgs.xkcd.com/comics/python.png"
//
// # Locating the Last Page
//
// The front page always shows the latest comic, so its "prev" link points
// at the page before it:
//
//	locator := xkcd.NewLocator(xkcd.DefaultSite, client)
//	last, err := locator.FindLastPage(ctx)
//	// prev link "/500/" gives last = 501
//
// # Page Structure
//
// A comic page carries the image inside the element with id "comic":
//
//	<div id="comic"><img src="//imgs.xkcd.com/comics/python.png"></div>
//
// Missing structure is reported as a *ParseError.
package xkcd
