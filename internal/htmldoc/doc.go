// Package htmldoc provides the narrow document access the scraper needs:
// find an element by id, find a link by relation, find a descendant by tag
// and read attributes.
//
// The rest of the application only sees the Document and Element
// interfaces; the goquery-backed implementation stays in this package.
//
//	doc, err := htmldoc.Parse(bytes.NewReader(body))
//	if err != nil {
//	    return err
//	}
//	if comic, ok := doc.ByID("comic"); ok {
//	    if img, ok := comic.First("img"); ok {
//	        src, _ := img.Attr("src")
//	        fmt.Println(src)
//	    }
//	}
package htmldoc
