package htmldoc

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Document is a parsed HTML page.
type Document interface {
	// ByID returns the first element whose id attribute equals id.
	ByID(id string) (Element, bool)

	// ByRel returns the first element whose rel attribute contains the
	// token rel, such as the "prev" navigation link.
	ByRel(rel string) (Element, bool)
}

// Element is a single node of a Document.
type Element interface {
	// Attr returns the value of the named attribute.
	Attr(name string) (string, bool)

	// First returns the first descendant element with the given tag name.
	First(tag string) (Element, bool)
}

// Parse reads an HTML document from r.
func Parse(r io.Reader) (Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &document{doc: doc}, nil
}

// ParseString parses an HTML document held in memory.
func ParseString(html string) (Document, error) {
	return Parse(strings.NewReader(html))
}

type document struct {
	doc *goquery.Document
}

func (d *document) ByID(id string) (Element, bool) {
	sel := d.doc.Find("[id]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		v, _ := s.Attr("id")
		return v == id
	})
	return wrap(sel)
}

func (d *document) ByRel(rel string) (Element, bool) {
	sel := d.doc.Find("[rel]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		v, _ := s.Attr("rel")
		for _, token := range strings.Fields(v) {
			if strings.EqualFold(token, rel) {
				return true
			}
		}
		return false
	})
	return wrap(sel)
}

type element struct {
	sel *goquery.Selection
}

func (e *element) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

func (e *element) First(tag string) (Element, bool) {
	return wrap(e.sel.Find(tag))
}

func wrap(sel *goquery.Selection) (Element, bool) {
	if sel.Length() == 0 {
		return nil, false
	}
	return &element{sel: sel.First()}, true
}
