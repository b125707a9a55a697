package htmldoc

import "testing"

const comicPage = `<html><body>
	<ul class="comicNav">
		<li><a href="/1/">|&lt;</a></li>
		<li><a rel="prev" href="/352/" accesskey="p">&lt; Prev</a></li>
		<li><a rel="next" href="/354/" accesskey="n">Next &gt;</a></li>
	</ul>
	<div id="comic">
		<img src="//imgs.xkcd.com/comics/python.png" title="I wrote 20 short programs in Python yesterday." />
	</div>
</body></html>`

func TestByIDAndFirst(t *testing.T) {
	doc, err := ParseString(comicPage)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}

	comic, ok := doc.ByID("comic")
	if !ok {
		t.Fatal("expected element with id comic")
	}
	img, ok := comic.First("img")
	if !ok {
		t.Fatal("expected img inside comic")
	}
	src, ok := img.Attr("src")
	if !ok {
		t.Fatal("expected src attribute")
	}
	if src != "//imgs.xkcd.com/comics/python.png" {
		t.Errorf("src = %q, want %q", src, "//imgs.xkcd.com/comics/python.png")
	}

	if _, ok := img.Attr("alt"); ok {
		t.Error("Attr(alt) should report missing attribute")
	}
	if _, ok := doc.ByID("missing"); ok {
		t.Error("ByID(missing) should not match")
	}
	if _, ok := comic.First("video"); ok {
		t.Error("First(video) should not match")
	}
}

func TestByRel(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		rel      string
		wantHref string
		wantOK   bool
	}{
		{
			name:     "prev link",
			html:     comicPage,
			rel:      "prev",
			wantHref: "/352/",
			wantOK:   true,
		},
		{
			name:     "multiple rel tokens",
			html:     `<a rel="nofollow prev" href="/10/">prev</a>`,
			rel:      "prev",
			wantHref: "/10/",
			wantOK:   true,
		},
		{
			name:     "first match wins",
			html:     `<a rel="prev" href="/7/">a</a><a rel="prev" href="/8/">b</a>`,
			rel:      "prev",
			wantHref: "/7/",
			wantOK:   true,
		},
		{
			name:   "no match",
			html:   `<a rel="previous" href="/7/">a</a>`,
			rel:    "prev",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseString(tt.html)
			if err != nil {
				t.Fatalf("ParseString: %v", err)
			}

			link, ok := doc.ByRel(tt.rel)
			if ok != tt.wantOK {
				t.Fatalf("ByRel ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			href, _ := link.Attr("href")
			if href != tt.wantHref {
				t.Errorf("href = %q, want %q", href, tt.wantHref)
			}
		})
	}
}
