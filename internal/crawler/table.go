package crawler

import (
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Link is a spreadsheet or sub-index reference found in a category table.
type Link struct {
	// URL is the href exactly as written in the page.
	URL string

	// Association is the certification body (domestic tables) or the
	// category label (other tables).
	Association string
}

// Filename returns the last path component of the URL. It is the local
// file name and the key used to skip files already downloaded.
func (l Link) Filename() string {
	return path.Base(l.URL)
}

// IsIndex reports whether the link points at another list page rather
// than a spreadsheet.
func (l Link) IsIndex() bool {
	return strings.HasSuffix(l.Filename(), "htm")
}

// Table is one category table of the list page.
type Table struct {
	// TopCategory is the text of the nearest preceding h2, e.g. "1.国内".
	TopCategory string

	// SubCategory is the text of the nearest preceding h3.
	SubCategory string

	table *goquery.Selection
	page  *Page
}

// Links returns the anchors of the table whose href ends in "xls" or
// "htm", in document order.
func (t *Table) Links() []Link {
	links := make([]Link, 0)
	if t.table == nil {
		return links
	}

	domestic := strings.HasPrefix(t.TopCategory, "1")
	t.table.Find("a").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		if !strings.HasSuffix(href, "xls") && !strings.HasSuffix(href, "htm") {
			return
		}

		association := t.TopCategory
		if domestic {
			association = t.page.index.precedingText(a.Get(0), "p")
		}
		links = append(links, Link{URL: href, Association: association})
	})
	return links
}
