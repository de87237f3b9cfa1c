package crawler

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// titleMarker starts the script line that carries the advertised year.
const titleMarker = "var titlew"

// tableClass is the class of the div wrapping each category table.
const tableClass = ".mbtab0"

var quotedRegex = regexp.MustCompile(`"(.*)"`)

// Page is one parsed HTML document of the equipment list site.
type Page struct {
	doc   *goquery.Document
	index *nodeIndex
}

// NewPage parses UTF-8 HTML from r.
func NewPage(r io.Reader) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return newPageFromDocument(doc), nil
}

func newPageFromDocument(doc *goquery.Document) *Page {
	p := &Page{doc: doc}
	if len(doc.Nodes) > 0 {
		p.index = newNodeIndex(doc.Nodes[0])
	} else {
		p.index = &nodeIndex{pos: map[*html.Node]int{}}
	}
	return p
}

// AdvertisedYear returns the heading the site writes from JavaScript, for
// example "令和6年度 工事設計認証を受けた機器の一覧". The first script line
// starting with "var titlew" supplies it; the quoted literal on that line
// is decoded as an HTML fragment. Pages without the marker yield "".
func (p *Page) AdvertisedYear() (string, error) {
	var line string
	p.doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		for _, l := range strings.Split(s.Text(), "\n") {
			if strings.HasPrefix(l, titleMarker) {
				line = l
				return false
			}
		}
		return true
	})
	if line == "" {
		return "", nil
	}

	m := quotedRegex.FindStringSubmatch(line)
	if m == nil {
		return "", nil
	}
	return fragmentText(m[1])
}

// fragmentText resolves character references and strips tags from an
// HTML fragment.
func fragmentText(s string) (string, error) {
	nodes, err := html.ParseFragment(strings.NewReader(s), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse title fragment: %w", err)
	}
	var sb strings.Builder
	for _, n := range nodes {
		sb.WriteString(rawText(n))
	}
	return sb.String(), nil
}

func rawText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(rawText(c))
	}
	return sb.String()
}

// Tables returns one Table per ".mbtab0" element in document order.
func (p *Page) Tables() []*Table {
	tables := make([]*Table, 0)
	p.doc.Find(tableClass).Each(func(_ int, s *goquery.Selection) {
		div := s.Get(0)
		t := &Table{
			TopCategory: p.index.precedingText(div, "h2"),
			SubCategory: p.index.precedingText(div, "h3"),
			page:        p,
		}
		if tbl := s.Find("table").First(); tbl.Length() > 0 {
			t.table = tbl
		}
		tables = append(tables, t)
	})
	return tables
}
