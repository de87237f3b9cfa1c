package crawler

import (
	"strings"

	"golang.org/x/net/html"
)

// nodeIndex is a depth-first, document-order view of an HTML tree.
type nodeIndex struct {
	nodes []*html.Node
	pos   map[*html.Node]int
}

func newNodeIndex(root *html.Node) *nodeIndex {
	idx := &nodeIndex{pos: make(map[*html.Node]int)}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		idx.pos[n] = len(idx.nodes)
		idx.nodes = append(idx.nodes, n)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return idx
}

// preceding returns the nearest element named tag that starts before n in
// document order, or nil. Ancestors of n count as preceding.
func (idx *nodeIndex) preceding(n *html.Node, tag string) *html.Node {
	i, ok := idx.pos[n]
	if !ok {
		return nil
	}
	for j := i - 1; j >= 0; j-- {
		c := idx.nodes[j]
		if c.Type == html.ElementNode && c.Data == tag {
			return c
		}
	}
	return nil
}

// precedingText is preceding followed by textContent; a missing element
// yields "".
func (idx *nodeIndex) precedingText(n *html.Node, tag string) string {
	p := idx.preceding(n, tag)
	if p == nil {
		return ""
	}
	return textContent(p)
}

// textContent concatenates the text nodes below n with surrounding
// whitespace removed.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}
