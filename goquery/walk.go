package goquery

import (
	"strings"

	"golang.org/x/net/html"
)

// maxSiblingWalk caps the forward-sibling walk from a heading. Real
// pages stay well under this; the cap keeps a malformed page from
// turning the walk unbounded.
const maxSiblingWalk = 250

// anchor is a raw <a href> found during a walk.
type anchor struct {
	label string
	href  string
}

// isHeadingNode reports whether n is an h1–h5 element.
func isHeadingNode(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch n.Data {
	case "h1", "h2", "h3", "h4", "h5":
		return true
	}
	return false
}

// isRuleNode reports whether n is a horizontal rule.
func isRuleNode(n *html.Node) bool {
	return n.Type == html.ElementNode && n.Data == "hr"
}

// walkFollowing visits n's following siblings in document order,
// stopping at the next heading, a horizontal rule, the end of the
// sibling list, or the walk cap. fn returning false stops the walk.
func walkFollowing(n *html.Node, fn func(*html.Node) bool) {
	steps := 0
	for sib := n.NextSibling; sib != nil; sib = sib.NextSibling {
		steps++
		if steps > maxSiblingWalk {
			return
		}
		if isHeadingNode(sib) || isRuleNode(sib) {
			return
		}
		if !fn(sib) {
			return
		}
	}
}

// anchorsIn collects all <a href> elements under n, including n itself.
func anchorsIn(n *html.Node) []anchor {
	var out []anchor
	var visit func(*html.Node)
	visit = func(node *html.Node) {
		if node.Type == html.ElementNode && node.Data == "a" {
			if href := attrVal(node, "href"); href != "" {
				out = append(out, anchor{label: nodeText(node), href: href})
			}
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return out
}

// attrVal returns the value of the named attribute, or "".
func attrVal(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// nodeText returns the trimmed text content of n.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var visit func(*html.Node)
	visit = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return strings.TrimSpace(sb.String())
}

// renderInner renders n back to an HTML string.
func renderInner(n *html.Node) string {
	var sb strings.Builder
	if err := html.Render(&sb, n); err != nil {
		return ""
	}
	return sb.String()
}

// imageSourcesIn collects image URLs under n, preferring lazy-load
// attributes over src.
func imageSourcesIn(n *html.Node) []string {
	var out []string
	var visit func(*html.Node)
	visit = func(node *html.Node) {
		if node.Type == html.ElementNode && node.Data == "img" {
			src := attrVal(node, "data-src")
			if src == "" {
				src = attrVal(node, "src")
			}
			if src != "" {
				out = append(out, src)
			}
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return out
}

// firstElementAfter returns the first element sibling following n, or
// nil when n is the last element or the next element is a heading or
// rule.
func firstElementAfter(n *html.Node) *html.Node {
	for sib := n.NextSibling; sib != nil; sib = sib.NextSibling {
		if sib.Type != html.ElementNode {
			continue
		}
		if isHeadingNode(sib) || isRuleNode(sib) {
			return nil
		}
		return sib
	}
	return nil
}
