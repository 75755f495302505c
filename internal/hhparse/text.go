package hhparse

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// text flattens a selection to a single line: text nodes joined by single
// spaces, whitespace runs collapsed, ends trimmed. A nil or empty selection
// flattens to "".
func text(s *goquery.Selection) string {
	if s == nil || s.Length() == 0 {
		return ""
	}
	var parts []string
	for _, node := range s.Nodes {
		collectText(node, &parts)
	}
	return strings.Join(parts, " ")
}

func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.TextNode {
		if t := strings.Join(strings.Fields(n.Data), " "); t != "" {
			*parts = append(*parts, t)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}

// Flatten is the exported form of the flattening used by the extractors, for
// callers that post-process cleaned trees outside this package.
func Flatten(s *goquery.Selection) string {
	return text(s)
}

// first returns the first element matched by any of the selectors, tried in
// order. The ordered fallback chain keeps locator priority explicit.
func first(doc *goquery.Document, selectors ...string) *goquery.Selection {
	for _, sel := range selectors {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			return s
		}
	}
	return nil
}

// containsAny reports whether s contains at least one of the substrings.
func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
