package hhparse

import "github.com/PuerkitoBio/goquery"

// dropTags are removed unconditionally wherever they appear.
var dropTags = []string{
	"script", "style", "meta", "noscript", "iframe",
	"svg", "path", "defs", "symbol",
	"link", "object", "embed",
}

// landmarkTags are navigation chrome removed wherever they still have a parent.
var landmarkTags = []string{"nav", "footer", "aside"}

// boilerplateSelectors is the static catalog of known HH.ru chrome: response
// buttons, contact widgets, sidebars, modals, banners, maps and related-item
// carousels. Data, not logic — extend it when the site grows new chrome.
var boilerplateSelectors = []string{
	".bloko-button",
	".resume-sidebar",
	".vacancy-sidebar",
	".supernova-overlay",
	".header",
	".footer",
	".bloko-modal",
	".cookie-warning",
	".navi",
	".top-menu",
	`[data-qa="vacancy-response-section"]`,
	".vacancy-address-map",
	".vacancy-contacts__map",
	".recommended-vacancies",
	".similar-vacancies",
}

// Clean strips non-content nodes from the tree in place and returns it for
// chaining. Sibling order of surviving nodes is preserved, and cleaning an
// already-cleaned tree is a no-op.
func Clean(doc *goquery.Document) *goquery.Document {
	for _, tag := range dropTags {
		doc.Find(tag).Remove()
	}
	for _, tag := range landmarkTags {
		doc.Find(tag).Each(func(_ int, s *goquery.Selection) {
			if s.Parent().Length() > 0 {
				s.Remove()
			}
		})
	}
	for _, sel := range boilerplateSelectors {
		doc.Find(sel).Remove()
	}
	return doc
}
