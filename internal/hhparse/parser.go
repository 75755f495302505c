// Package hhparse derives normalized resume and vacancy records from saved
// HH.ru pages.
//
// The markup is adversarial: the same field appears under different shapes
// across page templates, stable data-qa markers coexist with volatile CSS
// classes, and whole sections go missing. Field rules therefore run
// independently, each with an ordered fallback chain, and a rule that finds
// nothing leaves its field at the zero value instead of failing the document.
package hhparse

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ddanilov/hhscreen/internal/archive"
	"github.com/ddanilov/hhscreen/internal/logger"
)

// Parser turns raw archive bytes into a Document. It is stateless: every
// Parse call owns its private tree, so a single Parser is safe to share
// across goroutines.
type Parser struct{}

// NewParser creates a Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse unpacks, cleans, classifies and extracts one document. The only
// failure modes are an unreadable archive and an unbuildable tree; a missing
// field never fails the document.
func (p *Parser) Parse(raw []byte) (*Document, error) {
	html, err := archive.Extract(raw)
	if err != nil {
		return nil, fmt.Errorf("unpack archive: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}

	Clean(doc)
	kind := Classify(doc)
	logger.Debug("document classified", "kind", kind)

	switch kind {
	case KindVacancy:
		return &Document{Kind: KindVacancy, Vacancy: ExtractVacancy(doc)}, nil
	default:
		return &Document{Kind: KindResume, Resume: ExtractResume(doc)}, nil
	}
}

// Classify decides whether a cleaned tree is a vacancy or a resume. Vacancy
// pages carry the word in their title or a title marker element; everything
// else is treated as a resume.
func Classify(doc *goquery.Document) Kind {
	title := strings.ToLower(doc.Find("title").First().Text())
	if strings.Contains(title, "вакансия") {
		return KindVacancy
	}
	if doc.Find(`[data-qa="vacancy-title"]`).Length() > 0 || doc.Find(`[data-qa="title"]`).Length() > 0 {
		return KindVacancy
	}
	return KindResume
}
