// Package markdown renders saved HH.ru pages as flowed Markdown text.
//
// This is the legacy text-oriented extraction path: instead of deriving named
// fields it converts the whole cleaned tree into heading-preserving Markdown
// with links and images stripped, then filters out boilerplate lines. The
// structured path in hhparse supersedes it for scoring, but the text form
// remains useful for prompts that want prose rather than JSON.
package markdown

import (
	"fmt"
	stdhtml "html"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"

	"github.com/ddanilov/hhscreen/internal/archive"
	"github.com/ddanilov/hhscreen/internal/hhparse"
	"github.com/ddanilov/hhscreen/internal/logger"
)

// Render unpacks an archive and produces the finalized Markdown text of the
// page. The vacancy layout is used when a vacancy description marker is
// present, the resume layout otherwise.
func Render(raw []byte) (string, error) {
	html, err := archive.Extract(raw)
	if err != nil {
		return "", fmt.Errorf("unpack archive: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse markup: %w", err)
	}
	hhparse.Clean(doc)

	var out string
	if doc.Find(`[data-qa="vacancy-description"]`).Length() > 0 {
		out = renderVacancy(doc)
	} else {
		out = renderResume(doc)
	}
	return finalize(out), nil
}

// renderVacancy lays out title, salary, conditions, description and skills as
// separate Markdown sections.
func renderVacancy(doc *goquery.Document) string {
	var parts []string

	title := doc.Find(`[data-qa="vacancy-title"]`).First()
	if title.Length() == 0 {
		title = doc.Find(`h1[data-qa="title"]`).First()
	}
	if title.Length() > 0 {
		parts = append(parts, "# "+hhparse.Flatten(title))
	}

	if salary := doc.Find(`[data-qa="vacancy-salary"]`).First(); salary.Length() > 0 {
		parts = append(parts, "**Зарплата:** "+hhparse.Flatten(salary))
	}

	if conditions := renderConditions(doc); conditions != "" {
		parts = append(parts, "### Краткие условия", conditions)
	}

	if desc := doc.Find(`[data-qa="vacancy-description"]`).First(); desc.Length() > 0 {
		parts = append(parts, "### Описание вакансии", toMarkdown(desc))
	}

	if skills := doc.Find(`[data-qa="skills-element"]`); skills.Length() > 0 {
		parts = append(parts, "### Ключевые навыки")
		skills.Each(func(_ int, s *goquery.Selection) {
			parts = append(parts, "* "+hhparse.Flatten(s))
		})
	}

	return strings.Join(parts, "\n\n")
}

// renderConditions converts the container around the experience marker and
// drops the view-counter lines it tends to carry.
func renderConditions(doc *goquery.Document) string {
	exp := doc.Find(`[data-qa="vacancy-experience"]`).First()
	if exp.Length() == 0 {
		return ""
	}

	container := exp.Parent()
	if container.Length() > 0 && goquery.NodeName(container) != "div" {
		container = container.Parent()
	}
	if container.Length() == 0 {
		return ""
	}

	var kept []string
	for line := range strings.Lines(toMarkdown(container)) {
		if strings.Contains(line, "вакансию смотрят") || strings.Contains(line, "человек") {
			continue
		}
		kept = append(kept, strings.TrimRight(line, "\n"))
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// renderResume isolates the header block so it is not duplicated inside the
// main content zone, then converts whichever content zone the template uses.
func renderResume(doc *goquery.Document) string {
	headerMD := ""
	if header := doc.Find(".resume-header-title").First(); header.Length() > 0 {
		headerMD = toMarkdown(header)
		header.Remove()
	}

	target := doc.Find("div.resume-wrapper").First()
	if target.Length() == 0 {
		target = doc.Find("div.main-content").First()
	}
	if target.Length() == 0 {
		target = doc.Find("#app").First()
	}
	if target.Length() == 0 {
		target = doc.Find("body").First()
	}
	if target.Length() == 0 {
		target = doc.Selection
	}

	return strings.TrimSpace(headerMD + "\n\n" + toMarkdown(target))
}

// toMarkdown converts a subtree to Markdown with ATX headings, images removed
// and anchors reduced to their visible text. Conversion failures degrade to
// an empty section instead of failing the document.
func toMarkdown(sel *goquery.Selection) string {
	clone := sel.Clone()
	clone.Find("img").Remove()
	clone.Find("a").Each(func(_ int, a *goquery.Selection) {
		a.ReplaceWithHtml(stdhtml.EscapeString(hhparse.Flatten(a)))
	})

	htmlStr, err := goquery.OuterHtml(clone)
	if err != nil {
		logger.Debug("markdown: subtree serialization failed", "error", err)
		return ""
	}

	md, err := htmltomarkdown.ConvertString(htmlStr)
	if err != nil {
		logger.Debug("markdown: conversion failed", "error", err)
		return ""
	}
	return strings.TrimSpace(md)
}
