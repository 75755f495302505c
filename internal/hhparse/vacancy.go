package hhparse

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// scheduleKeywords mark text fragments describing employment conditions.
var scheduleKeywords = []string{"занятость", "график", "формат", "часы"}

// scheduleFragmentKeywords additionally admit "рабочие" ("рабочие часы") when
// filtering individual fragments.
var scheduleFragmentKeywords = []string{"занятость", "график", "формат", "часы", "рабочие"}

// maxScheduleFragmentLen caps fragment length so the heuristic never swallows
// the job description, which lives in the same ancestor scope.
const maxScheduleFragmentLen = 100

// companyTitleRe captures the employer from page titles shaped like
// "Вакансия X, работа в компании Y, ...".
var companyTitleRe = regexp.MustCompile(`(?i)работа в компании\s+(.+?),`)

// ExtractVacancy derives a vacancy record from a cleaned tree. Field rules
// are independent and order-insensitive; a missing marker yields the default.
func ExtractVacancy(doc *goquery.Document) *Vacancy {
	v := newVacancy()

	v.Title = text(first(doc, `[data-qa="vacancy-title"]`, `[data-qa="title"]`))
	v.Salary = text(first(doc, `[data-qa="vacancy-salary"]`))

	extractConditions(doc, v)

	v.Description = text(first(doc, `[data-qa="vacancy-description"]`))
	v.Skills = vacancySkills(doc)
	v.Company = vacancyCompany(doc)
	v.Address = text(first(doc, `[data-qa="vacancy-view-location"]`, ".vacancy-creation-time-redesigned"))

	return v
}

// extractConditions fills experience and the schedule list. Schedule and
// format fragments have no stable container of their own: HH.ru scatters them
// as short sibling nodes near the experience marker. The rule walks up to
// three ancestor levels from that marker looking for a scope whose text
// mentions a condition keyword, preferring the first level that also holds
// more than one paragraph-like child, then collects short keyword-bearing
// leaf fragments inside it.
func extractConditions(doc *goquery.Document, v *Vacancy) {
	expNode := first(doc, `[data-qa="vacancy-experience"]`)
	if expNode == nil {
		return
	}
	v.Experience = text(expNode)

	container := conditionsScope(expNode)
	if container == nil {
		return
	}

	seen := map[string]bool{v.Experience: true}
	container.Find("span, p, div").Each(func(_ int, s *goquery.Selection) {
		if s.Find("p, div").Length() > 0 {
			return // only leaf-like nodes qualify as fragments
		}
		t := text(s)
		if t == "" || utf8.RuneCountInString(t) > maxScheduleFragmentLen {
			return
		}

		// The prefix gets smeared across nodes on some templates.
		clean := strings.TrimSpace(strings.ReplaceAll(t, "Опыт работы:", ""))
		if clean == "" || seen[clean] {
			return
		}
		if !containsAny(strings.ToLower(t), scheduleFragmentKeywords) {
			return
		}

		v.Schedule = append(v.Schedule, clean)
		seen[clean] = true
		seen[t] = true
	})
}

// conditionsScope performs the bounded ancestor walk: at each of up to three
// levels the ancestor's flattened text is checked for condition keywords. The
// first keyword-matching level with more than one p/div child wins; if no
// level clears the child threshold, the last keyword match seen is used.
func conditionsScope(expNode *goquery.Selection) *goquery.Selection {
	current := expNode
	var container *goquery.Selection

	for range 3 {
		parent := current.Parent()
		if parent.Length() == 0 {
			break
		}
		if containsAny(strings.ToLower(text(parent)), scheduleKeywords) {
			container = parent
			if parent.Find("p, div").Length() > 1 {
				break
			}
		}
		current = parent
	}
	return container
}

// vacancySkills is attempted only when the key-skills heading exists; pages
// without it render generic tag chrome that would be collected as noise.
// Branded templates tag each skill with a marker, the standard template
// falls back to generic tag-text elements.
func vacancySkills(doc *goquery.Document) []string {
	skills := []string{}

	header := doc.Find("h2").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.Contains(strings.ToLower(s.Text()), "ключевые навыки")
	}).First()
	if header.Length() == 0 {
		return skills
	}

	elements := doc.Find(`[data-qa="skills-element"]`)
	if elements.Length() == 0 {
		elements = doc.Find(`[data-qa="bloko-tag__text"]`)
	}
	elements.Each(func(_ int, s *goquery.Selection) {
		skills = append(skills, text(s))
	})
	return skills
}

// vacancyCompany tries the company marker, then the title regex, then the
// second comma segment of the title. The title fallbacks are known-imprecise:
// nothing validates that the captured text is actually a company name.
func vacancyCompany(doc *goquery.Document) string {
	if company := text(first(doc, `[data-qa="vacancy-company-name"]`)); company != "" {
		return company
	}

	title := doc.Find("title").First().Text()
	if title == "" {
		return ""
	}

	if m := companyTitleRe.FindStringSubmatch(title); m != nil {
		return strings.TrimSpace(strings.Trim(strings.TrimSpace(m[1]), "_"))
	}

	parts := strings.Split(title, ",")
	if len(parts) > 1 {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
