package hhparse

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractResume derives a resume record from a cleaned tree. Every field rule
// is independent: a marker missing from this particular template leaves its
// field at the default and the remaining rules run unaffected.
func ExtractResume(doc *goquery.Document) *Resume {
	r := newResume()

	r.Name = text(first(doc, `[data-qa="bloko-header-1"]`))
	r.Title = text(first(doc, `[data-qa="resume-block-title-position"]`))
	r.Salary = text(first(doc, `[data-qa="resume-block-salary"]`))
	r.Gender = text(first(doc, `[data-qa="resume-personal-gender"]`))
	r.Age = text(first(doc, `[data-qa="resume-personal-age"]`))
	r.BirthDate = text(first(doc, `[data-qa="resume-personal-birthday"]`))
	r.Area = text(first(doc, `[data-qa="resume-personal-address"]`))

	// The metro marker is absent on older templates; the CSS class survives.
	r.Metro = text(first(doc, `[data-qa="resume-personal-metro"]`, ".metro-station"))

	r.Relocation = relocation(doc)

	extractSpecializations(doc, r)

	r.ExperienceTotal = text(first(doc, ".resume-block__title-text_sub"))
	r.ExperienceItems = experienceItems(doc)
	r.EducationItems = educationItems(doc)
	r.Skills = resumeSkills(doc)

	if langs := first(doc, `[data-qa="resume-block-languages"]`); langs != nil {
		langs.Find(`[data-qa="resume-block-language-item"]`).Each(func(_ int, s *goquery.Selection) {
			r.LanguageItems = append(r.LanguageItems, text(s))
		})
	}

	r.DriverExp = text(first(doc, `[data-qa="resume-block-driver-experience"]`))
	r.About = text(first(doc, `[data-qa="resume-block-skills-content"]`))

	if add := first(doc, `[data-qa="resume-block-additional"]`); add != nil {
		// Paragraphs hold lines like "Гражданство: Россия".
		add.Find("p").Each(func(_ int, s *goquery.Selection) {
			r.Citizenship = append(r.Citizenship, text(s))
		})
	}

	return r
}

// relocation has no marker of its own. HH.ru renders it in the same paragraph
// as the address, so the address parent's text is split on commas and only
// fragments mentioning relocation or business trips are kept.
func relocation(doc *goquery.Document) string {
	addr := first(doc, `[data-qa="resume-personal-address"]`)
	if addr == nil {
		return ""
	}
	parent := addr.Parent()
	if parent.Length() == 0 {
		return ""
	}

	var kept []string
	for _, part := range strings.Split(text(parent), ",") {
		part = strings.TrimSpace(part)
		lower := strings.ToLower(part)
		if strings.Contains(lower, "переезду") || strings.Contains(lower, "командировкам") {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, ", ")
}

// extractSpecializations scopes on the block container enclosing the
// specialization category marker: its paragraphs are employment modes, its
// specialization markers are the specializations.
func extractSpecializations(doc *goquery.Document, r *Resume) {
	cat := first(doc, `[data-qa="resume-block-specialization-category"]`)
	if cat == nil {
		return
	}
	container := cat.Closest(".resume-block-container")
	if container.Length() == 0 {
		return
	}

	container.Find("p").Each(func(_ int, s *goquery.Selection) {
		r.EmploymentModes = append(r.EmploymentModes, text(s))
	})
	container.Find(`[data-qa="resume-block-position-specialization"]`).Each(func(_ int, s *goquery.Selection) {
		r.Specializations = append(r.Specializations, text(s))
	})
}

func experienceItems(doc *goquery.Document) []ExperienceItem {
	items := []ExperienceItem{}
	container := first(doc, `[data-qa="resume-block-experience"]`)
	if container == nil {
		return items
	}

	container.Find(".resume-block-item-gap").Each(func(_ int, item *goquery.Selection) {
		period := text(item.Find(".bloko-column_l-2").First())

		right := item.Find(".bloko-column_l-10").First()
		if right.Length() == 0 {
			return
		}

		company := text(right.Find(`[data-qa="resume-block-experience-employer"]`).First())
		if company == "" {
			company = text(right.Find(".bloko-text_strong").First())
		}

		website := experienceWebsite(right)
		industry := text(right.Find(".resume-block__experience-industries").First())
		position := text(right.Find(`[data-qa="resume-block-experience-position"]`).First())
		description := text(right.Find(`[data-qa="resume-block-experience-description"]`).First())

		// A block with none of the named fields still carries information;
		// keep its full text rather than dropping the entry silently.
		if company == "" && position == "" && description == "" {
			description = text(right)
		}

		items = append(items, ExperienceItem{
			Period:      period,
			Company:     company,
			Website:     website,
			Industry:    industry,
			Position:    position,
			Description: description,
		})
	})
	return items
}

// experienceWebsite picks the employer site from the first anchor in the wide
// column. HH-internal and no-op hrefs are rejected; failing that, anchor text
// that looks like a bare domain is accepted.
func experienceWebsite(right *goquery.Selection) string {
	link := right.Find("a[href]").First()
	if link.Length() == 0 {
		return ""
	}

	website := ""
	if href, ok := link.Attr("href"); ok {
		if !strings.Contains(href, "hh.ru") && !strings.Contains(href, "javascript") {
			website = href
		}
	}
	if website == "" {
		if linkText := text(link); strings.Contains(linkText, ".") {
			website = linkText
		}
	}
	return website
}

// educationItems reads education blocks and drops exact duplicates. Saved
// pages sometimes repeat the whole education section in markup, so entries
// are deduplicated on the (year, name, details) triple, first seen wins.
func educationItems(doc *goquery.Document) []EducationItem {
	items := []EducationItem{}
	container := first(doc, `[data-qa="resume-block-education"]`)
	if container == nil {
		return items
	}

	seen := map[EducationItem]bool{}
	container.Find(".resume-block-item-gap").Each(func(_ int, item *goquery.Selection) {
		year := text(item.Find(".bloko-column_l-2").First())
		right := item.Find(".bloko-column_l-10").First()
		if right.Length() == 0 {
			return
		}

		entry := EducationItem{
			Year:    year,
			Name:    text(right.Find(`[data-qa="resume-block-education-name"]`).First()),
			Details: text(right.Find(`[data-qa="resume-block-education-organization"]`).First()),
		}
		if seen[entry] {
			return
		}
		seen[entry] = true
		items = append(items, entry)
	})
	return items
}

// resumeSkills locates the skills block by marker, else by a heading
// containing "навыки" and its enclosing resume block. Entries from the
// suggested-skill widget ("научиться") are not actual skills and are dropped.
func resumeSkills(doc *goquery.Document) []string {
	skills := []string{}

	container := doc.Find(`[data-qa="skills-table"]`).First()
	if container.Length() == 0 {
		header := doc.Find("h2").FilterFunction(func(_ int, s *goquery.Selection) bool {
			return strings.Contains(strings.ToLower(s.Text()), "навыки")
		}).First()
		if header.Length() == 0 {
			return skills
		}
		container = header.Closest(".resume-block")
		if container.Length() == 0 {
			return skills
		}
	}

	tags := container.Find(`[data-qa="bloko-tag__text"]`)
	if tags.Length() == 0 {
		tags = container.Find(".bloko-tag__section_text")
	}

	tags.Each(func(_ int, s *goquery.Selection) {
		t := text(s)
		if strings.Contains(strings.ToLower(t), "научиться") {
			return
		}
		skills = append(skills, t)
	})
	return skills
}
