package hhparse

import (
	"testing"
)

func TestExtractResumePersonalFields(t *testing.T) {
	doc := mustDoc(t, `<html><body>
		<h1 data-qa="bloko-header-1">Иванов Иван</h1>
		<span data-qa="resume-block-title-position">Инженер ПТО</span>
		<span data-qa="resume-block-salary">150 000 ₽</span>
		<span data-qa="resume-personal-gender">Мужчина</span>
		<span data-qa="resume-personal-age">34 года</span>
		<span data-qa="resume-personal-birthday">1 января 1991</span>
		<p><span data-qa="resume-personal-address">Москва</span>, м. Таганская, готов к переезду, готов к командировкам</p>
	</body></html>`)

	r := ExtractResume(doc)

	if r.Name != "Иванов Иван" {
		t.Errorf("name: got %q", r.Name)
	}
	if r.Title != "Инженер ПТО" {
		t.Errorf("title: got %q", r.Title)
	}
	if r.Salary != "150 000 ₽" {
		t.Errorf("salary: got %q", r.Salary)
	}
	if r.Gender != "Мужчина" || r.Age != "34 года" || r.BirthDate != "1 января 1991" {
		t.Errorf("personal fields: got %q / %q / %q", r.Gender, r.Age, r.BirthDate)
	}
	if r.Area != "Москва" {
		t.Errorf("area: got %q", r.Area)
	}
	if r.Relocation != "готов к переезду, готов к командировкам" {
		t.Errorf("relocation: got %q", r.Relocation)
	}
}

func TestExtractResumeMetroFallback(t *testing.T) {
	t.Run("marker wins", func(t *testing.T) {
		doc := mustDoc(t, `<html><body><span data-qa="resume-personal-metro">Таганская</span><span class="metro-station">Курская</span></body></html>`)
		if got := ExtractResume(doc).Metro; got != "Таганская" {
			t.Errorf("got %q", got)
		}
	})
	t.Run("class fallback", func(t *testing.T) {
		doc := mustDoc(t, `<html><body><span class="metro-station">Курская</span></body></html>`)
		if got := ExtractResume(doc).Metro; got != "Курская" {
			t.Errorf("got %q", got)
		}
	})
}

func TestExtractResumeSpecializations(t *testing.T) {
	doc := mustDoc(t, `<html><body><div class="resume-block-container">
		<span data-qa="resume-block-specialization-category">Строительство</span>
		<p>Полная занятость</p>
		<p>Полный день</p>
		<ul>
			<li data-qa="resume-block-position-specialization">Инженер ПТО</li>
			<li data-qa="resume-block-position-specialization">Проектировщик</li>
		</ul>
	</div></body></html>`)

	r := ExtractResume(doc)
	if len(r.EmploymentModes) != 2 || r.EmploymentModes[0] != "Полная занятость" {
		t.Errorf("employment modes: got %v", r.EmploymentModes)
	}
	if len(r.Specializations) != 2 || r.Specializations[1] != "Проектировщик" {
		t.Errorf("specializations: got %v", r.Specializations)
	}
}

func TestExtractResumeExperience(t *testing.T) {
	doc := mustDoc(t, `<html><body><div data-qa="resume-block-experience">
		<div class="resume-block-item-gap">
			<div class="bloko-column_l-2">2019 — 2024</div>
			<div class="bloko-column_l-10">
				<span data-qa="resume-block-experience-employer">ООО Стройка</span>
				<a href="https://stroyka.ru">stroyka.ru</a>
				<div class="resume-block__experience-industries">Строительство</div>
				<span data-qa="resume-block-experience-position">Инженер</span>
				<div data-qa="resume-block-experience-description">Вел объекты</div>
			</div>
		</div>
		<div class="resume-block-item-gap">
			<div class="bloko-column_l-2">2016 — 2019</div>
			<div class="bloko-column_l-10">Просто текст о работе без разметки</div>
		</div>
	</div></body></html>`)

	r := ExtractResume(doc)
	if len(r.ExperienceItems) != 2 {
		t.Fatalf("expected 2 items, got %d", len(r.ExperienceItems))
	}

	first := r.ExperienceItems[0]
	if first.Period != "2019 — 2024" || first.Company != "ООО Стройка" || first.Position != "Инженер" {
		t.Errorf("first item: %+v", first)
	}
	if first.Website != "https://stroyka.ru" {
		t.Errorf("website: got %q", first.Website)
	}
	if first.Industry != "Строительство" || first.Description != "Вел объекты" {
		t.Errorf("first item details: %+v", first)
	}

	// Block with no named fields keeps its full text as description.
	second := r.ExperienceItems[1]
	if second.Company != "" || second.Position != "" {
		t.Errorf("second item should have empty named fields: %+v", second)
	}
	if second.Description != "Просто текст о работе без разметки" {
		t.Errorf("description fallback: got %q", second.Description)
	}
}

func TestExperienceWebsite(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "external href",
			html: `<div><a href="https://example.com/about">о компании</a></div>`,
			want: "https://example.com/about",
		},
		{
			name: "hh link with domain-looking text",
			html: `<div><a href="https://hh.ru/employer/1">example.com</a></div>`,
			want: "example.com",
		},
		{
			name: "noop link with plain text",
			html: `<div><a href="javascript:void(0)">Компания</a></div>`,
			want: "",
		},
		{
			name: "no anchor",
			html: `<div>нет ссылок</div>`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustDoc(t, "<html><body>"+tt.html+"</body></html>")
			if got := experienceWebsite(doc.Find("div").First()); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestExtractResumeEducationDeduplicates(t *testing.T) {
	block := `<div class="resume-block-item-gap">
		<div class="bloko-column_l-2">2015</div>
		<div class="bloko-column_l-10">
			<span data-qa="resume-block-education-name">МГСУ</span>
			<span data-qa="resume-block-education-organization">ПГС</span>
		</div>
	</div>`
	doc := mustDoc(t, `<html><body><div data-qa="resume-block-education">`+block+block+`</div></body></html>`)

	r := ExtractResume(doc)
	if len(r.EducationItems) != 1 {
		t.Fatalf("expected 1 deduplicated item, got %d", len(r.EducationItems))
	}
	item := r.EducationItems[0]
	if item.Year != "2015" || item.Name != "МГСУ" || item.Details != "ПГС" {
		t.Errorf("unexpected item: %+v", item)
	}
}

func TestExtractResumeSkills(t *testing.T) {
	t.Run("skills table marker", func(t *testing.T) {
		doc := mustDoc(t, `<html><body><div data-qa="skills-table">
			<span data-qa="bloko-tag__text">AutoCAD</span>
			<span data-qa="bloko-tag__text">Сметы</span>
			<span data-qa="bloko-tag__text">Хотите научиться? Excel</span>
		</div></body></html>`)
		r := ExtractResume(doc)
		if len(r.Skills) != 2 || r.Skills[0] != "AutoCAD" || r.Skills[1] != "Сметы" {
			t.Errorf("got %v", r.Skills)
		}
	})

	t.Run("heading fallback with class tags", func(t *testing.T) {
		doc := mustDoc(t, `<html><body><div class="resume-block">
			<h2>Ключевые навыки</h2>
			<span class="bloko-tag__section_text">MS Project</span>
		</div></body></html>`)
		r := ExtractResume(doc)
		if len(r.Skills) != 1 || r.Skills[0] != "MS Project" {
			t.Errorf("got %v", r.Skills)
		}
	})

	t.Run("absent everywhere", func(t *testing.T) {
		doc := mustDoc(t, `<html><body><p>без навыков</p></body></html>`)
		if got := ExtractResume(doc).Skills; len(got) != 0 {
			t.Errorf("got %v", got)
		}
	})
}

func TestExtractResumeLists(t *testing.T) {
	doc := mustDoc(t, `<html><body>
		<div data-qa="resume-block-languages">
			<p data-qa="resume-block-language-item">Русский — родной</p>
			<p data-qa="resume-block-language-item">Английский — B1</p>
		</div>
		<span data-qa="resume-block-driver-experience">Права категории B</span>
		<div data-qa="resume-block-skills-content">Ответственный инженер</div>
		<div data-qa="resume-block-additional">
			<p>Гражданство: Россия</p>
			<p>Разрешение на работу: Россия</p>
		</div>
	</body></html>`)

	r := ExtractResume(doc)
	if len(r.LanguageItems) != 2 || r.LanguageItems[1] != "Английский — B1" {
		t.Errorf("languages: %v", r.LanguageItems)
	}
	if r.DriverExp != "Права категории B" {
		t.Errorf("driver: %q", r.DriverExp)
	}
	if r.About != "Ответственный инженер" {
		t.Errorf("about: %q", r.About)
	}
	if len(r.Citizenship) != 2 || r.Citizenship[0] != "Гражданство: Россия" {
		t.Errorf("citizenship: %v", r.Citizenship)
	}
}
