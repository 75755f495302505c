package hhparse

import (
	"strings"
	"testing"
)

func TestExtractVacancyBasicFields(t *testing.T) {
	doc := mustDoc(t, `<html><body>
		<h1 data-qa="vacancy-title">Инженер ПТО</h1>
		<span data-qa="vacancy-salary">от 120 000 ₽</span>
		<div data-qa="vacancy-description">Ведение исполнительной документации</div>
		<span data-qa="vacancy-company-name">ООО Стройка</span>
		<span data-qa="vacancy-view-location">Москва, ул. Ленина 1</span>
	</body></html>`)

	v := ExtractVacancy(doc)
	if v.Title != "Инженер ПТО" {
		t.Errorf("title: got %q", v.Title)
	}
	if v.Salary != "от 120 000 ₽" {
		t.Errorf("salary: got %q", v.Salary)
	}
	if v.Description != "Ведение исполнительной документации" {
		t.Errorf("description: got %q", v.Description)
	}
	if v.Company != "ООО Стройка" {
		t.Errorf("company: got %q", v.Company)
	}
	if v.Address != "Москва, ул. Ленина 1" {
		t.Errorf("address: got %q", v.Address)
	}
}

func TestExtractVacancyTitleFallback(t *testing.T) {
	doc := mustDoc(t, `<html><body><h1 data-qa="title">Сметчик</h1></body></html>`)
	if got := ExtractVacancy(doc).Title; got != "Сметчик" {
		t.Errorf("got %q", got)
	}
}

func TestExtractVacancySchedule(t *testing.T) {
	// The description paragraph shares the ancestor scope with the schedule
	// fragments; its length must push it past the fragment cap.
	long := strings.Repeat("Обязанности инженера на объекте. ", 20)
	doc := mustDoc(t, `<html><body><div>
		<p>Опыт работы: <span data-qa="vacancy-experience">3–6 лет</span></p>
		<p>Полная занятость, полный день</p>
		<p>График: 5/2, гибкое начало рабочего дня и рабочие часы</p>
		<p>` + long + `</p>
	</div></body></html>`)

	v := ExtractVacancy(doc)
	if v.Experience != "3–6 лет" {
		t.Errorf("experience: got %q", v.Experience)
	}
	want := []string{"Полная занятость, полный день", "График: 5/2, гибкое начало рабочего дня и рабочие часы"}
	if len(v.Schedule) != len(want) {
		t.Fatalf("expected %d fragments, got %v", len(want), v.Schedule)
	}
	for i, w := range want {
		if v.Schedule[i] != w {
			t.Errorf("fragment %d: expected %q, got %q", i, w, v.Schedule[i])
		}
	}
}

func TestExtractVacancyScheduleStripsPrefix(t *testing.T) {
	doc := mustDoc(t, `<html><body><div>
		<span data-qa="vacancy-experience">1–3 года</span>
		<p>Опыт работы: частичная занятость</p>
		<p>Удаленный формат</p>
	</div></body></html>`)

	v := ExtractVacancy(doc)
	if len(v.Schedule) != 2 {
		t.Fatalf("got %v", v.Schedule)
	}
	if v.Schedule[0] != "частичная занятость" {
		t.Errorf("prefix not stripped: got %q", v.Schedule[0])
	}
	if v.Schedule[1] != "Удаленный формат" {
		t.Errorf("got %q", v.Schedule[1])
	}
}

func TestExtractVacancyScheduleNoExperienceMarker(t *testing.T) {
	doc := mustDoc(t, `<html><body><div><p>График: 5/2</p></div></body></html>`)
	v := ExtractVacancy(doc)
	if v.Experience != "" || len(v.Schedule) != 0 {
		t.Errorf("expected empty conditions, got %q / %v", v.Experience, v.Schedule)
	}
}

func TestVacancySkills(t *testing.T) {
	t.Run("gated on heading", func(t *testing.T) {
		doc := mustDoc(t, `<html><body>
			<span data-qa="bloko-tag__text">AutoCAD</span>
		</body></html>`)
		if got := ExtractVacancy(doc).Skills; len(got) != 0 {
			t.Errorf("skills without heading must stay empty, got %v", got)
		}
	})

	t.Run("branded markers preferred", func(t *testing.T) {
		doc := mustDoc(t, `<html><body>
			<h2>Ключевые навыки</h2>
			<span data-qa="skills-element">Сметное дело</span>
			<span data-qa="bloko-tag__text">мусорный тег</span>
		</body></html>`)
		got := ExtractVacancy(doc).Skills
		if len(got) != 1 || got[0] != "Сметное дело" {
			t.Errorf("got %v", got)
		}
	})

	t.Run("generic tag fallback", func(t *testing.T) {
		doc := mustDoc(t, `<html><body>
			<h2>Ключевые навыки</h2>
			<span data-qa="bloko-tag__text">AutoCAD</span>
			<span data-qa="bloko-tag__text">ПТО</span>
		</body></html>`)
		got := ExtractVacancy(doc).Skills
		if len(got) != 2 || got[0] != "AutoCAD" || got[1] != "ПТО" {
			t.Errorf("got %v", got)
		}
	})
}

func TestVacancyCompany(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "marker",
			html: `<head><title>Вакансия Инженер, работа в компании Другая, Москва</title></head><body><span data-qa="vacancy-company-name">ООО Стройка</span></body>`,
			want: "ООО Стройка",
		},
		{
			name: "title pattern",
			html: `<head><title>Вакансия Инженер ПТО, работа в компании __СУ-155__, зарплата</title></head><body></body>`,
			want: "СУ-155",
		},
		{
			name: "second comma segment",
			html: `<head><title>Инженер ПТО, СУ-155, Москва</title></head><body></body>`,
			want: "СУ-155",
		},
		{
			name: "nothing to go on",
			html: `<head><title>Инженер ПТО</title></head><body></body>`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustDoc(t, "<html>"+tt.html+"</html>")
			if got := vacancyCompany(doc); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestExtractVacancyAddressFallback(t *testing.T) {
	doc := mustDoc(t, `<html><body><div class="vacancy-creation-time-redesigned">Санкт-Петербург</div></body></html>`)
	if got := ExtractVacancy(doc).Address; got != "Санкт-Петербург" {
		t.Errorf("got %q", got)
	}
}
