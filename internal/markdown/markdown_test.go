package markdown

import (
	"strings"
	"testing"
)

func TestRenderVacancyLayout(t *testing.T) {
	raw := []byte(`<html><body>
		<h1 data-qa="vacancy-title">Инженер ПТО</h1>
		<span data-qa="vacancy-salary">от 120 000 ₽</span>
		<div>
			<p>Опыт работы: <span data-qa="vacancy-experience">3–6 лет</span></p>
			<p>вакансию смотрят 12 человек</p>
		</div>
		<div data-qa="vacancy-description"><p>Ведение документации.</p><script>alert(1)</script></div>
		<span data-qa="skills-element">AutoCAD</span>
		<span data-qa="skills-element">Сметы</span>
	</body></html>`)

	got, err := Render(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"# Инженер ПТО",
		"**Зарплата:** от 120 000 ₽",
		"### Краткие условия",
		"3–6 лет",
		"### Описание вакансии",
		"Ведение документации.",
		"### Ключевые навыки",
		"* AutoCAD",
		"* Сметы",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, got)
		}
	}
	for _, not := range []string{"вакансию смотрят", "alert(1)"} {
		if strings.Contains(got, not) {
			t.Errorf("expected output to exclude %q, got:\n%s", not, got)
		}
	}
}

func TestRenderResumeLayout(t *testing.T) {
	raw := []byte(`<html><body><div class="resume-wrapper">
		<div class="resume-header-title"><h1>Иванов Иван</h1></div>
		<h2>Опыт работы</h2>
		<p>Инженер в ООО Стройка. <a href="https://stroyka.ru">stroyka.ru</a></p>
		<img src="photo.jpg">
	</div></body></html>`)

	got, err := Render(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(got, "Иванов Иван") {
		t.Errorf("header missing:\n%s", got)
	}
	// The header block is lifted out of the wrapper and must not repeat.
	if strings.Count(got, "Иванов Иван") != 1 {
		t.Errorf("header duplicated:\n%s", got)
	}
	if !strings.Contains(got, "Опыт работы") || !strings.Contains(got, "ООО Стройка") {
		t.Errorf("content missing:\n%s", got)
	}
	// Links become bare text, images disappear entirely.
	if strings.Contains(got, "https://stroyka.ru") || strings.Contains(got, "photo.jpg") {
		t.Errorf("link or image survived:\n%s", got)
	}
	if !strings.Contains(got, "stroyka.ru") {
		t.Errorf("anchor text lost:\n%s", got)
	}
}

func TestRenderUnreadableArchive(t *testing.T) {
	if _, err := Render([]byte("MIME-Version: 1.0\nContent-Type: text/plain\n\nno markup here")); err == nil {
		t.Fatal("expected an error for an archive without a markup part")
	}
}
