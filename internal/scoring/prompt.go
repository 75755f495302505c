package scoring

import "strings"

// systemPrompt pins the model to bare JSON output.
const systemPrompt = "You are a precise JSON-outputting engine. Output ONLY valid JSON matching the schema."

// PromptJSON scores structured records produced by the hhparse extractors.
const PromptJSON = `Ты — опытный HR-эксперт. Сравни вакансию и резюме кандидата и оцени соответствие.

Вакансия (JSON):
{vacancy_json}

Резюме кандидата (JSON):
{resume_json}

Оцени кандидата по шкале 0-100 с разбивкой:
- hard_skills: до 35 баллов за технические навыки;
- experience: до 35 баллов за релевантность опыта;
- location: до 20 баллов за локацию и готовность к переезду;
- soft_skills_culture: до 10 баллов за soft skills и культурное соответствие.

Вердикт строго один из: "Рекомендован", "Резерв", "Отказ".

Верни ТОЛЬКО JSON без пояснений, по схеме:
{
  "candidate_info": {"name": "...", "current_location": "...", "industry_background": "..."},
  "scoring": {"total_score": 0, "breakdown": {"hard_skills": "X/35", "experience": "X/35", "location": "X/20", "soft_skills_culture": "X/10"}},
  "verdict": "...",
  "location_logic": "...",
  "pros": ["..."],
  "cons": ["..."],
  "red_flags": ["..."],
  "reasoning_chain": "..."
}`

// PromptMarkdown is the legacy template fed by the flowed-text path.
const PromptMarkdown = `Ты — опытный HR-эксперт. Сравни вакансию и резюме кандидата и оцени соответствие.

Вакансия:
{vacancy_text}

Резюме кандидата:
{resume_text}

Оцени кандидата по шкале 0-100 с разбивкой:
- hard_skills: до 35 баллов за технические навыки;
- experience: до 35 баллов за релевантность опыта;
- location: до 20 баллов за локацию и готовность к переезду;
- soft_skills_culture: до 10 баллов за soft skills и культурное соответствие.

Вердикт строго один из: "Рекомендован", "Резерв", "Отказ".

Верни ТОЛЬКО JSON без пояснений, по схеме:
{
  "candidate_info": {"name": "...", "current_location": "...", "industry_background": "..."},
  "scoring": {"total_score": 0, "breakdown": {"hard_skills": "X/35", "experience": "X/35", "location": "X/20", "soft_skills_culture": "X/10"}},
  "verdict": "...",
  "location_logic": "...",
  "pros": ["..."],
  "cons": ["..."],
  "red_flags": ["..."],
  "reasoning_chain": "..."
}`

// RenderPrompt substitutes {key} placeholders with the given values. Keys
// with empty values are left untouched so a half-filled template is visible
// in logs instead of silently collapsing.
func RenderPrompt(template string, data map[string]string) string {
	out := template
	for key, value := range data {
		if value == "" {
			continue
		}
		out = strings.ReplaceAll(out, "{"+key+"}", value)
	}
	return out
}
