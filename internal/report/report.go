// Package report renders scored analyses as a Markdown hiring report and
// manages the timestamped result files they are built from.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/ddanilov/hhscreen/internal/logger"
	"github.com/ddanilov/hhscreen/internal/output"
	"github.com/ddanilov/hhscreen/internal/scoring"
)

const resultsPattern = "analysis_results_*.json"

// SaveResults writes the raw analyses as a timestamped JSON file under dir,
// creating it if needed, and returns the file path.
func SaveResults(results []scoring.Analysis, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, fmt.Sprintf("analysis_results_%s.json", time.Now().Format("20060102_150405")))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	w, err := output.NewWriter(f, output.FormatJSON)
	if err != nil {
		return "", err
	}
	for _, r := range results {
		if err := w.Write(r); err != nil {
			return "", err
		}
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	logger.Info("results saved", "path", path)
	return path, nil
}

// SaveReport renders results and writes the report next to the result files.
func SaveReport(results []scoring.Analysis, dir string) (string, error) {
	content := Generate(results)
	if content == "" {
		return "", fmt.Errorf("no results to report")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, fmt.Sprintf("report_%s.md", time.Now().Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", err
	}
	logger.Info("report created", "path", path)
	return path, nil
}

// LoadLatest loads the newest analysis_results_*.json from dir, falling back
// to the current directory for results saved by older runs.
func LoadLatest(dir string) ([]scoring.Analysis, error) {
	files, err := filepath.Glob(filepath.Join(dir, resultsPattern))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		files, _ = filepath.Glob(resultsPattern)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no result files found in %s", dir)
	}

	latest := files[0]
	var latestMod time.Time
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			continue
		}
		if info.ModTime().After(latestMod) {
			latestMod = info.ModTime()
			latest = f
		}
	}

	logger.Info("loading results", "path", latest)
	raw, err := os.ReadFile(latest)
	if err != nil {
		return nil, err
	}

	var results []scoring.Analysis
	if err := json.Unmarshal(raw, &results); err != nil {
		// A single-result file is a bare object, not an array.
		var one scoring.Analysis
		if err2 := json.Unmarshal(raw, &one); err2 != nil {
			return nil, fmt.Errorf("decode %s: %w", latest, err)
		}
		results = []scoring.Analysis{one}
	}
	return results, nil
}

// Generate renders the Markdown report: candidates grouped by vacancy,
// sorted by score, with top-3 and bottom-3 sections. Returns "" for empty
// input.
func Generate(results []scoring.Analysis) string {
	if len(results) == 0 {
		return ""
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("# Отчет по кандидатам от %s", time.Now().Format("2006-01-02 15:04")), "")

	grouped := map[string][]scoring.Analysis{}
	var order []string
	for _, r := range results {
		key := r.VacancyFile
		if key == "" {
			key = "Неизвестная вакансия"
		}
		if _, ok := grouped[key]; !ok {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], r)
	}

	for _, vacancy := range order {
		candidates := grouped[vacancy]
		slices.SortStableFunc(candidates, func(a, b scoring.Analysis) int {
			return b.Scoring.TotalScore - a.Scoring.TotalScore
		})

		lines = append(lines,
			fmt.Sprintf("## Вакансия: %s", vacancy),
			fmt.Sprintf("Всего кандидатов: %d", len(candidates)),
			"")

		lines = append(lines, "### 🏆 ТОП-3 ЛУЧШИХ КАНДИДАТОВ")
		top := min(3, len(candidates))
		for i := 0; i < top; i++ {
			lines = append(lines, formatCandidate(i+1, candidates[i])...)
		}
		lines = append(lines, "")

		if len(candidates) > 3 {
			lines = append(lines, "### 📉 BOTTOM-3 (АУТСАЙДЕРЫ)")
			bottomStart := max(len(candidates)-3, top)
			if bottomStart >= len(candidates) {
				lines = append(lines, "(Все кандидаты вошли в ТОП-3)")
			}
			for i := bottomStart; i < len(candidates); i++ {
				lines = append(lines, formatCandidate(i+1, candidates[i])...)
			}
		}

		lines = append(lines, "", strings.Repeat("*", 50), "")
	}

	return strings.Join(lines, "\n")
}

func formatCandidate(rank int, c scoring.Analysis) []string {
	score := c.Scoring.TotalScore
	icon := "🔴"
	switch {
	case score >= 80:
		icon = "🟢"
	case score >= 50:
		icon = "🟡"
	}

	name := c.CandidateInfo.Name
	if name == "" {
		name = "Не указано"
	}

	lines := []string{
		fmt.Sprintf("### %d. %s %s (Оценка: %d/100)", rank, icon, name, score),
		fmt.Sprintf("**Вердикт:** %s", c.Verdict),
		fmt.Sprintf("📄 **Файл:** %s", c.ResumeFile),
		"",
		"| Критерий | Оценка |",
		"| --- | --- |",
		fmt.Sprintf("| Hard Skills | %s |", c.Scoring.Breakdown.HardSkills),
		fmt.Sprintf("| Опыт | %s |", c.Scoring.Breakdown.Experience),
		fmt.Sprintf("| Локация | %s |", c.Scoring.Breakdown.Location),
		fmt.Sprintf("| Soft Skills | %s |", c.Scoring.Breakdown.SoftSkillsCulture),
		"",
	}

	if len(c.Pros) > 0 {
		lines = append(lines, "**Плюсы:**")
		for _, p := range c.Pros {
			lines = append(lines, "- "+p)
		}
		lines = append(lines, "")
	}
	if len(c.Cons) > 0 {
		lines = append(lines, "**Минусы/Риски:**")
		for _, con := range c.Cons {
			lines = append(lines, "- "+con)
		}
		lines = append(lines, "")
	}
	if c.ReasoningChain != "" {
		lines = append(lines, fmt.Sprintf("**Обоснование:** %s", c.ReasoningChain))
	}

	lines = append(lines, "---")
	return lines
}
