// Package batch orchestrates scoring runs over every (vacancy, resume) pair
// found in a working directory of saved pages.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ddanilov/hhscreen/internal/logger"
)

// vacancyKeyword classifies files into the vacancy bucket by name. Saved
// vacancy pages carry the word in their filename; everything else is assumed
// to be a resume.
const vacancyKeyword = "вакансия"

// Scan lists .mhtml files in dir and splits them into vacancy and resume
// buckets by filename.
func Scan(dir string) (vacancies, resumes []string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("scan %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := strings.ToLower(entry.Name())
		if !strings.HasSuffix(name, ".mhtml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if strings.Contains(name, vacancyKeyword) {
			vacancies = append(vacancies, path)
		} else {
			resumes = append(resumes, path)
		}
	}

	logger.Info("scanned working directory", "dir", dir, "vacancies", len(vacancies), "resumes", len(resumes))
	return vacancies, resumes, nil
}
