package batch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ddanilov/hhscreen/internal/hhparse"
	"github.com/ddanilov/hhscreen/internal/logger"
	"github.com/ddanilov/hhscreen/internal/markdown"
	"github.com/ddanilov/hhscreen/internal/scoring"
)

// Mode selects how documents are serialized into the prompt.
type Mode string

const (
	// ModeJSON feeds structured records from the hhparse extractors.
	ModeJSON Mode = "json"
	// ModeMarkdown feeds flowed text from the legacy markdown path.
	ModeMarkdown Mode = "markdown"
)

// Scorer scores one rendered prompt. *scoring.Analyzer satisfies it.
type Scorer interface {
	Analyze(ctx context.Context, prompt string) (*scoring.Analysis, error)
}

// Runner fans scoring work out over vacancy×resume pairs with bounded
// concurrency. Pair failures are logged and dropped; the run fails only on
// context cancellation or an unusable working directory.
type Runner struct {
	scorer         Scorer
	parser         *hhparse.Parser
	mode           Mode
	template       string
	concurrency    int
	maxContentSize int
}

// RunnerOption configures the runner.
type RunnerOption func(*Runner)

// WithMode selects the document serialization mode.
func WithMode(m Mode) RunnerOption {
	return func(r *Runner) {
		r.mode = m
	}
}

// WithTemplate overrides the prompt template.
func WithTemplate(t string) RunnerOption {
	return func(r *Runner) {
		r.template = t
	}
}

// WithConcurrency bounds in-flight scoring calls.
func WithConcurrency(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithMaxContentSize caps each serialized document fed to the prompt, in
// bytes. Zero means unlimited.
func WithMaxContentSize(n int) RunnerOption {
	return func(r *Runner) {
		r.maxContentSize = n
	}
}

// NewRunner creates a Runner.
func NewRunner(scorer Scorer, opts ...RunnerOption) *Runner {
	r := &Runner{
		scorer:      scorer,
		parser:      hhparse.NewParser(),
		mode:        ModeJSON,
		concurrency: 5,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.template == "" {
		if r.mode == ModeMarkdown {
			r.template = scoring.PromptMarkdown
		} else {
			r.template = scoring.PromptJSON
		}
	}
	return r
}

// Run scores every vacancy×resume pair in dir and returns the successful
// analyses, annotated with their source file names.
func (r *Runner) Run(ctx context.Context, dir string) ([]scoring.Analysis, error) {
	vacancies, resumes, err := Scan(dir)
	if err != nil {
		return nil, err
	}
	if len(vacancies) == 0 || len(resumes) == 0 {
		return nil, fmt.Errorf("nothing to process in %s: %d vacancies, %d resumes", dir, len(vacancies), len(resumes))
	}

	var (
		mu      sync.Mutex
		results []scoring.Analysis
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for _, vacancyPath := range vacancies {
		vacancyPayload, err := r.payload(vacancyPath)
		if err != nil {
			logger.Error("skipping vacancy", "file", filepath.Base(vacancyPath), "error", err)
			continue
		}

		for _, resumePath := range resumes {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}

				analysis, err := r.scorePair(ctx, vacancyPath, vacancyPayload, resumePath)
				if err != nil {
					if errors.Is(err, context.Canceled) {
						return err
					}
					logger.Warn("pair failed", "vacancy", filepath.Base(vacancyPath), "resume", filepath.Base(resumePath), "error", err)
					return nil
				}

				mu.Lock()
				results = append(results, *analysis)
				mu.Unlock()
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	logger.Info("batch complete", "scored", len(results))
	return results, nil
}

func (r *Runner) scorePair(ctx context.Context, vacancyPath, vacancyPayload, resumePath string) (*scoring.Analysis, error) {
	resumePayload, err := r.payload(resumePath)
	if err != nil {
		return nil, err
	}

	data := map[string]string{}
	if r.mode == ModeMarkdown {
		data["vacancy_text"] = vacancyPayload
		data["resume_text"] = resumePayload
	} else {
		data["vacancy_json"] = vacancyPayload
		data["resume_json"] = resumePayload
	}

	analysis, err := r.scorer.Analyze(ctx, scoring.RenderPrompt(r.template, data))
	if err != nil {
		return nil, err
	}

	analysis.VacancyFile = filepath.Base(vacancyPath)
	analysis.ResumeFile = filepath.Base(resumePath)
	logger.Info("pair scored", "resume", analysis.ResumeFile, "vacancy", analysis.VacancyFile, "score", analysis.Scoring.TotalScore)
	return analysis, nil
}

// payload reads and serializes one document according to the runner mode.
func (r *Runner) payload(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	var out string
	if r.mode == ModeMarkdown {
		out, err = markdown.Render(raw)
		if err != nil {
			return "", err
		}
	} else {
		doc, err := r.parser.Parse(raw)
		if err != nil {
			return "", err
		}

		var record any = doc.Resume
		if doc.Kind == hhparse.KindVacancy {
			record = doc.Vacancy
		}
		b, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return "", err
		}
		out = string(b)
	}

	if r.maxContentSize > 0 && len(out) > r.maxContentSize {
		logger.Debug("payload truncated", "file", filepath.Base(path), "from", len(out), "to", r.maxContentSize)
		out = out[:r.maxContentSize]
	}
	return out, nil
}
