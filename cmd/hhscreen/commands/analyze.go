package commands

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ddanilov/hhscreen/internal/batch"
	"github.com/ddanilov/hhscreen/internal/llm"
	"github.com/ddanilov/hhscreen/internal/logger"
	"github.com/ddanilov/hhscreen/internal/report"
	"github.com/ddanilov/hhscreen/internal/scoring"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score every resume against every vacancy in a directory",
	Long: `Analyze scans a directory of saved HH.ru pages (.mhtml), splits them
into vacancies and resumes by filename, scores every pair through the
configured LLM provider and writes timestamped results plus a Markdown
report.

Examples:
  # Default structured mode, provider auto-detected from env keys
  hhscreen analyze -d ./candidates

  # Legacy flowed-text mode with a custom prompt template
  hhscreen analyze -d ./candidates --mode markdown --prompt hr_expert.txt

  # OpenRouter with an explicit model
  hhscreen analyze -d ./candidates -p openrouter -m anthropic/claude-sonnet-4`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	flags := analyzeCmd.Flags()

	flags.StringP("dir", "d", ".", "directory with saved .mhtml pages")
	flags.String("reports-dir", "reports", "directory for results and reports")

	// LLM settings
	flags.StringP("provider", "p", "", "LLM provider: openrouter, openai, anthropic (auto-detects from env vars)")
	flags.StringP("model", "m", "", "model name (provider-specific)")
	flags.StringP("api-key", "k", "", "API key (or use env var)")
	flags.String("base-url", "", "custom API base URL")

	// Scoring settings
	flags.String("mode", "json", "document serialization mode: json, markdown")
	flags.String("prompt", "", "path to a custom prompt template file")
	flags.IntP("concurrency", "c", 5, "concurrent scoring requests")
	flags.Int("max-retries", 5, "max attempts against a rate-limited backend")
	flags.Duration("timeout", 2*time.Minute, "request timeout")
	flags.String("max-content-size", "0", "max serialized document size fed to the prompt (e.g. 100KB, 0=unlimited)")

	_ = viper.BindPFlag("provider", flags.Lookup("provider"))
	_ = viper.BindPFlag("model", flags.Lookup("model"))
	_ = viper.BindPFlag("api_key", flags.Lookup("api-key"))
	_ = viper.BindPFlag("base_url", flags.Lookup("base-url"))
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	provider, err := buildProvider(cmd)
	if err != nil {
		return err
	}

	maxRetries, _ := cmd.Flags().GetInt("max-retries")
	analyzer := scoring.New(provider, scoring.WithMaxRetries(maxRetries))

	mode, _ := cmd.Flags().GetString("mode")
	switch batch.Mode(mode) {
	case batch.ModeJSON, batch.ModeMarkdown:
	default:
		return fmt.Errorf("unknown mode: %s (use 'json' or 'markdown')", mode)
	}

	opts := []batch.RunnerOption{
		batch.WithMode(batch.Mode(mode)),
	}

	if concurrency, _ := cmd.Flags().GetInt("concurrency"); concurrency > 0 {
		opts = append(opts, batch.WithConcurrency(concurrency))
	}

	if promptPath, _ := cmd.Flags().GetString("prompt"); promptPath != "" {
		template, err := os.ReadFile(promptPath) //#nosec G304 -- CLI tool reads a user-specified template
		if err != nil {
			return fmt.Errorf("read prompt template: %w", err)
		}
		opts = append(opts, batch.WithTemplate(string(template)))
	}

	if sizeStr, _ := cmd.Flags().GetString("max-content-size"); strings.TrimSpace(sizeStr) != "" && sizeStr != "0" {
		size, err := humanize.ParseBytes(sizeStr)
		if err != nil {
			return fmt.Errorf("invalid max-content-size %q: %w", sizeStr, err)
		}
		opts = append(opts, batch.WithMaxContentSize(int(size)))
	}

	dir, _ := cmd.Flags().GetString("dir")
	logger.Info("starting analysis", "dir", dir, "provider", provider.Name(), "mode", mode)
	start := time.Now()

	runner := batch.NewRunner(analyzer, opts...)
	results, err := runner.Run(ctx, dir)
	if err != nil {
		return err
	}

	logger.Info("analysis finished", "scored", len(results), "duration", time.Since(start).Round(time.Second))
	if len(results) == 0 {
		return errors.New("no pair produced a valid analysis")
	}

	reportsDir, _ := cmd.Flags().GetString("reports-dir")
	if _, err := report.SaveResults(results, reportsDir); err != nil {
		return fmt.Errorf("save results: %w", err)
	}
	if _, err := report.SaveReport(results, reportsDir); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}

// buildProvider assembles the LLM provider from flags, config and env keys.
func buildProvider(cmd *cobra.Command) (llm.Provider, error) {
	name := viper.GetString("provider")
	apiKey := viper.GetString("api_key")

	if name == "" {
		detected, detectedKey := llm.DetectProvider()
		if detected == "" {
			return nil, errors.New("no provider configured: set --provider or an API key env var")
		}
		name = detected
		if apiKey == "" {
			apiKey = detectedKey
		}
		logger.Debug("provider auto-detected", "provider", name)
	}

	model := viper.GetString("model")
	if model == "" {
		model = llm.GetDefaultModel(name)
	}

	cfg := llm.DefaultProviderConfig()
	cfg.APIKey = apiKey
	cfg.BaseURL = viper.GetString("base_url")
	cfg.Model = model
	if timeout, err := cmd.Flags().GetDuration("timeout"); err == nil && timeout > 0 {
		cfg.Timeout = timeout
	}

	return llm.NewProvider(name, cfg)
}
