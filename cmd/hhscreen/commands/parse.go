package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ddanilov/hhscreen/internal/hhparse"
	"github.com/ddanilov/hhscreen/internal/logger"
	"github.com/ddanilov/hhscreen/internal/markdown"
	"github.com/ddanilov/hhscreen/internal/output"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>...",
	Short: "Extract structured records from saved pages",
	Long: `Parse unpacks one or more saved HH.ru pages and prints the extracted
record. Documents are classified as vacancy or resume automatically.

Examples:
  # Structured record as JSON
  hhscreen parse resume.mhtml

  # YAML output to a file
  hhscreen parse resume.mhtml --format yaml -o record.yaml

  # Flowed Markdown text instead of a structured record
  hhscreen parse vacancy.mhtml --markdown`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	flags := parseCmd.Flags()
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.String("format", "json", "output format: json, jsonl, yaml")
	flags.Bool("markdown", false, "render flowed Markdown text instead of a structured record")
}

func runParse(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	out := os.Stdout
	if outPath, _ := cmd.Flags().GetString("output"); outPath != "" {
		f, err := os.Create(outPath) //#nosec G304 -- CLI tool writes to a user-specified output file
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	if asMarkdown, _ := cmd.Flags().GetBool("markdown"); asMarkdown {
		for _, path := range args {
			raw, err := os.ReadFile(path) //#nosec G304 -- CLI tool reads user-specified files
			if err != nil {
				return err
			}
			text, err := markdown.Render(raw)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			fmt.Fprintln(out, text)
		}
		return nil
	}

	formatStr, _ := cmd.Flags().GetString("format")
	writer, err := output.NewWriter(out, output.Format(formatStr))
	if err != nil {
		return err
	}
	defer func() { _ = writer.Close() }()

	parser := hhparse.NewParser()
	for _, path := range args {
		raw, err := os.ReadFile(path) //#nosec G304 -- CLI tool reads user-specified files
		if err != nil {
			return err
		}
		doc, err := parser.Parse(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		logger.Debug("parsed", "file", path, "kind", doc.Kind)
		if err := writer.Write(doc); err != nil {
			return err
		}
	}
	return nil
}
