// Package commands implements the CLI commands for hhscreen.
package commands

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "hhscreen",
	Short: "Screen HH.ru candidates against vacancies with an LLM",
	Long: `hhscreen parses saved HH.ru pages (MHTML archives) into structured
resume and vacancy records and scores every candidate against every vacancy
through an LLM, producing a ranked Markdown report.

Examples:
  # Score all resumes against all vacancies in a directory
  hhscreen analyze -d ./candidates

  # Inspect what the parser extracts from one file
  hhscreen parse resume.mhtml

  # Rebuild the report from the latest saved results
  hhscreen report`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.hhscreen.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".hhscreen")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("HHSCREEN")
	viper.AutomaticEnv()

	// Also check common API key env vars
	_ = viper.BindEnv("api_key", "OPENROUTER_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY")

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
