package main

import (
	"fmt"
	"os"

	"jira-extract/internal/config"
	"jira-extract/internal/extract"
	"jira-extract/internal/helpers"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var configFile string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "jira-extract",
		Short: "jira-extract - JIRA issue extraction for dashboards",
		Long: `jira-extract pulls issues and saved-filter results from the JIRA REST API,
normalizes them into a flat schema, and writes aggregated JSON files
for consumption by a dashboard.`,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "config.yaml", "Configuration file path")

	// Extract command
	var extractCmd = &cobra.Command{
		Use:   "extract",
		Short: "Extract issues and saved filters to JSON",
		Long:  "Fetch issues and saved-filter results from JIRA and write issues.json and filters.json",
		RunE:  runExtract,
	}
	rootCmd.AddCommand(extractCmd)

	// Version command
	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("jira-extract " + version)
		},
	}
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		helpers.PrintError("Error: %v", err)
		os.Exit(1)
	}
}

func runExtract(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	helpers.PrintTitle("Extracting JIRA Data")
	helpers.PrintInfo("JIRA base URL: %s", cfg.Jira.BaseURL)
	helpers.PrintInfo("Output directory: %s", cfg.Extract.OutputDir)

	service := extract.NewService(cfg)
	if err := service.Run(); err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	helpers.PrintSuccess("Extraction completed successfully!")
	return nil
}
