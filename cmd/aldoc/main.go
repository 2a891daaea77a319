package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"aldoc/internal/config"
	"aldoc/internal/crawler"
	"aldoc/internal/extractor"
	"aldoc/internal/updater"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "aldoc",
		Short: "XML documentation comments for AL source",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
	}
	configPath string
	noColor    bool
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Path to the aldoc configuration file")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(objectCmd)
	rootCmd.AddCommand(procedureCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(locateCmd)
	rootCmd.AddCommand(indentCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(insertCmd)
	rootCmd.AddCommand(updateCmd)
}

// loadConfig loads the configuration or exits.
func loadConfig() *config.Config {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func newExtractor(cfg *config.Config) *extractor.Extractor {
	ext := extractor.NewExtractor()
	ext.Locals = cfg.Docs.LocalProcedures
	return ext
}

func newCrawler(cfg *config.Config) *crawler.Crawler {
	return crawler.NewCrawler(newExtractor(cfg)).
		WithIgnored(cfg.Project.Ignore).
		WithExtensions(cfg.Project.Extensions)
}

func newUpdater(cfg *config.Config, snippet bool) *updater.DocUpdater {
	return updater.NewDocUpdater(updater.Options{
		Snippet: snippet || cfg.Docs.Snippet,
		Objects: cfg.Docs.Objects,
	})
}

// readInput reads a file, or stdin when path is "-" or empty.
func readInput(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(args[0])
	return string(data), err
}
