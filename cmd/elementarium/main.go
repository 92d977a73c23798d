// cmd/elementarium/main.go
//
// Entry point. Run without arguments to start the interactive menu; the
// report subcommands generate the same documents headlessly for scripting.

package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kingrea/elementarium/internal/config"
	"github.com/kingrea/elementarium/internal/dataset"
	"github.com/kingrea/elementarium/internal/query"
	"github.com/kingrea/elementarium/internal/report"
	"github.com/kingrea/elementarium/internal/tui"
)

var (
	baseDir       string
	markdownGroup string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "elementarium",
	Short: "Interactive lookup and reporting over the chemical elements",
	Long: `Elementarium loads an element table (CSV) and a group table (JSON)
and lets you search, inspect, aggregate and export them from a terminal menu.

Run without arguments to start the interactive session. Dataset and report
paths come from elements.yaml in the working directory; a commented default
file is created on first run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		app, err := tui.NewApp(cfg)
		if err != nil {
			return err
		}
		p := tea.NewProgram(app, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("run tui: %w", err)
		}
		return nil
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate reports without the interactive session",
}

var reportHTMLCmd = &cobra.Command{
	Use:   "html",
	Short: "Write the HTML overview of all elements",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, engine, err := loadEngine()
		if err != nil {
			return err
		}
		path := cfg.HTMLReportPath()
		if err := report.WriteHTML(engine.Elements(), path); err != nil {
			return err
		}
		fmt.Printf("HTML overview of %d element(s) written to %s\n", len(engine.Elements()), path)
		return nil
	},
}

var reportMarkdownCmd = &cobra.Command{
	Use:   "markdown",
	Short: "Write the Markdown overview of one group",
	RunE: func(cmd *cobra.Command, args []string) error {
		if markdownGroup == "" {
			return fmt.Errorf("--group is required")
		}
		cfg, engine, err := loadEngine()
		if err != nil {
			return err
		}
		selected := engine.FilterBy(dataset.FieldGroup, markdownGroup)
		path := cfg.MarkdownReportPath()
		if err := report.WriteMarkdown(selected, path); err != nil {
			return err
		}
		fmt.Printf("Markdown overview of %d element(s) written to %s\n", len(selected), path)
		return nil
	},
}

var reportJSONCmd = &cobra.Command{
	Use:   "json [symbols...]",
	Short: "Export the named elements as indented JSON",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, engine, err := loadEngine()
		if err != nil {
			return err
		}
		path := cfg.JSONExportPath()
		count, err := report.WriteJSON(engine.Elements(), args, path)
		if err != nil {
			return err
		}
		fmt.Printf("Exported %d element(s) to %s\n", count, path)
		return nil
	},
}

func loadConfig() (*config.Config, error) {
	dir := baseDir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		dir = cwd
	}
	return config.Load(dir)
}

// loadEngine loads the dataset for headless commands. Missing source files
// degrade to empty collections with a notice, same as the interactive
// session.
func loadEngine() (*config.Config, *query.Engine, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	elements, err := dataset.LoadElements(cfg.ElementsPath())
	if err != nil {
		if !errors.Is(err, dataset.ErrMissingSource) {
			return nil, nil, err
		}
		fmt.Fprintf(os.Stderr, "element table not found: %s\n", cfg.ElementsPath())
	}
	groups, err := dataset.LoadGroups(cfg.GroupsPath())
	if err != nil {
		if !errors.Is(err, dataset.ErrMissingSource) {
			return nil, nil, err
		}
		fmt.Fprintf(os.Stderr, "group table not found: %s\n", cfg.GroupsPath())
	}
	return cfg, query.New(elements, groups), nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&baseDir, "dir", "d", "", "working directory holding elements.yaml (default: current directory)")
	reportMarkdownCmd.Flags().StringVarP(&markdownGroup, "group", "g", "", "group to report on")
	reportCmd.AddCommand(reportHTMLCmd, reportMarkdownCmd, reportJSONCmd)
	rootCmd.AddCommand(reportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
