// Package main implements the dk CLI tool.
package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/daykeep/daykeep/app"
	"github.com/daykeep/daykeep/internal/config"
	"github.com/daykeep/daykeep/plan"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "dk",
	Short:         "daykeep - local-first daily planning",
	SilenceUsage:  true,
	SilenceErrors: false,
}

// openApp loads config and opens the application state. Callers must
// Close the returned app so background persistence finishes.
func openApp() (*app.App, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	dataDir, err := cfg.DataDir()
	if err != nil {
		return nil, nil, err
	}
	a, err := app.Open(app.Options{
		DataDir:  dataDir,
		Logger:   log.New(os.Stderr, "dk: ", 0),
		Defaults: plannerDefaults(cfg),
	})
	if err != nil {
		return nil, nil, err
	}
	return a, cfg, nil
}

// plannerDefaults maps the [planner] config section onto first-run
// settings. A partial workday override keeps the built-in value for the
// missing end.
func plannerDefaults(cfg *config.Config) app.Defaults {
	defaults := app.Defaults{
		DailyCapacityMinutes: cfg.Planner.DailyCapacityMinutes,
		TaskAgingDays:        cfg.Planner.TaskAgingDays,
	}
	if cfg.Planner.WorkdayStart != "" || cfg.Planner.WorkdayEnd != "" {
		hours := plan.DefaultWorkingHours()
		if cfg.Planner.WorkdayStart != "" {
			hours.Start = cfg.Planner.WorkdayStart
		}
		if cfg.Planner.WorkdayEnd != "" {
			hours.End = cfg.Planner.WorkdayEnd
		}
		defaults.WorkingHours = &hours
	}
	return defaults
}
