// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/canvastui/pkg/config"
)

// PlannerOptions captures where the planner feed is cached and logged.
type PlannerOptions struct {
	Cache   string
	Log     string
	Browser string
}

// AddPlannerArgs wires the persistent cache, log and browser flags. The flag
// names match the keys config.Load binds.
func AddPlannerArgs(cmd *cobra.Command, o *PlannerOptions) {
	cmd.PersistentFlags().StringVar(&o.Cache, "cache", config.DefaultCachePath,
		"Path of the cached planner feed.")
	cmd.PersistentFlags().StringVar(&o.Log, "log", "",
		"Write debug logs to this file.")
	cmd.PersistentFlags().StringVar(&o.Browser, "browser", "",
		"Command used to open assignment URLs (defaults to $BROWSER, then the platform opener).")
}

// ListOptions
type ListOptions struct {
	Cached bool
}

func AddListArgs(cmd *cobra.Command, o *ListOptions) {
	cmd.Flags().BoolVar(&o.Cached, "cached", false,
		"Print the cached feed without contacting Canvas.")
}
