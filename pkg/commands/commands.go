package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/canvastui/pkg/commands/options"
)

var (
	oo = &base.OutputOptions{}
	po = &options.PlannerOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "canvastui",
		Short: base.Wrap80("Browse your Canvas planner, one day at a time, in the terminal."),
		Long: base.Wrap80("Reads CANVAS_ACCESS_TOKEN and CANVAS_URL from the environment. " +
			"The last fetched feed is cached so the planner shows up immediately on the next start."),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd)
		},
	}
	options.AddPlannerArgs(cmd, po)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addList(topLevel)
	addVersion(topLevel)
}
