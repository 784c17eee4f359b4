package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/canvastui/pkg/calendar"
	"tableflip.dev/canvastui/pkg/commands/options"
	"tableflip.dev/canvastui/pkg/logging"
	"tableflip.dev/canvastui/pkg/printers"
)

var lo = &options.ListOptions{}

func addList(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "print upcoming planner items grouped by day",
		Example: `
canvastui list
canvastui list --cached
canvastui list --json
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			return oo.HandleError(runList(cmd, lo.Cached))
		},
	}
	options.AddListArgs(cmd, lo)
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func runList(cmd *cobra.Command, cached bool) error {
	s, err := openSession(cmd, !cached)
	if err != nil {
		return err
	}
	defer s.Close()

	var cal calendar.Calendar
	if cached {
		if cal, err = s.cacheLoader().Load(); err != nil {
			return err
		}
	} else {
		fetch, err := s.fetcher()
		if err != nil {
			return err
		}
		var body []byte
		if cal, body, err = fetch.Fetch(cmd.Context()); err != nil {
			return err
		}
		if err := fetch.Persist(body); err != nil {
			logging.Error("cache write", err, "path", s.blob.Path())
		}
	}

	pp := &printers.PrettyPrint{Out: cmd.OutOrStdout()}
	if oo.JSON {
		return pp.JSON(cal)
	}
	pp.Calendar(cal)
	return nil
}
