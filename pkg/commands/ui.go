package commands

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tableflip.dev/canvastui/pkg/launch"
	"tableflip.dev/canvastui/pkg/loader"
	teaui "tableflip.dev/canvastui/pkg/tui/app"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
canvastui ui
canvastui ui --cache ~/.cache/canvastui.json --log /tmp/canvastui.log
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd)
		},
	}

	topLevel.AddCommand(cmd)
}

// runInteractive opens the UI on a terminal and prints the list otherwise.
func runInteractive(cmd *cobra.Command) error {
	fd := os.Stdout.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return runUI(cmd)
	}
	return runList(cmd, false)
}

func runUI(cmd *cobra.Command) error {
	s, err := openSession(cmd, true)
	if err != nil {
		return err
	}
	defer s.Close()

	fetch, err := s.fetcher()
	if err != nil {
		return err
	}
	return teaui.Run(cmd.Context(), teaui.Options{
		Producers: []loader.Producer{s.cacheLoader(), fetch},
		Opener:    launch.NewBrowser(s.cfg.Browser),
	})
}
