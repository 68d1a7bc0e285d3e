package cmd

import (
	"github.com/anisan-cli/anifetch/tui"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(watchCmd)
	addRequestFlags(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:     "watch",
	Short:   "Show a fetch session live and steer its sources",
	Example: `  anifetch watch -n Frieren -e 12`,
	Run: func(cmd *cobra.Command, args []string) {
		request, err := requestFromFlags(cmd)
		handleErr(err)

		fetcher, err := newFetcher(cmd.Context())
		handleErr(err)
		defer fetcher.Close()

		handleErr(tui.Run(cmd.Context(), &tui.Options{
			Fetcher: fetcher,
			Request: request,
		}))
	},
}
