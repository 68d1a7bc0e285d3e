package cmd

import (
	"fmt"

	"github.com/anisan-cli/anifetch/filesystem"
	"github.com/anisan-cli/anifetch/icon"
	"github.com/anisan-cli/anifetch/internal/cache"
	"github.com/anisan-cli/anifetch/util"
	"github.com/anisan-cli/anifetch/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

// clearTarget is an artifact the clear command can remove.
type clearTarget struct {
	name     string
	argLong  string
	argShort mo.Option[string]
	location func() string
}

var clearTargets = []clearTarget{
	{"cache directory", "cache", mo.Some("c"), where.Cache},
	{"cached responses", "responses", mo.Some("r"), where.Responses},
	{"source preferences", "preferences", mo.Some("p"), where.Preferences},
	{"queries history", "queries", mo.Some("q"), where.Queries},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, target := range clearTargets {
		help := fmt.Sprintf("clear %s", target.name)
		if short, ok := target.argShort.Get(); ok {
			clearCmd.Flags().BoolP(target.argLong, short, false, help)
		} else {
			clearCmd.Flags().Bool(target.argLong, false, help)
		}
	}

	clearCmd.Flags().BoolP("expired", "e", false, "clear expired cached responses only")
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear cached and stored application artifacts",
	Run: func(cmd *cobra.Command, args []string) {
		var anyCleared bool

		if lo.Must(cmd.Flags().GetBool("expired")) {
			anyCleared = true
			n := cache.CollectGarbage()
			fmt.Printf("%s %s removed\n", icon.Get(icon.Success), util.Quantify(n, "expired response", "expired responses"))
		}

		for _, target := range clearTargets {
			if !lo.Must(cmd.Flags().GetBool(target.argLong)) {
				continue
			}

			anyCleared = true
			erase := util.PrintErasable(fmt.Sprintf("%s Clearing %s...", icon.Get(icon.Progress), target.name))
			err := filesystem.API().RemoveAll(target.location())
			erase()
			handleErr(err)
			fmt.Printf("%s %s cleared\n", icon.Get(icon.Success), util.Capitalize(target.name))
		}

		if !anyCleared {
			handleErr(cmd.Help())
		}
	},
}
