package cmd

import (
	"encoding/json"
	"os"

	"github.com/anisan-cli/anifetch/log"
	"github.com/anisan-cli/anifetch/style"
	"github.com/anisan-cli/anifetch/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type whereTarget struct {
	name  string
	flag  string
	short string
	path  func() string
	// listed in the default output
	listed bool
}

var whereTargets = []whereTarget{
	{"Config", "config", "c", where.Config, true},
	{"Sources", "sources", "s", where.Sources, true},
	{"Preferences", "preferences", "p", where.Preferences, true},
	{"Logs", "logs", "l", where.Logs, true},
	{"Log file", "log-file", "", log.Path, false},
	{"Cache", "cache", "", where.Cache, true},
	{"Responses", "responses", "", where.Responses, false},
	{"Queries", "queries", "", where.Queries, false},
	{"Temp", "temp", "", where.Temp, false},
}

func init() {
	rootCmd.AddCommand(whereCmd)

	for _, t := range whereTargets {
		whereCmd.Flags().BoolP(t.flag, t.short, false, "Print only the "+t.name+" path")
	}
	whereCmd.Flags().Bool("json", false, "Print every path as a json object")

	whereCmd.MarkFlagsMutuallyExclusive(append(lo.Map(whereTargets, func(t whereTarget, _ int) string {
		return t.flag
	}), "json")...)

	whereCmd.SetOut(os.Stdout)
}

var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Display the paths of configuration, connectors and caches",
	Run: func(cmd *cobra.Command, args []string) {
		for _, t := range whereTargets {
			if lo.Must(cmd.Flags().GetBool(t.flag)) {
				cmd.Println(t.path())
				return
			}
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			paths := lo.SliceToMap(whereTargets, func(t whereTarget) (string, string) {
				return t.flag, t.path()
			})

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(paths))
			return
		}

		header := style.Header(style.AccentColor)
		listed := lo.Filter(whereTargets, func(t whereTarget, _ int) bool { return t.listed })
		for i, t := range listed {
			cmd.Printf("%s %s\n", header(t.name+"?"), style.Warning("--"+t.flag))
			cmd.Println(t.path())

			if i < len(listed)-1 {
				cmd.Println()
			}
		}
	},
}
