package cmd

import (
	"encoding/json"
	"io"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/anisan-cli/anifetch/filesystem"
	"github.com/anisan-cli/anifetch/inline"
	"github.com/anisan-cli/anifetch/key"
	"github.com/anisan-cli/anifetch/source"
	"github.com/anisan-cli/anifetch/util"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(fetchCmd)
	addRequestFlags(fetchCmd)

	fetchCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	fetchCmd.Flags().StringP("match", "m", "fuzzy", "Minimal match kind to print: fuzzy or exact")
	fetchCmd.Flags().StringP("filter", "f", "", "Criteria for selecting media from the results")
	fetchCmd.Flags().StringP("output", "o", "", "Specify a file path to write the command output")

	fetchCmd.Flags().IntP("timeout", "t", 0, "Seconds to wait for every source to complete")
	lo.Must0(viper.BindPFlag(key.FetchAwaitTimeout, fetchCmd.Flags().Lookup("timeout")))

	fetchCmd.Flags().String("dedup", "", "Identity used to merge media: "+strings.Join(source.KeyFuncNames(), ", "))
	lo.Must0(viper.BindPFlag(key.FetchDedupKey, fetchCmd.Flags().Lookup("dedup")))
	lo.Must0(fetchCmd.RegisterFlagCompletionFunc("dedup", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return source.KeyFuncNames(), cobra.ShellCompDirectiveNoFileComp
	}))
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch media for an episode from every enabled source and print them",
	Long: `Run a fetch session without user interaction and print the merged results once every enabled source completed.

Filters:
  first - first media in the list
  last - last media in the list
  all - every media
  [number] - select media by index (starting from 0)
  [from]-[to] - select media by range
  @[substring]@ - select media by title substring
  res:[resolution] - select media by resolution (e.g. res:1080p)
  kind:[web|torrent] - select media by kind`,
	Example: `  anifetch fetch -n "Sousou no Frieren" -n "Frieren" -e 12
  anifetch fetch -n Frieren -e 3 --json --match exact --filter res:1080p`,
	Run: func(cmd *cobra.Command, args []string) {
		request, err := requestFromFlags(cmd)
		handleErr(err)

		var out io.Writer = os.Stdout
		if output := lo.Must(cmd.Flags().GetString("output")); output != "" {
			file, err := filesystem.API().Create(output)
			handleErr(err)
			defer util.Ignore(file.Close)
			out = file
		}

		filter := mo.None[inline.MediaFilter]()
		if description := lo.Must(cmd.Flags().GetString("filter")); description != "" {
			fn, err := inline.ParseMediaFilter(description)
			handleErr(err)
			filter = mo.Some(fn)
		}

		fetcher, err := newFetcher(cmd.Context())
		handleErr(err)
		defer fetcher.Close()

		handleErr(inline.Run(cmd.Context(), &inline.Options{
			Out:      out,
			Fetcher:  fetcher,
			Request:  request,
			Json:     lo.Must(cmd.Flags().GetBool("json")),
			Timeout:  time.Duration(viper.GetInt(key.FetchAwaitTimeout)) * time.Second,
			MinMatch: max(source.MatchFuzzy, source.ParseMatchKind(lo.Must(cmd.Flags().GetString("match")))),
			Filter:   filter,
		}))
	},
}

func init() {
	fetchCmd.AddCommand(fetchSchemaCmd)
}

var fetchSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate the JSON schema of the fetch output",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			switch name := t.Name(); strings.ToLower(name) {
			case "request", "media", "output":
				return t.PkgPath()[strings.LastIndex(t.PkgPath(), "/")+1:] + "." + name
			default:
				return name
			}
		}

		handleErr(json.NewEncoder(os.Stdout).Encode(reflector.Reflect(&inline.Output{})))
	},
}
