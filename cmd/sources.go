package cmd

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"

	"github.com/AlecAivazis/survey/v2"
	"github.com/anisan-cli/anifetch/auth"
	"github.com/anisan-cli/anifetch/constant"
	"github.com/anisan-cli/anifetch/filesystem"
	"github.com/anisan-cli/anifetch/icon"
	"github.com/anisan-cli/anifetch/prefs"
	"github.com/anisan-cli/anifetch/provider"
	"github.com/anisan-cli/anifetch/provider/custom"
	"github.com/anisan-cli/anifetch/style"
	"github.com/anisan-cli/anifetch/util"
	"github.com/anisan-cli/anifetch/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Manage RSS and Lua connectors",
}

// mustProvider resolves an argument to a provider or exits.
func mustProvider(name string) *provider.Provider {
	p, ok := provider.Get(name)
	if !ok {
		handleErr(fmt.Errorf("source not found: %s", name))
	}
	return p
}

func init() {
	sourcesCmd.AddCommand(sourcesListCmd)

	sourcesListCmd.Flags().BoolP("raw", "r", false, "Print IDs only, without headers or state")
	sourcesListCmd.Flags().BoolP("custom", "c", false, "Display only Lua connectors")
	sourcesListCmd.Flags().BoolP("builtin", "b", false, "Display only RSS connectors")

	sourcesListCmd.MarkFlagsMutuallyExclusive("custom", "builtin")
	sourcesListCmd.SetOut(os.Stdout)
}

var sourcesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every connector and whether it is enabled by default",
	Run: func(cmd *cobra.Command, args []string) {
		raw := lo.Must(cmd.Flags().GetBool("raw"))
		headerStyle := style.Header(style.InfoColor)

		printGroup := func(header string, providers []*provider.Provider) {
			if !raw {
				cmd.Println(headerStyle(header))
			}
			for _, p := range providers {
				if raw {
					cmd.Println(p.ID)
					continue
				}

				state := style.Success("enabled")
				if !provider.DefaultEnabled(p.ID) {
					state = style.Error("disabled")
				}
				cmd.Printf("%s %s %s\n", p.ID, style.Faint("("+p.Name+")"), state)
			}
		}

		switch {
		case lo.Must(cmd.Flags().GetBool("builtin")):
			printGroup(icon.Get(icon.RSS)+" RSS:", provider.Builtins())
		case lo.Must(cmd.Flags().GetBool("custom")):
			printGroup(icon.Get(icon.Lua)+" Lua:", provider.Customs())
		default:
			printGroup(icon.Get(icon.RSS)+" RSS:", provider.Builtins())
			if !raw {
				cmd.Println()
			}
			printGroup(icon.Get(icon.Lua)+" Lua:", provider.Customs())
		}
	},
}

func init() {
	sourcesCmd.AddCommand(sourcesEnableCmd, sourcesDisableCmd, sourcesResetCmd)
}

func setEnabled(enabled bool) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		for _, name := range args {
			p := mustProvider(name)
			handleErr(prefs.SetEnabled(p.ID, enabled))
			fmt.Printf("%s %s %s\n", icon.Get(icon.Success), style.Warning(p.ID), lo.Ternary(enabled, "enabled", "disabled"))
		}
	}
}

var sourcesEnableCmd = &cobra.Command{
	Use:               "enable [source...]",
	Short:             "Enable connectors in new sessions",
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: completionProviderIDs,
	Run:               setEnabled(true),
}

var sourcesDisableCmd = &cobra.Command{
	Use:               "disable [source...]",
	Short:             "Disable connectors in new sessions",
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: completionProviderIDs,
	Run:               setEnabled(false),
}

var sourcesResetCmd = &cobra.Command{
	Use:               "reset [source...]",
	Short:             "Forget stored choices so sources.default applies again",
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: completionProviderIDs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range args {
			p := mustProvider(name)
			handleErr(prefs.Forget(p.ID))
			fmt.Printf("%s %s reset\n", icon.Get(icon.Success), style.Warning(p.ID))
		}
	},
}

func init() {
	sourcesCmd.AddCommand(sourcesToggleCmd)
}

var sourcesToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Pick the connectors enabled in new sessions interactively",
	Run: func(cmd *cobra.Command, args []string) {
		providers := provider.All()
		if len(providers) == 0 {
			handleErr(fmt.Errorf("no sources installed, see %s", where.Sources()))
		}

		ids := lo.Map(providers, func(p *provider.Provider, _ int) string { return p.ID })

		var selected []string
		prompt := &survey.MultiSelect{
			Message: "Enabled sources",
			Options: ids,
			Default: lo.Filter(ids, func(id string, _ int) bool { return provider.DefaultEnabled(id) }),
		}
		handleErr(survey.AskOne(prompt, &selected))

		for _, id := range ids {
			handleErr(prefs.SetEnabled(id, lo.Contains(selected, id)))
		}

		fmt.Printf("%s %s enabled\n", icon.Get(icon.Success), util.Quantify(len(selected), "source", "sources"))
	},
}

func init() {
	sourcesCmd.AddCommand(sourcesRemoveCmd)
}

var sourcesRemoveCmd = &cobra.Command{
	Use:   "remove [name...]",
	Short: "Uninstall Lua connectors",
	Args:  cobra.MinimumNArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(provider.Customs(), func(p *provider.Provider, _ int) string {
			return p.Name
		}), cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range args {
			path := filepath.Join(where.Sources(), name+constant.CustomConnectorExtension)
			handleErr(filesystem.API().Remove(path))
			fmt.Printf("%s successfully removed %s\n", icon.Get(icon.Success), style.Warning(name))
		}
	},
}

func init() {
	sourcesCmd.AddCommand(sourcesUpdateCmd)
}

var sourcesUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Replace installed Lua connectors with their published versions",
	Run: func(cmd *cobra.Command, args []string) {
		erase := util.PrintErasable(fmt.Sprintf("%s Updating sources...", icon.Get(icon.Progress)))
		updated, err := provider.UpdateScrapers(cmd.Context())
		erase()
		handleErr(err)

		if len(updated) == 0 {
			fmt.Printf("%s everything is up to date\n", icon.Get(icon.Success))
			return
		}

		for _, name := range updated {
			fmt.Printf("%s updated %s\n", icon.Get(icon.Success), style.Warning(name))
		}
	},
}

func init() {
	sourcesCmd.AddCommand(sourcesGenCmd)

	sourcesGenCmd.Flags().StringP("name", "n", "", "The display name of the new connector")
	sourcesGenCmd.Flags().StringP("url", "u", "", "The base URL of the site the connector reads")

	lo.Must0(sourcesGenCmd.MarkFlagRequired("name"))
	lo.Must0(sourcesGenCmd.MarkFlagRequired("url"))
}

var sourcesGenCmd = &cobra.Command{
	Use:   "gen",
	Short: "Scaffold a new Lua connector",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.SetOut(os.Stdout)

		author := "Anonymous"
		if usr, err := user.Current(); err == nil {
			author = usr.Username
		}

		target, err := custom.Generate(where.Sources(), custom.ScaffoldInfo{
			Name:   lo.Must(cmd.Flags().GetString("name")),
			URL:    lo.Must(cmd.Flags().GetString("url")),
			Author: author,
		})
		handleErr(err)

		cmd.Println(target)
	},
}

func init() {
	sourcesCmd.AddCommand(sourcesTokenCmd)
	sourcesTokenCmd.AddCommand(sourcesTokenSetCmd, sourcesTokenDeleteCmd)
}

var sourcesTokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage API tokens Lua connectors read with credentials.token()",
}

var sourcesTokenSetCmd = &cobra.Command{
	Use:               "set [source]",
	Short:             "Store a token in the system keyring",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionProviderIDs,
	Run: func(cmd *cobra.Command, args []string) {
		p := mustProvider(args[0])

		var token string
		handleErr(survey.AskOne(&survey.Password{
			Message: fmt.Sprintf("Token for %s", p.ID),
		}, &token, survey.WithValidator(survey.Required)))

		handleErr(auth.SetToken(p.ID, token))
		fmt.Printf("%s token stored for %s\n", icon.Get(icon.Success), style.Warning(p.ID))
	},
}

var sourcesTokenDeleteCmd = &cobra.Command{
	Use:               "delete [source]",
	Short:             "Remove a stored token",
	Aliases:           []string{"remove"},
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionProviderIDs,
	Run: func(cmd *cobra.Command, args []string) {
		p := mustProvider(args[0])
		handleErr(auth.DeleteToken(p.ID))
		fmt.Printf("%s token removed for %s\n", icon.Get(icon.Success), style.Warning(p.ID))
	},
}
