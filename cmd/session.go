package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anisan-cli/anifetch/anilist"
	"github.com/anisan-cli/anifetch/fetch"
	"github.com/anisan-cli/anifetch/key"
	"github.com/anisan-cli/anifetch/log"
	"github.com/anisan-cli/anifetch/provider"
	"github.com/anisan-cli/anifetch/query"
	"github.com/anisan-cli/anifetch/source"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// addRequestFlags registers the flags describing the episode to fetch for.
func addRequestFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("name", "n", []string{}, "Title of the subject, repeat for alternative titles")
	cmd.Flags().Float64P("episode", "e", 1, "Episode number, fractional for specials (e.g. 12.5)")
	cmd.Flags().String("episode-name", "", "Title of the episode")
	cmd.Flags().String("subject-id", "", "Stable subject identifier, defaults to the first title")
	cmd.Flags().String("episode-id", "", "Stable episode identifier, defaults to subject and episode number")
	cmd.Flags().Int("anilist", 0, "Anilist ID of the subject, its titles are added to --name")

	cmd.MarkFlagsOneRequired("name", "anilist")
	lo.Must0(cmd.RegisterFlagCompletionFunc("name", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	}))
}

func requestFromFlags(cmd *cobra.Command) (source.Request, error) {
	var (
		names       = lo.Must(cmd.Flags().GetStringSlice("name"))
		episode     = lo.Must(cmd.Flags().GetFloat64("episode"))
		episodeName = lo.Must(cmd.Flags().GetString("episode-name"))
		subjectID   = lo.Must(cmd.Flags().GetString("subject-id"))
		episodeID   = lo.Must(cmd.Flags().GetString("episode-id"))
		anilistID   = lo.Must(cmd.Flags().GetInt("anilist"))
	)

	if anilistID > 0 {
		anime, err := anilist.GetByID(cmd.Context(), anilistID)
		if err != nil {
			return source.Request{}, err
		}

		names = append(names, anime.Names()...)
		if subjectID == "" {
			subjectID = fmt.Sprintf("anilist:%d", anime.ID)
		}
	}

	request := source.NewRequest(subjectID, episodeID, names, episode, episodeName)
	if len(request.SubjectNames) == 0 {
		return request, errors.New("at least one subject name is required")
	}

	if request.SubjectID == "" {
		request.SubjectID = strings.ToLower(request.SubjectNames[0])
	}
	if request.EpisodeID == "" {
		request.EpisodeID = fmt.Sprintf("%s#%s", request.SubjectID, request.Sort())
	}

	return request, request.Validate()
}

// newFetcher loads every provider and builds a fetcher from the configuration.
// Providers that fail to load are logged and left out.
func newFetcher(ctx context.Context) (*fetch.Fetcher, error) {
	instances, err := provider.Instances(ctx, provider.All())
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		log.Warn(err)
	}

	config := fetch.Config{
		MaxConcurrency: viper.GetInt(key.FetchMaxConcurrency),
		DedupKey:       viper.GetString(key.FetchDedupKey),
	}

	return fetch.New(config, instances)
}
