package constant

// Globals a Lua connector defines: either FetchMediaFn,
// or SearchAnimesFn, AnimeEpisodesFn and EpisodeVideosFn.
const (
	FetchMediaFn    = "FetchMedia"
	SearchAnimesFn  = "SearchAnimes"
	AnimeEpisodesFn = "AnimeEpisodes"
	EpisodeVideosFn = "EpisodeVideos"
)

// CustomConnectorExtension is the file extension of Lua connector scripts.
const CustomConnectorExtension = ".lua"
