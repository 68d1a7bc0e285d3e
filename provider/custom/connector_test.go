package custom

import (
	"context"
	"testing"

	"github.com/anisan-cli/anifetch/auth"
	"github.com/anisan-cli/anifetch/filesystem"
	"github.com/anisan-cli/anifetch/source"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/zalando/go-keyring"
)

func init() {
	filesystem.SetMemMapFs()
	keyring.MockInit()
}

const pagedScript = `
function FetchMedia(request, page)
	if page > 2 then
		return {}
	end
	return {
		{ url = "magnet:?xt=" .. page, title = request.names[1] .. " - 03 [1080p] v" .. page },
	}
end
`

const trioScript = `
function SearchAnimes(query)
	return { { name = query, url = "https://example.com/" .. query } }
end

function AnimeEpisodes(anime)
	return {
		{ name = "Episode 2", url = anime.url .. "/2" },
		{ name = "Episode 3", url = anime.url .. "/3" },
	}
end

function EpisodeVideos(episode)
	return { { url = episode.url .. "/1080.m3u8", quality = "1080p" } }
end
`

const tokenScript = `
function FetchMedia(request, page)
	if page > 1 then
		return {}
	end
	return { { url = "https://example.com/x", title = credentials.token() or "anonymous" } }
end
`

func load(name, script string) *Connector {
	path := "/sources/" + name + ".lua"
	So(filesystem.API().WriteFile(path, []byte(script), 0644), ShouldBeNil)
	c, err := Load(path)
	So(err, ShouldBeNil)
	return c
}

func collect(c *Connector) []source.MatchMedia {
	var items []source.MatchMedia
	err := c.Fetch(context.Background(), request, func(m source.MatchMedia) bool {
		items = append(items, m)
		return true
	})
	So(err, ShouldBeNil)
	return items
}

func TestConnector(t *testing.T) {
	Convey("Given a paged script", t, func() {
		c := load("paged", pagedScript)
		defer c.Close()

		So(c.ID(), ShouldEqual, "paged-lua")

		Convey("It should fetch every page until an empty one", func() {
			items := collect(c)
			So(items, ShouldHaveLength, 2)
			So(items[0].Media.URL, ShouldEqual, "magnet:?xt=1")
			So(items[0].Kind, ShouldEqual, source.MatchExact)
			So(items[1].Media.Kind, ShouldEqual, source.KindTorrent)
		})

		Convey("It should stop once emit refuses", func() {
			var calls int
			err := c.Fetch(context.Background(), request, func(source.MatchMedia) bool {
				calls++
				return false
			})
			So(err, ShouldBeNil)
			So(calls, ShouldEqual, 1)
		})

		Convey("It should stop on a cancelled context", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			err := c.Fetch(ctx, request, func(source.MatchMedia) bool { return true })
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given a trio script", t, func() {
		c := load("trio", trioScript)
		defer c.Close()

		Convey("It should emit the videos of the requested episode", func() {
			items := collect(c)
			So(items, ShouldHaveLength, 1)
			So(items[0].Media.URL, ShouldEqual, "https://example.com/Frieren/3/1080.m3u8")
			So(items[0].Media.Title, ShouldEqual, "Frieren - Episode 3")
			So(items[0].Media.Resolution, ShouldEqual, "1080p")
			So(items[0].Kind, ShouldEqual, source.MatchFuzzy)
		})
	})

	Convey("Given a script reading its token", t, func() {
		c := load("token", tokenScript)
		defer c.Close()

		So(collect(c)[0].Media.Title, ShouldEqual, "anonymous")

		So(auth.SetToken(c.ID(), "secret"), ShouldBeNil)
		defer auth.DeleteToken(c.ID())
		So(collect(c)[0].Media.Title, ShouldEqual, "secret")
	})

	Convey("A script without entry points should not load", t, func() {
		So(filesystem.API().WriteFile("/sources/empty.lua", []byte(`x = 1`), 0644), ShouldBeNil)
		_, err := Load("/sources/empty.lua")
		So(err, ShouldNotBeNil)
	})
}
