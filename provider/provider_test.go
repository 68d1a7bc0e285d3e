package provider

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/anisan-cli/anifetch/filesystem"
	"github.com/anisan-cli/anifetch/key"
	"github.com/anisan-cli/anifetch/prefs"
	"github.com/anisan-cli/anifetch/where"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

const script = `
function FetchMedia(request, page)
	return {}
end
`

func TestGet(t *testing.T) {
	Convey("When trying to get an invalid provider", t, func() {
		_, ok := Get("kek")
		Convey("Then ok should be false", func() {
			So(ok, ShouldBeFalse)
		})
	})
}

func TestProviders(t *testing.T) {
	Convey("Given configured feeds and scripts", t, func() {
		viper.Set(key.RSSFeeds, []string{
			"Nyaa=https://nyaa.si/?page=rss&q={query}",
			"broken",
		})
		defer viper.Set(key.RSSFeeds, []string{})

		So(filesystem.API().WriteFile(filepath.Join(where.Sources(), "mirror.lua"), []byte(script), 0644), ShouldBeNil)
		So(filesystem.API().WriteFile(filepath.Join(where.Sources(), "common.lua"), []byte(script), 0644), ShouldBeNil)
		So(filesystem.API().WriteFile(filepath.Join(where.Sources(), "bad.lua"), []byte(`x = 1`), 0644), ShouldBeNil)

		ids := lo.Map(All(), func(p *Provider, _ int) string { return p.ID })

		Convey("Malformed feeds and helper scripts should be left out", func() {
			So(ids, ShouldContain, "bad-lua")
			So(ids, ShouldContain, "mirror-lua")
			So(ids, ShouldContain, "rss-nyaa")
			So(ids, ShouldNotContain, "common-lua")
			So(lo.IsSorted(ids), ShouldBeTrue)
		})

		Convey("Get should find providers by name", func() {
			p, ok := Get("mirror")
			So(ok, ShouldBeTrue)
			So(p.IsCustom, ShouldBeTrue)
		})

		Convey("Instances should load every valid provider", func() {
			wanted := lo.Filter(All(), func(p *Provider, _ int) bool {
				return lo.Contains([]string{"bad-lua", "mirror-lua", "rss-nyaa"}, p.ID)
			})
			instances, err := Instances(context.Background(), wanted)
			So(err, ShouldNotBeNil)
			So(instances, ShouldHaveLength, 2)
			So(instances[0].ID, ShouldEqual, "mirror-lua")
			So(instances[1].ID, ShouldEqual, "rss-nyaa")
		})
	})
}

func TestDefaultEnabled(t *testing.T) {
	Convey("Given no stored choice", t, func() {
		viper.Set(key.DefaultSources, []string{})

		So(DefaultEnabled("rss-a"), ShouldBeTrue)

		Convey("The default list should decide", func() {
			viper.Set(key.DefaultSources, []string{"rss-b"})
			defer viper.Set(key.DefaultSources, []string{})
			So(DefaultEnabled("rss-a"), ShouldBeFalse)
			So(DefaultEnabled("rss-b"), ShouldBeTrue)
		})

		Convey("A stored choice should win", func() {
			So(prefs.SetEnabled("rss-a", false), ShouldBeNil)
			defer prefs.Forget("rss-a")
			So(DefaultEnabled("rss-a"), ShouldBeFalse)
		})
	})
}
