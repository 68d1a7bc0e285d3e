package config

import (
	"errors"
	"testing"

	"github.com/anisan-cli/anifetch/filesystem"
	"github.com/anisan-cli/anifetch/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Given a fresh setup", t, func() {
		So(Setup(), ShouldBeNil)

		Convey("Every field should have its default", func() {
			for name := range Default {
				So(viper.IsSet(name), ShouldBeTrue)
			}
			So(viper.GetInt(key.FetchMaxConcurrency), ShouldEqual, 8)
			So(viper.GetString(key.FetchDedupKey), ShouldEqual, "url")
		})

		Convey("Set should validate and persist", func() {
			So(Set(key.FetchMaxConcurrency, 3), ShouldBeNil)
			So(viper.GetInt(key.FetchMaxConcurrency), ShouldEqual, 3)

			contents, err := filesystem.API().ReadFile(Path())
			So(err, ShouldBeNil)
			So(string(contents), ShouldContainSubstring, "max_concurrency = 3")

			So(Set(key.FetchMaxConcurrency, 0), ShouldNotBeNil)
			So(viper.GetInt(key.FetchMaxConcurrency), ShouldEqual, 3)

			Convey("ResetKeys should restore the default", func() {
				So(ResetKeys(key.FetchMaxConcurrency), ShouldBeNil)
				So(viper.GetInt(key.FetchMaxConcurrency), ShouldEqual, 8)
			})
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given registered fields", t, func() {
		concurrency := Default[key.FetchMaxConcurrency]
		feeds := Default[key.RSSFeeds]

		Convey("Env should carry the application prefix", func() {
			So(concurrency.Env(), ShouldEqual, "ANIFETCH_FETCH_MAX_CONCURRENCY")
		})

		Convey("Type should follow the default value", func() {
			So(concurrency.Type(), ShouldEqual, "int")
			So(feeds.Type(), ShouldEqual, "[]string")
		})

		Convey("Parse should convert and validate", func() {
			v, err := concurrency.Parse([]string{"4"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 4)

			_, err = concurrency.Parse([]string{"four"})
			So(err, ShouldNotBeNil)

			_, err = Default[key.FetchDedupKey].Parse([]string{"hash"})
			So(err, ShouldNotBeNil)

			v, err = feeds.Parse([]string{"nyaa=https://nyaa.si/?page=rss&q={query}", " "})
			So(err, ShouldBeNil)
			So(v, ShouldResemble, []string{"nyaa=https://nyaa.si/?page=rss&q={query}"})

			_, err = feeds.Parse([]string{"no-separator"})
			So(err, ShouldNotBeNil)
		})
	})
}

func TestLookup(t *testing.T) {
	Convey("Lookup should suggest the closest key", t, func() {
		_, err := Lookup("fetch.dedup_kye")
		So(errors.Is(err, ErrUnknownKey), ShouldBeTrue)
		So(err.Error(), ShouldContainSubstring, key.FetchDedupKey)

		field, err := Lookup(key.LogsLevel)
		So(err, ShouldBeNil)
		So(field.Value, ShouldEqual, "info")
	})
}
