package query

import (
	"testing"

	"github.com/anisan-cli/anifetch/filesystem"
	"github.com/anisan-cli/anifetch/key"
	"github.com/anisan-cli/anifetch/source"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
	viper.Set(key.SearchShowQuerySuggestions, true)
}

func TestQuery(t *testing.T) {
	Convey("Given remembered titles", t, func() {
		So(Remember("Naruto", 1), ShouldBeNil)
		So(Remember("Bleach", 10), ShouldBeNil)

		Convey("Suggestions should be sorted by rank", func() {
			s := SuggestMany("ble")
			So(len(s), ShouldBeGreaterThanOrEqualTo, 1)
			So(s[0], ShouldEqual, "bleach")
		})

		Convey("A new remembrance should be visible right away", func() {
			So(SuggestMany("dandadan"), ShouldBeEmpty)
			So(Remember("Dandadan", 1), ShouldBeNil)
			So(Suggest("dandadan").MustGet(), ShouldEqual, "dandadan")
		})

		Convey("Blank titles should be ignored", func() {
			So(Remember("   ", 1), ShouldBeNil)
			So(Suggest("   ").IsPresent(), ShouldBeTrue)
		})

		Convey("Disabled suggestions should yield nothing", func() {
			viper.Set(key.SearchShowQuerySuggestions, false)
			defer viper.Set(key.SearchShowQuerySuggestions, true)
			So(SuggestMany("ble"), ShouldBeEmpty)
		})
	})

	Convey("Given a request", t, func() {
		req := source.NewRequest("s", "e", []string{"Kusuriya no Hitorigoto", "The Apothecary Diaries"}, 1, "")
		So(RememberRequest(req), ShouldBeNil)

		So(Suggest("apothecary").MustGet(), ShouldEqual, "the apothecary diaries")
		So(Suggest("kusuriya").MustGet(), ShouldEqual, "kusuriya no hitorigoto")
	})

	Convey("sanitize", t, func() {
		So(sanitize("  NARUTO  "), ShouldEqual, "naruto")
	})
}
