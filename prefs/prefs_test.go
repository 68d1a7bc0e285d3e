package prefs

import (
	"testing"

	"github.com/anisan-cli/anifetch/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPrefs(t *testing.T) {
	Convey("Given a connector the user never toggled", t, func() {
		Reset(func() {
			So(Forget("fresh"), ShouldBeNil)
		})
		So(Enabled("fresh").IsPresent(), ShouldBeFalse)

		Convey("When disabling it", func() {
			So(SetEnabled("fresh", false), ShouldBeNil)

			Convey("Then the choice should be stored", func() {
				enabled, ok := Enabled("fresh").Get()
				So(ok, ShouldBeTrue)
				So(enabled, ShouldBeFalse)

				all, err := All()
				So(err, ShouldBeNil)
				So(all, ShouldContainKey, "fresh")
			})

			Convey("Then forgetting it should restore the default", func() {
				So(Enabled("fresh").IsPresent(), ShouldBeTrue)
				So(Forget("fresh"), ShouldBeNil)
				So(Enabled("fresh").IsPresent(), ShouldBeFalse)
			})
		})
	})
}
