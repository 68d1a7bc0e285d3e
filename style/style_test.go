package style

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestStateColor(t *testing.T) {
	Convey("StateColor should follow the lifecycle", t, func() {
		So(StateColor("fetching"), ShouldEqual, WarningColor)
		So(StateColor("succeed"), ShouldEqual, SuccessColor)
		So(StateColor("failed: timeout"), ShouldEqual, ErrorColor)
		So(StateColor("idle"), ShouldEqual, FaintColor)
		So(StateColor("disabled"), ShouldEqual, FaintColor)
	})

	Convey("MatchColor should rank exact above fuzzy", t, func() {
		So(MatchColor("exact"), ShouldEqual, SuccessColor)
		So(MatchColor("fuzzy"), ShouldEqual, WarningColor)
		So(MatchColor("none"), ShouldEqual, FaintColor)
	})
}
