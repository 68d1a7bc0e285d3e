package match

import (
	"testing"

	"github.com/anisan-cli/anifetch/source"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClassify(t *testing.T) {
	Convey("Given a request for episode 3", t, func() {
		req := source.NewRequest("s", "e", []string{"Sousou no Frieren", "Frieren: Beyond Journey's End"}, 3, "")

		Convey("A release with the name and episode should match exactly", func() {
			So(Classify(req, "[SubsPlease] Sousou no Frieren - 03 (1080p) [ABCD1234].mkv"), ShouldEqual, source.MatchExact)
		})

		Convey("An alternative title should match too", func() {
			So(Classify(req, "Frieren Beyond Journey's End E03 1080p WEB"), ShouldEqual, source.MatchExact)
		})

		Convey("A different episode should not match", func() {
			So(Classify(req, "[SubsPlease] Sousou no Frieren - 04 (1080p)"), ShouldEqual, source.MatchNone)
		})

		Convey("A batch without episode numbers should match fuzzily", func() {
			So(Classify(req, "[Group] Sousou no Frieren (Batch) [1080p]"), ShouldEqual, source.MatchFuzzy)
		})

		Convey("A misspelled name should match fuzzily", func() {
			So(Classify(req, "Sosou no Frieren - 03"), ShouldEqual, source.MatchFuzzy)
		})

		Convey("Another show should not match", func() {
			So(Classify(req, "[SubsPlease] Dungeon Meshi - 03 (1080p)"), ShouldEqual, source.MatchNone)
		})
	})

	Convey("Given a subject with a number in its name", t, func() {
		req := source.NewRequest("s", "e", []string{"Mob Psycho 100"}, 5, "")

		So(Classify(req, "Mob Psycho 100 - 05 [720p]"), ShouldEqual, source.MatchExact)
		So(Classify(req, "Mob Psycho 100 - 06 [720p]"), ShouldEqual, source.MatchNone)
	})
}

func TestEpisodes(t *testing.T) {
	Convey("Episodes", t, func() {
		So(Episodes("show - 12.5 [1080p] x264 hevc 10bit 2023"), ShouldResemble, []float64{12.5})
		So(Episodes("show - 03v2"), ShouldResemble, []float64{3})
		So(Episodes("show"), ShouldBeEmpty)
	})
}

func TestResolution(t *testing.T) {
	Convey("Resolution", t, func() {
		So(Resolution("Show - 01 [1080p]"), ShouldEqual, "1080p")
		So(Resolution("Show - 01 4K HDR"), ShouldEqual, "2160p")
		So(Resolution("Show - 01"), ShouldEqual, "")
	})
}
