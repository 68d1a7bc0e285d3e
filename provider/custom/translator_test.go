package custom

import (
	"testing"

	"github.com/anisan-cli/anifetch/source"
	. "github.com/smartystreets/goconvey/convey"
	lua "github.com/yuin/gopher-lua"
)

var request = source.NewRequest("s", "e", []string{"Frieren"}, 3, "")

func TestMediaFromTable(t *testing.T) {
	Convey("mediaFromTable", t, func() {
		L := lua.NewState()
		defer L.Close()

		Convey("Should classify a media table by its title", func() {
			tbl := L.NewTable()
			tbl.RawSetString("url", lua.LString("magnet:?xt=urn:btih:abc"))
			tbl.RawSetString("title", lua.LString("[Group] Frieren - 03 [1080p]"))
			tbl.RawSetString("size", lua.LNumber(1024))

			m, err := mediaFromTable(tbl, request, "nyaa-lua")
			So(err, ShouldBeNil)
			So(m.Kind, ShouldEqual, source.MatchExact)
			So(m.Media.Kind, ShouldEqual, source.KindTorrent)
			So(m.Media.Resolution, ShouldEqual, "1080p")
			So(m.Media.Size, ShouldEqual, int64(1024))
			So(m.Media.SourceID, ShouldEqual, "nyaa-lua")
		})

		Convey("Should honour an explicit match and headers", func() {
			tbl := L.NewTable()
			tbl.RawSetString("url", lua.LString("https://example.com/stream.m3u8"))
			tbl.RawSetString("quality", lua.LString("720p"))
			tbl.RawSetString("match", lua.LString("fuzzy"))

			headers := L.NewTable()
			headers.RawSetString("Referer", lua.LString("https://example.com"))
			tbl.RawSetString("headers", headers)

			m, err := mediaFromTable(tbl, request, "x")
			So(err, ShouldBeNil)
			So(m.Kind, ShouldEqual, source.MatchFuzzy)
			So(m.Media.Kind, ShouldEqual, source.KindWeb)
			So(m.Media.Resolution, ShouldEqual, "720p")
			So(m.Media.Headers["Referer"], ShouldEqual, "https://example.com")
		})

		Convey("Should fail without url", func() {
			_, err := mediaFromTable(L.NewTable(), request, "x")
			So(err, ShouldNotBeNil)
		})

		Convey("A list should fail only when every entry is invalid", func() {
			good := L.NewTable()
			good.RawSetString("url", lua.LString("https://example.com/a"))

			list := L.NewTable()
			list.Append(L.NewTable())
			list.Append(good)

			items, err := mediaFromList(list, request, "x")
			So(err, ShouldBeNil)
			So(items, ShouldHaveLength, 1)

			bad := L.NewTable()
			bad.Append(L.NewTable())
			_, err = mediaFromList(bad, request, "x")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestEpisodeFromTable(t *testing.T) {
	Convey("episodeFromTable", t, func() {
		L := lua.NewState()
		defer L.Close()

		Convey("Should prefer the number in the name", func() {
			tbl := L.NewTable()
			tbl.RawSetString("name", lua.LString("Season 1 Episode 12.5"))
			tbl.RawSetString("url", lua.LString("u"))
			tbl.RawSetString("number", lua.LNumber(13))

			e, err := episodeFromTable(tbl)
			So(err, ShouldBeNil)
			So(e.HasNumber, ShouldBeTrue)
			So(e.Number, ShouldEqual, 12.5)
		})

		Convey("Should fall back to the number field", func() {
			tbl := L.NewTable()
			tbl.RawSetString("name", lua.LString("Finale"))
			tbl.RawSetString("url", lua.LString("u"))
			tbl.RawSetString("number", lua.LString("24"))

			e, err := episodeFromTable(tbl)
			So(err, ShouldBeNil)
			So(e.Number, ShouldEqual, 24.0)
		})

		Convey("Should fail without name", func() {
			tbl := L.NewTable()
			tbl.RawSetString("url", lua.LString("u"))
			_, err := episodeFromTable(tbl)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestRequestToTable(t *testing.T) {
	Convey("requestToTable", t, func() {
		L := lua.NewState()
		defer L.Close()

		tbl := requestToTable(L, request)
		So(getString(tbl, "subject_id"), ShouldEqual, "s")
		n, ok := getNumber(tbl, "sort")
		So(ok, ShouldBeTrue)
		So(n, ShouldEqual, 3.0)
		So(tbl.RawGetString("names").(*lua.LTable).Len(), ShouldEqual, 1)
	})
}
