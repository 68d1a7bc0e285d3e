package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/anisan-cli/anifetch/filesystem"
	"github.com/anisan-cli/anifetch/where"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestCache(t *testing.T) {
	Convey("Key", t, func() {
		So(Key("Frieren  03", "rss"), ShouldEqual, Key("frieren 03", "RSS"))
		So(Key("a", "bc"), ShouldNotEqual, Key("ab", "c"))
	})

	Convey("Given a written entry", t, func() {
		k := Key("query", "connector")
		So(Write(k, []string{"a", "b"}), ShouldBeNil)

		Convey("It should be read back", func() {
			var got []string
			So(Read(k, &got), ShouldBeTrue)
			So(got, ShouldResemble, []string{"a", "b"})
		})

		Convey("An expired entry should be missed and collected", func() {
			old := time.Now().Add(-2 * TTL)
			So(filesystem.API().Chtimes(filepath.Join(where.Responses(), k), old, old), ShouldBeNil)

			var got []string
			So(Read(k, &got), ShouldBeFalse)
			So(CollectGarbage(), ShouldEqual, 1)
		})
	})

	Convey("A missing entry should not be read", t, func() {
		var got []string
		So(Read(Key("missing"), &got), ShouldBeFalse)
	})
}
