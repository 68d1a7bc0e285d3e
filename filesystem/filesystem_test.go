package filesystem

import (
	"os"
	"testing"
	"time"

	"github.com/metafates/gache"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBackend(t *testing.T) {
	Convey("Given an in-memory backend", t, func() {
		SetMemMapFs()
		So(API().Name(), ShouldEqual, "MemMapFS")

		Convey("Files written through API should not reach the disk", func() {
			So(API().WriteFile("/anifetch-test/probe", []byte("x"), 0o644), ShouldBeNil)

			_, err := os.Stat("/anifetch-test/probe")
			So(os.IsNotExist(err), ShouldBeTrue)
		})

		Convey("Gache should persist through GacheFs", func() {
			cache := gache.New[map[string]bool](&gache.Options{
				Path:       "/cache/prefs.json",
				Lifetime:   time.Hour,
				FileSystem: &GacheFs{},
			})
			So(cache.Set(map[string]bool{"nyaa": false}), ShouldBeNil)

			exists, err := API().Exists("/cache/prefs.json")
			So(err, ShouldBeNil)
			So(exists, ShouldBeTrue)
		})

		Convey("SetOsFs should restore the real filesystem", func() {
			SetOsFs()
			So(API().Name(), ShouldEqual, "OsFs")
			SetMemMapFs()
		})
	})
}
