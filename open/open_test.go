package open

import (
	"testing"

	"github.com/anisan-cli/anifetch/constant"
	"github.com/anisan-cli/anifetch/source"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCommand(t *testing.T) {
	Convey("Given a media url", t, func() {
		input := "https://example.org/watch?ep=1&q=1080p"

		Convey("Linux should use xdg-open or the app itself", func() {
			argv, err := command(constant.Linux, input, "")
			So(err, ShouldBeNil)
			So(argv, ShouldResemble, []string{"xdg-open", input})

			argv, err = command(constant.Linux, input, "mpv")
			So(err, ShouldBeNil)
			So(argv, ShouldResemble, []string{"mpv", input})
		})

		Convey("Darwin should go through open", func() {
			argv, err := command(constant.Darwin, input, "IINA")
			So(err, ShouldBeNil)
			So(argv, ShouldResemble, []string{"open", "-a", "IINA", input})
		})

		Convey("Windows start should get escaped ampersands", func() {
			argv, err := command(constant.Windows, input, "vlc")
			So(err, ShouldBeNil)
			So(argv[len(argv)-1], ShouldEqual, "https://example.org/watch?ep=1^&q=1080p")
		})

		Convey("Unknown systems should be rejected", func() {
			_, err := command("plan9", input, "")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestMediaScheme(t *testing.T) {
	Convey("Media should refuse urls it cannot hand over safely", t, func() {
		So(Media(source.Media{URL: "javascript:alert(1)"}, ""), ShouldNotBeNil)
		So(Media(source.Media{URL: "::"}, ""), ShouldNotBeNil)
	})
}
