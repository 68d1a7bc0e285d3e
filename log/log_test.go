package log

import (
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
	Convey("Given logging is enabled", t, func() {
		viper.Set(key.LogsWrite, true)
		viper.Set(key.LogsLevel, "debug")
		viper.Set(key.LogsJson, true)
		defer func() {
			viper.Set(key.LogsWrite, false)
			So(Setup(), ShouldBeNil)
		}()

		So(Setup(), ShouldBeNil)

		Convey("Entries should land in today's file as json", func() {
			WithFields(Fields{"session": "s1"}).Debug("session created")

			contents, err := filesystem.API().ReadFile(Path())
			So(err, ShouldBeNil)
			So(string(contents), ShouldContainSubstring, `"session":"s1"`)
			So(string(contents), ShouldContainSubstring, `"msg":"session created"`)
		})
	})

	Convey("Given logging is disabled", t, func() {
		viper.Set(key.LogsWrite, false)
		So(Setup(), ShouldBeNil)

		Convey("Nothing should be written", func() {
			Warn("dropped")
			contents, _ := filesystem.API().ReadFile(Path())
			So(string(contents), ShouldNotContainSubstring, "dropped")
		})
	})
}
