package custom

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/anisan-cli/anifetch/source"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenerate(t *testing.T) {
	Convey("Given a generated connector", t, func() {
		info := ScaffoldInfo{Name: "Anime Tosho", URL: "https://animetosho.org", Author: "tester"}

		dir := fmt.Sprintf("/scaffold/%d", time.Now().UnixNano())

		path, err := Generate(dir, info)
		So(err, ShouldBeNil)
		So(path, ShouldEqual, filepath.Join(dir, "Anime_Tosho.lua"))

		Convey("It should load as a paged connector that yields nothing", func() {
			c, err := Load(path)
			So(err, ShouldBeNil)
			defer c.Close()

			request := source.NewRequest("tosho", "tosho#1", []string{"Frieren"}, 1, "")
			err = c.Fetch(context.Background(), request, func(source.MatchMedia) bool { return true })
			So(err, ShouldBeNil)
		})

		Convey("Generating it again should fail", func() {
			_, err := Generate(dir, info)
			So(err, ShouldNotBeNil)
		})
	})
}
