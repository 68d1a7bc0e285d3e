package cmd

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anisan-cli/anifetch/anilist"
	"github.com/anisan-cli/anifetch/filesystem"
	"github.com/spf13/cobra"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestRequestFromFlags(t *testing.T) {
	Convey("Given a command with request flags", t, func() {
		cmd := &cobra.Command{Use: "test"}
		addRequestFlags(cmd)

		Convey("Identifiers should default from the titles and episode", func() {
			So(cmd.Flags().Parse([]string{"-n", "Frieren", "-n", " Sousou no Frieren ", "-e", "12.5"}), ShouldBeNil)

			request, err := requestFromFlags(cmd)
			So(err, ShouldBeNil)
			So(request.SubjectNames, ShouldResemble, []string{"Frieren", "Sousou no Frieren"})
			So(request.SubjectID, ShouldEqual, "frieren")
			So(request.EpisodeID, ShouldEqual, "frieren#12.5")
			So(request.EpisodeSort, ShouldEqual, 12.5)
		})

		Convey("Explicit identifiers should be kept", func() {
			So(cmd.Flags().Parse([]string{"-n", "Frieren", "--subject-id", "s1", "--episode-id", "e1"}), ShouldBeNil)

			request, err := requestFromFlags(cmd)
			So(err, ShouldBeNil)
			So(request.SubjectID, ShouldEqual, "s1")
			So(request.EpisodeID, ShouldEqual, "e1")
		})

		Convey("Blank titles should be rejected", func() {
			So(cmd.Flags().Parse([]string{"-n", "  "}), ShouldBeNil)

			_, err := requestFromFlags(cmd)
			So(err, ShouldNotBeNil)
		})

		Convey("A negative episode should fail validation", func() {
			So(cmd.Flags().Parse([]string{"-n", "Frieren", "-e", "-1"}), ShouldBeNil)

			_, err := requestFromFlags(cmd)
			So(err, ShouldNotBeNil)
		})

		Convey("An Anilist ID should contribute the titles and subject ID", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = fmt.Fprint(w, `{"data":{"media":{"id":21,"title":{"romaji":"One Piece","english":"One Piece","native":"ワンピース"}}}}`)
			}))
			defer server.Close()

			previous := anilist.Endpoint
			anilist.Endpoint = server.URL
			defer func() { anilist.Endpoint = previous }()

			cmd.SetContext(context.Background())
			So(cmd.Flags().Parse([]string{"--anilist", "21", "-e", "1000"}), ShouldBeNil)

			request, err := requestFromFlags(cmd)
			So(err, ShouldBeNil)
			So(request.SubjectNames, ShouldResemble, []string{"One Piece", "ワンピース"})
			So(request.SubjectID, ShouldEqual, "anilist:21")
			So(request.EpisodeID, ShouldEqual, "anilist:21#1000")
		})
	})
}
