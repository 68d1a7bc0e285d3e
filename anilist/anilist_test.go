package anilist

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/anisan-cli/anifetch/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestNames(t *testing.T) {
	Convey("Given an anime with overlapping titles", t, func() {
		anime := &Anime{ID: 1}
		anime.Title.Romaji = "Sousou no Frieren"
		anime.Title.English = "Frieren: Beyond Journey's End"
		anime.Title.Native = "葬送のフリーレン"
		anime.Synonyms = []string{" Frieren ", "", "Sousou no Frieren"}

		Convey("Names should drop blanks and duplicates", func() {
			So(anime.Names(), ShouldResemble, []string{
				"Sousou no Frieren",
				"Frieren: Beyond Journey's End",
				"葬送のフリーレン",
				"Frieren",
			})
		})

		Convey("Name should prefer the english title", func() {
			So(anime.Name(), ShouldEqual, "Frieren: Beyond Journey's End")
			anime.Title.English = ""
			So(anime.Name(), ShouldEqual, "Sousou no Frieren")
		})
	})
}

func TestGetByID(t *testing.T) {
	Convey("Given a fake Anilist endpoint", t, func() {
		var hits atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			if r.Method != http.MethodPost {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = fmt.Fprint(w, `{"data":{"media":{"id":154587,"idMal":52991,"title":{"romaji":"Sousou no Frieren","english":"Frieren","native":"葬送のフリーレン"},"synonyms":["Frieren at the Funeral"],"episodes":28}}}`)
		}))
		defer server.Close()

		previous := Endpoint
		Endpoint = server.URL
		defer func() { Endpoint = previous }()

		Convey("GetByID should decode the media and cache it", func() {
			anime, err := GetByID(context.Background(), 154587)
			So(err, ShouldBeNil)
			So(anime.IDMal, ShouldEqual, 52991)
			So(anime.Episodes, ShouldEqual, 28)
			So(anime.Names(), ShouldContain, "Frieren at the Funeral")

			again, err := GetByID(context.Background(), 154587)
			So(err, ShouldBeNil)
			So(again.ID, ShouldEqual, anime.ID)
			So(hits.Load(), ShouldEqual, 1)
		})
	})

	Convey("Given an endpoint reporting a missing media", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = fmt.Fprint(w, `{"data":{"media":null},"errors":[{"message":"Not Found.","status":404}]}`)
		}))
		defer server.Close()

		previous := Endpoint
		Endpoint = server.URL
		defer func() { Endpoint = previous }()

		Convey("GetByID should return ErrNotFound", func() {
			_, err := GetByID(context.Background(), 42)
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		})
	})
}
