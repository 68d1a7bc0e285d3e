package source

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestRequest(t *testing.T) {
	Convey("Given a request built from unordered names", t, func() {
		r := NewRequest("s1", "e1", []string{" Frieren ", "Sousou no Frieren", "Frieren", ""}, 12, "")

		Convey("Names should form a sorted set", func() {
			So(r.SubjectNames, ShouldResemble, []string{"Frieren", "Sousou no Frieren"})
		})

		Convey("It should be valid", func() {
			So(r.Validate(), ShouldBeNil)
		})

		Convey("Fingerprint should not depend on name order", func() {
			other := Request{SubjectID: "s1", EpisodeID: "e1", SubjectNames: []string{"Sousou no Frieren", "Frieren"}, EpisodeSort: 12}
			So(other.Fingerprint(), ShouldEqual, r.Fingerprint())
		})

		Convey("Fingerprint should change with the episode", func() {
			other := NewRequest("s1", "e2", r.SubjectNames, 13, "")
			So(other.Fingerprint(), ShouldNotEqual, r.Fingerprint())
		})

		Convey("Sort should print fractional episodes", func() {
			So(r.Sort(), ShouldEqual, "12")
			So(NewRequest("s1", "e1", []string{"a"}, 12.5, "").Sort(), ShouldEqual, "12.5")
		})

		Convey("String should include the title", func() {
			So(r.String(), ShouldEqual, "Frieren - 12")
		})
	})

	Convey("Given an incomplete request", t, func() {
		Convey("Missing names should fail validation", func() {
			So(NewRequest("s1", "e1", nil, 1, "").Validate(), ShouldNotBeNil)
		})

		Convey("Missing subject should fail validation", func() {
			So(NewRequest("", "e1", []string{"a"}, 1, "").Validate(), ShouldNotBeNil)
		})

		Convey("Negative sort should fail validation", func() {
			So(NewRequest("s1", "e1", []string{"a"}, -1, "").Validate(), ShouldNotBeNil)
		})
	})
}

func TestMatchKind(t *testing.T) {
	Convey("MatchKind", t, func() {
		Convey("Should order by confidence", func() {
			So(MatchExact, ShouldBeGreaterThan, MatchFuzzy)
			So(MatchFuzzy, ShouldBeGreaterThan, MatchNone)
		})

		Convey("Should parse its own names", func() {
			for _, k := range []MatchKind{MatchNone, MatchFuzzy, MatchExact} {
				So(ParseMatchKind(k.String()), ShouldEqual, k)
			}
			So(ParseMatchKind("garbage"), ShouldEqual, MatchNone)
		})
	})
}

func TestKeyFuncs(t *testing.T) {
	Convey("Given two mirrors of one release", t, func() {
		a := Media{URL: "https://a/1", Title: "[Sub] Show - 01 [1080p]", Resolution: "1080p", Size: 100}
		b := Media{URL: "https://b/1", Title: "[sub]  show - 01 [1080P]", Resolution: "1080P", Size: 100}

		Convey("ByURL should tell them apart", func() {
			So(ByURL(a), ShouldNotEqual, ByURL(b))
		})

		Convey("ByTitle and ByRelease should collapse them", func() {
			So(ByTitle(a), ShouldEqual, ByTitle(b))
			So(ByRelease(a), ShouldEqual, ByRelease(b))
		})

		Convey("KeyFuncFor should resolve registered names", func() {
			_, err := KeyFuncFor("URL")
			So(err, ShouldBeNil)
			_, err = KeyFuncFor("hash")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestInstance(t *testing.T) {
	Convey("Instance", t, func() {
		noop := ConnectorFunc(func(context.Context, Request, Emit) error { return nil })

		So(Instance{ID: "a", Connector: noop}.Validate(), ShouldBeNil)
		So(Instance{Connector: noop}.Validate(), ShouldNotBeNil)
		So(Instance{ID: "a"}.Validate(), ShouldNotBeNil)
		So(Instance{ID: "a", Name: "Alpha"}.String(), ShouldEqual, "Alpha")
	})
}
