package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/anisan-cli/anifetch/fetch"
	"github.com/anisan-cli/anifetch/filesystem"
	"github.com/anisan-cli/anifetch/prefs"
	"github.com/anisan-cli/anifetch/source"
	tea "github.com/charmbracelet/bubbletea"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBubble(t *testing.T) {
	Convey("Given a session with an enabled and a disabled source", t, func() {
		found := source.MatchMedia{
			Media: source.Media{URL: "magnet:?xt=urn:btih:abc", Title: "Frieren - 01", Kind: source.KindTorrent},
			Kind:  source.MatchExact,
		}
		connector := source.ConnectorFunc(func(_ context.Context, _ source.Request, emit source.Emit) error {
			emit(found)
			return nil
		})

		f, err := fetch.New(fetch.DefaultConfig(), []source.Instance{
			{ID: "on", Name: "On", Enabled: true, Connector: connector},
			{ID: "off", Name: "Off", Connector: connector},
		})
		So(err, ShouldBeNil)
		defer f.Close()

		session, err := f.NewSession(context.Background(), source.NewRequest("s", "e", []string{"Frieren"}, 1, ""))
		So(err, ShouldBeNil)
		defer session.Close()

		b := newBubble(session)
		b.resize(120, 40)
		So(b.Init(), ShouldNotBeNil)

		_, err = session.AwaitCompletedResults(context.Background())
		So(err, ShouldBeNil)
		b.Update(changedMsg{})

		Convey("Both lists should reflect the session", func() {
			So(b.sourcesC.Items(), ShouldHaveLength, 2)
			So(b.resultsC.Items(), ShouldHaveLength, 1)
			So(b.completed, ShouldBeTrue)

			m, ok := b.resultsC.Items()[0].(*listItem).internal.(source.MatchMedia)
			So(ok, ShouldBeTrue)
			So(m.Media.SourceID, ShouldEqual, "on")
		})

		Convey("Space should disable the selected source", func() {
			b.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			r := session.Source("on").MustGet()
			So(r.State(), ShouldResemble, fetch.Disabled{})

			b.Update(changedMsg{})
			So(b.resultsC.Items(), ShouldBeEmpty)

			Convey("And space again should enable and start it", func() {
				b.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
				_, err := r.AwaitCompletedResults(context.Background())
				So(err, ShouldBeNil)
				So(r.State(), ShouldResemble, fetch.Succeed{})
			})
		})

		Convey("Restart should begin a new epoch", func() {
			r := session.Source("on").MustGet()
			epoch := r.Epoch()
			b.Update(runes("r"))
			So(r.Epoch(), ShouldEqual, epoch+1)
		})

		Convey("Saving as default should persist the choice", func() {
			b.sourcesC.Select(1)
			b.Update(runes("S"))
			So(prefs.Enabled("off").MustGet(), ShouldBeFalse)
		})

		Convey("Tab should switch views and esc should go back", func() {
			b.Update(tea.KeyMsg{Type: tea.KeyTab})
			So(b.state, ShouldEqual, resultsState)
			So(b.View(), ShouldContainSubstring, "Frieren - 01")

			b.Update(tea.KeyMsg{Type: tea.KeyEsc})
			So(b.state, ShouldEqual, sourcesState)
		})

		Convey("An error should be shown", func() {
			b.Update(errors.New("boom"))
			So(b.state, ShouldEqual, errorState)
			So(b.View(), ShouldContainSubstring, "boom")
		})
	})
}
