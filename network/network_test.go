package network

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anisan-cli/anifetch/constant"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDomainLimiter(t *testing.T) {
	Convey("Given a limiter of 10 requests per second", t, func() {
		l := NewDomainLimiter(10)
		ctx := context.Background()

		Convey("The first request to each domain should pass right away", func() {
			start := time.Now()
			So(l.Wait(ctx, "a.example"), ShouldBeNil)
			So(l.Wait(ctx, "b.example"), ShouldBeNil)
			So(time.Since(start), ShouldBeLessThan, 50*time.Millisecond)
		})

		Convey("A second request to the same domain should wait", func() {
			So(l.Wait(ctx, "a.example"), ShouldBeNil)
			start := time.Now()
			So(l.Wait(ctx, "a.example"), ShouldBeNil)
			So(time.Since(start), ShouldBeGreaterThan, 50*time.Millisecond)
		})

		Convey("A cancelled context should stop the wait", func() {
			So(l.Wait(ctx, "a.example"), ShouldBeNil)
			cancelled, cancel := context.WithCancel(ctx)
			cancel()
			So(l.Wait(cancelled, "a.example"), ShouldNotBeNil)
		})
	})

	Convey("A non-positive rate should not limit", t, func() {
		l := NewDomainLimiter(0)
		for i := 0; i < 100; i++ {
			So(l.Wait(context.Background(), "a.example"), ShouldBeNil)
		}
	})
}

func TestLimitedTransport(t *testing.T) {
	Convey("Given a limited transport", t, func() {
		var agent string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			agent = r.Header.Get("User-Agent")
		}))
		defer server.Close()

		l := NewDomainLimiter(0)
		client := &http.Client{Transport: &limitedTransport{
			base:    http.DefaultTransport,
			limiter: func() *DomainLimiter { return l },
		}}

		Convey("It should set the user agent", func() {
			resp, err := client.Get(server.URL)
			So(err, ShouldBeNil)
			resp.Body.Close()
			So(agent, ShouldEqual, constant.UserAgent)
		})

		Convey("It should keep a given user agent", func() {
			req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
			req.Header.Set("User-Agent", "custom")
			resp, err := client.Do(req)
			So(err, ShouldBeNil)
			resp.Body.Close()
			So(agent, ShouldEqual, "custom")
		})
	})
}
