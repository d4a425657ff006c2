package site_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	site "github.com/albionarcade/gully/internal/adapters/http/site"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSite(t *testing.T) {
	Convey("Given the embedded frontend", t, func() {
		mux := http.NewServeMux()
		site.Register(context.Background(), mux)
		ts := httptest.NewServer(mux)
		defer ts.Close()

		Convey("When requesting the root page", func() {
			resp, err := http.Get(ts.URL + "/")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the game page is served", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				body, err := io.ReadAll(resp.Body)
				So(err, ShouldBeNil)
				So(string(body), ShouldContainSubstring, "GULLY")
				So(string(body), ShouldContainSubstring, "/api/daily-challenge")
			})
		})
	})

	Convey("Given a nil mux", t, func() {
		Convey("When registering", func() {
			So(func() { site.Register(context.Background(), nil) }, ShouldPanic)
		})
	})
}
