package model_test

import (
	"testing"

	"github.com/albionarcade/gully/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestStarsForTier(t *testing.T) {
	Convey("Given the tier ladder", t, func() {
		Convey("When mapping tiers to stars", func() {
			So(model.StarsForTier(1), ShouldEqual, 5)
			So(model.StarsForTier(2), ShouldEqual, 4)
			So(model.StarsForTier(3), ShouldEqual, 3)
			So(model.StarsForTier(4), ShouldEqual, 2)
			So(model.StarsForTier(5), ShouldEqual, 1)
		})

		Convey("When the tier is out of range", func() {
			So(model.StarsForTier(0), ShouldEqual, 0)
			So(model.StarsForTier(6), ShouldEqual, 0)
		})
	})
}

func TestFullName(t *testing.T) {
	Convey("Given player records", t, func() {
		Convey("When both names are present", func() {
			p := model.Player{FirstName: "Dixie", LastName: "Dean"}
			So(p.FullName(), ShouldEqual, "Dixie Dean")
		})

		Convey("When only one token exists", func() {
			p := model.Player{FirstName: "Pele"}
			So(p.FullName(), ShouldEqual, "Pele")
		})
	})
}
