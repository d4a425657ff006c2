package guess_test

import (
	"errors"
	"testing"

	guess "github.com/albionarcade/gully/internal/domain/guess"
	"github.com/albionarcade/gully/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestValidate(t *testing.T) {
	player := model.Player{ID: 1, FirstName: "Peter", LastName: "O'Brien"}

	Convey("Given a player record", t, func() {
		Convey("When the guess matches exactly", func() {
			ok, err := guess.Validate("Peter", "O'Brien", player)

			Convey("Then it is accepted", func() {
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
			})
		})

		Convey("When the guess differs only in case", func() {
			ok, err := guess.Validate("PETER", "o'brien", player)

			Convey("Then it is accepted", func() {
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
			})
		})

		Convey("When the guess carries surrounding whitespace", func() {
			ok, err := guess.Validate("  Peter\t", " O'Brien ", player)

			Convey("Then it is accepted", func() {
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
			})
		})

		Convey("When the guess uses a curly apostrophe", func() {
			ok, err := guess.Validate("Peter", "O’Brien", player)

			Convey("Then it matches the straight-quote spelling", func() {
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
			})
		})

		Convey("When only one name matches", func() {
			ok, err := guess.Validate("Peter", "Smith", player)

			Convey("Then it is wrong", func() {
				So(err, ShouldBeNil)
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When one field is empty and the other matches", func() {
			ok, err := guess.Validate("Peter", "", player)

			Convey("Then it is wrong, not rejected", func() {
				So(err, ShouldBeNil)
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When both fields are empty", func() {
			_, err := guess.Validate("", "   ", player)

			Convey("Then it fails with ErrEmptyGuess", func() {
				So(errors.Is(err, guess.ErrEmptyGuess), ShouldBeTrue)
			})
		})
	})

	Convey("Given a hyphenated name", t, func() {
		hyphenated := model.Player{ID: 2, FirstName: "Jean", LastName: "Saint-Maximin"}

		Convey("When the hyphen is replaced with a space", func() {
			ok, err := guess.Validate("Jean", "Saint Maximin", hyphenated)

			Convey("Then it does not match", func() {
				So(err, ShouldBeNil)
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When the hyphen is spelled as stored", func() {
			ok, err := guess.Validate("jean", "saint-maximin", hyphenated)

			Convey("Then it matches", func() {
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
			})
		})
	})
}
