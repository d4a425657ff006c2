package clues_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	clues "github.com/albionarcade/gully/internal/domain/clues"
	"github.com/albionarcade/gully/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func fullRecord() model.Player {
	return model.Player{
		ID:           42,
		FirstName:    "Dixie",
		LastName:     "Dean",
		DateOfBirth:  time.Date(1985, 1, 15, 0, 0, 0, 0, time.UTC),
		Birthplace:   "Birkenhead, England",
		Position:     "Striker",
		Appearances:  156,
		Goals:        60,
		Spells:       1,
		PreviousTeam: "Tranmere Rovers",
		NextTeam:     "Notts County",
		Years:        "1925-1937",
	}
}

func TestBuilder(t *testing.T) {
	Convey("Given a builder and a fully populated record", t, func() {
		b := clues.New(clues.WithClubName("Everton"))
		p := fullRecord()

		Convey("When building the clue set", func() {
			tiers, err := b.Build(p)

			Convey("Then exactly five tiers come back in order", func() {
				So(err, ShouldBeNil)
				So(len(tiers), ShouldEqual, model.TierCount)
				for i, c := range tiers {
					So(c.Tier, ShouldEqual, i+1)
					So(c.Stars, ShouldEqual, model.TierCount-i)
				}
			})

			Convey("Then the primary ladder fills tiers one to four", func() {
				So(err, ShouldBeNil)
				So(tiers[0].Text, ShouldContainSubstring, "January 15, 1985")
				So(tiers[1].Text, ShouldContainSubstring, "Birkenhead, England")
				So(tiers[2].Text, ShouldContainSubstring, "156")
				So(tiers[2].Text, ShouldContainSubstring, "Everton")
				So(tiers[3].Text, ShouldContainSubstring, "Striker")
			})

			Convey("Then no fact appears in two single-fact tiers", func() {
				So(err, ShouldBeNil)
				seen := make(map[model.FactType]bool)
				for _, c := range tiers[:model.TierCount-1] {
					So(len(c.Facts), ShouldEqual, 1)
					So(seen[c.Facts[0]], ShouldBeFalse)
					seen[c.Facts[0]] = true
				}
			})

			Convey("Then tier five recombines two already-revealed facts", func() {
				So(err, ShouldBeNil)
				last := tiers[model.TierCount-1]
				So(last.Facts[0], ShouldEqual, model.FactCombination)
				So(len(last.Facts), ShouldEqual, 3)
				So(last.Text, ShouldStartWith, "This player")

				revealed := make(map[model.FactType]bool)
				for _, c := range tiers[:model.TierCount-1] {
					revealed[c.Facts[0]] = true
				}
				So(revealed[last.Facts[1]], ShouldBeTrue)
				So(revealed[last.Facts[2]], ShouldBeTrue)
				So(last.Facts[1], ShouldNotEqual, last.Facts[2])
			})
		})

		Convey("When building twice for the same player", func() {
			first, err1 := b.Build(p)
			second, err2 := b.Build(p)

			Convey("Then the output is identical including the composite", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(second, ShouldResemble, first)
			})
		})
	})

	Convey("Given a record with excluded facts", t, func() {
		b := clues.New(clues.WithClubName("Everton"))

		Convey("When the player has no previous or next team", func() {
			p := fullRecord()
			p.PreviousTeam = ""
			p.NextTeam = ""
			p.Birthplace = "" // forces a substitution from the secondary pool

			tiers, err := b.Build(p)

			Convey("Then the missing teams never surface in any clue", func() {
				So(err, ShouldBeNil)
				So(len(tiers), ShouldEqual, model.TierCount)
				for _, c := range tiers {
					So(c.Text, ShouldNotContainSubstring, "joined Everton from")
					So(c.Text, ShouldNotContainSubstring, "left Everton to join")
				}
			})

			Convey("Then a secondary fact takes the empty slot", func() {
				So(err, ShouldBeNil)
				So(tiers[1].Facts[0], ShouldEqual, model.FactGoals)
				So(tiers[1].Text, ShouldContainSubstring, "60")
			})
		})

		Convey("When the record cannot fill five tiers", func() {
			p := model.Player{
				ID:          9,
				FirstName:   "Bare",
				LastName:    "Record",
				Appearances: 3,
			}

			_, err := b.Build(p)

			Convey("Then it fails with ErrInsufficientData", func() {
				So(errors.Is(err, clues.ErrInsufficientData), ShouldBeTrue)
			})
		})
	})

	Convey("Given the default club name", t, func() {
		b := clues.New()

		Convey("When building clues", func() {
			tiers, err := b.Build(fullRecord())

			Convey("Then club sentences fall back to a neutral noun", func() {
				So(err, ShouldBeNil)
				joined := make([]string, 0, len(tiers))
				for _, c := range tiers {
					joined = append(joined, c.Text)
				}
				So(strings.Join(joined, " "), ShouldContainSubstring, "the club")
			})
		})
	})
}
