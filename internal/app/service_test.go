package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/albionarcade/gully/internal/adapters/ai"
	service "github.com/albionarcade/gully/internal/app"
	"github.com/albionarcade/gully/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

const testCSV = `name,date_of_birth,birthplace,position,appearances,goals,spells,previous_team,next_team,years
Alan Ball,1945-05-12,"Farnworth, England",Midfielder,208,66,1,Blackpool,Arsenal,1966-1971
Dixie Dean,1907-01-22,"Birkenhead, England",Striker,399,349,1,Tranmere Rovers,Notts County,1925-1937
Tim Howard,1979-03-06,"North Brunswick, USA",Goalkeeper,354,1,1,Manchester United,Colorado Rapids,2006-2016
Joe Trialist,2003-07-01,"Bootle, England",Defender,0,0,1,,,2022-
`

func newService(t *testing.T, opts ...service.Option) *service.Service {
	t.Helper()
	dir := t.TempDir()
	players := filepath.Join(dir, "players.csv")
	if err := os.WriteFile(players, []byte(testCSV), 0o600); err != nil {
		t.Fatal(err)
	}

	base := []service.Option{
		service.WithPlayersFile(players),
		service.WithRecentsFile(filepath.Join(dir, "recent_players.json")),
		service.WithClubName("Everton"),
		service.WithClock(func() time.Time {
			return time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
		}),
	}
	return service.New(append(base, opts...)...)
}

func TestService(t *testing.T) {
	ctx := context.Background()

	Convey("Given a started service with a pinned clock", t, func() {
		svc := newService(t)
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When fetching the daily challenge twice", func() {
			p1, clue1, err1 := svc.DailyChallenge(ctx)
			p2, clue2, err2 := svc.DailyChallenge(ctx)

			Convey("Then the pick is stable within the day", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(p2.ID, ShouldEqual, p1.ID)
				So(clue2, ShouldResemble, clue1)
			})

			Convey("Then the first clue is the five-star tier", func() {
				So(err1, ShouldBeNil)
				So(clue1.Tier, ShouldEqual, 1)
				So(clue1.Stars, ShouldEqual, 5)
				So(clue1.Text, ShouldNotBeEmpty)
			})

			Convey("Then the zero-appearance trialist is never picked", func() {
				So(err1, ShouldBeNil)
				So(p1.ID, ShouldNotEqual, 3)
			})
		})

		Convey("When walking the clue ladder", func() {
			p, _, err := svc.DailyChallenge(ctx)
			So(err, ShouldBeNil)

			for revealed := 1; revealed < model.TierCount; revealed++ {
				clue, done, err := svc.NextClue(ctx, p.ID, revealed)
				So(err, ShouldBeNil)
				So(done, ShouldBeFalse)
				So(clue.Tier, ShouldEqual, revealed+1)
			}

			Convey("Then the ladder reports done after tier five", func() {
				_, done, err := svc.NextClue(ctx, p.ID, model.TierCount)
				So(err, ShouldBeNil)
				So(done, ShouldBeTrue)
			})
		})

		Convey("When guessing", func() {
			p, _, err := svc.DailyChallenge(ctx)
			So(err, ShouldBeNil)

			Convey("And the guess is correct after two clues", func() {
				res, err := svc.CheckGuess(ctx, p.ID, p.FirstName, p.LastName, 2)

				Convey("Then the award matches the tier reached", func() {
					So(err, ShouldBeNil)
					So(res.Correct, ShouldBeTrue)
					So(res.Stars, ShouldEqual, 4)
					So(res.FullName, ShouldEqual, p.FullName())
				})
			})

			Convey("And the guess is wrong", func() {
				res, err := svc.CheckGuess(ctx, p.ID, "Wrong", "Name", 1)

				Convey("Then it is neither correct nor rejected", func() {
					So(err, ShouldBeNil)
					So(res.Correct, ShouldBeFalse)
					So(res.Rejected, ShouldBeFalse)
				})
			})

			Convey("And the guess is empty", func() {
				res, err := svc.CheckGuess(ctx, p.ID, "  ", "", 1)

				Convey("Then it is rejected, not an error", func() {
					So(err, ShouldBeNil)
					So(res.Rejected, ShouldBeTrue)
					So(res.Correct, ShouldBeFalse)
				})
			})

			Convey("And the revealed count is out of range", func() {
				low, errLow := svc.CheckGuess(ctx, p.ID, p.FirstName, p.LastName, 0)
				high, errHigh := svc.CheckGuess(ctx, p.ID, p.FirstName, p.LastName, 99)

				Convey("Then the stars clamp to the valid range", func() {
					So(errLow, ShouldBeNil)
					So(low.Stars, ShouldEqual, 5)
					So(errHigh, ShouldBeNil)
					So(high.Stars, ShouldEqual, 1)
				})
			})
		})

		Convey("When asking for AI content without a collaborator", func() {
			p, _, err := svc.DailyChallenge(ctx)
			So(err, ShouldBeNil)

			_, clueErr := svc.CrypticClue(ctx, p.ID)
			_, bioErr := svc.PlayerBio(ctx, p.ID)

			Convey("Then both fail with ErrDisabled", func() {
				So(errors.Is(clueErr, ai.ErrDisabled), ShouldBeTrue)
				So(errors.Is(bioErr, ai.ErrDisabled), ShouldBeTrue)
			})
		})

		Convey("When reading service stats", func() {
			stats := svc.GetStats()

			Convey("Then they reflect the loaded state", func() {
				So(stats["started"], ShouldBeTrue)
				So(stats["playerCount"], ShouldEqual, 4)
				So(stats["aiEnabled"], ShouldBeFalse)
			})
		})
	})

	Convey("Given a debug-enabled service", t, func() {
		svc := newService(t, service.WithDebug(true))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When forcing the pick to a known id", func() {
			So(svc.SetPlayer(ctx, 1), ShouldBeNil)

			p, _, err := svc.DailyChallenge(ctx)

			Convey("Then the override wins", func() {
				So(err, ShouldBeNil)
				So(p.ID, ShouldEqual, 1)
				So(p.FullName(), ShouldEqual, "Dixie Dean")
			})
		})

		Convey("When forcing an unknown id", func() {
			err := svc.SetPlayer(ctx, 99)

			Convey("Then it is refused", func() {
				So(err, ShouldNotBeNil)
			})
		})

		Convey("When inspecting recent selections", func() {
			entries := svc.RecentSelections(ctx)

			Convey("Then today's pick is already recorded with its name", func() {
				So(len(entries), ShouldEqual, 1)
				So(entries[0].Date, ShouldEqual, "2026-08-29")
				So(entries[0].Name, ShouldNotBeEmpty)
			})
		})

		Convey("When resetting the recency state", func() {
			So(svc.SetPlayer(ctx, 1), ShouldBeNil)
			So(svc.ResetRecents(ctx), ShouldBeNil)

			Convey("Then the log is empty and the override is cleared", func() {
				So(len(svc.RecentSelections(ctx)), ShouldEqual, 0)
			})
		})
	})

	Convey("Given an empty player file", t, func() {
		dir := t.TempDir()
		players := filepath.Join(dir, "players.csv")
		So(os.WriteFile(players, []byte("name,date_of_birth\n"), 0o600), ShouldBeNil)

		svc := service.New(
			service.WithPlayersFile(players),
			service.WithRecentsFile(filepath.Join(dir, "recent_players.json")),
		)

		Convey("When starting", func() {
			err := svc.Start(ctx)

			Convey("Then startup fails", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
