package selection_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/albionarcade/gully/internal/domain/model"
	selection "github.com/albionarcade/gully/internal/domain/selection"
	. "github.com/smartystreets/goconvey/convey"
)

var errUnknownPlayer = errors.New("unknown player")

type fakeTable struct {
	players []model.Player
}

func (f *fakeTable) Players(_ context.Context) []model.Player {
	return f.players
}

func (f *fakeTable) ByID(_ context.Context, id int) (model.Player, error) {
	for _, p := range f.players {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Player{}, errUnknownPlayer
}

type logEntry struct {
	day time.Time
	id  int
}

type fakeLog struct {
	entries []logEntry
	appends int
}

func (f *fakeLog) EntryFor(_ context.Context, day time.Time) (int, bool) {
	for _, e := range f.entries {
		if e.day.Equal(day) {
			return e.id, true
		}
	}
	return 0, false
}

func (f *fakeLog) UsedWithin(_ context.Context, day time.Time, windowDays int) map[int]struct{} {
	cutoff := day.AddDate(0, 0, -windowDays)
	out := make(map[int]struct{})
	for _, e := range f.entries {
		if !e.day.Before(cutoff) && e.day.Before(day) {
			out[e.id] = struct{}{}
		}
	}
	return out
}

func (f *fakeLog) Append(_ context.Context, day time.Time, id int) error {
	f.entries = append(f.entries, logEntry{day: day, id: id})
	f.appends++
	return nil
}

func (f *fakeLog) Prune(_ context.Context, cutoff time.Time) error {
	kept := f.entries[:0]
	for _, e := range f.entries {
		if !e.day.Before(cutoff) {
			kept = append(kept, e)
		}
	}
	f.entries = kept
	return nil
}

func squad(n int) []model.Player {
	players := make([]model.Player, 0, n)
	for i := 1; i <= n; i++ {
		players = append(players, model.Player{
			ID:          i,
			FirstName:   "Player",
			LastName:    "Number",
			Appearances: i * 10,
		})
	}
	return players
}

func TestSelector(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	Convey("Given a selector over a ten-player table", t, func() {
		table := &fakeTable{players: squad(10)}
		log := &fakeLog{}
		sel := selection.New(table, log)

		Convey("When selecting for the same date twice", func() {
			first, err1 := sel.Select(ctx, day)
			second, err2 := sel.Select(ctx, day)

			Convey("Then both calls return the same player", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(second.ID, ShouldEqual, first.ID)
			})

			Convey("And only one log entry is appended", func() {
				So(log.appends, ShouldEqual, 1)
			})
		})

		Convey("When two independent selectors see the same date", func() {
			other := selection.New(&fakeTable{players: squad(10)}, &fakeLog{})

			a, errA := sel.Select(ctx, day)
			b, errB := other.Select(ctx, day)

			Convey("Then they pick the same player", func() {
				So(errA, ShouldBeNil)
				So(errB, ShouldBeNil)
				So(b.ID, ShouldEqual, a.ID)
			})
		})

		Convey("When selecting at different times of the same day", func() {
			morning, errA := sel.Select(ctx, day.Add(1*time.Minute))
			evening, errB := sel.Select(ctx, day.Add(23*time.Hour))

			Convey("Then both resolve to the same pick", func() {
				So(errA, ShouldBeNil)
				So(errB, ShouldBeNil)
				So(evening.ID, ShouldEqual, morning.ID)
				So(log.appends, ShouldEqual, 1)
			})
		})

		Convey("When the log already holds an entry for today", func() {
			So(log.Append(ctx, day, 7), ShouldBeNil)
			appendsBefore := log.appends

			p, err := sel.Select(ctx, day)

			Convey("Then the recorded player is returned without a new append", func() {
				So(err, ShouldBeNil)
				So(p.ID, ShouldEqual, 7)
				So(log.appends, ShouldEqual, appendsBefore)
			})
		})

		Convey("When selecting across consecutive days", func() {
			seen := make(map[int]bool)
			for i := 0; i < 10; i++ {
				p, err := sel.Select(ctx, day.AddDate(0, 0, i))
				So(err, ShouldBeNil)
				seen[p.ID] = true
			}

			Convey("Then no player repeats inside the window", func() {
				So(len(seen), ShouldEqual, 10)
			})
		})
	})

	Convey("Given a selector with a short window", t, func() {
		table := &fakeTable{players: squad(10)}
		log := &fakeLog{}
		sel := selection.New(table, log, selection.WithWindowDays(3))

		Convey("When a player falls out of the window", func() {
			picks := make([]int, 0, 8)
			for i := 0; i < 8; i++ {
				p, err := sel.Select(ctx, day.AddDate(0, 0, i))
				So(err, ShouldBeNil)
				picks = append(picks, p.ID)
			}

			Convey("Then any three consecutive picks stay distinct", func() {
				for i := 0; i+2 < len(picks); i++ {
					So(picks[i], ShouldNotEqual, picks[i+1])
					So(picks[i], ShouldNotEqual, picks[i+2])
				}
			})
		})
	})

	Convey("Given a pool smaller than the window", t, func() {
		table := &fakeTable{players: squad(2)}
		log := &fakeLog{}
		sel := selection.New(table, log, selection.WithWindowDays(30))

		Convey("When every eligible player was used recently", func() {
			for i := 0; i < 2; i++ {
				_, err := sel.Select(ctx, day.AddDate(0, 0, i))
				So(err, ShouldBeNil)
			}

			p, err := sel.Select(ctx, day.AddDate(0, 0, 2))

			Convey("Then the window resets and a pick still comes back", func() {
				So(err, ShouldBeNil)
				So(p.ID, ShouldBeIn, []int{1, 2})
			})
		})
	})

	Convey("Given a table with no eligible players", t, func() {
		table := &fakeTable{players: []model.Player{
			{ID: 1, FirstName: "Never", LastName: "Played", Appearances: 0},
		}}
		sel := selection.New(table, &fakeLog{})

		Convey("When selecting", func() {
			_, err := sel.Select(ctx, day)

			Convey("Then it fails with ErrNoPlayers", func() {
				So(errors.Is(err, selection.ErrNoPlayers), ShouldBeTrue)
			})
		})
	})

	Convey("Given the seed formula", t, func() {
		sel := selection.New(&fakeTable{}, &fakeLog{})

		Convey("When deriving the seed for a known date", func() {
			seed := sel.Seed(time.Date(2026, 1, 15, 13, 45, 0, 0, time.UTC))

			Convey("Then it equals year*1000 plus day-of-year", func() {
				So(seed, ShouldEqual, int64(2026*1000+15))
			})
		})

		Convey("When normalizing a late-evening timestamp", func() {
			norm := sel.Day(time.Date(2026, 3, 1, 23, 59, 59, 0, time.UTC))

			Convey("Then it lands on midnight of the same day", func() {
				So(norm, ShouldEqual, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
			})
		})
	})

	Convey("Given a selector pinned to a non-UTC zone", t, func() {
		loc := time.FixedZone("UTC+10", 10*60*60)
		table := &fakeTable{players: squad(10)}
		log := &fakeLog{}
		sel := selection.New(table, log, selection.WithLocation(loc))

		Convey("When a UTC evening timestamp crosses local midnight", func() {
			utcEvening := time.Date(2026, 1, 15, 20, 0, 0, 0, time.UTC)
			norm := sel.Day(utcEvening)

			Convey("Then the day resolves in the configured zone", func() {
				So(norm.Day(), ShouldEqual, 16)
				So(norm.Location(), ShouldEqual, loc)
			})
		})
	})
}
