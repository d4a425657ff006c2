package repository_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	repository "github.com/albionarcade/gully/internal/adapters/repository"
	. "github.com/smartystreets/goconvey/convey"
)

const sampleCSV = `name,date_of_birth,birthplace,position,appearances,goals,spells,previous_team,next_team,years
Dixie Dean,1907-01-22,"Birkenhead, England",Striker,399,349,1,Tranmere Rovers,Notts County,1925-1937
Neville Southall,16 September 1958,"Llandudno, Wales",Goalkeeper,578,0,1,Bury,Stoke City,1981-1998
Academy Graduate,2001-03-05,"Liverpool, England",Midfielder,12,1,1,,still at club,2019-
Broken Row,not-a-date,Nowhere,Defender,10,0,1,,,
Leighton Baines,11/12/1984,"Kirkby, England",Left-back,420,32,1,Wigan Athletic,retired,2007-2020
`

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "players.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadTable(t *testing.T) {
	ctx := context.Background()

	Convey("Given a player CSV with one malformed row", t, func() {
		path := writeCSV(t, sampleCSV)

		Convey("When loading the table", func() {
			table, err := repository.LoadTable(ctx, path, nil)

			Convey("Then valid rows load and the bad row is skipped", func() {
				So(err, ShouldBeNil)
				So(table.Len(), ShouldEqual, 4)
			})

			Convey("Then names split at the first space", func() {
				So(err, ShouldBeNil)
				p := table.Players(ctx)[0]
				So(p.FirstName, ShouldEqual, "Dixie")
				So(p.LastName, ShouldEqual, "Dean")
			})

			Convey("Then row order assigns ids", func() {
				So(err, ShouldBeNil)
				p, err := table.ByID(ctx, 0)
				So(err, ShouldBeNil)
				So(p.FullName(), ShouldEqual, "Dixie Dean")

				// Row 3 is the malformed one; id 3 never exists.
				_, err = table.ByID(ctx, 3)
				So(errors.Is(err, repository.ErrUnknownPlayer), ShouldBeTrue)
			})

			Convey("Then alternate birth date layouts parse", func() {
				So(err, ShouldBeNil)
				p, err := table.ByID(ctx, 1)
				So(err, ShouldBeNil)
				So(p.DateOfBirth.Equal(time.Date(1958, 9, 16, 0, 0, 0, 0, time.UTC)), ShouldBeTrue)
			})

			Convey("Then retirement markers clear the next team", func() {
				So(err, ShouldBeNil)
				stillHere, err := table.ByID(ctx, 2)
				So(err, ShouldBeNil)
				So(stillHere.NextTeam, ShouldEqual, "")
				So(stillHere.PreviousTeam, ShouldEqual, "")

				retired, err := table.ByID(ctx, 4)
				So(err, ShouldBeNil)
				So(retired.NextTeam, ShouldEqual, "")
			})

			Convey("Then positions normalize to lowercase", func() {
				So(err, ShouldBeNil)
				p, err := table.ByID(ctx, 0)
				So(err, ShouldBeNil)
				So(p.Position, ShouldEqual, "striker")
			})
		})
	})

	Convey("Given a CSV with only a header", t, func() {
		path := writeCSV(t, "name,date_of_birth,appearances\n")

		Convey("When loading the table", func() {
			_, err := repository.LoadTable(ctx, path, nil)

			Convey("Then it fails with ErrNoPlayers", func() {
				So(errors.Is(err, repository.ErrNoPlayers), ShouldBeTrue)
			})
		})
	})

	Convey("Given a missing file", t, func() {
		Convey("When loading the table", func() {
			_, err := repository.LoadTable(ctx, filepath.Join(t.TempDir(), "nope.csv"), nil)

			Convey("Then it fails with ErrNoPlayers", func() {
				So(errors.Is(err, repository.ErrNoPlayers), ShouldBeTrue)
			})
		})
	})
}
