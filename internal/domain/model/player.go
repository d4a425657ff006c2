// Package model contains domain models passed between layers.
package model

import (
	"strings"
	"time"
)

// Position values used by the player table.
const (
	PositionDefender   = "defender"
	PositionMidfielder = "midfielder"
	PositionForward    = "forward"
	PositionGoalkeeper = "goalkeeper"
)

// Player represents one historical player row from the backing table.
// The table is loaded once at startup and treated as read-only.
type Player struct {
	ID           int       // row index in the table; stable for a given dataset
	FirstName    string    // non-empty after trimming
	LastName     string    // non-empty after trimming
	DateOfBirth  time.Time // parsed from the dataset
	Birthplace   string    // "City, Country"
	Position     string    // defender/midfielder/forward/goalkeeper
	Appearances  int       // league appearances for the club, >= 0
	Goals        int       // league goals for the club, >= 0
	Spells       int       // number of spells at the club, >= 1
	PreviousTeam string    // empty means joined from the youth academy
	NextTeam     string    // empty means retired at the club or still playing there
	Years        string    // seasons range, e.g. "2010-2015"
}

// FullName returns "First Last" with single-name players handled.
func (p Player) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}
