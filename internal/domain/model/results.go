package model

// GuessResult is the outcome of a submitted guess.
type GuessResult struct {
	Correct  bool
	Rejected bool // malformed input; an ordinary rejection, not a fault
	Stars    int
	FullName string
}

// RecentEntry is one recency-log row resolved against the player table,
// exposed by the debug surface.
type RecentEntry struct {
	Date     string `json:"date"`
	PlayerID int    `json:"player_id"`
	Name     string `json:"player_name"`
}
