package model

// FactType classifies which underlying data field a clue reveals.
// Tags are used to prevent the same fact from being revealed twice.
type FactType string

// Fact-type tags.
const (
	FactBirthdate    FactType = "birthdate"
	FactBirthplace   FactType = "birthplace"
	FactAppearances  FactType = "appearances"
	FactGoals        FactType = "goals"
	FactPosition     FactType = "position"
	FactPreviousTeam FactType = "previous-team"
	FactNextTeam     FactType = "next-team"
	FactSpells       FactType = "spells"
	FactYears        FactType = "years"
	FactCombination  FactType = "combination"
)

// Clue is one ordered emission unit of the daily challenge.
// Tier 1 is hardest (5 stars) down to tier 5 (1 star).
type Clue struct {
	Tier  int        `json:"tier"`
	Stars int        `json:"stars"`
	Facts []FactType `json:"-"`
	Text  string     `json:"text"`
}

// TierCount is the fixed number of clues per challenge.
const TierCount = 5

// StarsForTier maps a tier number (1..5) to its star value (5..1).
func StarsForTier(tier int) int {
	if tier < 1 || tier > TierCount {
		return 0
	}
	return TierCount + 1 - tier
}
