package clues

import (
	"fmt"

	"github.com/albionarcade/gully/internal/domain/model"
)

// dobLayout renders birth dates as "January 15, 1985".
const dobLayout = "January 2, 2006"

// template couples a fact tag with its sentence renderer. The renderer
// reports ok=false when the fact is excluded for this player, e.g. a
// previous-team clue for an academy graduate.
type template struct {
	fact   model.FactType
	render func(b *Builder, p model.Player) (string, bool)
}

// primaryFor returns the fixed primary template for tiers 1-4.
func (b *Builder) primaryFor(tier int) template {
	switch tier {
	case 1:
		return template{model.FactBirthdate, renderBirthdate}
	case 2:
		return template{model.FactBirthplace, renderBirthplace}
	case 3:
		return template{model.FactAppearances, renderAppearances}
	case 4:
		return template{model.FactPosition, renderPosition}
	default:
		panic(fmt.Sprintf("no primary template for tier %d", tier))
	}
}

// secondaryPool lists single-fact fallback templates in substitution order.
func (b *Builder) secondaryPool() []template {
	return []template{
		{model.FactGoals, renderGoals},
		{model.FactSpells, renderSpells},
		{model.FactPreviousTeam, renderPreviousTeam},
		{model.FactNextTeam, renderNextTeam},
		{model.FactYears, renderYears},
	}
}

func renderBirthdate(b *Builder, p model.Player) (string, bool) {
	if p.DateOfBirth.IsZero() {
		return "", false
	}
	return fmt.Sprintf("This player was born on %s.", p.DateOfBirth.Format(dobLayout)), true
}

func renderBirthplace(b *Builder, p model.Player) (string, bool) {
	if p.Birthplace == "" {
		return "", false
	}
	return fmt.Sprintf("This player was born in %s.", p.Birthplace), true
}

func renderAppearances(b *Builder, p model.Player) (string, bool) {
	return fmt.Sprintf("This player made %d league appearances for %s.", p.Appearances, b.clubName), true
}

func renderPosition(b *Builder, p model.Player) (string, bool) {
	if p.Position == "" {
		return "", false
	}
	return fmt.Sprintf("This player is a %s.", p.Position), true
}

func renderGoals(b *Builder, p model.Player) (string, bool) {
	return fmt.Sprintf("This player scored %d league goals for %s.", p.Goals, b.clubName), true
}

func renderSpells(b *Builder, p model.Player) (string, bool) {
	if p.Spells < 1 {
		return "", false
	}
	return fmt.Sprintf("This player had %s at %s.", spellCount(p.Spells), b.clubName), true
}

func renderPreviousTeam(b *Builder, p model.Player) (string, bool) {
	// Academy graduates have no previous team; the template is skipped
	// entirely rather than substituted.
	if p.PreviousTeam == "" {
		return "", false
	}
	return fmt.Sprintf("This player joined %s from %s.", b.clubName, p.PreviousTeam), true
}

func renderNextTeam(b *Builder, p model.Player) (string, bool) {
	// Empty means retired at the club or still playing there.
	if p.NextTeam == "" {
		return "", false
	}
	return fmt.Sprintf("This player left %s to join %s.", b.clubName, p.NextTeam), true
}

func renderYears(b *Builder, p model.Player) (string, bool) {
	if p.Years == "" {
		return "", false
	}
	return fmt.Sprintf("This player was at %s during %s.", b.clubName, p.Years), true
}

// clause renders the mid-sentence fragment of a fact for composite clues.
func (b *Builder) clause(p model.Player, fact model.FactType) string {
	switch fact {
	case model.FactBirthdate:
		return fmt.Sprintf("was born on %s", p.DateOfBirth.Format(dobLayout))
	case model.FactBirthplace:
		return fmt.Sprintf("was born in %s", p.Birthplace)
	case model.FactAppearances:
		return fmt.Sprintf("made %d league appearances for %s", p.Appearances, b.clubName)
	case model.FactPosition:
		return fmt.Sprintf("is a %s", p.Position)
	case model.FactGoals:
		return fmt.Sprintf("scored %d league goals for %s", p.Goals, b.clubName)
	case model.FactSpells:
		return fmt.Sprintf("had %s at %s", spellCount(p.Spells), b.clubName)
	case model.FactPreviousTeam:
		return fmt.Sprintf("joined %s from %s", b.clubName, p.PreviousTeam)
	case model.FactNextTeam:
		return fmt.Sprintf("left %s to join %s", b.clubName, p.NextTeam)
	case model.FactYears:
		return fmt.Sprintf("was at %s during %s", b.clubName, p.Years)
	default:
		return ""
	}
}

func spellCount(n int) string {
	if n == 1 {
		return "1 spell"
	}
	return fmt.Sprintf("%d spells", n)
}
