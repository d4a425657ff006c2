// Package clues assembles the five ordered clue tiers for a player.
//
// Tiers run hardest to easiest: tier 1 (5 stars) down to tier 5 (1 star).
// Tiers 1-4 each reveal one fact; a fact revealed once leaves the candidate
// pool. Tier 5 recombines two already-revealed facts into one composite
// sentence, chosen deterministically per player.
package clues

import (
	"fmt"
	"math/rand"

	"github.com/albionarcade/gully/internal/domain/model"
)

// Builder renders clue tiers from a player record.
type Builder struct {
	clubName string
}

// New constructs a Builder.
func New(opts ...Option) *Builder {
	b := &Builder{
		clubName: "the club",
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build returns exactly model.TierCount clues in fixed tier order.
//
// The primary ladder is birthdate, birthplace, appearances, position. When a
// primary is excluded for this player (missing fact) the next available
// template from the secondary pool takes its slot, so the tier count never
// drops below five. Returns ErrInsufficientData when the record cannot fill
// all five tiers.
func (b *Builder) Build(p model.Player) ([]model.Clue, error) {
	used := make(map[model.FactType]bool)
	usedOrder := make([]model.FactType, 0, model.TierCount)
	out := make([]model.Clue, 0, model.TierCount)

	secondary := b.secondaryPool()
	nextSecondary := func() (template, bool) {
		for len(secondary) > 0 {
			t := secondary[0]
			secondary = secondary[1:]
			if used[t.fact] {
				continue
			}
			if _, ok := t.render(b, p); !ok {
				// Excluded templates are skipped entirely, never
				// substituted with placeholder text.
				continue
			}
			return t, true
		}
		return template{}, false
	}

	for tier := 1; tier < model.TierCount; tier++ {
		t := b.primaryFor(tier)
		text, ok := t.render(b, p)
		if !ok || used[t.fact] {
			sub, found := nextSecondary()
			if !found {
				return nil, ErrInsufficientData
			}
			t = sub
			text, _ = t.render(b, p)
		}
		used[t.fact] = true
		usedOrder = append(usedOrder, t.fact)
		out = append(out, model.Clue{
			Tier:  tier,
			Stars: model.StarsForTier(tier),
			Facts: []model.FactType{t.fact},
			Text:  text,
		})
	}

	composite, err := b.composite(p, usedOrder)
	if err != nil {
		return nil, err
	}
	out = append(out, composite)
	return out, nil
}

// composite builds the tier-5 clue from two facts already revealed in
// tiers 1-4. The pair is chosen by a generator seeded with the player id,
// so one player always recombines the same facts while different players
// vary.
func (b *Builder) composite(p model.Player, usedOrder []model.FactType) (model.Clue, error) {
	if len(usedOrder) < 2 {
		return model.Clue{}, ErrInsufficientData
	}

	rng := rand.New(rand.NewSource(int64(p.ID))) //nolint:gosec // determinism is the requirement, not randomness quality
	i := rng.Intn(len(usedOrder))
	j := rng.Intn(len(usedOrder) - 1)
	if j >= i {
		j++
	}
	first, second := usedOrder[i], usedOrder[j]

	text := b.compositeText(p, first, second)
	return model.Clue{
		Tier:  model.TierCount,
		Stars: model.StarsForTier(model.TierCount),
		Facts: []model.FactType{model.FactCombination, first, second},
		Text:  text,
	}, nil
}

func (b *Builder) compositeText(p model.Player, first, second model.FactType) string {
	// Birth date and birthplace read naturally as one sentence.
	if (first == model.FactBirthdate && second == model.FactBirthplace) ||
		(first == model.FactBirthplace && second == model.FactBirthdate) {
		return fmt.Sprintf("This player was born on %s, in %s.",
			p.DateOfBirth.Format(dobLayout), p.Birthplace)
	}
	return fmt.Sprintf("This player %s and %s.", b.clause(p, first), b.clause(p, second))
}
