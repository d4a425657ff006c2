// Package repository provides the read-only player table and the mutable
// recency log backing the daily selection.
package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/albionarcade/gully/internal/domain/model"
	"github.com/albionarcade/gully/pkg/logger"
	"github.com/albionarcade/gully/pkg/metrics"
)

// Birth date layouts accepted by the loader, tried in order.
var dobLayouts = []string{
	"2006-01-02",
	"2 January 2006",
	"January 2, 2006",
	"02/01/2006",
}

// nextTeam values meaning "no next team" in the source data.
var noNextTeam = map[string]bool{
	"":              true,
	"retired":       true,
	"still at club": true,
}

// Table is the immutable in-memory player table, loaded once at startup.
// It is never mutated after load, so it is safe for concurrent readers.
type Table struct {
	players []model.Player
	byID    map[int]model.Player
}

// LoadTable reads the player CSV at path. Malformed rows are skipped with
// a warning rather than failing the whole table; a table with zero valid
// rows returns ErrNoPlayers, which is fatal at startup.
func LoadTable(ctx context.Context, path string, log logger.Logger) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoPlayers, err)
	}
	defer f.Close()

	t, err := loadTable(ctx, f, log)
	if err != nil {
		return nil, err
	}
	metrics.UpdatePlayerPoolSize(len(t.players))
	return t, nil
}

func loadTable(ctx context.Context, r io.Reader, log logger.Logger) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows are handled per-row below

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoPlayers, err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	t := &Table{byID: make(map[int]model.Player)}
	row := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if log != nil {
				log.Warn(ctx, "skipping unreadable csv row", logger.Int("row", row), logger.Error(err))
			}
			row++
			continue
		}

		p, err := parsePlayer(cols, record, row)
		if err != nil {
			if log != nil {
				log.Warn(ctx, "skipping malformed player row", logger.Int("row", row), logger.Error(err))
			}
			row++
			continue
		}
		t.players = append(t.players, p)
		t.byID[p.ID] = p
		row++
	}

	if len(t.players) == 0 {
		return nil, ErrNoPlayers
	}
	return t, nil
}

func parsePlayer(cols map[string]int, record []string, id int) (model.Player, error) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	name := field("name")
	if name == "" {
		return model.Player{}, fmt.Errorf("empty name")
	}
	first, last := splitName(name)

	dobStr := field("date_of_birth")
	dob, err := parseDOB(dobStr)
	if err != nil {
		return model.Player{}, fmt.Errorf("bad date of birth %q: %w", dobStr, err)
	}

	apps, err := parseCount(field("appearances"))
	if err != nil {
		return model.Player{}, fmt.Errorf("bad appearances: %w", err)
	}
	goals, err := parseCount(field("goals"))
	if err != nil {
		return model.Player{}, fmt.Errorf("bad goals: %w", err)
	}
	spells := 1
	if s := field("spells"); s != "" {
		spells, err = strconv.Atoi(s)
		if err != nil || spells < 1 {
			return model.Player{}, fmt.Errorf("bad spells %q", s)
		}
	}

	next := field("next_team")
	if noNextTeam[strings.ToLower(next)] {
		next = ""
	}

	return model.Player{
		ID:           id,
		FirstName:    first,
		LastName:     last,
		DateOfBirth:  dob,
		Birthplace:   field("birthplace"),
		Position:     strings.ToLower(field("position")),
		Appearances:  apps,
		Goals:        goals,
		Spells:       spells,
		PreviousTeam: field("previous_team"),
		NextTeam:     next,
		Years:        field("years"),
	}, nil
}

// splitName splits at the first space; single-token names become a first
// name with an empty last name.
func splitName(name string) (string, string) {
	name = strings.Trim(strings.TrimSpace(name), `"`)
	if i := strings.IndexByte(name, ' '); i >= 0 {
		return name[:i], strings.TrimSpace(name[i+1:])
	}
	return name, ""
}

func parseDOB(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty")
	}
	var lastErr error
	for _, layout := range dobLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func parseCount(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative count %d", n)
	}
	return n, nil
}

// Players returns every row in table order.
// The returned slice must be treated as read-only.
func (t *Table) Players(_ context.Context) []model.Player {
	return t.players
}

// ByID returns the player with the given id.
func (t *Table) ByID(_ context.Context, id int) (model.Player, error) {
	p, ok := t.byID[id]
	if !ok {
		return model.Player{}, fmt.Errorf("%w: %d", ErrUnknownPlayer, id)
	}
	return p, nil
}

// Len returns the number of loaded players.
func (t *Table) Len() int {
	return len(t.players)
}
