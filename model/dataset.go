package model

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrPlayerNotFound error = errors.New("player not found")
	ErrClubNotFound   error = errors.New("club not found")
)

// Dataset is the filtered and sorted list of players. It is built once by the
// dataset loader and must not be modified afterwards.
type Dataset struct {
	players []Player
	clubs   []string
	byClub  map[string][]int
}

// NewDataset indexes players. The order of players is kept as given.
func NewDataset(players []Player) *Dataset {
	d := &Dataset{
		players: players,
		byClub:  make(map[string][]int),
	}

	for i, p := range players {
		d.byClub[p.Club] = append(d.byClub[p.Club], i)
	}

	d.clubs = countOrder(len(players), func(i int) string { return players[i].Club })
	return d
}

func (d *Dataset) Len() int {
	return len(d.players)
}

// Players returns a copy of all players in dataset order.
func (d *Dataset) Players() []Player {
	out := make([]Player, len(d.players))
	copy(out, d.players)
	return out
}

// Clubs returns the distinct clubs with the most players first. Clubs with
// the same number of players keep the order they first appear in.
func (d *Dataset) Clubs() []string {
	out := make([]string, len(d.clubs))
	copy(out, d.clubs)
	return out
}

// ClubPlayers returns the players of club in dataset order.
func (d *Dataset) ClubPlayers(club string) ([]Player, error) {
	idx, found := d.byClub[club]
	if !found {
		return nil, ErrClubNotFound
	}

	out := make([]Player, 0, len(idx))
	for _, i := range idx {
		out = append(out, d.players[i])
	}
	return out, nil
}

// PlayerNames returns the distinct player names of a club, ordered the same
// way as Clubs().
func (d *Dataset) PlayerNames(club string) ([]string, error) {
	idx, found := d.byClub[club]
	if !found {
		return nil, ErrClubNotFound
	}
	return countOrder(len(idx), func(i int) string { return d.players[idx[i]].Name }), nil
}

// Player returns the first player of club with the given name.
func (d *Dataset) Player(club, name string) (*Player, error) {
	idx, found := d.byClub[club]
	if !found {
		return nil, ErrClubNotFound
	}

	for _, i := range idx {
		if d.players[i].Name == name {
			p := d.players[i]
			return &p, nil
		}
	}
	return nil, ErrPlayerNotFound
}

// Filter returns all players matching the filter in dataset order.
func (d *Dataset) Filter(f PlayerFilter) []Player {
	var out []Player
	for _, p := range d.players {
		if f.Matches(&p) {
			out = append(out, p)
		}
	}
	return out
}

// PlayerFilter narrows the dataset. Zero values match everything.
type PlayerFilter struct {
	Name     string // case insensitive substring
	Club     string // case insensitive substring
	Position Position
	Line     Line
}

func (f *PlayerFilter) IsEmpty() bool {
	return f.Name == "" && f.Club == "" && f.Position == "" && f.Line == ""
}

func (f *PlayerFilter) Matches(p *Player) bool {
	if f.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Name)) {
		return false
	}
	if f.Club != "" && !strings.Contains(strings.ToLower(p.Club), strings.ToLower(f.Club)) {
		return false
	}
	if f.Position != "" && p.Position != f.Position {
		return false
	}
	if f.Line != "" && p.Position.Line() != f.Line {
		return false
	}
	return true
}

// countOrder returns the distinct keys of n items, most frequent first. Ties
// are broken by first appearance.
func countOrder(n int, key func(i int) string) []string {
	counts := make(map[string]int)
	var keys []string
	for i := 0; i < n; i++ {
		k := key(i)
		if _, seen := counts[k]; !seen {
			keys = append(keys, k)
		}
		counts[k]++
	}

	sort.SliceStable(keys, func(i, j int) bool {
		return counts[keys[i]] > counts[keys[j]]
	})
	return keys
}
