package model

import (
	"fmt"
	"strings"
)

const (
	// The dataset stores weight in pounds, the profile shows kilograms.
	poundsToKilograms = 0.453
)

type Player struct {
	ID                 string
	Name               string
	Age                int
	Photo              string
	Nationality        string
	Flag               string
	Overall            int
	Potential          int
	Club               string
	ClubLogo           string
	Value              float64
	Wage               float64
	ReleaseClause      float64
	Position           Position
	PositionText       string // position cell as written in the file
	PreferredFoot      string
	Joined             string
	LoanedFrom         string
	ContractValidUntil int
	Height             float64 // centimeters
	Weight             float64 // pounds
	KitNumber          int
}

func (p *Player) String() string {
	return fmt.Sprintf("%s (%s, %s)", p.Name, p.Club, p.DisplayPosition())
}

// DisplayPosition is the position as shown on the pages. Codes unknown to
// ParsePosition are shown as they appear in the file.
func (p *Player) DisplayPosition() string {
	if p.PositionText != "" {
		return p.PositionText
	}
	return string(p.Position)
}

// HeightMeters returns the height in meters, e.g. 1.85.
func (p *Player) HeightMeters() float64 {
	return p.Height / 100
}

func (p *Player) WeightKilograms() float64 {
	return p.Weight * poundsToKilograms
}

func (p *Player) FormattedJoined() string {
	if p.Joined == "" {
		return "unknown"
	}
	return p.Joined
}

// OnLoan is true when the player is on loan from another club.
func (p *Player) OnLoan() bool {
	return strings.TrimSpace(p.LoanedFrom) != ""
}

// PlayerImages are the resolved images for a player row. An empty string means
// the image could not be fetched and nothing should be displayed.
type PlayerImages struct {
	Photo    string
	Flag     string
	ClubLogo string
}

// PlayerProfile is everything the profile card needs for a single player.
type PlayerProfile struct {
	Player  Player
	Images  PlayerImages
	Clubs   []string
	Players []string
}

// RosterEntry is a single row in a club roster.
type RosterEntry struct {
	Player Player
	Images PlayerImages
}

// Roster is a club and all of its players in dataset order.
type Roster struct {
	Club     string
	ClubLogo string
	Clubs    []string
	Entries  []RosterEntry
	MaxWage  float64
}
