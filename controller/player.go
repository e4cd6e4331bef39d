package controller

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/StroziSolci/Projeto-Fifa/model"
)

const topPlayersOnSummary = 10

func (c *controller) Load(ctx context.Context) (*model.Summary, error) {
	d, err := c.state.Load(ctx)
	if err != nil {
		return nil, err
	}

	players := d.Players()
	if len(players) > topPlayersOnSummary {
		players = players[:topPlayersOnSummary]
	}

	return &model.Summary{
		Players:    d.Len(),
		Clubs:      len(d.Clubs()),
		Year:       c.clock.Now().Year(),
		TopPlayers: players,
	}, nil
}

func (c *controller) Clubs(ctx context.Context) ([]string, error) {
	d, err := c.state.Dataset()
	if err != nil {
		return nil, err
	}
	return d.Clubs(), nil
}

func (c *controller) GetPlayerProfile(ctx context.Context, club, name string) (*model.PlayerProfile, error) {
	d, err := c.state.Dataset()
	if err != nil {
		return nil, err
	}

	clubs := d.Clubs()
	if club == "" {
		if len(clubs) == 0 {
			return nil, model.ErrClubNotFound
		}
		club = clubs[0]
	}

	names, err := d.PlayerNames(club)
	if err != nil {
		return nil, fmt.Errorf("error finding club '%s': %w", club, err)
	}
	if name == "" {
		name = names[0]
	}

	p, err := d.Player(club, name)
	if err != nil {
		return nil, fmt.Errorf("error finding player '%s' in '%s': %w", name, club, err)
	}

	profile := &model.PlayerProfile{
		Player:  *p,
		Clubs:   clubs,
		Players: names,
	}
	// Only the photo is shown on the profile card.
	if photo, ok := c.images.Resolve(ctx, p.Photo); ok {
		profile.Images.Photo = photo
	}

	return profile, nil
}

func (c *controller) Search(ctx context.Context, query string) ([]model.Player, error) {
	d, err := c.state.Dataset()
	if err != nil {
		return nil, err
	}

	q, pos, line := getPositionFromQuery(query)
	q, club := getClubFromQuery(q)

	filter := model.PlayerFilter{
		Name:     q,
		Club:     club,
		Position: pos,
		Line:     line,
	}
	if filter.IsEmpty() {
		return nil, fmt.Errorf("%w: '%s'", ErrInvalidQuery, query)
	}

	return d.Filter(filter), nil
}

func (c *controller) Health(ctx context.Context) Health {
	h := Health{
		Images: c.images.Stats(),
	}

	if d, err := c.state.Dataset(); err == nil {
		h.DatasetLoaded = true
		h.Players = d.Len()
	}
	return h
}

var positionRegex = regexp.MustCompile(`(?i)(pos|position)\s*:\s*(?P<pos>\w+)`)

// Parse out the position from the query, returning the same query without the position.
// So if the query is "Haaland pos:ST" this will return "Haaland" and model.POS_ST.
// The tag also accepts a line of the pitch, "pos:MID" returns model.LINE_MID.
// If the input query does not have a `pos:` argument, or it is not a known position
// or line, then the position and line are empty.
// Allowed tags for the position are `pos` and `position` case insensitive.
func getPositionFromQuery(q string) (string, model.Position, model.Line) {
	var pos model.Position
	var line model.Line

	m := positionRegex.FindStringSubmatch(q)
	if m != nil {
		p := m[positionRegex.SubexpIndex("pos")]
		if parsed := model.ParsePosition(p); parsed != model.POS_UNKNOWN {
			pos = parsed
		} else {
			line = parseLine(p)
		}
		q = strings.Replace(q, m[0], "", 1) // Remove the position match from the query
		q = strings.TrimSpace(q)            // Remove any remaining whitespace
	}

	return q, pos, line
}

func parseLine(l string) model.Line {
	switch strings.ToUpper(l) {
	case "GK", "GOALKEEPER":
		return model.LINE_GK
	case "DEF", "DEFENDER":
		return model.LINE_DEF
	case "MID", "MIDFIELDER":
		return model.LINE_MID
	case "FWD", "FORWARD", "ATT", "ATTACKER":
		return model.LINE_FWD
	case "BENCH":
		return model.LINE_BENCH
	default:
		return ""
	}
}

var clubRegex = regexp.MustCompile(`(?i)club\s*:\s*(?:"(?P<quoted>[^"]*)"|(?P<club>\S+))`)

// Parse out the club from the query, returning the same query without the club.
// Club names with spaces need quotes: `Silva club:"Manchester City"`.
// The only allowed tag is `club` case insensitive.
func getClubFromQuery(q string) (string, string) {
	var club string
	m := clubRegex.FindStringSubmatch(q)
	if m != nil {
		club = m[clubRegex.SubexpIndex("quoted")]
		if club == "" {
			club = m[clubRegex.SubexpIndex("club")]
		}
		club = strings.TrimSpace(club)
		q = strings.Replace(q, m[0], "", 1)
		q = strings.TrimSpace(q)
	}

	return q, club
}
