package controller

import (
	"context"
	"fmt"

	"github.com/StroziSolci/Projeto-Fifa/model"
)

func (c *controller) GetRoster(ctx context.Context, club string) (*model.Roster, error) {
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

	players, err := d.ClubPlayers(club)
	if err != nil {
		return nil, fmt.Errorf("error finding club '%s': %w", club, err)
	}

	// Every row shows a photo, a flag and the club logo.
	urls := make([]string, 0, len(players)*3)
	for _, p := range players {
		urls = append(urls, p.Photo, p.Flag, p.ClubLogo)
	}
	resolved := c.images.ResolveAll(ctx, urls)

	roster := &model.Roster{
		Club:    club,
		Clubs:   clubs,
		Entries: make([]model.RosterEntry, 0, len(players)),
	}
	for _, p := range players {
		roster.Entries = append(roster.Entries, model.RosterEntry{
			Player: p,
			Images: model.PlayerImages{
				Photo:    resolved[p.Photo],
				Flag:     resolved[p.Flag],
				ClubLogo: resolved[p.ClubLogo],
			},
		})
		if p.Wage > roster.MaxWage {
			roster.MaxWage = p.Wage
		}
	}

	// The header uses the logo of the first player, like the roster table.
	roster.ClubLogo = roster.Entries[0].Images.ClubLogo

	return roster, nil
}
