package mockcontroller

import (
	"context"

	"github.com/StroziSolci/Projeto-Fifa/controller"
	"github.com/StroziSolci/Projeto-Fifa/model"
	"github.com/stretchr/testify/mock"
)

type C struct {
	mock.Mock
}

func (c *C) Load(ctx context.Context) (*model.Summary, error) {
	args := c.Called(ctx)

	var s *model.Summary
	if args.Get(0) != nil {
		s = args.Get(0).(*model.Summary)
	}
	return s, args.Error(1)
}

func (c *C) Clubs(ctx context.Context) ([]string, error) {
	args := c.Called(ctx)

	var r []string
	if args.Get(0) != nil {
		r = args.Get(0).([]string)
	}
	return r, args.Error(1)
}

func (c *C) GetPlayerProfile(ctx context.Context, club, name string) (*model.PlayerProfile, error) {
	args := c.Called(ctx, club, name)

	var p *model.PlayerProfile
	if args.Get(0) != nil {
		p = args.Get(0).(*model.PlayerProfile)
	}
	return p, args.Error(1)
}

func (c *C) GetRoster(ctx context.Context, club string) (*model.Roster, error) {
	args := c.Called(ctx, club)

	var r *model.Roster
	if args.Get(0) != nil {
		r = args.Get(0).(*model.Roster)
	}
	return r, args.Error(1)
}

func (c *C) Search(ctx context.Context, query string) ([]model.Player, error) {
	args := c.Called(ctx, query)

	var r []model.Player
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Player)
	}
	return r, args.Error(1)
}

func (c *C) Health(ctx context.Context) controller.Health {
	args := c.Called(ctx)
	return args.Get(0).(controller.Health)
}
