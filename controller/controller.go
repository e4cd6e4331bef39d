package controller

import (
	"context"
	"errors"

	"github.com/StroziSolci/Projeto-Fifa/dataset"
	"github.com/StroziSolci/Projeto-Fifa/images"
	"github.com/StroziSolci/Projeto-Fifa/model"
	"github.com/itbasis/go-clock"
)

var (
	ErrInvalidQuery error = errors.New("not a valid query")
)

// C encapsulates business logic without worrying about any web layers
type C interface {
	// Load loads the dataset if it hasn't been loaded yet and summarizes it.
	// This is the only method that can trigger a load. Every other method
	// returns dataset.ErrNotLoaded until it has happened.
	Load(ctx context.Context) (*model.Summary, error)

	Clubs(ctx context.Context) ([]string, error)
	// Get the profile card for a player. An empty club selects the club with
	// the most players, an empty name selects the first player of the club.
	GetPlayerProfile(ctx context.Context, club, name string) (*model.PlayerProfile, error)
	// Get every player of a club with their images. An empty club selects
	// the club with the most players.
	GetRoster(ctx context.Context, club string) (*model.Roster, error)
	Search(ctx context.Context, query string) ([]model.Player, error)

	Health(ctx context.Context) Health
}

type Health struct {
	DatasetLoaded bool         `json:"datasetLoaded"`
	Players       int          `json:"players"`
	Images        images.Stats `json:"images"`
}

type controller struct {
	clock  clock.Clock
	state  dataset.State
	images images.Resolver
}

func New(clock clock.Clock, state dataset.State, images images.Resolver) (C, error) {
	c := &controller{
		clock:  clock,
		state:  state,
		images: images,
	}
	return c, nil
}
