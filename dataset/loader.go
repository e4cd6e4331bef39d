package dataset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/StroziSolci/Projeto-Fifa/model"
	"github.com/itbasis/go-clock"
)

const DefaultPath = "datasets/CLEAN_FIFA23_official_data.csv"

var (
	ErrNotLoaded error = errors.New("dataset has not been loaded")
)

type loader struct {
	fsys  fs.FS
	path  string
	clock clock.Clock

	once   sync.Once
	done   atomic.Bool
	result *model.Dataset
	err    error
}

// New returns a State that reads the CSV file at path from fsys. The clock
// provides the current year used to drop expired contracts.
func New(fsys fs.FS, path string, clock clock.Clock) State {
	return &loader{
		fsys:  fsys,
		path:  path,
		clock: clock,
	}
}

// Load reads the dataset on the first call and returns the stored result on
// every later one. Cancelling ctx doesn't stop the read.
func (l *loader) Load(ctx context.Context) (*model.Dataset, error) {
	l.once.Do(func() {
		l.result, l.err = l.load(context.WithoutCancel(ctx))
		l.done.Store(true)
	})
	return l.result, l.err
}

func (l *loader) Dataset() (*model.Dataset, error) {
	if !l.done.Load() || l.err != nil {
		return nil, ErrNotLoaded
	}
	return l.result, nil
}

func (l *loader) load(ctx context.Context) (*model.Dataset, error) {
	start := time.Now()

	f, err := l.fsys.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("error opening dataset: %w", err)
	}
	defer f.Close()

	players, err := parseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("error parsing dataset %s: %w", l.path, err)
	}

	total := len(players)
	players = filterPlayers(players, l.clock.Now().Year())
	sortByOverall(players)

	log.Printf("loaded %d of %d players from %s, took %v", len(players), total, l.path, time.Since(start))
	return model.NewDataset(players), nil
}

// filterPlayers keeps the players with a contract valid until at least year
// and a positive market value.
func filterPlayers(players []model.Player, year int) []model.Player {
	result := make([]model.Player, 0, len(players))
	for _, p := range players {
		if p.ContractValidUntil < year {
			continue
		}
		if p.Value <= 0 {
			continue
		}
		result = append(result, p)
	}
	return result
}

// sortByOverall sorts players by overall rating, highest first. Players with
// the same rating keep their file order.
func sortByOverall(players []model.Player) {
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].Overall > players[j].Overall
	})
}
