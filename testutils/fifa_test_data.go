package testutils

import (
	"embed"
	"log"
	"strings"
	"testing/fstest"
	"time"

	"github.com/StroziSolci/Projeto-Fifa/dataset"
	"github.com/itbasis/go-clock"
)

//go:embed fifadata
var fifadata embed.FS

const (
	// The test dataset is filtered as if it was loaded in this year.
	TestYear = 2023

	imagesPlaceholder = "{{IMAGES}}"
)

// Clubs of the test dataset after filtering, most players first.
var TestClubs = []string{"Manchester City", "Real Madrid CF", "FC Barcelona"}

// Player names of the test dataset after filtering, in dataset order.
var TestPlayers = []string{
	"K. De Bruyne",
	"K. Benzema",
	"R. Lewandowski",
	"T. Courtois",
	"Ederson",
	"E. Haaland",
	"J. Cancelo",
}

// TestCSV returns the test dataset with every image pointing at imagesURL.
func TestCSV(imagesURL string) []byte {
	b, err := fifadata.ReadFile("fifadata/players.csv")
	if err != nil {
		log.Fatalf("error reading fifadata/players.csv: %v", err)
	}
	return []byte(strings.ReplaceAll(string(b), imagesPlaceholder, imagesURL))
}

// TestFS returns a file system with the test dataset at dataset.DefaultPath.
func TestFS(imagesURL string) fstest.MapFS {
	return fstest.MapFS{
		dataset.DefaultPath: &fstest.MapFile{Data: TestCSV(imagesURL)},
	}
}

// TestClock returns a clock set to TestYear.
func TestClock() *clock.Mock {
	c := clock.NewMock()
	c.Set(time.Date(TestYear, 6, 1, 12, 0, 0, 0, time.UTC))
	return c
}
