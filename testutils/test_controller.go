package testutils

import (
	"context"
	"log"

	"github.com/StroziSolci/Projeto-Fifa/dataset"
	"github.com/itbasis/go-clock"
)

// TestEnv is everything a controller needs in tests: a dataset whose images
// are served by a fake image server.
type TestEnv struct {
	Clock     *clock.Mock
	State     dataset.State
	fakeImage *FakeImageServer
}

func (e *TestEnv) Close() {
	e.fakeImage.Close()
}

func (e *TestEnv) Images() *FakeImageServer {
	return e.fakeImage
}

func (e *TestEnv) ImagesURL() string {
	return e.fakeImage.URL()
}

// NewTestEnv returns an environment with the dataset not loaded yet.
func NewTestEnv() *TestEnv {
	fakeImage := NewFakeImageServer()
	clock := TestClock()

	return &TestEnv{
		Clock:     clock,
		State:     dataset.New(TestFS(fakeImage.URL()), dataset.DefaultPath, clock),
		fakeImage: fakeImage,
	}
}

// NewLoadedTestEnv returns an environment with the dataset already loaded.
func NewLoadedTestEnv() *TestEnv {
	e := NewTestEnv()
	if _, err := e.State.Load(context.Background()); err != nil {
		log.Fatalf("error loading test dataset: %v", err)
	}
	return e
}
