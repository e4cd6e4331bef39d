package testutils

import (
	"embed"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
)

//go:embed imagedata
var imagedata embed.FS

// SlowDelay is how long the /slow images take to respond.
const SlowDelay = 200 * time.Millisecond

// FakeImageServer serves the player photos, flags and club logos referenced
// by the test dataset. It records every request it gets.
type FakeImageServer struct {
	s *httptest.Server

	mu         sync.Mutex
	requests   map[string]int
	userAgents []string
}

func NewFakeImageServer() *FakeImageServer {
	f := &FakeImageServer{
		requests: make(map[string]int),
	}

	r := chi.NewRouter()
	r.Use(f.record)
	r.Get("/players/{file}", imageHandler("player.png"))
	r.Get("/flags/{file}", imageHandler("flag.png"))
	r.Get("/logos/{file}", imageHandler("logo.jpg"))
	r.Get("/slow/{file}", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(SlowDelay)
		serveImage(w, "player.png")
	})
	r.Get("/error/{file}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	// Everything else is a 404, like an image that was removed from the CDN.

	f.s = httptest.NewServer(r)
	return f
}

func (f *FakeImageServer) Close() {
	f.s.Close()
}

func (f *FakeImageServer) URL() string {
	return f.s.URL
}

func (f *FakeImageServer) Client() *http.Client {
	return f.s.Client()
}

// Requests returns how many times path was requested.
func (f *FakeImageServer) Requests(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[path]
}

// TotalRequests returns the number of requests across all paths.
func (f *FakeImageServer) TotalRequests() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	total := 0
	for _, n := range f.requests {
		total += n
	}
	return total
}

// UserAgents returns the User-Agent header of every request in order.
func (f *FakeImageServer) UserAgents() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.userAgents...)
}

func (f *FakeImageServer) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests[r.URL.Path]++
		f.userAgents = append(f.userAgents, r.Header.Get("User-Agent"))
		f.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func imageHandler(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serveImage(w, name)
	}
}

func serveImage(w http.ResponseWriter, name string) {
	b, err := ImageBytes(name)
	if err != nil {
		log.Printf("error reading imagedata/%s: %v", name, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// ImageBytes returns the content of one of the served test images.
func ImageBytes(name string) ([]byte, error) {
	return imagedata.ReadFile(fmt.Sprintf("imagedata/%s", name))
}
