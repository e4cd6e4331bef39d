package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"log"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/StroziSolci/Projeto-Fifa/controller"
	"github.com/unrolled/render"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed templates
var templates embed.FS

const (
	KaggleURL = "https://www.kaggle.com/datasets/kevwesophia/fifa23-official-datasetclean-data"
	CreditURL = "https://hub.asimov.academy/curso/atividade/dash-fifa-2023/"
)

type Server struct {
	server *http.Server
}

type Options struct {
	Port        int
	CORSOrigins []string
}

func NewServer(opts Options, ctrl controller.C) (*Server, error) {
	render := newRender()
	router := getRouter(ctrl, render, opts.CORSOrigins)

	s := &Server{
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", opts.Port),
			Handler: router,
		},
	}
	return s, nil
}

func (s *Server) ListenAndServe(shutdown chan bool, wg *sync.WaitGroup) {
	go func() {
		defer wg.Done()

		// Wait for the shutdown signal and safely close the server.
		<-shutdown

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.server.Shutdown(ctx); err != nil {
			log.Fatalf("fatal error shutting down server: %v", err)
		}
	}()

	log.Printf("web server is listening on %s", s.server.Addr)
	err := s.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatalf("fatal error with server: %v", err)
	}
}

func newRender() *render.Render {
	return render.New(render.Options{
		Directory: "templates",
		Layout:    "layout",
		FileSystem: &render.EmbedFileSystem{
			FS: templates,
		},
		Funcs: []template.FuncMap{
			{
				"money":   moneyFormatter,
				"height":  heightFormatter,
				"weight":  weightFormatter,
				"percent": percentFormatter,
				"rating":  ratingFormatter,
				"kaggle":  func() string { return KaggleURL },
				"credit":  func() string { return CreditURL },
				// Data URIs are built by the image resolver, never by users.
				"imgsrc": func(s string) template.URL { return template.URL(s) },
			},
		},
	})
}

var printer = message.NewPrinter(language.English)

// moneyFormatter formats an amount in pounds with thousand separators,
// e.g. "£ 107,500,000".
func moneyFormatter(v float64) string {
	return printer.Sprintf("£ %d", int64(math.Round(v)))
}

// heightFormatter takes centimeters and returns meters, e.g. "1.81 m".
func heightFormatter(cm float64) string {
	return fmt.Sprintf("%.2f m", cm/100)
}

// weightFormatter takes kilograms, e.g. "69.76 kg".
func weightFormatter(kg float64) string {
	return fmt.Sprintf("%.2f kg", kg)
}

// percentFormatter returns v as a percentage of limit, clamped to 0-100. It
// is used for the width of the progress bars.
func percentFormatter(v, limit float64) int {
	if limit <= 0 || v <= 0 {
		return 0
	}
	p := int(math.Round(v / limit * 100))
	if p > 100 {
		return 100
	}
	return p
}

// ratingFormatter clamps an overall rating to 0-100.
func ratingFormatter(r int) int {
	return min(max(r, 0), 100)
}
