package web

import (
	"net/http"
	"time"

	"github.com/StroziSolci/Projeto-Fifa/controller"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/unrolled/render"
)

func getRouter(ctrl controller.C, render *render.Render, corsOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped. A roster with a cold image cache can
	// take a while, so this is longer than a single image fetch.
	r.Use(middleware.Timeout(30 * time.Second))

	if len(corsOrigins) == 0 {
		corsOrigins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/", rootHandler(ctrl, render))
	r.Get("/health", healthHandler(ctrl, render))

	// Both views read the dataset loaded by the home page and are narrowed
	// down with the club and player query parameters.
	r.Get("/players", playerHandler(ctrl, render))
	r.Get("/teams", teamHandler(ctrl, render))
	r.Get("/search", searchHandler(ctrl, render))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.HTML(w, http.StatusNotFound, "404", "page not found")
	})

	return r
}
